//go:build unit

package notify_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"testdrive-hub/internal/domain/testdrive"
	"testdrive-hub/internal/infra/notify"
	"testdrive-hub/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{ID: "task-1", Type: task.Type()}, nil
}

type recordingSender struct {
	sent []shared.Notification
}

func (r *recordingSender) Send(_ context.Context, msg shared.Notification) error {
	r.sent = append(r.sent, msg)
	return nil
}

func sampleNotification() shared.Notification {
	return shared.Notification{
		Topic:        shared.TopicConfirmed,
		RequestID:    uuid.MustParse("0b0c8a8e-4f3a-4a43-9a53-7d4e5d9b6c01"),
		Recipient:    "buyer@example.com",
		VehicleTitle: "2019 Toyota Prius S",
		Status:       testdrive.StatusConfirmed,
		Message:      "See you then",
		OccurredAt:   time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
	}
}

func TestAsynqNotifier(t *testing.T) {
	t.Run("enqueues topic as task type", func(t *testing.T) {
		enq := &fakeEnqueuer{}
		n := notify.NewAsynqNotifier(enq, "mail")

		require.NoError(t, n.Notify(context.Background(), sampleNotification()))
		require.Len(t, enq.tasks, 1)
		assert.Equal(t, shared.TopicConfirmed, enq.tasks[0].Type())

		var decoded shared.Notification
		require.NoError(t, json.Unmarshal(enq.tasks[0].Payload(), &decoded))
		assert.Equal(t, sampleNotification(), decoded)
	})

	t.Run("enqueue failure is returned", func(t *testing.T) {
		n := notify.NewAsynqNotifier(&fakeEnqueuer{err: errors.New("redis down")}, "")
		err := n.Notify(context.Background(), sampleNotification())
		assert.ErrorContains(t, err, "redis down")
	})
}

func TestDeliveryMux(t *testing.T) {
	t.Run("routes every topic to the sender", func(t *testing.T) {
		sender := &recordingSender{}
		mux := notify.NewDeliveryMux(sender)

		msg := sampleNotification()
		payload, err := json.Marshal(msg)
		require.NoError(t, err)

		require.NoError(t, mux.ProcessTask(context.Background(), asynq.NewTask(shared.TopicConfirmed, payload)))
		require.NoError(t, mux.ProcessTask(context.Background(), asynq.NewTask(shared.TopicCompleted, payload)))
		assert.Len(t, sender.sent, 2)
	})

	t.Run("malformed payload skips retry", func(t *testing.T) {
		mux := notify.NewDeliveryMux(&recordingSender{})
		err := mux.ProcessTask(context.Background(), asynq.NewTask(shared.TopicSubmitted, []byte("{")))
		assert.ErrorIs(t, err, asynq.SkipRetry)
	})
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewLogNotifier(slog.New(slog.NewJSONHandler(&buf, nil)))

	require.NoError(t, n.Notify(context.Background(), sampleNotification()))
	assert.Contains(t, buf.String(), `"topic":"test_drive.confirmed"`)
	assert.Contains(t, buf.String(), `"recipient":"buyer@example.com"`)
}
