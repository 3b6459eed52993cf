// Package notify delivers party notifications through a task queue or the log.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"testdrive-hub/internal/usecase/shared"

	"github.com/hibiken/asynq"
)

var topics = []string{
	shared.TopicSubmitted,
	shared.TopicConfirmed,
	shared.TopicRescheduled,
	shared.TopicDeclined,
	shared.TopicCancelled,
	shared.TopicCompleted,
}

// Enqueuer is the part of *asynq.Client the notifier needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// AsynqNotifier enqueues one task per notification; the task type is the topic.
type AsynqNotifier struct {
	client   Enqueuer
	queue    string
	maxRetry int
}

func NewAsynqNotifier(client Enqueuer, queue string) *AsynqNotifier {
	if queue == "" {
		queue = "default"
	}
	return &AsynqNotifier{client: client, queue: queue, maxRetry: 5}
}

func NewAsynqClient(addr, password string, db int) *asynq.Client {
	return asynq.NewClient(asynq.RedisClientOpt{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func (n *AsynqNotifier) Notify(ctx context.Context, msg shared.Notification) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	task := asynq.NewTask(msg.Topic, payload)
	info, err := n.client.EnqueueContext(ctx, task,
		asynq.Queue(n.queue),
		asynq.MaxRetry(n.maxRetry),
		asynq.Timeout(30*time.Second),
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue %s: %w", msg.Topic, err)
	}

	slog.DebugContext(ctx, "Notification enqueued",
		slog.String("topic", msg.Topic),
		slog.String("task_id", info.ID),
		slog.String("request_id", msg.RequestID.String()),
	)
	return nil
}

// Sender performs the actual delivery of a dequeued notification.
type Sender interface {
	Send(ctx context.Context, msg shared.Notification) error
}

// NewDeliveryMux routes every notification topic to sender.
func NewDeliveryMux(sender Sender) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	for _, topic := range topics {
		mux.HandleFunc(topic, deliveryHandler(sender))
	}
	return mux
}

func deliveryHandler(sender Sender) func(context.Context, *asynq.Task) error {
	return func(ctx context.Context, task *asynq.Task) error {
		var msg shared.Notification
		if err := json.Unmarshal(task.Payload(), &msg); err != nil {
			// malformed payloads are never retried
			return fmt.Errorf("decode %s: %v: %w", task.Type(), err, asynq.SkipRetry)
		}
		return sender.Send(ctx, msg)
	}
}

// NewDeliveryServer builds the worker that drains the notification queue.
func NewDeliveryServer(addr, password string, db int, queue string, concurrency int) *asynq.Server {
	if queue == "" {
		queue = "default"
	}
	return asynq.NewServer(
		asynq.RedisClientOpt{Addr: addr, Password: password, DB: db},
		asynq.Config{
			Concurrency: concurrency,
			Queues:      map[string]int{queue: 1},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				slog.ErrorContext(ctx, "Notification delivery failed",
					slog.String("topic", task.Type()),
					slog.Any("error", err),
				)
			}),
		},
	)
}
