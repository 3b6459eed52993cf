package notify

import (
	"context"
	"log/slog"

	"testdrive-hub/internal/usecase/shared"
)

// LogNotifier writes notifications to the structured log. It doubles as the Sender behind the asynq worker.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, msg shared.Notification) error {
	return n.Send(ctx, msg)
}

func (n *LogNotifier) Send(ctx context.Context, msg shared.Notification) error {
	n.logger.InfoContext(ctx, "Notification",
		slog.String("topic", msg.Topic),
		slog.String("request_id", msg.RequestID.String()),
		slog.String("recipient", msg.Recipient),
		slog.String("vehicle", msg.VehicleTitle),
		slog.String("status", msg.Status.String()),
		slog.String("message", msg.Message),
	)
	return nil
}
