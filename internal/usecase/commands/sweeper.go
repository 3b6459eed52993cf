package commands

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// CompletionSweeper periodically completes appointments whose slot has ended.
type CompletionSweeper struct {
	commands TestDriveCommands
	interval time.Duration

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewCompletionSweeper(commands TestDriveCommands, interval time.Duration) *CompletionSweeper {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &CompletionSweeper{commands: commands, interval: interval}
}

func (s *CompletionSweeper) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(context.WithoutCancel(ctx))
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			s.RunOnce(ctx)
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}

func (s *CompletionSweeper) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

func (s *CompletionSweeper) RunOnce(ctx context.Context) {
	n, err := s.commands.CompleteDue(ctx)
	if err != nil {
		if ctx.Err() == nil {
			slog.ErrorContext(ctx, "Completion sweep failed", slog.Any("error", err))
		}
		return
	}
	if n > 0 {
		slog.InfoContext(ctx, "Completed past test drives", slog.Int("count", n))
	}
}
