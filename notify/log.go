package notify

import (
	"context"
	"log/slog"
)

// =============================================================================
// LogPublisher
// =============================================================================

// LogPublisher logs notifications instead of sending them (dry runs).
// It reports every notification as delivered.
type LogPublisher struct {
	Logger *slog.Logger
	Rooms  []string
}

// NewLogPublisher creates a publisher that logs to the given logger.
// If logger is nil, uses the default slog logger.
func NewLogPublisher(logger *slog.Logger, rooms []string) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{Logger: logger, Rooms: rooms}
}

// Send implements Publisher.
func (p *LogPublisher) Send(ctx context.Context, req Request) Outcome {
	level := slog.LevelInfo
	switch req.Color {
	case "warning":
		level = slog.LevelWarn
	case "danger":
		level = slog.LevelError
	}

	p.Logger.Log(ctx, level, req.Message,
		"rooms", p.Rooms,
		"color", req.Color,
		"thread_ts", req.ThreadTS,
		"reply_broadcast", req.ReplyBroadcast,
	)
	return Outcome{Success: true, ThreadTS: req.ThreadTS}
}

// =============================================================================
// NopPublisher
// =============================================================================

// NopPublisher discards all notifications and reports them as delivered.
type NopPublisher struct{}

// Send implements Publisher.
func (NopPublisher) Send(ctx context.Context, req Request) Outcome {
	return Outcome{Success: true}
}
