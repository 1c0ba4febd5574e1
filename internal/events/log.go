package events

import (
	"context"
	"log/slog"

	"codeberg.org/actas/server/internal/logger"
)

// writes events as structured log lines
type LogEmitter struct {
	log *slog.Logger
}

func NewLogEmitter(l *slog.Logger) *LogEmitter {
	if l == nil {
		l = logger.Default()
	}

	return &LogEmitter{log: l.With("component", "events")}
}

func (l *LogEmitter) Emit(ctx context.Context, e Event) {
	e = stamp(e)

	attrs := []any{
		"event_id", e.ID,
		"type", e.Type,
	}

	if e.Attempt != "" {
		attrs = append(attrs, "attempt", e.Attempt)
	}

	if e.State != "" {
		attrs = append(attrs, "state", e.State)
	}

	if e.Reason != "" {
		attrs = append(attrs, "reason", e.Reason)
	}

	if e.UserID != "" {
		attrs = append(attrs, "user_id", e.UserID)
	}

	for k, v := range e.Data {
		attrs = append(attrs, k, v)
	}

	level := slog.LevelInfo
	if e.Reason != "" {
		level = slog.LevelWarn
	}

	l.log.Log(ctx, level, e.Type, attrs...)
}
