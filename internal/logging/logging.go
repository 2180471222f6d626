// Package logging builds the zerolog logger and adapts it to the selector
// query hook.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jask/paintingdb/internal/config"
	"github.com/jask/paintingdb/internal/selector"
)

// New returns a timestamped logger writing JSON lines to w.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// ParseLevel accepts zerolog level names; empty means info.
func ParseLevel(s string) (zerolog.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	if s == "warning" {
		s = "warn"
	}
	return zerolog.ParseLevel(s)
}

// Open builds the logger described by cfg. The returned closer releases the
// log file; with no file configured the logger discards everything.
func Open(cfg config.LogConfig) (zerolog.Logger, io.Closer, error) {
	if cfg.File == "" {
		return zerolog.Nop(), io.NopCloser(nil), nil
	}
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("log level: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("mkdir log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}
	return New(f, level), f, nil
}

type interactionKey struct{}

// WithInteraction tags ctx with a fresh interaction id so every query run
// for one user action shares it in the log.
func WithInteraction(ctx context.Context) context.Context {
	return context.WithValue(ctx, interactionKey{}, uuid.NewString())
}

// Interaction returns the id set by WithInteraction, or "".
func Interaction(ctx context.Context) string {
	id, _ := ctx.Value(interactionKey{}).(string)
	return id
}

// QueryHook logs each selector query at debug level, failures at error level.
func QueryHook(logger zerolog.Logger) selector.QueryHook {
	return func(ctx context.Context, ev selector.QueryEvent) {
		event := logger.Debug()
		if ev.Err != nil {
			event = logger.Error().Err(ev.Err)
		}
		if id := Interaction(ctx); id != "" {
			event = event.Str("interaction", id)
		}
		event.
			Str("component", "selector").
			Str("table", ev.Table).
			Str("op", string(ev.Op)).
			Str("sql", ev.SQL).
			Interface("args", ev.Args).
			Int("rows", ev.Rows).
			Dur("duration", ev.Duration).
			Msg("query")
	}
}
