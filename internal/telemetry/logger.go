// Package telemetry provides structured logging and runtime counters
// for the renderer daemon (§7, §10). Logging is zerolog-based rather
// than the teacher's hand-rolled ring-buffer Logger, since the
// renderer's error-handling surface is "what happened and when", not
// "replay the last N CPU cycles" — the retrieval pack's own
// zerolog-using manifests (badu-term, galpt-cake-stats,
// drewfead-proto-cli) are the closer fit.
package telemetry

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger wraps a zerolog.Logger scoped to a component, mirroring the
// teacher's per-component enable/disable taxonomy (internal/debug
// Component flags) as zerolog sub-loggers instead of a boolean map.
type Logger struct {
	z zerolog.Logger
}

// New builds a root Logger writing to w at the given minimum level.
// level accepts zerolog level names ("debug", "info", "warn", "error");
// unrecognized values fall back to "info".
func New(w io.Writer, level string) *Logger {
	if w == nil {
		w = os.Stderr
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	z := zerolog.New(w).Level(lvl).With().Timestamp().Logger()
	return &Logger{z: z}
}

// Component returns a child Logger tagged with name, the zerolog
// equivalent of the teacher's per-Component enable flags.
func (l *Logger) Component(name string) *Logger {
	return &Logger{z: l.z.With().Str("component", name).Logger()}
}

func (l *Logger) fields(event *zerolog.Event, kv []any) *zerolog.Event {
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		event = event.Interface(key, kv[i+1])
	}
	return event
}

func (l *Logger) Debug(msg string, kv ...any) { l.fields(l.z.Debug(), kv).Msg(msg) }
func (l *Logger) Info(msg string, kv ...any)   { l.fields(l.z.Info(), kv).Msg(msg) }
func (l *Logger) Warn(msg string, kv ...any)   { l.fields(l.z.Warn(), kv).Msg(msg) }
func (l *Logger) Error(msg string, kv ...any)  { l.fields(l.z.Error(), kv).Msg(msg) }
