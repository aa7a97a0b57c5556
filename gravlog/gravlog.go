// Package gravlog is the teacher's buffered Logger shape
// (github.com/soypat/godesim's logger.go), upgraded from plain
// string-buffering to log/slog-style leveled records: the engine needs
// warning-level output for a force-accepted step-floor (distinct from a
// fatal, caller-returned error) that an undifferentiated Logf could not
// express.
package gravlog

import (
	"fmt"
	"io"
	"log/slog"
)

// Logger wraps an io.Writer with leveled, structured output. Unlike the
// teacher's Logger it does not buffer internally: slog.Handler owns that
// decision, and a run's progress.Sink already buffers step reporting
// separately.
type Logger struct {
	slog *slog.Logger
}

// New builds a Logger writing text-formatted records to w at minLevel.
func New(w io.Writer, minLevel slog.Level) *Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: minLevel})
	return &Logger{slog: slog.New(h)}
}

// Infof logs a run-progress message: scheme selection, file writes, and
// other expected milestones.
func (l *Logger) Infof(format string, args ...any) {
	l.slog.Info(sprintf(format, args...))
}

// Warnf logs a non-fatal condition the caller should be aware of, the
// slot §7.4's StepFloor force-accept reports through.
func (l *Logger) Warnf(format string, args ...any) {
	l.slog.Warn(sprintf(format, args...))
}

// Errorf logs a fatal condition immediately before the caller surfaces
// the corresponding gravsimerr.Error; it does not replace returning the
// error.
func (l *Logger) Errorf(format string, args ...any) {
	l.slog.Error(sprintf(format, args...))
}

// WithGroup namespaces subsequent attributes under name, e.g. the
// integrator scheme or the catalog system name for a run.
func (l *Logger) WithGroup(name string) *Logger {
	return &Logger{slog: l.slog.WithGroup(name)}
}

func sprintf(format string, args ...any) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
