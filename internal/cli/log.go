// Package cli implements the heatcal command-line interface.
//
// Commands:
//   - render: write SVG, JSON, PNG or PDF files, optionally re-rendering
//     when the config or a data file changes (--watch)
//   - serve: serve calendars over HTTP with year links and /metrics
//   - browse: navigate years in the terminal
//   - datasets: summarize the configured datasets for a year
//   - cache: inspect and clear the HTTP dataset cache
//
// Commands log through a charmbracelet/log logger carried in the command
// context; --verbose lowers its level to debug.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// newLogger creates the CLI logger. Timestamps read "14:32:01.45" and the
// level labels use the terminal palette.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
	styles := log.DefaultStyles()
	styles.Levels[log.InfoLevel] = styles.Levels[log.InfoLevel].Foreground(colorAccent)
	styles.Levels[log.DebugLevel] = styles.Levels[log.DebugLevel].Foreground(colorMuted)
	styles.Keys["took"] = lipgloss.NewStyle().Foreground(colorFaint)
	l.SetStyles(styles)
	return l
}

// stopwatch logs how long an operation took.
type stopwatch struct {
	logger *log.Logger
	start  time.Time
}

func startStopwatch(l *log.Logger) stopwatch {
	return stopwatch{logger: l, start: time.Now()}
}

// done logs msg at info level with the elapsed time, e.g.
// "Rendered 2024 took=12ms".
func (s stopwatch) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "took", s.elapsed())
	s.logger.Info(msg, keyvals...)
}

func (s stopwatch) elapsed() time.Duration {
	return time.Since(s.start).Round(time.Millisecond)
}

type loggerKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the logger attached by withLogger, or
// log.Default() outside a command.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
