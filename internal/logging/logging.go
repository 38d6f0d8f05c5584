// Package logging configures zerolog and routes user notices through it.
package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/eykd/fmx/internal/domain"
)

// New returns a logger writing to w at level. When console is set the
// output is human-readable instead of JSON. A nil w means stderr.
//
// The level parameter can be one of: debug, info, warn, error, disabled.
func New(level string, w io.Writer, console bool) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, err
	}
	if w == nil {
		w = os.Stderr
	}
	if console {
		w = zerolog.ConsoleWriter{Out: w, NoColor: true}
	}

	return zerolog.New(w).
		With().
		Timestamp().
		Logger().
		Level(lvl), nil
}

// Component creates a new logger with a component identifier.
// Uses the "cmp" key for consistency with zerolog conventions.
func Component(name string) zerolog.Logger {
	return log.With().Str("cmp", name).Logger()
}

// Notifier logs each notice and prints it for the user.
type Notifier struct {
	out     io.Writer
	mu      sync.Mutex
	Notices []domain.Notice
}

// NewNotifier returns a Notifier printing to out. A nil out only logs, at
// the notice's severity; otherwise the log record is debug level.
func NewNotifier(out io.Writer) *Notifier {
	return &Notifier{out: out}
}

// Notify records, logs, and prints n.
func (n *Notifier) Notify(notice domain.Notice) {
	n.mu.Lock()
	n.Notices = append(n.Notices, notice)
	n.mu.Unlock()

	logger := Component("notify")
	ev := logger.Debug()
	if n.out == nil {
		switch notice.Severity {
		case domain.SeverityWarning:
			ev = logger.Warn()
		case domain.SeverityError:
			ev = logger.Error()
		default:
			ev = logger.Info()
		}
	}
	ev.Str("severity", string(notice.Severity)).
		Str("setting", notice.Setting).
		Str("path", notice.Path).
		Msg(notice.Message)

	if n.out != nil {
		fmt.Fprintf(n.out, "%s: %s\n", notice.Severity, notice.Message)
	}
}

// Drain returns the recorded notices and clears the record.
func (n *Notifier) Drain() []domain.Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := n.Notices
	n.Notices = nil
	return out
}
