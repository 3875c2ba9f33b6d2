// Package realtree provides the public API for the realtree evaluator.
package realtree

import (
	"io"
	"log/slog"

	"nickandperla.net/realtree/internal/store"
)

// Output formats for the print command.
const (
	FormatTable = "table"
	FormatPlain = "plain"
)

// Option configures a Runtime.
type Option func(*Runtime)

// WithOutput sets where results, listings and help are written.
func WithOutput(w io.Writer) Option {
	return func(r *Runtime) {
		r.out = w
	}
}

// WithErrorOutput sets where error messages are written.
func WithErrorOutput(w io.Writer) Option {
	return func(r *Runtime) {
		r.errOut = w
	}
}

// WithLogger sets the structured logger. It is passed on to the evaluator.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runtime) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithJournal records executed commands in j. The runtime closes j.
func WithJournal(j store.Journal) Option {
	return func(r *Runtime) {
		r.journal = j
	}
}

// WithSQLiteJournal records executed commands in a SQLite database at path.
// A database that cannot be opened makes New fail.
func WithSQLiteJournal(path string) Option {
	return func(r *Runtime) {
		s, err := store.NewSQLite(path)
		if err != nil {
			r.initErr = err
			return
		}
		r.journal = s
	}
}

// WithMemoryJournal records executed commands in memory. This is the default.
func WithMemoryJournal() Option {
	return func(r *Runtime) {
		r.journal = store.NewMemory()
	}
}

// WithFormat selects FormatTable or FormatPlain for print output.
func WithFormat(format string) Option {
	return func(r *Runtime) {
		r.format = format
	}
}

// WithColor enables or disables colored error messages. Color is only
// emitted when the terminal supports it.
func WithColor(enabled bool) Option {
	return func(r *Runtime) {
		r.color = enabled
	}
}
