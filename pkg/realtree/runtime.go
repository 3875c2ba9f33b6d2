package realtree

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/edwingeng/deque"
	"github.com/fatih/color"

	"nickandperla.net/realtree/internal/eval"
	"nickandperla.net/realtree/internal/expr"
	"nickandperla.net/realtree/internal/parser"
	"nickandperla.net/realtree/internal/scanner"
	"nickandperla.net/realtree/internal/store"
)

// Runtime runs realtree commands against one set of slots.
type Runtime struct {
	mu        sync.Mutex
	evaluator *eval.Evaluator
	journal   store.Journal
	out       io.Writer
	errOut    io.Writer
	logger    *slog.Logger
	format    string
	color     bool
	errColor  *color.Color
	pending   deque.Deque // parsed commands not yet dispatched
	initErr   error
}

// queued is a pending command or the error that replaced it.
type queued struct {
	cmd parser.Command
	err error
}

// New creates a new runtime with the given options.
func New(opts ...Option) (*Runtime, error) {
	r := &Runtime{
		out:     os.Stdout,
		errOut:  os.Stderr,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		format:  FormatTable,
		color:   true,
		pending: deque.NewDeque(),
	}

	for _, opt := range opts {
		opt(r)
	}
	if r.initErr != nil {
		return nil, r.initErr
	}
	switch r.format {
	case FormatTable, FormatPlain:
	default:
		if r.journal != nil {
			r.journal.Close()
		}
		return nil, fmt.Errorf("unknown output format %q", r.format)
	}
	if r.journal == nil {
		r.journal = store.NewMemory()
	}

	r.errColor = color.New(color.FgRed)
	if !r.color {
		r.errColor.DisableColor()
	}
	r.evaluator = eval.New(eval.WithLogger(r.logger))
	return r, nil
}

// Exec parses every command in input, then runs them in order. Errors in
// individual commands are reported on the error output and do not stop
// the commands after them. It returns exit=true when an exit command ran;
// commands queued after it are discarded. The error result is reserved for
// journal and output failures.
func (r *Runtime) Exec(input string) (exit bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := parser.NewFromString(input)
	for {
		cmd, perr := p.Next()
		if errors.Is(perr, io.EOF) {
			break
		}
		if perr != nil && !isInputError(perr) {
			r.discardPending()
			return false, perr
		}
		r.pending.PushBack(queued{cmd: cmd, err: perr})
	}
	return r.drain()
}

// ExecReader runs commands from reader as they are parsed. Like Exec it
// keeps going after command errors and stops at exit.
func (r *Runtime) ExecReader(reader io.Reader) (exit bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := parser.New(reader)
	for {
		cmd, perr := p.Next()
		if errors.Is(perr, io.EOF) {
			return false, nil
		}
		if perr != nil && !isInputError(perr) {
			return false, perr
		}
		r.pending.PushBack(queued{cmd: cmd, err: perr})
		if exit, err := r.drain(); exit || err != nil {
			return exit, err
		}
	}
}

// ExecFile runs a command file.
func (r *Runtime) ExecFile(path string) (exit bool, err error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()
	return r.ExecReader(f)
}

// drain dispatches queued commands until the queue is empty or an exit
// command runs.
func (r *Runtime) drain() (bool, error) {
	for !r.pending.Empty() {
		item := r.pending.PopFront().(queued)
		if item.err != nil {
			if err := r.reportError(item.err); err != nil {
				return false, err
			}
			continue
		}
		exit, err := r.dispatch(item.cmd)
		if err != nil {
			return false, err
		}
		if exit {
			if n := r.discardPending(); n > 0 {
				r.logger.Debug("discarding commands after exit", "count", n)
			}
			return true, nil
		}
	}
	return false, nil
}

func (r *Runtime) discardPending() int {
	n := r.pending.Len()
	for !r.pending.Empty() {
		r.pending.PopFront()
	}
	return n
}

// dispatch runs one command, writes its output and journals it.
func (r *Runtime) dispatch(cmd parser.Command) (bool, error) {
	var (
		outcome string
		exit    bool
		werr    error
	)
	switch c := cmd.(type) {
	case parser.Help:
		_, werr = io.WriteString(r.out, HelpText)
	case parser.Exit:
		exit = true
		_, werr = fmt.Fprintln(r.errOut, ExitMessage)
	case parser.Print:
		entries := r.evaluator.Listing()
		outcome = fmt.Sprintf("%d slots", len(entries))
		werr = r.renderListing(entries)
	case parser.Reset:
		r.evaluator.Reset()
	case parser.Assign:
		r.evaluator.Assign(c.Slot, c.Tree)
	case parser.Eval:
		v, err := r.evaluator.Evaluate(c.Tree)
		if err != nil {
			outcome = ErrorMessage(err)
			werr = r.reportError(err)
			break
		}
		outcome = "result: " + FormatValue(v)
		_, werr = fmt.Fprintln(r.out, outcome)
	default:
		return false, fmt.Errorf("unknown command %T", cmd)
	}
	if werr != nil {
		return false, werr
	}

	if _, err := r.journal.Append(cmd.String(), outcome); err != nil {
		return false, fmt.Errorf("journal: %w", err)
	}
	return exit, nil
}

func (r *Runtime) reportError(err error) error {
	_, werr := r.errColor.Fprintln(r.errOut, ErrorMessage(err))
	return werr
}

// Evaluator returns the evaluator holding the session's slots.
func (r *Runtime) Evaluator() *eval.Evaluator {
	return r.evaluator
}

// Journal returns the command journal.
func (r *Runtime) Journal() store.Journal {
	return r.journal
}

// Close releases resources.
func (r *Runtime) Close() error {
	if r.journal != nil {
		return r.journal.Close()
	}
	return nil
}

// isInputError reports whether err is a lexical or syntax error, which
// only affects the command it occurred in.
func isInputError(err error) bool {
	var (
		scanErr  *scanner.Error
		parseErr *parser.SyntaxError
	)
	return errors.As(err, &scanErr) || errors.As(err, &parseErr)
}

// ErrorMessage returns the user-facing text for an error.
func ErrorMessage(err error) string {
	if errors.Is(err, expr.ErrCycle) {
		msg := err.Error()
		return strings.ToUpper(msg[:1]) + msg[1:]
	}
	return err.Error()
}
