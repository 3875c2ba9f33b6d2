package eval

import (
	"errors"
	"io"
	"log/slog"

	"nickandperla.net/realtree/internal/expr"
)

// Evaluator owns a slot table and carries out the slot commands.
type Evaluator struct {
	table  *Table
	logger *slog.Logger
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(e *Evaluator) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithTable makes the evaluator operate on an existing table.
func WithTable(t *Table) Option {
	return func(e *Evaluator) {
		if t != nil {
			e.table = t
		}
	}
}

// New creates a new Evaluator with empty slots.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{
		table:  NewTable(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Slots returns the table the evaluator reads and writes.
func (e *Evaluator) Slots() *Table {
	return e.table
}

// Assign stores tree in slot id. Nothing is evaluated; a tree that forms
// a cycle is accepted and only fails when evaluated.
func (e *Evaluator) Assign(id expr.SlotID, tree expr.Node) {
	e.table.Set(id, tree)
	e.logger.Debug("slot assigned", "slot", id.String(), "expr", tree.String(),
		"refs", len(expr.References(tree)))
}

// Evaluate computes the value of tree against the current slots.
func (e *Evaluator) Evaluate(tree expr.Node) (float64, error) {
	v, err := expr.Eval(tree, e.table)
	if err != nil {
		e.logFailure(tree, err)
		return 0, err
	}
	e.logger.Debug("evaluated", "expr", tree.String(), "value", expr.FormatValue(v))
	return v, nil
}

// Reset empties every slot.
func (e *Evaluator) Reset() {
	n := e.table.Len()
	e.table.ClearAll()
	e.logger.Debug("slots reset", "cleared", n)
}

// Entry is one line of a slot listing. Exactly one of Value and Err is
// meaningful: Err is nil when the slot evaluated.
type Entry struct {
	Slot  expr.SlotID
	Expr  string
	Value float64
	Err   error
}

// Listing evaluates every non-empty slot in ascending order. A slot that
// fails to evaluate is reported in its own entry; the listing continues.
func (e *Evaluator) Listing() []Entry {
	entries := make([]Entry, 0, e.table.Len())
	e.table.Each(func(id expr.SlotID, n expr.Node) {
		entry := Entry{Slot: id, Expr: n.String()}
		entry.Value, entry.Err = e.Evaluate(expr.NewReference(id))
		entries = append(entries, entry)
	})
	return entries
}

func (e *Evaluator) logFailure(tree expr.Node, err error) {
	var cycle *expr.CycleError
	if errors.As(err, &cycle) {
		e.logger.Warn("cycle detected", "expr", tree.String(), "path", cycle.Error())
		return
	}
	e.logger.Debug("evaluation failed", "expr", tree.String(), "error", err)
}
