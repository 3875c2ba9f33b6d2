package realtree

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"

	"nickandperla.net/realtree/internal/eval"
	"nickandperla.net/realtree/internal/expr"
)

// EmptyListing is printed by print when no slot is assigned.
const EmptyListing = "(no slots assigned)"

// FormatValue renders a result: NaN, Infinity and -Infinity by name,
// anything else in its shortest form.
func FormatValue(v float64) string {
	return expr.FormatValue(v)
}

func (r *Runtime) renderListing(entries []eval.Entry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(r.out, EmptyListing)
		return err
	}

	if r.format == FormatPlain {
		for _, e := range entries {
			if _, err := fmt.Fprintf(r.out, "%s = %s = %s\n", e.Slot, e.Expr, entryValue(e)); err != nil {
				return err
			}
		}
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Slot", "Expression", "Value"})
	for _, e := range entries {
		t.AppendRow(table.Row{e.Slot.String(), e.Expr, entryValue(e)})
	}
	t.Render()
	return nil
}

func entryValue(e eval.Entry) string {
	if e.Err != nil {
		return ErrorMessage(e.Err)
	}
	return FormatValue(e.Value)
}
