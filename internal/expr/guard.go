package expr

import "github.com/tevino/abool/v2"

// guard marks a node as being evaluated. It is set only while an
// evaluation frame for the node is on the stack.
type guard struct {
	active abool.AtomicBool
}

// acquire sets the marker, reporting false if it was already set.
func (g *guard) acquire() bool {
	return g.active.SetToIf(false, true)
}

func (g *guard) release() {
	g.active.UnSet()
}

// Evaluating reports whether an evaluation of n is in progress.
func Evaluating(n Node) bool {
	return n.marker().active.IsSet()
}
