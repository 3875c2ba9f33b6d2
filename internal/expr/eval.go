package expr

import "fmt"

// Slots resolves slot references during evaluation. Get returns nil for
// an empty slot.
type Slots interface {
	Get(id SlotID) Node
}

// Eval computes the value of n, resolving references through slots.
//
// Every node on the evaluation path is marked while its frame is active;
// reaching a marked node again means a slot transitively refers to itself
// and Eval fails with a *CycleError. Markers are released on every return
// path, so a failed evaluation leaves the trees ready for the next one.
func Eval(n Node, slots Slots) (float64, error) {
	w := &walker{slots: slots}
	return w.eval(n)
}

type walker struct {
	slots Slots
	path  []SlotID // references being followed, outermost first
}

func (w *walker) eval(n Node) (float64, error) {
	g := n.marker()
	if !g.acquire() {
		return 0, &CycleError{Path: append([]SlotID(nil), w.path...)}
	}
	defer g.release()

	switch n := n.(type) {
	case *Literal:
		return n.Value, nil

	case *Reference:
		stored := w.slots.Get(n.Slot)
		if stored == nil {
			return 0, &UndefinedSlotError{Slot: n.Slot}
		}
		w.path = append(w.path, n.Slot)
		defer func() { w.path = w.path[:len(w.path)-1] }()
		return w.eval(stored)

	case *Unary:
		v, err := w.eval(n.Child)
		if err != nil {
			return 0, err
		}
		return n.Op.Apply(v), nil

	case *Binary:
		l, err := w.eval(n.Left)
		if err != nil {
			return 0, err
		}
		r, err := w.eval(n.Right)
		if err != nil {
			return 0, err
		}
		return n.Op.Apply(l, r), nil
	}
	panic(fmt.Sprintf("expr: unknown node type %T", n))
}
