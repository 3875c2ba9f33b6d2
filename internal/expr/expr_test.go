package expr

import (
	"errors"
	"math"
	"testing"
)

// slotMap is a minimal Slots for tests.
type slotMap map[SlotID]Node

func (m slotMap) Get(id SlotID) Node { return m[id] }

// noSlots fails the test if evaluation touches the slot table.
type noSlots struct{ t *testing.T }

func (s noSlots) Get(id SlotID) Node {
	s.t.Helper()
	s.t.Fatalf("unexpected slot lookup of %s", id)
	return nil
}

func ref(r rune) *Reference { return NewReference(MustSlot(r)) }

func TestSlotFromRune(t *testing.T) {
	tests := []struct {
		r    rune
		want SlotID
		ok   bool
	}{
		{'a', 0, true},
		{'z', 25, true},
		{'Q', 16, true},
		{'1', 0, false},
		{'_', 0, false},
		{'é', 0, false},
	}
	for _, tt := range tests {
		got, ok := SlotFromRune(tt.r)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("SlotFromRune(%q) = %d, %v; want %d, %v", tt.r, got, ok, tt.want, tt.ok)
		}
	}
	if MustSlot('c').String() != "c" {
		t.Errorf("expected 'c', got '%s'", MustSlot('c'))
	}
}

func TestLiteralEvalDoesNotTouchSlots(t *testing.T) {
	for _, v := range []float64{0, 1, -2.5, 1e300, math.SmallestNonzeroFloat64} {
		got, err := Eval(NewLiteral(v), noSlots{t})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != v {
			t.Errorf("expected %v, got %v", v, got)
		}
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		node Node
		want string
	}{
		{NewLiteral(7), "7"},
		{NewLiteral(0.5), "0.5"},
		{NewLiteral(1e21), "1000000000000000000000"},
		{ref('x'), "x"},
		{NewNegate(ref('a')), "(- a)"},
		{NewBinary(Add, NewLiteral(3), NewLiteral(4)), "(3 + 4)"},
		{NewBinary(Rem, ref('a'), NewLiteral(2)), "(a % 2)"},
		{
			NewBinary(Mul,
				NewBinary(Sub, ref('a'), NewLiteral(1)),
				NewNegate(NewBinary(Div, ref('b'), NewLiteral(2)))),
			"((a - 1) * (- (b / 2)))",
		},
	}
	for _, tt := range tests {
		if got := tt.node.String(); got != tt.want {
			t.Errorf("expected '%s', got '%s'", tt.want, got)
		}
	}
}

func TestStringDoesNotResolve(t *testing.T) {
	// A cyclic slot still renders; String never consults slots.
	n := NewBinary(Add, ref('a'), NewLiteral(1))
	if n.String() != "(a + 1)" {
		t.Errorf("unexpected rendering '%s'", n.String())
	}
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		op   Op
		l, r float64
		want float64
	}{
		{Add, 3, 4, 7},
		{Sub, 3, 4, -1},
		{Mul, 3, 4, 12},
		{Div, 3, 4, 0.75},
		{Rem, 7, 3, 1},
		{Rem, -7, 3, -1},
		{Rem, 7, -3, 1},
		{Rem, 5.5, 2, 1.5},
	}
	for _, tt := range tests {
		got, err := Eval(NewBinary(tt.op, NewLiteral(tt.l), NewLiteral(tt.r)), slotMap{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != tt.want {
			t.Errorf("%v %s %v: expected %v, got %v", tt.l, tt.op.Symbol(), tt.r, tt.want, got)
		}
	}
}

func TestDivisionByZeroIsNotAnError(t *testing.T) {
	got, err := Eval(NewBinary(Div, NewLiteral(1), NewLiteral(0)), slotMap{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !math.IsInf(got, 1) {
		t.Errorf("expected +Inf, got %v", got)
	}

	got, err = Eval(NewBinary(Div, NewLiteral(0), NewLiteral(0)), slotMap{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !math.IsNaN(got) {
		t.Errorf("expected NaN, got %v", got)
	}

	got, err = Eval(NewBinary(Rem, NewLiteral(1), NewLiteral(0)), slotMap{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !math.IsNaN(got) {
		t.Errorf("expected NaN for 1 %% 0, got %v", got)
	}
}

func TestNegate(t *testing.T) {
	got, err := Eval(NewNegate(NewNegate(NewLiteral(3))), slotMap{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 3 {
		t.Errorf("expected 3, got %v", got)
	}
}

func TestReferenceResolution(t *testing.T) {
	slots := slotMap{
		MustSlot('a'): NewBinary(Add, NewLiteral(3), NewLiteral(4)),
		MustSlot('b'): NewBinary(Mul, ref('a'), NewLiteral(2)),
	}
	got, err := Eval(ref('b'), slots)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 14 {
		t.Errorf("expected 14, got %v", got)
	}

	// The same slot may be referenced twice in one tree.
	got, err = Eval(NewBinary(Add, ref('a'), ref('a')), slots)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 14 {
		t.Errorf("expected 14, got %v", got)
	}
}

func TestUndefinedSlot(t *testing.T) {
	_, err := Eval(NewBinary(Add, NewLiteral(1), ref('q')), slotMap{})
	if !errors.Is(err, ErrUndefinedSlot) {
		t.Fatalf("expected ErrUndefinedSlot, got %v", err)
	}
	var ue *UndefinedSlotError
	if !errors.As(err, &ue) || ue.Slot != MustSlot('q') {
		t.Errorf("expected undefined slot q, got %v", err)
	}
	if err.Error() != "slot 'q' is empty" {
		t.Errorf("unexpected message '%s'", err.Error())
	}
}

func TestSelfReferenceCycle(t *testing.T) {
	body := NewBinary(Add, ref('x'), NewLiteral(1))
	slots := slotMap{MustSlot('x'): body}

	_, err := Eval(ref('x'), slots)
	if !errors.Is(err, ErrCycle) {
		t.Fatalf("expected ErrCycle, got %v", err)
	}
	var ce *CycleError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *CycleError, got %T", err)
	}
	if got := err.Error(); got != "eval has circular dependencies: x -> x" {
		t.Errorf("unexpected message '%s'", got)
	}

	// Every marker must be released after the failure.
	for _, n := range []Node{body, body.Left, body.Right} {
		if Evaluating(n) {
			t.Errorf("marker still set on %s", n)
		}
	}

	// An unrelated evaluation still succeeds.
	got, err := Eval(NewBinary(Mul, NewLiteral(6), NewLiteral(7)), slots)
	if err != nil {
		t.Fatalf("unexpected error after cycle: %v", err)
	}
	if got != 42 {
		t.Errorf("expected 42, got %v", got)
	}

	// Breaking the cycle makes the same stored nodes evaluable again.
	slots[MustSlot('x')] = NewLiteral(5)
	got, err = Eval(body, slots)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 6 {
		t.Errorf("expected 6, got %v", got)
	}
}

func TestMutualReferenceCycle(t *testing.T) {
	slots := slotMap{
		MustSlot('a'): ref('b'),
		MustSlot('b'): ref('a'),
	}
	for _, start := range []rune{'a', 'b'} {
		_, err := Eval(ref(start), slots)
		if !errors.Is(err, ErrCycle) {
			t.Errorf("eval %c: expected ErrCycle, got %v", start, err)
		}
	}

	var ce *CycleError
	_, err := Eval(ref('a'), slots)
	if !errors.As(err, &ce) {
		t.Fatalf("expected *CycleError, got %T", err)
	}
	want := []SlotID{MustSlot('a'), MustSlot('b'), MustSlot('a')}
	if len(ce.Path) != len(want) {
		t.Fatalf("expected path %v, got %v", want, ce.Path)
	}
	for i := range want {
		if ce.Path[i] != want[i] {
			t.Errorf("path[%d]: expected %s, got %s", i, want[i], ce.Path[i])
		}
	}
}

func TestCycleInRightOperandReleasesLeft(t *testing.T) {
	left := NewLiteral(2)
	slots := slotMap{MustSlot('c'): NewBinary(Add, left, ref('c'))}

	_, err := Eval(ref('c'), slots)
	if !errors.Is(err, ErrCycle) {
		t.Fatalf("expected ErrCycle, got %v", err)
	}
	if Evaluating(left) || Evaluating(slots[MustSlot('c')]) {
		t.Error("markers left set after cycle in right operand")
	}
}

func TestUndefinedSlotReleasesMarkers(t *testing.T) {
	stored := NewNegate(ref('z'))
	slots := slotMap{MustSlot('y'): stored}

	_, err := Eval(ref('y'), slots)
	if !errors.Is(err, ErrUndefinedSlot) {
		t.Fatalf("expected ErrUndefinedSlot, got %v", err)
	}
	if Evaluating(stored) || Evaluating(stored.Child) {
		t.Error("markers left set after undefined slot")
	}
}

func TestReferences(t *testing.T) {
	n := NewBinary(Add, ref('b'), NewNegate(NewBinary(Mul, ref('a'), ref('b'))))
	got := References(n)
	want := "bab"
	if len(got) != len(want) {
		t.Fatalf("expected %d references, got %d", len(want), len(got))
	}
	for i, r := range want {
		if got[i].Rune() != r {
			t.Errorf("reference %d: expected %c, got %s", i, r, got[i])
		}
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{7, "7"},
		{-0.25, "-0.25"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
		{math.NaN(), "NaN"},
		{1e21, "1e+21"},
	}
	for _, tt := range tests {
		if got := FormatValue(tt.v); got != tt.want {
			t.Errorf("FormatValue(%v): expected '%s', got '%s'", tt.v, tt.want, got)
		}
	}
}
