// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package expr defines realtree expression trees.
package expr

import (
	"math"
	"strconv"
	"strings"
)

// NumSlots is the number of named slots, 'a' through 'z'.
const NumSlots = 26

// SlotID is a validated slot index in [0, NumSlots).
type SlotID uint8

// SlotFromRune returns the slot named by a letter. Upper case letters
// name the same slot as their lower case form.
func SlotFromRune(r rune) (SlotID, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return SlotID(r - 'a'), true
	case r >= 'A' && r <= 'Z':
		return SlotID(r - 'A'), true
	}
	return 0, false
}

// MustSlot is like SlotFromRune but panics on an invalid name.
func MustSlot(r rune) SlotID {
	id, ok := SlotFromRune(r)
	if !ok {
		panic("expr: invalid slot name " + strconv.QuoteRune(r))
	}
	return id
}

// Rune returns the slot's letter.
func (id SlotID) Rune() rune { return 'a' + rune(id) }

func (id SlotID) String() string { return string(id.Rune()) }

// Node is an expression tree node. The set of implementations is closed:
// *Literal, *Reference, *Unary and *Binary.
type Node interface {
	// String returns the parenthesized textual form of the tree.
	String() string
	marker() *guard
}

// Literal is a numeric constant.
type Literal struct {
	Value float64
	g     guard
}

func (l *Literal) String() string { return strconv.FormatFloat(l.Value, 'f', -1, 64) }
func (l *Literal) marker() *guard { return &l.g }

// Reference names a slot whose stored tree supplies the value.
type Reference struct {
	Slot SlotID
	g    guard
}

func (r *Reference) String() string { return r.Slot.String() }
func (r *Reference) marker() *guard { return &r.g }

// UnaryOp is a unary operator.
type UnaryOp int

const (
	Negate UnaryOp = iota
)

// Symbol returns the operator's source symbol.
func (op UnaryOp) Symbol() string { return "-" }

// Apply applies the operator to v.
func (op UnaryOp) Apply(v float64) float64 { return -v }

// Unary applies a unary operator to its child.
type Unary struct {
	Op    UnaryOp
	Child Node
	g     guard
}

func (u *Unary) String() string {
	return "(" + u.Op.Symbol() + " " + u.Child.String() + ")"
}
func (u *Unary) marker() *guard { return &u.g }

// Op is a binary arithmetic operator.
type Op int

const (
	Add Op = iota
	Sub
	Mul
	Div
	Rem
)

// Symbol returns the operator's source symbol.
func (op Op) Symbol() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case Rem:
		return "%"
	}
	return "?"
}

// Apply computes l op r with IEEE-754 semantics. Rem truncates, so the
// result has the sign of l.
func (op Op) Apply(l, r float64) float64 {
	switch op {
	case Add:
		return l + r
	case Sub:
		return l - r
	case Mul:
		return l * r
	case Div:
		return l / r
	case Rem:
		return math.Mod(l, r)
	}
	panic("expr: unknown operator " + strconv.Itoa(int(op)))
}

// Binary applies an arithmetic operator to two children.
type Binary struct {
	Op    Op
	Left  Node
	Right Node
	g     guard
}

func (b *Binary) String() string {
	var sb strings.Builder
	sb.WriteString("(")
	sb.WriteString(b.Left.String())
	sb.WriteString(" ")
	sb.WriteString(b.Op.Symbol())
	sb.WriteString(" ")
	sb.WriteString(b.Right.String())
	sb.WriteString(")")
	return sb.String()
}
func (b *Binary) marker() *guard { return &b.g }

// NewLiteral creates a literal leaf.
func NewLiteral(v float64) *Literal { return &Literal{Value: v} }

// NewReference creates a slot reference leaf.
func NewReference(id SlotID) *Reference { return &Reference{Slot: id} }

// NewNegate creates a negation of child.
func NewNegate(child Node) *Unary { return &Unary{Op: Negate, Child: child} }

// NewBinary creates a binary node.
func NewBinary(op Op, left, right Node) *Binary {
	return &Binary{Op: op, Left: left, Right: right}
}

// References returns the slots referenced anywhere in n, in the order
// they appear, without resolving them.
func References(n Node) []SlotID {
	var ids []SlotID
	var walk func(Node)
	walk = func(n Node) {
		switch n := n.(type) {
		case *Reference:
			ids = append(ids, n.Slot)
		case *Unary:
			walk(n.Child)
		case *Binary:
			walk(n.Left)
			walk(n.Right)
		}
	}
	walk(n)
	return ids
}

// FormatValue formats an evaluation result for display.
func FormatValue(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
