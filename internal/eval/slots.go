// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package eval implements the realtree slot table and command evaluator.
package eval

import "nickandperla.net/realtree/internal/expr"

// Table holds the 26 slots. The zero value is an empty table.
type Table struct {
	slots [expr.NumSlots]expr.Node
}

// NewTable creates a new empty table.
func NewTable() *Table {
	return &Table{}
}

// Get returns the tree stored in a slot, or nil if the slot is empty.
func (t *Table) Get(id expr.SlotID) expr.Node {
	return t.slots[id]
}

// Set stores a tree in a slot, replacing any previous tree.
func (t *Table) Set(id expr.SlotID, n expr.Node) {
	t.slots[id] = n
}

// ClearAll empties every slot.
func (t *Table) ClearAll() {
	t.slots = [expr.NumSlots]expr.Node{}
}

// Len returns the number of non-empty slots.
func (t *Table) Len() int {
	n := 0
	for _, s := range t.slots {
		if s != nil {
			n++
		}
	}
	return n
}

// Each calls fn for every non-empty slot in ascending order.
func (t *Table) Each(fn func(id expr.SlotID, n expr.Node)) {
	for i, s := range t.slots {
		if s != nil {
			fn(expr.SlotID(i), s)
		}
	}
}
