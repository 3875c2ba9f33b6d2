// Package parser turns realtree input into commands and expression trees.
package parser

import "nickandperla.net/realtree/internal/expr"

// Command is a parsed top-level command.
type Command interface {
	// String returns the canonical source form of the command.
	String() string
	command()
}

// Help prints the help text.
type Help struct{}

// Exit ends the session.
type Exit struct{}

// Print lists every non-empty slot.
type Print struct{}

// Reset empties every slot.
type Reset struct{}

// Eval evaluates a tree and displays the result. "eval x" is an Eval of
// a single Reference.
type Eval struct {
	Tree expr.Node
}

// Assign stores a tree in a slot, replacing what was there.
type Assign struct {
	Slot expr.SlotID
	Tree expr.Node
}

func (Help) String() string     { return "help" }
func (Exit) String() string     { return "exit" }
func (Print) String() string    { return "print" }
func (Reset) String() string    { return "reset" }
func (c Eval) String() string   { return "eval " + c.Tree.String() }
func (c Assign) String() string { return c.Slot.String() + " = " + c.Tree.String() }

func (Help) command()   {}
func (Exit) command()   {}
func (Print) command()  {}
func (Reset) command()  {}
func (Eval) command()   {}
func (Assign) command() {}
