package expr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCycle is matched by every *CycleError.
	ErrCycle = errors.New("eval has circular dependencies")
	// ErrUndefinedSlot is matched by every *UndefinedSlotError.
	ErrUndefinedSlot = errors.New("undefined slot")
)

// CycleError reports that evaluation re-entered a node already on the
// evaluation path. Path lists the slot references followed up to the
// point of re-entry.
type CycleError struct {
	Path []SlotID
}

func (e *CycleError) Error() string {
	if len(e.Path) == 0 {
		return ErrCycle.Error()
	}
	names := make([]string, len(e.Path))
	for i, id := range e.Path {
		names[i] = id.String()
	}
	return fmt.Sprintf("%s: %s", ErrCycle, strings.Join(names, " -> "))
}

func (e *CycleError) Unwrap() error { return ErrCycle }

// UndefinedSlotError reports a reference to an empty slot.
type UndefinedSlotError struct {
	Slot SlotID
}

func (e *UndefinedSlotError) Error() string {
	return fmt.Sprintf("slot '%s' is empty", e.Slot)
}

func (e *UndefinedSlotError) Unwrap() error { return ErrUndefinedSlot }
