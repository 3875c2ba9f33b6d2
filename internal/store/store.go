// Package store records the commands a realtree session executes.
package store

import "time"

// Entry is one journaled command.
type Entry struct {
	Seq     int64
	Command string // canonical command text
	Outcome string // displayed result or error message
	Ts      time.Time
}

// Journal is the interface for command journals.
type Journal interface {
	// Append records a command and its outcome and returns the stored entry.
	Append(command, outcome string) (Entry, error)
	// Recent returns up to limit of the newest entries, oldest first.
	// A limit of zero or less returns every entry.
	Recent(limit int) ([]Entry, error)
	// Clear removes every entry. Sequence numbers are not reused.
	Clear() error
	// Close releases resources.
	Close() error
}

// MetadataStore is implemented by journals that keep key/value metadata.
type MetadataStore interface {
	GetMetadata(key string) (string, error)
	SetMetadata(key, value string) error
}

func now() time.Time { return time.Now().UTC() }
