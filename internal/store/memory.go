package store

import "sync"

// Memory is an in-memory journal. It is the default when no journal file
// is configured.
type Memory struct {
	mu      sync.RWMutex
	entries []Entry
	nextSeq int64
}

// NewMemory creates a new in-memory journal.
func NewMemory() *Memory {
	return &Memory{nextSeq: 1}
}

// Append records a command.
func (m *Memory) Append(command, outcome string) (Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := Entry{Seq: m.nextSeq, Command: command, Outcome: outcome, Ts: now()}
	m.nextSeq++
	m.entries = append(m.entries, e)
	return e, nil
}

// Recent returns the newest entries, oldest first.
func (m *Memory) Recent(limit int) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	start := 0
	if limit > 0 && len(m.entries) > limit {
		start = len(m.entries) - limit
	}
	out := make([]Entry, len(m.entries)-start)
	copy(out, m.entries[start:])
	return out, nil
}

// Clear removes every entry.
func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = nil
	return nil
}

// Close is a no-op for the memory journal.
func (m *Memory) Close() error {
	return nil
}
