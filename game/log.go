package game

import "fmt"

// Log is the append-only game event log. Entries are human-readable
// strings tagged with the turn they happened in.
type Log struct {
	entries []string
}

// Append records an event against a turn number.
func (l *Log) Append(turn int, message string) {
	l.entries = append(l.entries, fmt.Sprintf("turn %d: %s", turn, message))
}

// Recent returns a copy of the last n entries, oldest first.
func (l *Log) Recent(n int) []string {
	if n <= 0 || len(l.entries) == 0 {
		return nil
	}
	start := len(l.entries) - n
	if start < 0 {
		start = 0
	}
	out := make([]string, len(l.entries)-start)
	copy(out, l.entries[start:])
	return out
}

// Len returns the total number of entries.
func (l *Log) Len() int {
	return len(l.entries)
}
