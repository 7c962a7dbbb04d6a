// Package activity implements the panel's bounded activity log.
package activity

import "sync"

// Log is a fixed-capacity ring of text entries. Appending to a full log
// evicts the oldest entry. Log is safe for concurrent use.
type Log struct {
	mu      sync.Mutex
	entries []string
	start   int
	count   int
	total   int
}

// New creates a log holding at most capacity entries. A capacity below one
// is treated as one.
func New(capacity int) *Log {
	if capacity < 1 {
		capacity = 1
	}
	return &Log{entries: make([]string, capacity)}
}

// Append adds msg as the newest entry.
func (l *Log) Append(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.total++
	if l.count < len(l.entries) {
		l.entries[(l.start+l.count)%len(l.entries)] = msg
		l.count++
		return
	}
	l.entries[l.start] = msg
	l.start = (l.start + 1) % len(l.entries)
}

// Entries returns a copy of the entries, oldest first.
func (l *Log) Entries() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]string, l.count)
	for i := range out {
		out[i] = l.entries[(l.start+i)%len(l.entries)]
	}
	return out
}

// Len returns the number of entries held.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}

// Appended returns how many entries were ever appended, including evicted
// and cleared ones.
func (l *Log) Appended() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.total
}

// Cap returns the log capacity.
func (l *Log) Cap() int {
	return len(l.entries)
}

// Clear removes every entry.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.entries {
		l.entries[i] = ""
	}
	l.start, l.count = 0, 0
}
