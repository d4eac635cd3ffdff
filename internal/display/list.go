package display

import "sync"

// List is an in-memory ListSurface.
type List struct {
	mu      sync.RWMutex
	rows    []string
	reloads int
}

// NewList creates an empty list.
func NewList() *List {
	return &List{}
}

// Reload replaces every row.
func (l *List) Reload(rows []string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rows = append([]string{}, rows...)
	l.reloads++
}

// Rows returns a copy of the current rows.
func (l *List) Rows() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]string{}, l.rows...)
}

// Reloads reports how many times the list has been reloaded.
func (l *List) Reloads() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.reloads
}
