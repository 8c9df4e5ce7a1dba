// Package mirror holds the in-memory copy of one record collection, newest
// first, as last read from or written to the record store.
package mirror

import "sync"

// List is a concurrency-safe ordered list keyed by record id.
type List[T any] struct {
	mu    sync.RWMutex
	items []T
	id    func(T) string
}

// New returns an empty list. id extracts the record id of an item.
func New[T any](id func(T) string) *List[T] {
	return &List[T]{id: id}
}

// Reset replaces the whole content.
func (l *List[T]) Reset(items []T) {
	cp := make([]T, len(items))
	copy(cp, items)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = cp
}

// Items returns a copy of the current content.
func (l *List[T]) Items() []T {
	l.mu.RLock()
	defer l.mu.RUnlock()
	cp := make([]T, len(l.items))
	copy(cp, l.items)
	return cp
}

// Len returns the number of items.
func (l *List[T]) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

// Get looks an item up by id.
func (l *List[T]) Get(id string) (T, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, item := range l.items {
		if l.id(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Prepend puts item at the front.
func (l *List[T]) Prepend(item T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append([]T{item}, l.items...)
}

// Replace swaps the item with the same id in place. It reports false when no
// such item exists.
func (l *List[T]) Replace(item T) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	id := l.id(item)
	for i := range l.items {
		if l.id(l.items[i]) == id {
			l.items[i] = item
			return true
		}
	}
	return false
}

// Remove drops the item with the given id, if present.
func (l *List[T]) Remove(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := l.items[:0:0]
	for _, item := range l.items {
		if l.id(item) != id {
			out = append(out, item)
		}
	}
	l.items = out
}
