// Package scroll fans out viewport scroll positions to scoped listeners.
// A listener is acquired with Subscribe and must be released by calling
// the returned function when its owner is torn down.
package scroll

import (
	"slices"
	"sync"

	"logscout/internal/query"
)

// Position describes the results viewport after a scroll
type Position struct {
	ContentHeight  int
	ViewportHeight int
	Offset         int
}

// NearEnd reports whether the remaining distance below the visible area is
// less than threshold rows.
func (p Position) NearEnd(threshold int) bool {
	return query.NearEnd(p.ContentHeight, p.ViewportHeight, p.Offset, threshold)
}

// Listener receives scroll positions
type Listener func(Position)

type Watcher struct {
	mu        sync.RWMutex
	listeners map[uint64]Listener
	nextID    uint64
}

func NewWatcher() *Watcher {
	return &Watcher{listeners: make(map[uint64]Listener)}
}

// Subscribe registers l and returns its release function. Release is
// idempotent.
func (w *Watcher) Subscribe(l Listener) (release func()) {
	w.mu.Lock()
	w.nextID++
	id := w.nextID
	w.listeners[id] = l
	w.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			w.mu.Lock()
			delete(w.listeners, id)
			w.mu.Unlock()
		})
	}
}

// Report delivers p to every live listener in subscription order
func (w *Watcher) Report(p Position) {
	w.mu.RLock()
	ids := make([]uint64, 0, len(w.listeners))
	for id := range w.listeners {
		ids = append(ids, id)
	}
	w.mu.RUnlock()

	slices.Sort(ids)
	for _, id := range ids {
		w.mu.RLock()
		l, ok := w.listeners[id]
		w.mu.RUnlock()
		if ok {
			l(p)
		}
	}
}

// Len returns the number of live listeners
func (w *Watcher) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.listeners)
}
