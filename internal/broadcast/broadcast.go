// Package broadcast implements the sync pulse: a no-payload invalidation
// signal. Observers re-query current state instead of receiving data, so
// they must be idempotent under redundant pulses.
package broadcast

import "sync"

// Emitter fans a pulse out to all current subscribers. Emission is
// non-blocking with at-most-one pulse buffered per subscriber; a slow
// consumer may miss intermediate pulses but sees the final state on its
// next read.
type Emitter struct {
	mu   sync.Mutex
	subs map[int]chan struct{}
	next int
}

// New builds an empty emitter.
func New() *Emitter {
	return &Emitter{subs: map[int]chan struct{}{}}
}

// Subscribe registers a listener. The returned cancel func must be called
// when the listener is done.
func (e *Emitter) Subscribe() (<-chan struct{}, func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.next
	e.next++
	ch := make(chan struct{}, 1)
	e.subs[id] = ch

	cancel := func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.subs, id)
	}
	return ch, cancel
}

// Publish delivers one pulse to every subscriber without blocking.
func (e *Emitter) Publish() {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, ch := range e.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
