package aggregate

import "sync"

// Feed is a push stream holding the latest published value. Subscribers are
// invoked synchronously on every publish, and immediately on subscribe if a
// value has already been published. Cancelling a subscription stops all
// further callbacks and releases it.
type Feed[T any] struct {
	mu   sync.Mutex
	last T
	set  bool
	subs map[int]func(T)
	next int
}

// NewFeed creates an empty Feed.
func NewFeed[T any]() *Feed[T] {
	return &Feed[T]{subs: make(map[int]func(T))}
}

// Publish stores v as the latest value and notifies every subscriber.
func (f *Feed[T]) Publish(v T) {
	f.mu.Lock()
	f.last = v
	f.set = true
	fns := make([]func(T), 0, len(f.subs))
	for _, fn := range f.subs {
		fns = append(fns, fn)
	}
	f.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

// Latest returns the most recently published value, if any.
func (f *Feed[T]) Latest() (T, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.last, f.set
}

// Subscribe registers fn and returns a cancel function. If a value has been
// published already, fn is called once before Subscribe returns.
func (f *Feed[T]) Subscribe(fn func(T)) func() {
	f.mu.Lock()
	id := f.next
	f.next++
	f.subs[id] = fn
	last, set := f.last, f.set
	f.mu.Unlock()

	if set {
		fn(last)
	}

	return func() {
		f.mu.Lock()
		delete(f.subs, id)
		f.mu.Unlock()
	}
}

// Subscribers returns the number of active subscriptions.
func (f *Feed[T]) Subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.subs)
}
