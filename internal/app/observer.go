package app

import "sync"

// observers is a registry of change callbacks. Snapshots are queued by the
// owning store while it still holds its lock, so the queue is in mutation
// order, and are then delivered by flush after the lock is released.
// Callbacks run in subscription order. At most one goroutine delivers at a
// time; a snapshot queued while another goroutine is delivering, or from
// inside a callback, is delivered by that goroutine after the current one.
type observers[T any] struct {
	mu         sync.Mutex
	nextID     int
	subs       []subscription[T]
	queue      []T
	delivering bool
}

type subscription[T any] struct {
	id int
	fn func(T)
}

// subscribe registers fn and returns a func that removes it. The returned
// func is safe to call more than once.
func (o *observers[T]) subscribe(fn func(T)) func() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.nextID++
	id := o.nextID
	o.subs = append(o.subs, subscription[T]{id: id, fn: fn})

	return func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		for i, s := range o.subs {
			if s.id == id {
				o.subs = append(o.subs[:i:i], o.subs[i+1:]...)
				return
			}
		}
	}
}

// enqueue records v for delivery. Call it with the owning store's lock held.
func (o *observers[T]) enqueue(v T) {
	o.mu.Lock()
	o.queue = append(o.queue, v)
	o.mu.Unlock()
}

// flush delivers queued snapshots in order unless another call is already
// delivering them.
func (o *observers[T]) flush() {
	o.mu.Lock()
	if o.delivering {
		o.mu.Unlock()
		return
	}
	o.delivering = true
	defer func() {
		o.delivering = false
		o.mu.Unlock()
	}()

	for len(o.queue) > 0 {
		v := o.queue[0]
		var zero T
		o.queue[0] = zero
		o.queue = o.queue[1:]

		fns := make([]func(T), len(o.subs))
		for i, s := range o.subs {
			fns[i] = s.fn
		}

		o.mu.Unlock()
		o.call(fns, v)
		o.mu.Lock()
	}
}

// call runs fns with v. If one panics the lock is retaken before the panic
// continues, so flush's deferred reset still runs with o.mu held.
func (o *observers[T]) call(fns []func(T), v T) {
	ok := false
	defer func() {
		if !ok {
			o.mu.Lock()
		}
	}()
	for _, fn := range fns {
		fn(v)
	}
	ok = true
}
