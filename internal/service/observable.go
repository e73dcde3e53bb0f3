package service

import "sync"

// Observable is a latest-value fan-out stream. Subscriber channels have
// capacity one: when a subscriber lags, the pending value is replaced by the
// newest one instead of blocking the publisher, so consumers always see the
// most recent state and never a backlog of stale intermediate values.
type Observable[T any] struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan T
	last   T
	seeded bool
}

func NewObservable[T any]() *Observable[T] {
	return &Observable[T]{subs: make(map[int]chan T)}
}

// Subscribe registers a new subscriber. If a value was published before, the
// channel is seeded with the latest one. The returned func cancels the
// subscription and closes the channel.
func (o *Observable[T]) Subscribe() (<-chan T, func()) {
	o.mu.Lock()
	defer o.mu.Unlock()

	id := o.nextID
	o.nextID++

	ch := make(chan T, 1)
	if o.seeded {
		ch <- o.last
	}
	o.subs[id] = ch

	cancel := func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		if sub, ok := o.subs[id]; ok {
			delete(o.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish delivers value to every subscriber, overwriting any undelivered
// previous value. Never blocks.
func (o *Observable[T]) Publish(value T) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.last = value
	o.seeded = true

	for _, ch := range o.subs {
		select {
		case ch <- value:
		default:
			// Channel full: drop the stale value, keep the newest.
			select {
			case <-ch:
			default:
			}
			ch <- value
		}
	}
}

// Latest returns the most recently published value, if any.
func (o *Observable[T]) Latest() (T, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.last, o.seeded
}
