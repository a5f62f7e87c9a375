// Package event carries change notifications between the store and its
// observers. The bus is created at the composition root and injected into
// whatever publishes or subscribes; nothing owns it implicitly.
package event

import "mirrorstore/internal/domain"

// Change signals that a kind's stored rows changed. It carries only the
// kind: no diff and no row identifiers, subscribers refetch what they need.
type Change struct {
	Kind domain.Kind `json:"kind"`
}

// Bus fans Change notifications out to subscribers synchronously, in
// subscription order, on the publisher's stack. Delivery is reentrant-unsafe
// by contract: a subscriber that triggers another save or delete recurses
// into the store. Not goroutine-safe; callers serialize access.
type Bus struct {
	nextID      int
	order       []int
	subscribers map[int]func(Change)
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{subscribers: make(map[int]func(Change))}
}

// Subscribe registers a callback for every future publish and returns a
// cancel function that stops delivery. Cancel is idempotent.
func (b *Bus) Subscribe(fn func(Change)) (cancel func()) {
	id := b.nextID
	b.nextID++
	b.order = append(b.order, id)
	b.subscribers[id] = fn

	return func() {
		if _, live := b.subscribers[id]; !live {
			return
		}
		delete(b.subscribers, id)
		for i, sub := range b.order {
			if sub == id {
				b.order = append(b.order[:i], b.order[i+1:]...)
				break
			}
		}
	}
}

// Publish delivers a change to every live subscriber in subscription order.
// The order is snapshotted first, so a subscriber cancelling during delivery
// cannot derail the sweep.
func (b *Bus) Publish(change Change) {
	order := make([]int, len(b.order))
	copy(order, b.order)

	for _, id := range order {
		if fn, ok := b.subscribers[id]; ok {
			fn(change)
		}
	}
}

// SubscriberCount returns the number of live subscriptions.
func (b *Bus) SubscriberCount() int {
	return len(b.subscribers)
}
