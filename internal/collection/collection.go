// Package collection provides the ordered, observable container that binds
// one entity kind's view models to the store.
package collection

import (
	"context"
	"fmt"

	"mirrorstore/internal/domain"
	"mirrorstore/internal/repository"
	"mirrorstore/internal/viewmodel"
)

// Collection is an ordered, handle-indexed list of view models for one
// entity kind. It mediates between mutation intents and the store: saves
// append newly persisted models, deletes remove members whether or not a
// stored row was hit.
//
// Membership is tracked by the model's surrogate handle, never by pointer
// identity or by value equality. The collection never holds two members with
// the same assigned primary key, but that invariant is the caller's to
// keep: the add/save flow that feeds the collection is trusted.
//
// Not safe for concurrent use; callers serialize access.
type Collection struct {
	kind  domain.Kind
	store repository.Store

	items []*viewmodel.Model
	index map[string]int // handle -> position

	onItemsChanged func(position, removed, added int)
}

// New returns an empty collection bound to a kind and store.
func New(kind domain.Kind, store repository.Store) *Collection {
	return &Collection{
		kind:  kind,
		store: store,
		index: make(map[string]int),
	}
}

// Kind returns the entity kind the collection lists.
func (c *Collection) Kind() domain.Kind {
	return c.kind
}

// OnItemsChanged registers the single membership observer. The callback
// receives the splice position, the number of removed members, and the
// number of added members.
func (c *Collection) OnItemsChanged(fn func(position, removed, added int)) {
	c.onItemsChanged = fn
}

// Len returns the number of members.
func (c *Collection) Len() int {
	return len(c.items)
}

// At returns the member at position i.
func (c *Collection) At(i int) *viewmodel.Model {
	return c.items[i]
}

// Items returns a snapshot of the members in order.
func (c *Collection) Items() []*viewmodel.Model {
	out := make([]*viewmodel.Model, len(c.items))
	copy(out, c.items)
	return out
}

// Contains reports membership by handle.
func (c *Collection) Contains(m *viewmodel.Model) bool {
	_, ok := c.index[m.Handle()]
	return ok
}

// LoadAll replaces the whole contents with the store's rows in one bulk
// splice, so downstream observers see a single change.
func (c *Collection) LoadAll(ctx context.Context) error {
	models, err := c.store.FetchAll(ctx, c.kind)
	if err != nil {
		return err
	}
	c.Splice(0, len(c.items), models)
	return nil
}

// SaveItems persists the batch and appends any model not yet a member. This
// is how freshly created rows become visible after their first save.
func (c *Collection) SaveItems(ctx context.Context, items []*viewmodel.Model) error {
	if err := c.store.SaveAll(ctx, c.kind, items); err != nil {
		return err
	}

	for _, item := range items {
		if !c.Contains(item) {
			c.Splice(len(c.items), 0, []*viewmodel.Model{item})
		}
	}
	return nil
}

// DeleteItems deletes the batch from the store and removes every member of
// the batch from the list. Models the store skipped (never persisted) are
// removed all the same; they are gone from the UI either way.
func (c *Collection) DeleteItems(ctx context.Context, items []*viewmodel.Model) error {
	if err := c.store.DeleteAll(ctx, c.kind, items); err != nil {
		return err
	}

	for _, item := range items {
		if pos, ok := c.index[item.Handle()]; ok {
			c.Splice(pos, 1, nil)
		}
	}
	return nil
}

// Splice removes nRemoved members at position and inserts added in their
// place, firing a single items-changed callback. The removed range must lie
// within the current bounds; out-of-range arguments panic, matching slice
// semantics.
func (c *Collection) Splice(position, nRemoved int, added []*viewmodel.Model) {
	if position < 0 || nRemoved < 0 || position+nRemoved > len(c.items) {
		panic(fmt.Sprintf("collection: splice [%d, %d) out of range with %d members",
			position, position+nRemoved, len(c.items)))
	}

	tail := c.items[position+nRemoved:]
	items := make([]*viewmodel.Model, 0, len(c.items)-nRemoved+len(added))
	items = append(items, c.items[:position]...)
	items = append(items, added...)
	items = append(items, tail...)
	c.items = items

	c.reindex()

	if c.onItemsChanged != nil {
		c.onItemsChanged(position, nRemoved, len(added))
	}
}

func (c *Collection) reindex() {
	c.index = make(map[string]int, len(c.items))
	for i, m := range c.items {
		c.index[m.Handle()] = i
	}
}
