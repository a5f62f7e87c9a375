package collection

import (
	"context"
	"testing"

	"mirrorstore/internal/domain"
	"mirrorstore/internal/event"
	"mirrorstore/internal/repository/sqlite"
	"mirrorstore/internal/schema"
	"mirrorstore/internal/viewmodel"
)

type fixture struct {
	factory  *viewmodel.Factory
	bus      *event.Bus
	store    *sqlite.Store
	products *Collection
	orders   *Collection
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	registry, err := schema.DefaultRegistry()
	if err != nil {
		t.Fatalf("failed to build registry: %v", err)
	}
	factory := viewmodel.NewFactory(registry)
	bus := event.NewBus()

	store, err := sqlite.Open(":memory:", registry, factory, bus)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})

	return &fixture{
		factory:  factory,
		bus:      bus,
		store:    store,
		products: New(domain.KindProduct, store),
		orders:   New(domain.KindOrder, store),
	}
}

func (f *fixture) product(t *testing.T, name string, quantity int64) *viewmodel.Model {
	t.Helper()
	m, err := f.factory.New(domain.KindProduct, map[string]any{
		"name":        name,
		"description": name,
		"quantity":    quantity,
	})
	if err != nil {
		t.Fatalf("failed to build model: %v", err)
	}
	return m
}

func TestSaveItemsAppendsNewMembers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p := f.product(t, "Widget", 10)
	if err := f.products.SaveItems(ctx, []*viewmodel.Model{p}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f.products.Len() != 1 {
		t.Fatalf("expected 1 member, got %d", f.products.Len())
	}
	if !f.products.Contains(p) {
		t.Error("expected the saved model to be a member")
	}
	if p.Key() <= 0 {
		t.Errorf("expected a generated key, got %d", p.Key())
	}
}

func TestSaveItemsTwiceKeepsSingleMembership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p := f.product(t, "Widget", 10)
	if err := f.products.SaveItems(ctx, []*viewmodel.Model{p}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.products.SaveItems(ctx, []*viewmodel.Model{p}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	count := 0
	for _, m := range f.products.Items() {
		if m.Handle() == p.Handle() {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected exactly one membership, got %d", count)
	}
}

func TestDeleteItemsRemovesUnsavedMembers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Added to the list but never saved: delete must not touch storage and
	// must still drop the member.
	p := f.product(t, "Draft", 1)
	f.products.Splice(0, 0, []*viewmodel.Model{p})

	if err := f.products.DeleteItems(ctx, []*viewmodel.Model{p}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.products.Contains(p) {
		t.Error("expected the unsaved model to be removed from the list")
	}
	if f.products.Len() != 0 {
		t.Errorf("expected empty collection, got %d members", f.products.Len())
	}
}

func TestDeleteItemsRemovesSavedMembers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p1 := f.product(t, "Widget", 10)
	p2 := f.product(t, "Gadget", 5)
	if err := f.products.SaveItems(ctx, []*viewmodel.Model{p1, p2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := f.products.DeleteItems(ctx, []*viewmodel.Model{p1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f.products.Len() != 1 {
		t.Fatalf("expected 1 member, got %d", f.products.Len())
	}
	if f.products.At(0).Handle() != p2.Handle() {
		t.Error("expected the remaining member to be the undeleted one")
	}

	if err := f.products.LoadAll(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.products.Len() != 1 {
		t.Errorf("expected 1 stored row after reload, got %d", f.products.Len())
	}
}

func TestLoadAllIsOneBulkSplice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	seed := []*viewmodel.Model{
		f.product(t, "A", 1),
		f.product(t, "B", 2),
		f.product(t, "C", 3),
	}
	if err := f.products.SaveItems(ctx, seed); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	type splice struct{ position, removed, added int }
	var splices []splice
	f.products.OnItemsChanged(func(position, removed, added int) {
		splices = append(splices, splice{position, removed, added})
	})

	if err := f.products.LoadAll(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(splices) != 1 {
		t.Fatalf("expected a single splice, got %d", len(splices))
	}
	if splices[0] != (splice{0, 3, 3}) {
		t.Errorf("expected splice {0 3 3}, got %+v", splices[0])
	}
}

func TestLoadAllReplacesInstances(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p := f.product(t, "Widget", 10)
	if err := f.products.SaveItems(ctx, []*viewmodel.Model{p}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := f.products.LoadAll(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Reloaded rows are fresh instances with fresh handles; the old model is
	// no longer a member even though its row still exists.
	if f.products.Contains(p) {
		t.Error("expected the pre-reload instance to be replaced")
	}
	if f.products.Len() != 1 {
		t.Fatalf("expected 1 member, got %d", f.products.Len())
	}
	if f.products.At(0).Key() != p.Key() {
		t.Errorf("expected the reloaded row to carry key %d, got %d", p.Key(), f.products.At(0).Key())
	}
}

func TestSpliceRejectsOutOfRangeArguments(t *testing.T) {
	f := newFixture(t)
	f.products.Splice(0, 0, []*viewmodel.Model{f.product(t, "A", 1)})

	for name, call := range map[string]func(){
		"position past the end":  func() { f.products.Splice(2, 0, nil) },
		"removal past the end":   func() { f.products.Splice(0, 2, nil) },
		"negative position":      func() { f.products.Splice(-1, 0, nil) },
		"negative removal count": func() { f.products.Splice(0, -1, nil) },
	} {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected out-of-range splice to panic")
				}
			}()
			call()
		})
	}
}

func TestSpliceInsertsAtPosition(t *testing.T) {
	f := newFixture(t)

	a := f.product(t, "A", 1)
	b := f.product(t, "B", 2)
	c := f.product(t, "C", 3)

	f.products.Splice(0, 0, []*viewmodel.Model{a, c})
	f.products.Splice(1, 0, []*viewmodel.Model{b})

	want := []string{"A", "B", "C"}
	for i, name := range want {
		if v, _ := f.products.At(i).Get("name"); v != name {
			t.Errorf("position %d: expected %q, got %v", i, name, v)
		}
	}
}
