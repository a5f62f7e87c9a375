package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"mirrorstore/internal/collection"
	"mirrorstore/internal/domain"
	"mirrorstore/internal/event"
	"mirrorstore/internal/repository/sqlite"
	"mirrorstore/internal/schema"
	"mirrorstore/internal/service"
	"mirrorstore/internal/viewmodel"
)

type testAPI struct {
	mux      *http.ServeMux
	products *collection.Collection
	orders   *collection.Collection
}

func newTestAPI(t *testing.T) *testAPI {
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

	products := collection.New(domain.KindProduct, store)
	orders := collection.New(domain.KindOrder, store)

	var mu sync.Mutex
	h := NewCatalogHandler(&mu, factory, products, orders,
		service.NewSummaryService(store), service.NewCatalogService(store, factory))

	mux := http.NewServeMux()
	h.Register(mux)

	return &testAPI{mux: mux, products: products, orders: orders}
}

func (api *testAPI) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	api.mux.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

func TestSaveWithExistingIDKeepsSingleMember(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, "POST", "/api/products",
		`[{"name":"Widget","description":"A widget","quantity":10}]`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var created []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	id := int64(created[0]["id"].(float64))
	if id <= 0 {
		t.Fatalf("expected an assigned id, got %d", id)
	}

	// Posting the same row again with its id must update the listed member
	// in place, never append a second one with the same key.
	rec = api.do(t, "POST", "/api/products",
		fmt.Sprintf(`[{"id":%d,"name":"Widget","description":"A widget","quantity":25}]`, id))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	count := 0
	var member *viewmodel.Model
	for _, m := range api.products.Items() {
		if m.Key() == id {
			count++
			member = m
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one member with key %d, got %d", id, count)
	}
	if v, _ := member.Get("quantity"); v != int64(25) {
		t.Errorf("expected updated quantity 25, got %v", v)
	}
}

func TestDeleteUnknownIDIsNotFound(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, "DELETE", "/api/products/99", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestOrderChoicesComeFromForeignKeyMap(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, "POST", "/api/products",
		`[{"name":"Widget","description":"A widget","quantity":10}]`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = api.do(t, "GET", "/api/orders/choices", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var choices map[string][]struct {
		Value int64  `json:"value"`
		Label string `json:"label"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &choices); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	options, ok := choices["product_id"]
	if !ok || len(choices) != 1 {
		t.Fatalf("expected choices for product_id only, got %v", choices)
	}
	if len(options) != 1 || options[0].Label != "Widget" {
		t.Errorf("unexpected options: %v", options)
	}
}
