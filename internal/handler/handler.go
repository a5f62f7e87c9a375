package handler

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync"

	"mirrorstore/internal/codec"
	"mirrorstore/internal/collection"
	"mirrorstore/internal/domain"
	"mirrorstore/internal/service"
	"mirrorstore/internal/viewmodel"
)

// CatalogHandler exposes the catalog over HTTP. It is a client of the core
// contracts only: collections for membership, the factory for new models,
// the descriptor's foreign-key map for choice lists.
//
// One mutex serializes every request through the core, standing in for the
// single UI thread the collections and bus assume. The mutex is injected so
// other core callers (the seed-file watcher) can share it.
type CatalogHandler struct {
	mu *sync.Mutex

	factory     *viewmodel.Factory
	collections map[domain.Kind]*collection.Collection
	summary     *service.SummaryService
	catalog     *service.CatalogService
}

// NewCatalogHandler creates a catalog handler over the two collections.
func NewCatalogHandler(
	mu *sync.Mutex,
	factory *viewmodel.Factory,
	products, orders *collection.Collection,
	summary *service.SummaryService,
	catalog *service.CatalogService,
) *CatalogHandler {
	return &CatalogHandler{
		mu:      mu,
		factory: factory,
		collections: map[domain.Kind]*collection.Collection{
			domain.KindProduct: products,
			domain.KindOrder:   orders,
		},
		summary: summary,
		catalog: catalog,
	}
}

// Register wires the API routes onto a mux.
func (h *CatalogHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/products", h.list(domain.KindProduct))
	mux.HandleFunc("POST /api/products", h.save(domain.KindProduct))
	mux.HandleFunc("DELETE /api/products/{id}", h.delete(domain.KindProduct))

	mux.HandleFunc("GET /api/orders", h.list(domain.KindOrder))
	mux.HandleFunc("POST /api/orders", h.save(domain.KindOrder))
	mux.HandleFunc("DELETE /api/orders/{id}", h.delete(domain.KindOrder))

	mux.HandleFunc("GET /api/orders/choices", h.orderChoices)
	mux.HandleFunc("GET /api/summary", h.getSummary)
	mux.HandleFunc("GET /api/export/json", h.export(codec.NewJSONCodec(), "application/json"))
	mux.HandleFunc("GET /api/export/yaml", h.export(codec.NewYAMLCodec(), "application/x-yaml"))
}

// list reloads the kind's collection and renders every member.
func (h *CatalogHandler) list(kind domain.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.mu.Lock()
		defer h.mu.Unlock()

		col := h.collections[kind]
		if err := col.LoadAll(r.Context()); err != nil {
			log.Printf("Failed to load %s collection: %v", kind, err)
			h.writeError(w, "Failed to load collection", err.Error(), http.StatusInternalServerError)
			return
		}

		h.writeJSON(w, renderModels(col.Items()), http.StatusOK)
	}
}

// save accepts a JSON array of property maps and saves them as one batch.
// Rows carrying the id of a listed member update that member in place, so
// the collection never gains a second model with the same assigned key; the
// rest become fresh models (unknown keys are dropped by the factory), insert,
// and come back with their assigned keys.
func (h *CatalogHandler) save(kind domain.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var rows []map[string]any
		if err := json.NewDecoder(r.Body).Decode(&rows); err != nil {
			h.writeError(w, "Invalid request body", "expected a JSON array of rows", http.StatusBadRequest)
			return
		}
		if len(rows) == 0 {
			h.writeError(w, "Invalid request body", "at least one row is required", http.StatusBadRequest)
			return
		}

		h.mu.Lock()
		defer h.mu.Unlock()

		col := h.collections[kind]
		if err := col.LoadAll(r.Context()); err != nil {
			log.Printf("Failed to load %s collection: %v", kind, err)
			h.writeError(w, "Failed to load collection", err.Error(), http.StatusInternalServerError)
			return
		}

		models := make([]*viewmodel.Model, 0, len(rows))
		for _, row := range rows {
			if member := memberForRow(col, row); member != nil {
				for name, value := range row {
					member.Set(name, value)
				}
				models = append(models, member)
				continue
			}

			m, err := h.factory.New(kind, row)
			if err != nil {
				h.writeError(w, "Failed to build row", err.Error(), http.StatusBadRequest)
				return
			}
			models = append(models, m)
		}

		if err := col.SaveItems(r.Context(), models); err != nil {
			log.Printf("Failed to save %s batch: %v", kind, err)
			h.writeError(w, "Failed to save", err.Error(), http.StatusBadRequest)
			return
		}

		h.writeJSON(w, renderModels(models), http.StatusCreated)
	}
}

// delete removes one row by key through the collection, so the member
// disappears from the list whether or not a stored row was hit.
func (h *CatalogHandler) delete(kind domain.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil || id <= 0 {
			h.writeError(w, "Invalid id", "a positive integer id is required", http.StatusBadRequest)
			return
		}

		h.mu.Lock()
		defer h.mu.Unlock()

		col := h.collections[kind]
		if err := col.LoadAll(r.Context()); err != nil {
			log.Printf("Failed to load %s collection: %v", kind, err)
			h.writeError(w, "Failed to load collection", err.Error(), http.StatusInternalServerError)
			return
		}

		var target *viewmodel.Model
		for _, m := range col.Items() {
			if m.Key() == id {
				target = m
				break
			}
		}
		if target == nil {
			h.writeError(w, "Not found", fmt.Sprintf("%s %d not found", kind, id), http.StatusNotFound)
			return
		}

		if err := col.DeleteItems(r.Context(), []*viewmodel.Model{target}); err != nil {
			log.Printf("Failed to delete %s %d: %v", kind, id, err)
			h.writeError(w, "Failed to delete", err.Error(), http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// memberForRow returns the listed member matching the row's id, if the row
// carries a positive one. Reusing the member keeps the collection from ever
// holding two models with the same assigned key.
func memberForRow(col *collection.Collection, row map[string]any) *viewmodel.Model {
	var id int64
	switch v := row["id"].(type) {
	case float64:
		id = int64(v)
	case int64:
		id = v
	case int:
		id = int64(v)
	}
	if id <= 0 {
		return nil
	}

	for _, m := range col.Items() {
		if m.Key() == id {
			return m
		}
	}
	return nil
}

// choiceOption is one entry of a foreign-key dropdown.
type choiceOption struct {
	Value int64  `json:"value"`
	Label string `json:"label"`
}

// orderChoices renders the choice lists for every foreign-key property of
// the order descriptor. The label is the target row's name property when it
// has one, the key otherwise.
func (h *CatalogHandler) orderChoices(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	// Any order model carries the derived descriptor; a throwaway one is
	// the cheapest way to reach its foreign-key map.
	sample, err := h.factory.New(domain.KindOrder, nil)
	if err != nil {
		h.writeError(w, "Failed to derive descriptor", err.Error(), http.StatusInternalServerError)
		return
	}

	choices := make(map[string][]choiceOption)
	for property, targetKind := range sample.Descriptor().ForeignKeys {
		col, ok := h.collections[targetKind]
		if !ok {
			continue
		}
		if err := col.LoadAll(r.Context()); err != nil {
			log.Printf("Failed to load %s collection: %v", targetKind, err)
			h.writeError(w, "Failed to load choices", err.Error(), http.StatusInternalServerError)
			return
		}

		options := make([]choiceOption, 0, col.Len())
		for _, m := range col.Items() {
			label := strconv.FormatInt(m.Key(), 10)
			if v, ok := m.Get("name"); ok {
				if s, ok := v.(string); ok && s != "" {
					label = s
				}
			}
			options = append(options, choiceOption{Value: m.Key(), Label: label})
		}
		choices[property] = options
	}

	h.writeJSON(w, choices, http.StatusOK)
}

// summaryLine pairs the raw numbers with the rendered wording.
type summaryLine struct {
	service.Line
	Label string `json:"label"`
}

func (h *CatalogHandler) getSummary(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	lines, err := h.summary.Lines(r.Context())
	if err != nil {
		log.Printf("Failed to compute summary: %v", err)
		h.writeError(w, "Failed to compute summary", err.Error(), http.StatusInternalServerError)
		return
	}

	out := make([]summaryLine, len(lines))
	for i, l := range lines {
		out[i] = summaryLine{Line: l, Label: l.String()}
	}
	h.writeJSON(w, out, http.StatusOK)
}

func (h *CatalogHandler) export(exporter codec.Exporter, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.mu.Lock()
		defer h.mu.Unlock()

		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=catalog.%s", exporter.Format()))

		if err := h.catalog.Export(r.Context(), exporter, w); err != nil {
			log.Printf("Failed to export catalog: %v", err)
		}
	}
}

// ============================================================================
// Response Helpers
// ============================================================================

// ErrorResponse is the error body shape.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func renderModels(models []*viewmodel.Model) []map[string]any {
	out := make([]map[string]any, len(models))
	for i, m := range models {
		out[i] = m.Properties()
	}
	return out
}

func (h *CatalogHandler) writeJSON(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func (h *CatalogHandler) writeError(w http.ResponseWriter, message, details string, status int) {
	h.writeJSON(w, ErrorResponse{Error: message, Details: details}, status)
}
