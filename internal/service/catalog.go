package service

import (
	"context"
	"fmt"
	"io"

	"mirrorstore/internal/codec"
	"mirrorstore/internal/domain"
	"mirrorstore/internal/loader"
	"mirrorstore/internal/repository"
	"mirrorstore/internal/viewmodel"
)

// CatalogService seeds and exports the catalog as a whole.
type CatalogService struct {
	store   repository.Store
	factory *viewmodel.Factory
}

// NewCatalogService creates a catalog service.
func NewCatalogService(store repository.Store, factory *viewmodel.Factory) *CatalogService {
	return &CatalogService{store: store, factory: factory}
}

// SeedIfEmpty imports the seed catalog when no products are stored yet.
// Returns true if the import ran.
func (s *CatalogService) SeedIfEmpty(ctx context.Context, seed *loader.Seed) (bool, error) {
	existing, err := s.store.FetchAll(ctx, domain.KindProduct)
	if err != nil {
		return false, fmt.Errorf("failed to check for existing products: %w", err)
	}
	if len(existing) > 0 {
		return false, nil
	}
	return true, s.Import(ctx, seed)
}

// Reimport replaces the stored catalog with the seed's contents: every
// stored product is deleted first (cascade clears its orders), then the seed
// imports as usual. The seed-file watcher calls this, so an edited file
// lands even on a populated database; the deletes and saves notify through
// the store and tell subscribers to refetch.
func (s *CatalogService) Reimport(ctx context.Context, seed *loader.Seed) error {
	existing, err := s.store.FetchAll(ctx, domain.KindProduct)
	if err != nil {
		return fmt.Errorf("failed to fetch stored products: %w", err)
	}
	if len(existing) > 0 {
		if err := s.store.DeleteAll(ctx, domain.KindProduct, existing); err != nil {
			return fmt.Errorf("failed to clear stored products: %w", err)
		}
	}
	return s.Import(ctx, seed)
}

// Import saves the seed's products, then their orders wired to the freshly
// assigned product keys. Each kind goes in as one batch, so subscribers see
// one change per kind.
func (s *CatalogService) Import(ctx context.Context, seed *loader.Seed) error {
	if len(seed.Products) == 0 {
		return nil
	}

	products := make([]*viewmodel.Model, 0, len(seed.Products))
	for _, p := range seed.Products {
		m, err := s.factory.New(domain.KindProduct, map[string]any{
			"name":        p.Name,
			"description": p.Description,
			"quantity":    p.Quantity,
		})
		if err != nil {
			return fmt.Errorf("failed to build product model: %w", err)
		}
		products = append(products, m)
	}

	if err := s.store.SaveAll(ctx, domain.KindProduct, products); err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	var orders []*viewmodel.Model
	for i, p := range seed.Products {
		for _, o := range p.Orders {
			m, err := s.factory.New(domain.KindOrder, map[string]any{
				"product_id": products[i].Key(),
				"quantity":   o.Quantity,
			})
			if err != nil {
				return fmt.Errorf("failed to build order model: %w", err)
			}
			orders = append(orders, m)
		}
	}
	if len(orders) == 0 {
		return nil
	}

	if err := s.store.SaveAll(ctx, domain.KindOrder, orders); err != nil {
		return fmt.Errorf("failed to seed orders: %w", err)
	}

	return nil
}

// Snapshot reads the whole catalog into the exchange shape.
func (s *CatalogService) Snapshot(ctx context.Context) (*codec.Snapshot, error) {
	products, err := s.store.FetchAll(ctx, domain.KindProduct)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	orders, err := s.store.FetchAll(ctx, domain.KindOrder)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}

	snapshot := &codec.Snapshot{
		Products: make([]codec.ProductRow, 0, len(products)),
		Orders:   make([]codec.OrderRow, 0, len(orders)),
	}

	for _, m := range products {
		name, _ := m.Get("name")
		description, _ := m.Get("description")
		quantity, _ := m.Get("quantity")

		row := codec.ProductRow{ID: m.Key()}
		row.Name, _ = name.(string)
		row.Description, _ = description.(string)
		row.Quantity, _ = quantity.(int64)
		snapshot.Products = append(snapshot.Products, row)
	}

	for _, m := range orders {
		productID, _ := m.Get("product_id")
		quantity, _ := m.Get("quantity")

		row := codec.OrderRow{ID: m.Key()}
		row.ProductID, _ = productID.(int64)
		row.Quantity, _ = quantity.(int64)
		snapshot.Orders = append(snapshot.Orders, row)
	}

	return snapshot, nil
}

// Export writes the catalog snapshot through an export codec.
func (s *CatalogService) Export(ctx context.Context, exporter codec.Exporter, w io.Writer) error {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return err
	}
	return exporter.Export(snapshot, w)
}
