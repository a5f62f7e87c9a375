package service

import (
	"context"
	"fmt"

	"mirrorstore/internal/domain"
	"mirrorstore/internal/repository"
)

// Line is one product's stock remainder.
type Line struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Remaining int64  `json:"remaining"`
}

// String renders the remainder the way the summary panel shows it.
func (l Line) String() string {
	if l.Remaining < 0 {
		return fmt.Sprintf("Need to supply of %s: %d", l.Name, -l.Remaining)
	}
	return fmt.Sprintf("Left of %s: %d", l.Name, l.Remaining)
}

// SummaryService computes stock remainders across the catalog.
type SummaryService struct {
	store repository.Store
}

// NewSummaryService creates a summary service over the store.
func NewSummaryService(store repository.Store) *SummaryService {
	return &SummaryService{store: store}
}

// Lines returns one line per stored product, in primary-key order:
// remaining = product quantity - SUM(order quantity). The order total is
// aggregated in the database on every call.
func (s *SummaryService) Lines(ctx context.Context) ([]Line, error) {
	products, err := s.store.FetchAll(ctx, domain.KindProduct)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	ordered, err := s.store.GroupSum(ctx, domain.KindOrder, "product_id", "quantity")
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate orders: %w", err)
	}

	lines := make([]Line, 0, len(products))
	for _, p := range products {
		name, _ := p.Get("name")
		quantity, _ := p.Get("quantity")

		nameStr, _ := name.(string)
		quantityInt, _ := quantity.(int64)

		lines = append(lines, Line{
			ProductID: p.Key(),
			Name:      nameStr,
			Remaining: quantityInt - ordered[p.Key()],
		})
	}

	return lines, nil
}
