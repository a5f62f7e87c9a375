package schema

import "mirrorstore/internal/domain"

// DefaultRegistry returns the catalog schema: products and the orders that
// reference them. Products register first so orders can resolve their
// foreign key and the DDL order is parent-before-child.
func DefaultRegistry() (*Registry, error) {
	r := NewRegistry(NewTypeMapper())

	if err := r.Register(Definition{
		Kind: domain.KindProduct,
		Table: Table{
			Name: "products",
			Columns: []Column{
				{Name: "id", Type: Integer(), PrimaryKey: true},
				{Name: "name", Type: String(40)},
				{Name: "description", Type: String(300)},
				{Name: "quantity", Type: Integer()},
			},
		},
		New: func() domain.Entity { return &domain.Product{} },
	}); err != nil {
		return nil, err
	}

	if err := r.Register(Definition{
		Kind: domain.KindOrder,
		Table: Table{
			Name: "orders",
			Columns: []Column{
				{Name: "id", Type: Integer(), PrimaryKey: true},
				{Name: "product_id", Type: Integer(), References: "products", OnDeleteCascade: true},
				{Name: "quantity", Type: Integer()},
			},
		},
		New: func() domain.Entity { return &domain.Order{} },
	}); err != nil {
		return nil, err
	}

	return r, nil
}
