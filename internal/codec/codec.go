package codec

import "io"

// Snapshot is the exchange shape of the whole catalog: every stored product
// and order with their assigned keys.
type Snapshot struct {
	Products []ProductRow `json:"products" yaml:"products"`
	Orders   []OrderRow   `json:"orders" yaml:"orders"`
}

// ProductRow is one product in a snapshot.
type ProductRow struct {
	ID          int64  `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Quantity    int64  `json:"quantity" yaml:"quantity"`
}

// OrderRow is one order in a snapshot.
type OrderRow struct {
	ID        int64 `json:"id" yaml:"id"`
	ProductID int64 `json:"product_id" yaml:"product_id"`
	Quantity  int64 `json:"quantity" yaml:"quantity"`
}

// Exporter writes a catalog snapshot in one format.
type Exporter interface {
	Export(snapshot *Snapshot, w io.Writer) error
	Format() string
}

// Importer reads a catalog snapshot in one format.
type Importer interface {
	Parse(r io.Reader) (*Snapshot, error)
	Format() string
}
