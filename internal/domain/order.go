package domain

// Order is a demand against a product's stock.
type Order struct {
	ID        Key
	ProductID int64 // foreign key -> products.id
	Quantity  int64
}

// Kind returns KindOrder.
func (o *Order) Kind() Kind {
	return KindOrder
}

// PrimaryKey returns the order's row key.
func (o *Order) PrimaryKey() Key {
	return o.ID
}

// SetPrimaryKey overwrites the order's row key.
func (o *Order) SetPrimaryKey(k Key) {
	o.ID = k
}

// Fields returns all column values keyed by column name.
func (o *Order) Fields() Record {
	return Record{
		"id":         o.ID,
		"product_id": o.ProductID,
		"quantity":   o.Quantity,
	}
}

// ApplyFields sets column values from a record, ignoring unknown keys.
func (o *Order) ApplyFields(r Record) {
	if v, ok := r["id"].(Key); ok {
		o.ID = v
	}
	if v, ok := r["product_id"].(int64); ok {
		o.ProductID = v
	}
	if v, ok := r["quantity"].(int64); ok {
		o.Quantity = v
	}
}
