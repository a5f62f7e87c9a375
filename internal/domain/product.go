package domain

// Product is a catalog entry. Orders reference it by id and are removed with
// it (cascade declared in the schema).
type Product struct {
	ID          Key
	Name        string // shown in order choice lists
	Description string
	Quantity    int64
}

// Kind returns KindProduct.
func (p *Product) Kind() Kind {
	return KindProduct
}

// PrimaryKey returns the product's row key.
func (p *Product) PrimaryKey() Key {
	return p.ID
}

// SetPrimaryKey overwrites the product's row key.
func (p *Product) SetPrimaryKey(k Key) {
	p.ID = k
}

// Fields returns all column values keyed by column name.
func (p *Product) Fields() Record {
	return Record{
		"id":          p.ID,
		"name":        p.Name,
		"description": p.Description,
		"quantity":    p.Quantity,
	}
}

// ApplyFields sets column values from a record, ignoring unknown keys.
func (p *Product) ApplyFields(r Record) {
	if v, ok := r["id"].(Key); ok {
		p.ID = v
	}
	if v, ok := r["name"].(string); ok {
		p.Name = v
	}
	if v, ok := r["description"].(string); ok {
		p.Description = v
	}
	if v, ok := r["quantity"].(int64); ok {
		p.Quantity = v
	}
}
