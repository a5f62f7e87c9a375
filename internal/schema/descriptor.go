package schema

import "mirrorstore/internal/domain"

// Property describes one mapped column of a derived descriptor.
type Property struct {
	Name       string
	Type       ValueType
	PrimaryKey bool

	// ForeignKey marks properties whose value references another kind's
	// primary key. References is only set when the target kind is
	// registered.
	ForeignKey bool
	References domain.Kind
}

// Descriptor is the derived metadata for one entity kind: its mapped
// properties in schema order plus the foreign-key map consumed by choice
// widgets. Immutable after derivation.
type Descriptor struct {
	Kind        domain.Kind
	Table       string
	PrimaryKey  string
	Properties  []Property
	ForeignKeys map[string]domain.Kind
}

// Property looks a property up by name.
func (d *Descriptor) Property(name string) (Property, bool) {
	for _, p := range d.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}
