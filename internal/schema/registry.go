package schema

import (
	"fmt"

	"mirrorstore/internal/domain"
)

// Definition registers one entity kind: its table layout and a constructor
// for empty entity values. Registration is explicit and happens once at
// startup; nothing is discovered at run time.
type Definition struct {
	Kind  domain.Kind
	Table Table
	New   func() domain.Entity
}

// Registry holds every registered entity kind and derives descriptors from
// their table declarations. Not safe for concurrent registration; register
// everything before handing the registry out.
type Registry struct {
	defs        []Definition
	byKind      map[domain.Kind]int
	descriptors map[domain.Kind]*Descriptor
	mapper      *TypeMapper
}

// NewRegistry returns an empty registry using the given type mapper.
func NewRegistry(mapper *TypeMapper) *Registry {
	return &Registry{
		byKind:      make(map[domain.Kind]int),
		descriptors: make(map[domain.Kind]*Descriptor),
		mapper:      mapper,
	}
}

// Register adds an entity kind. The table must declare exactly one
// primary-key column.
func (r *Registry) Register(def Definition) error {
	if _, exists := r.byKind[def.Kind]; exists {
		return fmt.Errorf("kind %q already registered", def.Kind)
	}
	if def.New == nil {
		return fmt.Errorf("kind %q has no entity constructor", def.Kind)
	}
	if _, ok := def.Table.PrimaryKey(); !ok {
		return fmt.Errorf("table %q has no primary key column", def.Table.Name)
	}

	r.byKind[def.Kind] = len(r.defs)
	r.defs = append(r.defs, def)
	return nil
}

// Definition returns the registration for a kind.
func (r *Registry) Definition(kind domain.Kind) (Definition, error) {
	i, ok := r.byKind[kind]
	if !ok {
		return Definition{}, fmt.Errorf("unknown entity kind %q", kind)
	}
	return r.defs[i], nil
}

// NewEntity returns an empty entity value of the given kind.
func (r *Registry) NewEntity(kind domain.Kind) (domain.Entity, error) {
	def, err := r.Definition(kind)
	if err != nil {
		return nil, err
	}
	return def.New(), nil
}

// Kinds returns every registered kind in registration order.
func (r *Registry) Kinds() []domain.Kind {
	kinds := make([]domain.Kind, 0, len(r.defs))
	for _, def := range r.defs {
		kinds = append(kinds, def.Kind)
	}
	return kinds
}

// Tables returns every registered table in registration order. Parents
// register before children, so the order is safe for DDL.
func (r *Registry) Tables() []Table {
	tables := make([]Table, 0, len(r.defs))
	for _, def := range r.defs {
		tables = append(tables, def.Table)
	}
	return tables
}

// kindForTable resolves a table name to the kind owning it. Linear scan;
// registries hold a handful of kinds.
func (r *Registry) kindForTable(table string) (domain.Kind, bool) {
	for _, def := range r.defs {
		if def.Table.Name == table {
			return def.Kind, true
		}
	}
	return "", false
}

// Descriptor derives (once, then memoizes) the property descriptor for a
// kind.
func (r *Registry) Descriptor(kind domain.Kind) (*Descriptor, error) {
	if d, ok := r.descriptors[kind]; ok {
		return d, nil
	}

	def, err := r.Definition(kind)
	if err != nil {
		return nil, err
	}

	d := r.derive(def)
	r.descriptors[kind] = d
	return d, nil
}

func (r *Registry) derive(def Definition) *Descriptor {
	d := &Descriptor{
		Kind:        def.Kind,
		Table:       def.Table.Name,
		ForeignKeys: make(map[string]domain.Kind),
	}

	for _, col := range def.Table.Columns {
		vt, ok := r.mapper.Map(col.Type)
		if !ok {
			// No property representation, the column stays storage-only.
			continue
		}

		prop := Property{
			Name:       col.Name,
			Type:       vt,
			PrimaryKey: col.PrimaryKey,
		}

		if col.PrimaryKey {
			d.PrimaryKey = col.Name
		}

		if col.References != "" {
			// An unregistered target leaves the column a plain scalar:
			// choice widgets simply get no entry for it.
			if target, ok := r.kindForTable(col.References); ok {
				prop.ForeignKey = true
				prop.References = target
				d.ForeignKeys[col.Name] = target
			}
		}

		d.Properties = append(d.Properties, prop)
	}

	return d
}
