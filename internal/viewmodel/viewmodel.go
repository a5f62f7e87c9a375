package viewmodel

import (
	"fmt"

	"github.com/google/uuid"

	"mirrorstore/internal/domain"
	"mirrorstore/internal/schema"
)

// Model is the observable mirror of one entity value: one property per
// mapped column of the kind's descriptor. The primary-key property is an
// int64 where 0 means "not yet persisted"; everywhere else in the core keys
// are tagged, but the property space is UI scalars only.
//
// Every model gets a surrogate handle at creation. Collections track
// membership by handle, so two loads of the same row are distinct members
// while one instance saved twice is not.
type Model struct {
	handle    string
	desc      *schema.Descriptor
	newEntity func() domain.Entity
	props     map[string]any
}

// Handle returns the model's surrogate identifier.
func (m *Model) Handle() string {
	return m.handle
}

// Kind returns the entity kind the model mirrors.
func (m *Model) Kind() domain.Kind {
	return m.desc.Kind
}

// Descriptor returns the derived descriptor for the model's kind. UI
// collaborators read its foreign-key map to build choice lists.
func (m *Model) Descriptor() *schema.Descriptor {
	return m.desc
}

// Get returns a property value by name.
func (m *Model) Get(name string) (any, bool) {
	v, ok := m.props[name]
	return v, ok
}

// Set assigns a property value. Unknown property names are ignored, as are
// values that cannot be represented in the property's type; a set never
// fails, it just may not stick.
func (m *Model) Set(name string, value any) {
	prop, ok := m.desc.Property(name)
	if !ok {
		return
	}
	if v, ok := normalize(value, prop.Type); ok {
		m.props[name] = v
	}
}

// Key returns the primary-key property, 0 while unsaved.
func (m *Model) Key() int64 {
	v, _ := m.props[m.desc.PrimaryKey].(int64)
	return v
}

// SetKey overwrites the primary-key property. The store calls this after an
// insert to hand the backend-assigned id back to the model.
func (m *Model) SetKey(key int64) {
	m.props[m.desc.PrimaryKey] = key
}

// Properties returns a copy of all property values.
func (m *Model) Properties() map[string]any {
	out := make(map[string]any, len(m.props))
	for k, v := range m.props {
		out[k] = v
	}
	return out
}

// ToEntity converts the model back to an entity value. A zero primary-key
// property becomes a pending key, which the store turns into an INSERT.
func (m *Model) ToEntity() domain.Entity {
	rec := make(domain.Record, len(m.props))
	for _, prop := range m.desc.Properties {
		v := m.props[prop.Name]
		if prop.Name == m.desc.PrimaryKey {
			n, _ := v.(int64)
			if n == 0 {
				rec[prop.Name] = domain.PendingKey()
			} else {
				rec[prop.Name] = domain.AssignedKey(n)
			}
			continue
		}
		rec[prop.Name] = v
	}

	e := m.newEntity()
	e.ApplyFields(rec)
	return e
}

// Factory builds view models for registered entity kinds.
type Factory struct {
	registry *schema.Registry
}

// NewFactory returns a factory over the given registry.
func NewFactory(registry *schema.Registry) *Factory {
	return &Factory{registry: registry}
}

// New creates a model of the given kind. Initial values are applied through
// Set, so unknown keys are ignored rather than rejected.
func (f *Factory) New(kind domain.Kind, initial map[string]any) (*Model, error) {
	m, err := f.empty(kind)
	if err != nil {
		return nil, err
	}
	for name, value := range initial {
		m.Set(name, value)
	}
	return m, nil
}

// FromEntity creates a model mirroring an entity value. A pending primary
// key becomes the 0 sentinel in the property space.
func (f *Factory) FromEntity(e domain.Entity) (*Model, error) {
	m, err := f.empty(e.Kind())
	if err != nil {
		return nil, err
	}

	fields := e.Fields()
	for _, prop := range m.desc.Properties {
		v, ok := fields[prop.Name]
		if !ok {
			continue
		}
		if prop.Name == m.desc.PrimaryKey {
			if k, ok := v.(domain.Key); ok {
				m.props[prop.Name] = k.Value()
			}
			continue
		}
		m.Set(prop.Name, v)
	}
	return m, nil
}

func (f *Factory) empty(kind domain.Kind) (*Model, error) {
	desc, err := f.registry.Descriptor(kind)
	if err != nil {
		return nil, fmt.Errorf("failed to derive descriptor: %w", err)
	}
	def, err := f.registry.Definition(kind)
	if err != nil {
		return nil, err
	}

	props := make(map[string]any, len(desc.Properties))
	for _, prop := range desc.Properties {
		props[prop.Name] = zeroValue(prop.Type)
	}

	return &Model{
		handle:    uuid.NewString(),
		desc:      desc,
		newEntity: def.New,
		props:     props,
	}, nil
}

func zeroValue(t schema.ValueType) any {
	switch t {
	case schema.ValueInt:
		return int64(0)
	case schema.ValueString:
		return ""
	case schema.ValueFloat:
		return float64(0)
	case schema.ValueBool:
		return false
	}
	return nil
}

// normalize coerces a caller-supplied value into the property's
// representation. JSON decoding hands numbers over as float64, so integral
// floats are accepted for int properties.
func normalize(value any, t schema.ValueType) (any, bool) {
	switch t {
	case schema.ValueInt:
		switch v := value.(type) {
		case int64:
			return v, true
		case int:
			return int64(v), true
		case int32:
			return int64(v), true
		case float64:
			if v == float64(int64(v)) {
				return int64(v), true
			}
		}
	case schema.ValueString:
		if v, ok := value.(string); ok {
			return v, true
		}
	case schema.ValueFloat:
		switch v := value.(type) {
		case float64:
			return v, true
		case float32:
			return float64(v), true
		case int64:
			return float64(v), true
		case int:
			return float64(v), true
		}
	case schema.ValueBool:
		if v, ok := value.(bool); ok {
			return v, true
		}
	}
	return nil, false
}
