package domain

// Kind names a registered entity type.
type Kind string

const (
	KindProduct Kind = "product"
	KindOrder   Kind = "order"
)

// Record carries an entity's column values keyed by column name. Field order
// and types come from the schema declaration, not from the map.
type Record map[string]any

// Entity is a persisted record value. Each entity type implements the
// interface by hand; there is no reflection over struct fields anywhere in
// the core.
type Entity interface {
	// Kind returns the registered entity kind.
	Kind() Kind

	// PrimaryKey returns the row key, pending until first save.
	PrimaryKey() Key

	// SetPrimaryKey overwrites the row key, used to write backend-assigned
	// ids back after an insert.
	SetPrimaryKey(Key)

	// Fields returns every column value, primary key included.
	Fields() Record

	// ApplyFields sets column values from a record. Missing keys leave the
	// current value untouched; unknown keys are ignored.
	ApplyFields(Record)
}
