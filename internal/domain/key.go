package domain

import "fmt"

// Key identifies a stored row. The zero value is the pending state: the
// entity has not been persisted yet and the backend will assign a value on
// insert. This replaces a bare nullable integer so that "not saved" can never
// be confused with a real key inside the core.
//
// The UI boundary still renders a pending key as the literal 0; SQLite rowids
// start at 1, so the two cannot collide there. That assumption is inherited
// from the storage backend, not enforced here.
type Key struct {
	value    int64
	assigned bool
}

// PendingKey returns the key of a not-yet-persisted entity.
func PendingKey() Key {
	return Key{}
}

// AssignedKey returns a key holding a backend-assigned row id.
func AssignedKey(v int64) Key {
	return Key{value: v, assigned: true}
}

// Assigned reports whether the key holds a stored row id.
func (k Key) Assigned() bool {
	return k.assigned
}

// Value returns the row id, or 0 for a pending key.
func (k Key) Value() int64 {
	if !k.assigned {
		return 0
	}
	return k.value
}

func (k Key) String() string {
	if !k.assigned {
		return "pending"
	}
	return fmt.Sprintf("%d", k.value)
}
