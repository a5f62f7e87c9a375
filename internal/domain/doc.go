// Package domain defines the core entity types for the mirrorstore catalog.
//
// This package contains the persisted record types and the values they are
// built from, with no storage or UI dependencies.
//
// # Core Types
//
// Entity is the contract every persisted record type implements by hand:
// kind, primary key access, and column-value conversion through Record maps.
// There is no reflection anywhere in the core; each entity type declares its
// own field set.
//
// Key is a tagged row identifier. Its zero value means "pending": the entity
// exists in memory but has never been written, and the backend will assign
// the real id on first save. Using a tagged type instead of a bare integer
// keeps "unsaved" and "row 0" from ever meeting inside the core.
//
// # Entities
//
// Product is a catalog entry with a name, description, and stock quantity.
//
// Order records demand against one product and references it by foreign key;
// deleting a product cascades to its orders.
//
// # Design Principles
//
// - No database or UI dependencies
// - Explicit per-type field registration instead of reflection
// - Pending vs assigned keys encoded in the type system
package domain
