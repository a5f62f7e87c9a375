// Package repository defines the persistence contract for mirrorstore.
//
// # Store Interface
//
// The Store interface covers batch save, batch delete, fetch-all, and the
// aggregate read the stock summary needs. Batches are homogeneous by
// contract: the entity kind is an explicit parameter and mixed batches are
// rejected with ErrMixedKinds rather than silently keyed off the first
// element.
//
// # Transactions and Notifications
//
// Each operation runs inside exactly one transaction. A constraint violation
// aborts the whole batch and propagates; nothing is partially committed.
// Change notifications go out on the injected event bus only after a commit
// succeeds.
//
// # SQLite Implementation
//
// The sqlite subpackage implements Store over modernc.org/sqlite. Its DDL is
// generated from the registered table declarations, including the foreign
// keys with cascade delete, and it is tested against in-memory databases.
package repository
