// Package schema declares the persisted table layouts and derives from them
// the property descriptors the rest of the system runs on.
//
// Entity kinds are registered explicitly with a table declaration and an
// entity constructor; Registry.Descriptor then derives, once per kind, the
// ordered set of mapped properties and the foreign-key map. Columns whose
// type the TypeMapper cannot represent as a UI scalar are silently skipped,
// and foreign keys whose target table belongs to no registered kind stay
// plain scalars.
package schema
