// Package service implements the business operations built on top of the
// store: the stock summary, seed import, and snapshot export.
//
// # Services
//
// SummaryService computes the per-product stock remainder: the declared
// quantity minus the sum of ordered quantities, aggregated in the database
// so the numbers never come from stale in-memory relations.
//
// CatalogService imports the YAML seed catalog into an empty database and
// builds full-catalog snapshots for the export codecs.
//
// # Design Principles
//
// - Services own business logic, the store owns persistence
// - All reads go through the store, never through cached view models
// - Context-aware for cancellation and timeouts
package service
