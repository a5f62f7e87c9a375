// Package handler exposes the catalog over HTTP.
//
// The handler is a thin client of the core contracts: it talks
// to the observable collections for membership, to the view-model factory
// for new rows, to the descriptor's foreign-key map for dropdown choices,
// and to the summary and catalog services for derived reads. It holds no
// persistence logic of its own.
//
// All requests are serialized through one mutex. The core assumes a single
// caller, mirroring a single UI thread; the mutex is the HTTP-world stand-in
// for that thread.
package handler
