package repository

import (
	"context"
	"errors"

	"mirrorstore/internal/domain"
	"mirrorstore/internal/viewmodel"
)

// ErrEmptyBatch is returned when a save or delete receives no models.
var ErrEmptyBatch = errors.New("empty batch")

// ErrMixedKinds is returned when a batch contains models of a kind other
// than the one named in the call. Batches must be homogeneous; the kind
// parameter makes the constraint explicit instead of inferring it from the
// first element.
var ErrMixedKinds = errors.New("batch contains mixed entity kinds")

// Store is the persistence contract for view models.
//
// Every call opens exactly one transaction, committed or rolled back before
// it returns. A failed call has no partial effect. SaveAll and DeleteAll
// publish exactly one change notification for the kind, after a successful
// commit and never before.
type Store interface {
	// SaveAll upserts a non-empty homogeneous batch in one transaction.
	// Models with the 0 key sentinel are inserted and receive their
	// backend-assigned key, written back by position after commit; the
	// rest are updated in place.
	SaveAll(ctx context.Context, kind domain.Kind, models []*viewmodel.Model) error

	// DeleteAll deletes a non-empty homogeneous batch in one transaction.
	// Models with the 0 key sentinel were never stored and are skipped
	// without error; rows already gone count as deleted.
	DeleteAll(ctx context.Context, kind domain.Kind, models []*viewmodel.Model) error

	// FetchAll returns every stored row of a kind in primary-key order,
	// converted to view models. Pure read, no notification.
	FetchAll(ctx context.Context, kind domain.Kind) ([]*viewmodel.Model, error)

	// GroupSum aggregates SUM(sumColumn) grouped by groupColumn over a
	// kind's table. Both columns must be mapped integer properties.
	GroupSum(ctx context.Context, kind domain.Kind, groupColumn, sumColumn string) (map[int64]int64, error)

	// Close releases the storage connection.
	Close() error
}
