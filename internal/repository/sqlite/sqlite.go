package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"mirrorstore/internal/domain"
	"mirrorstore/internal/event"
	"mirrorstore/internal/repository"
	"mirrorstore/internal/schema"
	"mirrorstore/internal/viewmodel"

	_ "modernc.org/sqlite"
)

// Store implements repository.Store over SQLite. The table layout is
// generated from the registered schema declarations at open time.
type Store struct {
	db       *sql.DB
	registry *schema.Registry
	factory  *viewmodel.Factory
	bus      *event.Bus
}

var _ repository.Store = (*Store)(nil)

// Open opens (or creates) the database at path and migrates the registered
// tables. Use ":memory:" for a throwaway database. The bus receives one
// Change per committed save or delete batch.
func Open(path string, registry *schema.Registry, factory *viewmodel.Factory, bus *event.Bus) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection keeps ":memory:" databases coherent and matches the
	// single-caller contract of the core.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &Store{db: db, registry: registry, factory: factory, bus: bus}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	tables := s.registry.Tables()

	pkByTable := make(map[string]string, len(tables))
	for _, table := range tables {
		if pk, ok := table.PrimaryKey(); ok {
			pkByTable[table.Name] = pk.Name
		}
	}

	for _, table := range tables {
		if _, err := s.db.Exec(createTableSQL(table, pkByTable)); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.Name, err)
		}
	}
	return nil
}

// SaveAll upserts the batch in one transaction. Pending models are inserted
// and get their generated keys written back by position after commit; the
// rest are merged by primary key. Exactly one Change for the kind goes out
// after a successful commit.
func (s *Store) SaveAll(ctx context.Context, kind domain.Kind, models []*viewmodel.Model) error {
	desc, err := s.prepareBatch(kind, models)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	insertSQL := insertStatement(desc)
	upsertSQL := upsertStatement(desc)

	keys := make([]int64, len(models))
	for i, m := range models {
		e := m.ToEntity()
		fields := e.Fields()

		if key := e.PrimaryKey(); key.Assigned() {
			args := statementArgs(desc, fields, true)
			if _, err := tx.ExecContext(ctx, upsertSQL, args...); err != nil {
				return fmt.Errorf("failed to merge %s row %d: %w", kind, key.Value(), err)
			}
			keys[i] = key.Value()
			continue
		}

		args := statementArgs(desc, fields, false)
		res, err := tx.ExecContext(ctx, insertSQL, args...)
		if err != nil {
			return fmt.Errorf("failed to insert %s row: %w", kind, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read generated key: %w", err)
		}
		keys[i] = id
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	// Hand the backend-assigned keys back to the originals, by position.
	for i, m := range models {
		m.SetKey(keys[i])
	}

	s.bus.Publish(event.Change{Kind: kind})
	return nil
}

// DeleteAll deletes the batch in one transaction. Models still carrying the
// 0 key sentinel were never stored and are skipped; a row that vanished
// between calls counts as already deleted. One Change for the kind goes out
// after commit, even if every model was skipped.
func (s *Store) DeleteAll(ctx context.Context, kind domain.Kind, models []*viewmodel.Model) error {
	desc, err := s.prepareBatch(kind, models)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	deleteSQL := fmt.Sprintf("DELETE FROM %s WHERE %s = ?", desc.Table, desc.PrimaryKey)
	for _, m := range models {
		key := m.ToEntity().PrimaryKey()
		if !key.Assigned() {
			continue
		}
		if _, err := tx.ExecContext(ctx, deleteSQL, key.Value()); err != nil {
			return fmt.Errorf("failed to delete %s row %d: %w", kind, key.Value(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.bus.Publish(event.Change{Kind: kind})
	return nil
}

// FetchAll returns every stored row of a kind, in primary-key order,
// converted to view models.
func (s *Store) FetchAll(ctx context.Context, kind domain.Kind) ([]*viewmodel.Model, error) {
	desc, err := s.registry.Descriptor(kind)
	if err != nil {
		return nil, err
	}
	def, err := s.registry.Definition(kind)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s",
		columnList(desc), desc.Table, desc.PrimaryKey)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", desc.Table, err)
	}
	defer rows.Close()

	var models []*viewmodel.Model
	for rows.Next() {
		targets := scanTargets(desc)
		if err := rows.Scan(targets...); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", kind, err)
		}

		entity := def.New()
		entity.ApplyFields(recordFromTargets(desc, targets))

		m, err := s.factory.FromEntity(entity)
		if err != nil {
			return nil, fmt.Errorf("failed to convert %s row: %w", kind, err)
		}
		models = append(models, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s rows: %w", desc.Table, err)
	}

	return models, nil
}

// GroupSum returns SUM(sumColumn) per distinct groupColumn value. Both
// columns must be mapped integer properties of the kind.
func (s *Store) GroupSum(ctx context.Context, kind domain.Kind, groupColumn, sumColumn string) (map[int64]int64, error) {
	desc, err := s.registry.Descriptor(kind)
	if err != nil {
		return nil, err
	}
	for _, name := range []string{groupColumn, sumColumn} {
		prop, ok := desc.Property(name)
		if !ok || prop.Type != schema.ValueInt {
			return nil, fmt.Errorf("column %q is not an integer property of %s", name, kind)
		}
	}

	query := fmt.Sprintf("SELECT %s, COALESCE(SUM(%s), 0) FROM %s GROUP BY %s",
		groupColumn, sumColumn, desc.Table, groupColumn)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate %s: %w", desc.Table, err)
	}
	defer rows.Close()

	sums := make(map[int64]int64)
	for rows.Next() {
		var group, sum int64
		if err := rows.Scan(&group, &sum); err != nil {
			return nil, fmt.Errorf("failed to scan aggregate row: %w", err)
		}
		sums[group] = sum
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating aggregate rows: %w", err)
	}

	return sums, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// prepareBatch validates batch shape and resolves the kind's descriptor.
func (s *Store) prepareBatch(kind domain.Kind, models []*viewmodel.Model) (*schema.Descriptor, error) {
	if len(models) == 0 {
		return nil, repository.ErrEmptyBatch
	}
	for _, m := range models {
		if m.Kind() != kind {
			return nil, fmt.Errorf("%w: expected %s, found %s", repository.ErrMixedKinds, kind, m.Kind())
		}
	}
	return s.registry.Descriptor(kind)
}
