package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	"mirrorstore/internal/domain"
	"mirrorstore/internal/schema"
)

// ============================================================================
// DDL Generation
// ============================================================================

// sqlColumnType maps a declared column family to its SQLite storage type.
func sqlColumnType(f schema.Family) string {
	switch f {
	case schema.FamilyInteger, schema.FamilyBoolean:
		return "INTEGER"
	case schema.FamilyString:
		return "TEXT"
	case schema.FamilyFloat:
		return "REAL"
	case schema.FamilyBlob:
		return "BLOB"
	case schema.FamilyTimestamp:
		return "DATETIME"
	}
	return "TEXT"
}

// createTableSQL renders CREATE TABLE IF NOT EXISTS for one declared table,
// foreign keys included. Columns without a property mapping (blobs,
// timestamps) stay nullable since saves never write them. Foreign keys
// reference the target table's declared primary-key column, looked up in
// pkByTable; an unknown target falls back to "id".
func createTableSQL(t schema.Table, pkByTable map[string]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (\n", t.Name)

	var constraints []string
	for i, col := range t.Columns {
		if i > 0 {
			b.WriteString(",\n")
		}

		if col.PrimaryKey {
			// INTEGER PRIMARY KEY aliases the rowid; ids start at 1.
			fmt.Fprintf(&b, "\t%s INTEGER PRIMARY KEY", col.Name)
		} else {
			fmt.Fprintf(&b, "\t%s %s", col.Name, sqlColumnType(col.Type.Family))
			switch col.Type.Family {
			case schema.FamilyBlob, schema.FamilyTimestamp:
			default:
				b.WriteString(" NOT NULL")
			}
		}

		if col.References != "" {
			targetPK := pkByTable[col.References]
			if targetPK == "" {
				targetPK = "id"
			}
			constraint := fmt.Sprintf("\tFOREIGN KEY (%s) REFERENCES %s(%s)", col.Name, col.References, targetPK)
			if col.OnDeleteCascade {
				constraint += " ON DELETE CASCADE"
			}
			constraints = append(constraints, constraint)
		}
	}

	for _, c := range constraints {
		b.WriteString(",\n")
		b.WriteString(c)
	}

	b.WriteString("\n)")
	return b.String()
}

// ============================================================================
// Statement Builders
// ============================================================================

// columnList renders the mapped columns of a descriptor for SELECT.
func columnList(desc *schema.Descriptor) string {
	names := make([]string, len(desc.Properties))
	for i, p := range desc.Properties {
		names[i] = p.Name
	}
	return strings.Join(names, ", ")
}

// insertStatement renders an INSERT without the primary key; the backend
// assigns it.
func insertStatement(desc *schema.Descriptor) string {
	var cols, marks []string
	for _, p := range desc.Properties {
		if p.PrimaryKey {
			continue
		}
		cols = append(cols, p.Name)
		marks = append(marks, "?")
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		desc.Table, strings.Join(cols, ", "), strings.Join(marks, ", "))
}

// upsertStatement renders the merge for models that already carry a key.
func upsertStatement(desc *schema.Descriptor) string {
	var cols, marks, updates []string
	for _, p := range desc.Properties {
		cols = append(cols, p.Name)
		marks = append(marks, "?")
		if !p.PrimaryKey {
			updates = append(updates, fmt.Sprintf("%s = excluded.%s", p.Name, p.Name))
		}
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT(%s) DO UPDATE SET %s",
		desc.Table, strings.Join(cols, ", "), strings.Join(marks, ", "),
		desc.PrimaryKey, strings.Join(updates, ", "))
}

// statementArgs collects bind arguments in property order. The primary key
// is included only for upserts and is bound as its stored integer value.
func statementArgs(desc *schema.Descriptor, fields domain.Record, includePK bool) []any {
	args := make([]any, 0, len(desc.Properties))
	for _, p := range desc.Properties {
		if p.PrimaryKey {
			if includePK {
				if key, ok := fields[p.Name].(domain.Key); ok {
					args = append(args, key.Value())
				}
			}
			continue
		}
		args = append(args, fields[p.Name])
	}
	return args
}

// ============================================================================
// Row Scanning
// ============================================================================

// scanTargets allocates one scan destination per mapped property. Booleans
// are stored as integers; the primary key scans as a plain integer.
func scanTargets(desc *schema.Descriptor) []any {
	targets := make([]any, len(desc.Properties))
	for i, p := range desc.Properties {
		switch p.Type {
		case schema.ValueInt, schema.ValueBool:
			targets[i] = new(sql.NullInt64)
		case schema.ValueString:
			targets[i] = new(sql.NullString)
		case schema.ValueFloat:
			targets[i] = new(sql.NullFloat64)
		default:
			targets[i] = new(sql.NullString)
		}
	}
	return targets
}

// recordFromTargets converts scanned values back to an entity record. The
// primary key becomes a tagged Key; stored rows always carry one.
func recordFromTargets(desc *schema.Descriptor, targets []any) domain.Record {
	rec := make(domain.Record, len(desc.Properties))
	for i, p := range desc.Properties {
		if p.PrimaryKey {
			n := targets[i].(*sql.NullInt64)
			if n.Valid {
				rec[p.Name] = domain.AssignedKey(n.Int64)
			} else {
				rec[p.Name] = domain.PendingKey()
			}
			continue
		}

		switch p.Type {
		case schema.ValueInt:
			rec[p.Name] = targets[i].(*sql.NullInt64).Int64
		case schema.ValueBool:
			n := targets[i].(*sql.NullInt64)
			rec[p.Name] = n.Valid && n.Int64 != 0
		case schema.ValueString:
			rec[p.Name] = targets[i].(*sql.NullString).String
		case schema.ValueFloat:
			rec[p.Name] = targets[i].(*sql.NullFloat64).Float64
		}
	}
	return rec
}
