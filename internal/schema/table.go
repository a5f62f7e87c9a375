package schema

// Column declares one column of a persisted table.
type Column struct {
	Name       string
	Type       ColumnType
	PrimaryKey bool

	// References names the target table of a foreign key, empty otherwise.
	// OnDeleteCascade removes rows of this table when the referenced row
	// goes away.
	References      string
	OnDeleteCascade bool
}

// Table declares a persisted table in column order.
type Table struct {
	Name    string
	Columns []Column
}

// PrimaryKey returns the table's primary-key column.
func (t Table) PrimaryKey() (Column, bool) {
	for _, c := range t.Columns {
		if c.PrimaryKey {
			return c, true
		}
	}
	return Column{}, false
}
