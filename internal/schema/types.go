package schema

// Family groups column types that share a storage representation. Mapping
// rules match on the family, so a 40-char string and an unbounded text column
// both land on the same property type.
type Family int

const (
	FamilyInteger Family = iota + 1
	FamilyString
	FamilyFloat
	FamilyBoolean
	FamilyBlob
	FamilyTimestamp
)

// ColumnType describes a declared column's storage type.
type ColumnType struct {
	Family Family
	Size   int // max length for sized string columns, 0 = unbounded
}

// Integer returns a whole-number column type.
func Integer() ColumnType { return ColumnType{Family: FamilyInteger} }

// String returns a length-limited text column type.
func String(size int) ColumnType { return ColumnType{Family: FamilyString, Size: size} }

// Text returns an unbounded text column type.
func Text() ColumnType { return ColumnType{Family: FamilyString} }

// Float returns a floating-point column type.
func Float() ColumnType { return ColumnType{Family: FamilyFloat} }

// Boolean returns a boolean column type.
func Boolean() ColumnType { return ColumnType{Family: FamilyBoolean} }

// Blob returns a raw-bytes column type. Blobs have no property mapping.
func Blob() ColumnType { return ColumnType{Family: FamilyBlob} }

// Timestamp returns a date-time column type. Timestamps have no property
// mapping.
func Timestamp() ColumnType { return ColumnType{Family: FamilyTimestamp} }

// ValueType is the property representation of a mapped column.
type ValueType int

const (
	ValueInt ValueType = iota + 1
	ValueString
	ValueFloat
	ValueBool
)

// Rule maps one set of column types to a property value type.
type Rule struct {
	Match func(ColumnType) bool
	Value ValueType
}

// FamilyRule returns a rule matching every column of the given family.
func FamilyRule(f Family, v ValueType) Rule {
	return Rule{
		Match: func(ct ColumnType) bool { return ct.Family == f },
		Value: v,
	}
}

// TypeMapper translates column types to property value types. Rules are
// tried in order and the first match wins; a column no rule matches has no
// property representation and is excluded from derived descriptors.
type TypeMapper struct {
	rules []Rule
}

// NewTypeMapper returns a mapper with the default scalar rules. Extra rules
// are tried before the defaults, so callers can override or extend the
// mapping.
func NewTypeMapper(extra ...Rule) *TypeMapper {
	rules := append([]Rule{}, extra...)
	rules = append(rules,
		FamilyRule(FamilyInteger, ValueInt),
		FamilyRule(FamilyString, ValueString),
		FamilyRule(FamilyFloat, ValueFloat),
		FamilyRule(FamilyBoolean, ValueBool),
	)
	return &TypeMapper{rules: rules}
}

// Map returns the property value type for a column type, or false if the
// column has no property representation.
func (m *TypeMapper) Map(ct ColumnType) (ValueType, bool) {
	for _, rule := range m.rules {
		if rule.Match(ct) {
			return rule.Value, true
		}
	}
	return 0, false
}
