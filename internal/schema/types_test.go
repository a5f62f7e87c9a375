package schema

import "testing"

func TestTypeMapperMap(t *testing.T) {
	mapper := NewTypeMapper()

	tests := []struct {
		name     string
		input    ColumnType
		expected ValueType
		mapped   bool
	}{
		{
			name:     "integer",
			input:    Integer(),
			expected: ValueInt,
			mapped:   true,
		},
		{
			name:     "sized string",
			input:    String(40),
			expected: ValueString,
			mapped:   true,
		},
		{
			name:     "unbounded text shares the string family",
			input:    Text(),
			expected: ValueString,
			mapped:   true,
		},
		{
			name:     "float",
			input:    Float(),
			expected: ValueFloat,
			mapped:   true,
		},
		{
			name:     "boolean",
			input:    Boolean(),
			expected: ValueBool,
			mapped:   true,
		},
		{
			name:   "blob has no property representation",
			input:  Blob(),
			mapped: false,
		},
		{
			name:   "timestamp has no property representation",
			input:  Timestamp(),
			mapped: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vt, ok := mapper.Map(tt.input)
			if ok != tt.mapped {
				t.Fatalf("expected mapped=%v, got %v", tt.mapped, ok)
			}
			if ok && vt != tt.expected {
				t.Errorf("expected value type %v, got %v", tt.expected, vt)
			}
		})
	}
}

func TestTypeMapperExtraRulesWinFirst(t *testing.T) {
	// Prepended rule overrides the default integer mapping.
	mapper := NewTypeMapper(FamilyRule(FamilyInteger, ValueString))

	vt, ok := mapper.Map(Integer())
	if !ok {
		t.Fatal("expected integer to map")
	}
	if vt != ValueString {
		t.Errorf("expected extra rule to win, got %v", vt)
	}
}
