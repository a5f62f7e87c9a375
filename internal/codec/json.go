package codec

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONCodec handles JSON snapshot import/export.
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec.
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier.
func (c *JSONCodec) Format() string {
	return "json"
}

// Parse reads a catalog snapshot from JSON.
func (c *JSONCodec) Parse(r io.Reader) (*Snapshot, error) {
	var snapshot Snapshot
	if err := json.NewDecoder(r).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return &snapshot, nil
}

// Export writes a catalog snapshot as indented JSON.
func (c *JSONCodec) Export(snapshot *Snapshot, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(snapshot); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
