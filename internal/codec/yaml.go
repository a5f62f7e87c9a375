package codec

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLCodec handles YAML snapshot import/export.
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec.
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier.
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// Parse reads a catalog snapshot from YAML.
func (c *YAMLCodec) Parse(r io.Reader) (*Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	var snapshot Snapshot
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &snapshot, nil
}

// Export writes a catalog snapshot as YAML.
func (c *YAMLCodec) Export(snapshot *Snapshot, w io.Writer) error {
	data, err := yaml.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
