// Package loader reads the YAML seed catalog used to populate an empty
// database on first start.
package loader

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Seed is the parsed seed catalog: products with their initial orders
// nested, no keys anywhere. Keys are assigned when the seed is saved.
type Seed struct {
	Version  string        `yaml:"version"`
	Products []SeedProduct `yaml:"products"`
}

// SeedProduct is one product of the seed catalog.
type SeedProduct struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description,omitempty"`
	Quantity    int64       `yaml:"quantity"`
	Orders      []SeedOrder `yaml:"orders,omitempty"`
}

// SeedOrder is one order nested under its product.
type SeedOrder struct {
	Quantity int64 `yaml:"quantity"`
}

// Load reads and validates a seed catalog file.
func Load(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

// Parse parses and validates seed catalog YAML.
func Parse(data []byte) (*Seed, error) {
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed YAML: %w", err)
	}

	for i, p := range seed.Products {
		if p.Name == "" {
			return nil, fmt.Errorf("product %d has no name", i)
		}
		if p.Quantity < 0 {
			return nil, fmt.Errorf("product %q has negative quantity", p.Name)
		}
		for j, o := range p.Orders {
			if o.Quantity <= 0 {
				return nil, fmt.Errorf("order %d of product %q has non-positive quantity", j, p.Name)
			}
		}
	}

	return &seed, nil
}
