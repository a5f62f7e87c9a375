package loader

import (
	"os"
	"path/filepath"
	"testing"
)

const validSeed = `
version: "1"
products:
  - name: Widget
    description: A widget
    quantity: 10
    orders:
      - quantity: 3
      - quantity: 2
  - name: Gadget
    quantity: 5
`

func TestParse(t *testing.T) {
	t.Run("valid seed", func(t *testing.T) {
		seed, err := Parse([]byte(validSeed))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(seed.Products) != 2 {
			t.Fatalf("expected 2 products, got %d", len(seed.Products))
		}
		if len(seed.Products[0].Orders) != 2 {
			t.Errorf("expected 2 orders under Widget, got %d", len(seed.Products[0].Orders))
		}
		if seed.Products[1].Description != "" {
			t.Errorf("expected empty description, got %q", seed.Products[1].Description)
		}
	})

	t.Run("missing product name", func(t *testing.T) {
		_, err := Parse([]byte("products:\n  - quantity: 1\n"))
		if err == nil {
			t.Error("expected error for unnamed product")
		}
	})

	t.Run("negative quantity", func(t *testing.T) {
		_, err := Parse([]byte("products:\n  - name: X\n    quantity: -1\n"))
		if err == nil {
			t.Error("expected error for negative quantity")
		}
	})

	t.Run("non-positive order quantity", func(t *testing.T) {
		_, err := Parse([]byte("products:\n  - name: X\n    quantity: 1\n    orders:\n      - quantity: 0\n"))
		if err == nil {
			t.Error("expected error for zero order quantity")
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Parse([]byte("products: [{"))
		if err == nil {
			t.Error("expected error for malformed YAML")
		}
	})
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.yaml")
	if err := os.WriteFile(path, []byte(validSeed), 0o644); err != nil {
		t.Fatalf("failed to write seed file: %v", err)
	}

	seed, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seed.Products) != 2 {
		t.Errorf("expected 2 products, got %d", len(seed.Products))
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
