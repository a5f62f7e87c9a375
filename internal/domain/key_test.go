package domain

import "testing"

func TestKey(t *testing.T) {
	t.Run("zero value is pending", func(t *testing.T) {
		var k Key
		if k.Assigned() {
			t.Error("expected zero-value key to be pending")
		}
		if k.Value() != 0 {
			t.Errorf("expected value 0, got %d", k.Value())
		}
	})

	t.Run("PendingKey matches zero value", func(t *testing.T) {
		if PendingKey() != (Key{}) {
			t.Error("expected PendingKey to equal the zero value")
		}
	})

	t.Run("assigned key holds its value", func(t *testing.T) {
		k := AssignedKey(42)
		if !k.Assigned() {
			t.Error("expected key to be assigned")
		}
		if k.Value() != 42 {
			t.Errorf("expected value 42, got %d", k.Value())
		}
	})

	t.Run("string forms", func(t *testing.T) {
		if got := PendingKey().String(); got != "pending" {
			t.Errorf("expected %q, got %q", "pending", got)
		}
		if got := AssignedKey(7).String(); got != "7" {
			t.Errorf("expected %q, got %q", "7", got)
		}
	})
}
