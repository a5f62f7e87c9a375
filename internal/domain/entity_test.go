package domain

import (
	"reflect"
	"testing"
)

func TestProductFields(t *testing.T) {
	p := &Product{
		ID:          AssignedKey(3),
		Name:        "Widget",
		Description: "A widget",
		Quantity:    10,
	}

	t.Run("fields carry every column", func(t *testing.T) {
		want := Record{
			"id":          AssignedKey(3),
			"name":        "Widget",
			"description": "A widget",
			"quantity":    int64(10),
		}
		if !reflect.DeepEqual(want, p.Fields()) {
			t.Errorf("expected %v, got %v", want, p.Fields())
		}
	})

	t.Run("apply then fields round-trips", func(t *testing.T) {
		clone := &Product{}
		clone.ApplyFields(p.Fields())
		if !reflect.DeepEqual(p, clone) {
			t.Errorf("expected %+v, got %+v", p, clone)
		}
	})

	t.Run("unknown keys are ignored", func(t *testing.T) {
		clone := &Product{}
		clone.ApplyFields(Record{"name": "Gadget", "color": "red"})
		if clone.Name != "Gadget" {
			t.Errorf("expected name Gadget, got %q", clone.Name)
		}
	})

	t.Run("missing keys keep current values", func(t *testing.T) {
		clone := &Product{Name: "Widget", Quantity: 5}
		clone.ApplyFields(Record{"quantity": int64(7)})
		if clone.Name != "Widget" || clone.Quantity != 7 {
			t.Errorf("unexpected partial apply result: %+v", clone)
		}
	})
}

func TestOrderFields(t *testing.T) {
	o := &Order{ID: AssignedKey(1), ProductID: 3, Quantity: 2}

	clone := &Order{}
	clone.ApplyFields(o.Fields())
	if !reflect.DeepEqual(o, clone) {
		t.Errorf("expected %+v, got %+v", o, clone)
	}

	if o.Kind() != KindOrder {
		t.Errorf("expected kind %q, got %q", KindOrder, o.Kind())
	}
}
