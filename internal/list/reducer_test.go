package list

import (
	"errors"
	"testing"
)

func TestAddItem(t *testing.T) {
	s := Empty()

	next, err := Apply(s, AddItem{Label: "Milk", Quantity: 2})
	if err != nil {
		t.Fatalf("Apply(AddItem) error: %v", err)
	}
	if len(next.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(next.Items))
	}
	it := next.Items[0]
	if it.Label != "Milk" {
		t.Errorf("label = %q, want Milk", it.Label)
	}
	if it.Quantity != 2 {
		t.Errorf("quantity = %d, want 2", it.Quantity)
	}
	if it.ID == "" {
		t.Error("item should have an ID")
	}
	if it.Checked {
		t.Error("new item should not be checked")
	}
	if len(s.Items) != 0 {
		t.Error("input state was mutated")
	}
}

func TestAddItem_Validation(t *testing.T) {
	tests := []struct {
		name    string
		action  AddItem
		wantErr error
	}{
		{"empty label", AddItem{Label: "", Quantity: 1}, ErrEmptyLabel},
		{"blank label", AddItem{Label: "   ", Quantity: 1}, ErrEmptyLabel},
		{"zero quantity", AddItem{Label: "Milk", Quantity: 0}, ErrBadQuantity},
		{"negative quantity", AddItem{Label: "Milk", Quantity: -3}, ErrBadQuantity},
	}

	for _, tt := range tests {
		_, err := Apply(Empty(), tt.action)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("%s: err = %v, want %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestAddItem_DuplicateLabelBumpsQuantity(t *testing.T) {
	s, _ := Apply(Empty(), AddItem{Label: "Eggs", Quantity: 6})
	s, _ = Apply(s, ToggleItem{ID: s.Items[0].ID})

	next, err := Apply(s, AddItem{Label: "eggs", Quantity: 6})
	if err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if len(next.Items) != 1 {
		t.Fatalf("got %d items, want 1 (case-insensitive merge)", len(next.Items))
	}
	if next.Items[0].Quantity != 12 {
		t.Errorf("quantity = %d, want 12", next.Items[0].Quantity)
	}
	if next.Items[0].Checked {
		t.Error("re-added item should be unchecked")
	}
}

func TestRemoveItem(t *testing.T) {
	s, _ := Apply(Empty(), AddItem{Label: "Milk", Quantity: 1})
	s, _ = Apply(s, AddItem{Label: "Bread", Quantity: 1})

	next, err := Apply(s, RemoveItem{ID: s.Items[0].ID})
	if err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if len(next.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(next.Items))
	}
	if next.Items[0].Label != "Bread" {
		t.Errorf("remaining item = %q, want Bread", next.Items[0].Label)
	}

	if _, err := Apply(s, RemoveItem{ID: "nope"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("removing unknown ID: err = %v, want ErrNotFound", err)
	}
}

func TestToggleItem(t *testing.T) {
	s, _ := Apply(Empty(), AddItem{Label: "Milk", Quantity: 1})
	id := s.Items[0].ID

	s, err := Apply(s, ToggleItem{ID: id})
	if err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if !s.Items[0].Checked {
		t.Error("item should be checked after toggle")
	}

	s, _ = Apply(s, ToggleItem{ID: id})
	if s.Items[0].Checked {
		t.Error("item should be unchecked after second toggle")
	}
}

func TestSetQuantity(t *testing.T) {
	s, _ := Apply(Empty(), AddItem{Label: "Milk", Quantity: 1})
	id := s.Items[0].ID

	s, err := Apply(s, SetQuantity{ID: id, Quantity: 4})
	if err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if s.Items[0].Quantity != 4 {
		t.Errorf("quantity = %d, want 4", s.Items[0].Quantity)
	}

	if _, err := Apply(s, SetQuantity{ID: id, Quantity: 0}); !errors.Is(err, ErrBadQuantity) {
		t.Errorf("err = %v, want ErrBadQuantity", err)
	}
	if _, err := Apply(s, SetQuantity{ID: "nope", Quantity: 2}); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSetLabelAndNote(t *testing.T) {
	s, _ := Apply(Empty(), AddItem{Label: "Milk", Quantity: 1})
	id := s.Items[0].ID

	s, err := Apply(s, SetLabel{ID: id, Label: "Oat milk"})
	if err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if s.Items[0].Label != "Oat milk" {
		t.Errorf("label = %q, want Oat milk", s.Items[0].Label)
	}

	if _, err := Apply(s, SetLabel{ID: id, Label: "  "}); !errors.Is(err, ErrEmptyLabel) {
		t.Errorf("err = %v, want ErrEmptyLabel", err)
	}

	s, err = Apply(s, SetNote{ID: id, Note: "the barista one"})
	if err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if s.Items[0].Note != "the barista one" {
		t.Errorf("note = %q", s.Items[0].Note)
	}

	s, _ = Apply(s, SetNote{ID: id, Note: ""})
	if s.Items[0].Note != "" {
		t.Error("empty note should clear the existing note")
	}
}

func TestCategories(t *testing.T) {
	s, _ := Apply(Empty(), AddItem{Label: "Milk", Quantity: 1})
	id := s.Items[0].ID

	s, err := Apply(s, AddCategory{ID: id, Category: " Dairy "})
	if err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if !s.Items[0].HasCategory("dairy") {
		t.Error("item should have normalized category dairy")
	}

	// Duplicate tag is a no-op.
	s, _ = Apply(s, AddCategory{ID: id, Category: "DAIRY"})
	if len(s.Items[0].Categories) != 1 {
		t.Errorf("got %d categories, want 1", len(s.Items[0].Categories))
	}

	s, _ = Apply(s, RemoveCategory{ID: id, Category: "dairy"})
	if s.Items[0].HasCategory("dairy") {
		t.Error("category should have been removed")
	}

	// Removing an absent tag is a no-op, not an error.
	if _, err := Apply(s, RemoveCategory{ID: id, Category: "frozen"}); err != nil {
		t.Errorf("removing absent category: err = %v, want nil", err)
	}
}

func TestClearChecked(t *testing.T) {
	s, _ := Apply(Empty(), AddItem{Label: "Milk", Quantity: 1})
	s, _ = Apply(s, AddItem{Label: "Bread", Quantity: 1})
	s, _ = Apply(s, AddItem{Label: "Eggs", Quantity: 6})
	s, _ = Apply(s, ToggleItem{ID: s.Items[0].ID})
	s, _ = Apply(s, ToggleItem{ID: s.Items[2].ID})

	next, err := Apply(s, ClearChecked{})
	if err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if len(next.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(next.Items))
	}
	if next.Items[0].Label != "Bread" {
		t.Errorf("remaining item = %q, want Bread", next.Items[0].Label)
	}
}

func TestSearchInputAndVisibility(t *testing.T) {
	s := Empty()
	if !s.ShowChecked {
		t.Error("checked items should be visible by default")
	}

	s, _ = Apply(s, SetSearchInput{Text: "app"})
	if s.SearchInput != "app" {
		t.Errorf("search input = %q, want app", s.SearchInput)
	}

	s, _ = Apply(s, SetShowChecked{Show: false})
	if s.ShowChecked {
		t.Error("ShowChecked should be false")
	}
}

func TestValidateState(t *testing.T) {
	good, _ := Apply(Empty(), AddItem{Label: "Milk", Quantity: 1})
	if err := ValidateState(good); err != nil {
		t.Errorf("valid state rejected: %v", err)
	}

	tests := []struct {
		name  string
		state State
	}{
		{"empty id", State{Items: []Item{{Label: "Milk", Quantity: 1}}}},
		{"blank label", State{Items: []Item{{ID: "a", Label: " ", Quantity: 1}}}},
		{"zero quantity", State{Items: []Item{{ID: "a", Label: "Milk"}}}},
		{"duplicate ids", State{Items: []Item{
			{ID: "a", Label: "Milk", Quantity: 1},
			{ID: "a", Label: "Bread", Quantity: 1},
		}}},
		{"unnormalized category", State{Items: []Item{
			{ID: "a", Label: "Milk", Quantity: 1, Categories: []string{"Dairy"}},
		}}},
	}

	for _, tt := range tests {
		if err := ValidateState(tt.state); err == nil {
			t.Errorf("%s: ValidateState() = nil, want error", tt.name)
		}
	}
}
