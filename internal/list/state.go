package list

import "strings"

// State is the full persisted application state.
type State struct {
	Items       []Item `json:"items"`
	SearchInput string `json:"search_input"`
	ShowChecked bool   `json:"show_checked"`
}

// Empty returns the zero-value state used on first run and as the
// rehydration fallback.
func Empty() State {
	return State{ShowChecked: true}
}

// Clone returns a deep copy. The reducer never mutates its input state.
func (s State) Clone() State {
	next := s
	next.Items = make([]Item, len(s.Items))
	copy(next.Items, s.Items)
	for i := range next.Items {
		if len(s.Items[i].Categories) > 0 {
			next.Items[i].Categories = append([]string(nil), s.Items[i].Categories...)
		}
	}
	return next
}

// Find returns the index of the item with the given ID.
func (s State) Find(id string) (int, bool) {
	for i, it := range s.Items {
		if it.ID == id {
			return i, true
		}
	}
	return 0, false
}

// FindLabel returns the index of the item whose label matches
// case-insensitively.
func (s State) FindLabel(label string) (int, bool) {
	label = strings.ToLower(strings.TrimSpace(label))
	for i, it := range s.Items {
		if strings.ToLower(it.Label) == label {
			return i, true
		}
	}
	return 0, false
}

// CheckedCount returns the number of checked-off items.
func (s State) CheckedCount() int {
	n := 0
	for _, it := range s.Items {
		if it.Checked {
			n++
		}
	}
	return n
}
