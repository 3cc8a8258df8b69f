package list

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned by Apply so callers can phrase user-facing
// messages.
var (
	ErrNotFound    = errors.New("item not found")
	ErrEmptyLabel  = errors.New("label must not be empty")
	ErrBadQuantity = errors.New("quantity must be at least 1")
)

// Apply returns the state produced by applying the action. The input state is
// never mutated; on error it is returned unchanged.
func Apply(s State, a Action) (State, error) {
	switch act := a.(type) {
	case AddItem:
		label := strings.TrimSpace(act.Label)
		if label == "" {
			return s, ErrEmptyLabel
		}
		if act.Quantity < 1 {
			return s, ErrBadQuantity
		}
		next := s.Clone()
		// Re-adding an existing label bumps its quantity and brings the
		// item back onto the active list.
		if i, ok := next.FindLabel(label); ok {
			next.Items[i].Quantity += act.Quantity
			next.Items[i].Checked = false
			return next, nil
		}
		next.Items = append(next.Items, NewItem(label, act.Quantity))
		return next, nil

	case RemoveItem:
		next := s.Clone()
		i, ok := next.Find(act.ID)
		if !ok {
			return s, ErrNotFound
		}
		next.Items = append(next.Items[:i], next.Items[i+1:]...)
		return next, nil

	case ToggleItem:
		next := s.Clone()
		i, ok := next.Find(act.ID)
		if !ok {
			return s, ErrNotFound
		}
		next.Items[i].Checked = !next.Items[i].Checked
		return next, nil

	case SetQuantity:
		if act.Quantity < 1 {
			return s, ErrBadQuantity
		}
		next := s.Clone()
		i, ok := next.Find(act.ID)
		if !ok {
			return s, ErrNotFound
		}
		next.Items[i].Quantity = act.Quantity
		return next, nil

	case SetLabel:
		label := strings.TrimSpace(act.Label)
		if label == "" {
			return s, ErrEmptyLabel
		}
		next := s.Clone()
		i, ok := next.Find(act.ID)
		if !ok {
			return s, ErrNotFound
		}
		next.Items[i].Label = label
		return next, nil

	case SetNote:
		next := s.Clone()
		i, ok := next.Find(act.ID)
		if !ok {
			return s, ErrNotFound
		}
		next.Items[i].Note = strings.TrimSpace(act.Note)
		return next, nil

	case AddCategory:
		category := NormalizeCategory(act.Category)
		if category == "" {
			return s, ErrEmptyLabel
		}
		next := s.Clone()
		i, ok := next.Find(act.ID)
		if !ok {
			return s, ErrNotFound
		}
		if !next.Items[i].HasCategory(category) {
			next.Items[i].Categories = append(next.Items[i].Categories, category)
		}
		return next, nil

	case RemoveCategory:
		category := NormalizeCategory(act.Category)
		next := s.Clone()
		i, ok := next.Find(act.ID)
		if !ok {
			return s, ErrNotFound
		}
		cats := next.Items[i].Categories[:0]
		for _, c := range next.Items[i].Categories {
			if c != category {
				cats = append(cats, c)
			}
		}
		if len(cats) == 0 {
			cats = nil
		}
		next.Items[i].Categories = cats
		return next, nil

	case ClearChecked:
		next := s.Clone()
		kept := next.Items[:0]
		for _, it := range next.Items {
			if !it.Checked {
				kept = append(kept, it)
			}
		}
		next.Items = kept
		return next, nil

	case SetSearchInput:
		next := s.Clone()
		next.SearchInput = act.Text
		return next, nil

	case SetShowChecked:
		next := s.Clone()
		next.ShowChecked = act.Show
		return next, nil

	default:
		return s, fmt.Errorf("unknown action %T", a)
	}
}
