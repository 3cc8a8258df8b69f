package list

import (
	"fmt"
	"strings"
)

// ValidateState checks structural invariants of a rehydrated state. The store
// falls back to the empty state when this fails, so a corrupted database
// never takes the app down.
func ValidateState(s State) error {
	seen := make(map[string]bool, len(s.Items))
	for i, it := range s.Items {
		if it.ID == "" {
			return fmt.Errorf("item %d: empty id", i)
		}
		if seen[it.ID] {
			return fmt.Errorf("item %d: duplicate id %s", i, it.ID)
		}
		seen[it.ID] = true
		if strings.TrimSpace(it.Label) == "" {
			return fmt.Errorf("item %d: %w", i, ErrEmptyLabel)
		}
		if it.Quantity < 1 {
			return fmt.Errorf("item %d (%s): %w", i, it.Label, ErrBadQuantity)
		}
		for _, c := range it.Categories {
			if c != NormalizeCategory(c) {
				return fmt.Errorf("item %d (%s): category %q is not normalized", i, it.Label, c)
			}
		}
	}
	return nil
}
