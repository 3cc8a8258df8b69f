package list

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Item is a single entry on the shopping list.
type Item struct {
	ID         string    `json:"id"`
	Label      string    `json:"label"`
	Quantity   int       `json:"quantity"`
	Checked    bool      `json:"checked"`
	Note       string    `json:"note,omitempty"`
	Categories []string  `json:"categories,omitempty"`
	AddedAt    time.Time `json:"added_at"`
}

// NewItem creates an unchecked item with a fresh ID.
func NewItem(label string, quantity int) Item {
	return Item{
		ID:       uuid.NewString(),
		Label:    label,
		Quantity: quantity,
		AddedAt:  time.Now(),
	}
}

// HasCategory reports whether the item carries the given (normalized) tag.
func (it Item) HasCategory(category string) bool {
	category = NormalizeCategory(category)
	for _, c := range it.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// NormalizeCategory lowercases and trims a category tag.
func NormalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}
