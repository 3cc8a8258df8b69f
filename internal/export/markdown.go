// Package export renders the shopping list as markdown, grouped by category.
package export

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/cartling/cartling/internal/list"
)

// DefaultFilename is the file written when no path is given.
const DefaultFilename = "shopping-list.md"

// Render returns the list as a markdown document. Items are grouped under
// their first category (sorted alphabetically), uncategorized items last.
func Render(st list.State) string {
	groups := make(map[string][]list.Item)
	var uncategorized []list.Item

	for _, it := range st.Items {
		if !st.ShowChecked && it.Checked {
			continue
		}
		if len(it.Categories) == 0 {
			uncategorized = append(uncategorized, it)
			continue
		}
		key := it.Categories[0]
		groups[key] = append(groups[key], it)
	}

	categories := make([]string, 0, len(groups))
	for c := range groups {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	var b strings.Builder
	b.WriteString("# Shopping List\n")

	for _, c := range categories {
		fmt.Fprintf(&b, "\n## %s\n\n", titleCase(c))
		for _, it := range groups[c] {
			b.WriteString(renderItem(it))
		}
	}

	if len(uncategorized) > 0 {
		if len(categories) > 0 {
			b.WriteString("\n## Other\n\n")
		} else {
			b.WriteString("\n")
		}
		for _, it := range uncategorized {
			b.WriteString(renderItem(it))
		}
	}

	return b.String()
}

func renderItem(it list.Item) string {
	box := " "
	if it.Checked {
		box = "x"
	}
	line := fmt.Sprintf("- [%s] %s", box, it.Label)
	if it.Quantity > 1 {
		line = fmt.Sprintf("- [%s] %d × %s", box, it.Quantity, it.Label)
	}
	if it.Note != "" {
		line += " (" + it.Note + ")"
	}
	return line + "\n"
}

// titleCase upper-cases the first rune of a (normalized lowercase) category.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}

// WriteFile renders the list and writes it to path.
func WriteFile(st list.State, path string) error {
	return os.WriteFile(path, []byte(Render(st)), 0o644)
}
