// Package staples manages STAPLES.md, the user's list of frequently-bought
// items. Staples feed the autocomplete dropdown ahead of remote API results.
package staples

import (
	"os"
	"strings"
)

// Store manages the STAPLES.md file.
type Store struct {
	path string
}

// NewStore creates a staples store for the given STAPLES.md path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Read returns the full content of STAPLES.md.
func (s *Store) Read() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "# Staples\n", nil
		}
		return "", err
	}
	return string(data), nil
}

// Entries returns all staple item names (bullet points, stripped).
func (s *Store) Entries() ([]string, error) {
	content, err := s.Read()
	if err != nil {
		return nil, err
	}

	var entries []string
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "- ") {
			entries = append(entries, strings.TrimSpace(line[2:]))
		}
	}
	return entries, nil
}

// Add appends items as bullet points, skipping blanks and case-insensitive
// duplicates.
func (s *Store) Add(items []string) error {
	if len(items) == 0 {
		return nil
	}

	existing, err := s.Entries()
	if err != nil {
		return err
	}
	have := make(map[string]bool, len(existing))
	for _, e := range existing {
		have[strings.ToLower(e)] = true
	}

	content, err := s.Read()
	if err != nil {
		return err
	}

	var builder strings.Builder
	builder.WriteString(content)
	if !strings.HasSuffix(content, "\n") {
		builder.WriteString("\n")
	}

	added := false
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" || have[strings.ToLower(item)] {
			continue
		}
		have[strings.ToLower(item)] = true
		builder.WriteString("- " + item + "\n")
		added = true
	}
	if !added {
		return nil
	}

	return os.WriteFile(s.path, []byte(builder.String()), 0o644)
}

// Remove deletes all staples containing the keyword and returns how many
// were removed.
func (s *Store) Remove(keyword string) (int, error) {
	content, err := s.Read()
	if err != nil {
		return 0, err
	}

	keyword = strings.ToLower(keyword)
	lines := strings.Split(content, "\n")
	var kept []string
	removed := 0

	for _, line := range lines {
		if strings.HasPrefix(line, "- ") && strings.Contains(strings.ToLower(line), keyword) {
			removed++
			continue
		}
		kept = append(kept, line)
	}

	if removed == 0 {
		return 0, nil
	}

	return removed, os.WriteFile(s.path, []byte(strings.Join(kept, "\n")), 0o644)
}

// Matching returns staples whose name starts with the prefix,
// case-insensitively.
func (s *Store) Matching(prefix string) []string {
	entries, err := s.Entries()
	if err != nil {
		return nil
	}

	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return nil
	}

	var matches []string
	for _, e := range entries {
		if strings.HasPrefix(strings.ToLower(e), prefix) {
			matches = append(matches, e)
		}
	}
	return matches
}
