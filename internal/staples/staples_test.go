package staples

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadMissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "STAPLES.md"))

	content, err := store.Read()
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if content != "# Staples\n" {
		t.Errorf("Read() = %q, want default header", content)
	}
}

func TestAddAndEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "STAPLES.md")
	store := NewStore(path)

	if err := store.Add([]string{"Milk", "Bread", "  ", "milk"}); err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	entries, err := store.Entries()
	if err != nil {
		t.Fatalf("Entries() error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2 (blank and duplicate skipped): %v", len(entries), entries)
	}
	if entries[0] != "Milk" || entries[1] != "Bread" {
		t.Errorf("entries = %v", entries)
	}

	// Adding again is idempotent.
	if err := store.Add([]string{"MILK"}); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	entries, _ = store.Entries()
	if len(entries) != 2 {
		t.Errorf("got %d entries after duplicate add, want 2", len(entries))
	}
}

func TestRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "STAPLES.md")
	os.WriteFile(path, []byte("# Staples\n- Milk\n- Oat milk\n- Bread\n"), 0o644)

	store := NewStore(path)
	removed, err := store.Remove("milk")
	if err != nil {
		t.Fatalf("Remove() error: %v", err)
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}

	entries, _ := store.Entries()
	if len(entries) != 1 || entries[0] != "Bread" {
		t.Errorf("entries = %v, want [Bread]", entries)
	}

	removed, err = store.Remove("caviar")
	if err != nil {
		t.Fatalf("Remove() error: %v", err)
	}
	if removed != 0 {
		t.Errorf("removed = %d, want 0", removed)
	}
}

func TestMatching(t *testing.T) {
	path := filepath.Join(t.TempDir(), "STAPLES.md")
	os.WriteFile(path, []byte("# Staples\n- Apples\n- Apple juice\n- Bananas\n"), 0o644)

	store := NewStore(path)

	matches := store.Matching("app")
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2: %v", len(matches), matches)
	}
	for _, m := range matches {
		if !strings.HasPrefix(strings.ToLower(m), "app") {
			t.Errorf("match %q does not have prefix app", m)
		}
	}

	if got := store.Matching("ban"); len(got) != 1 || got[0] != "Bananas" {
		t.Errorf("Matching(ban) = %v, want [Bananas]", got)
	}
	if got := store.Matching(""); got != nil {
		t.Errorf("Matching(empty) = %v, want nil", got)
	}
	if got := store.Matching("zz"); got != nil {
		t.Errorf("Matching(zz) = %v, want nil", got)
	}
}
