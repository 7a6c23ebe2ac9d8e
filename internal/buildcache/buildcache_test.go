package buildcache

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestHashIsStableAndContentSensitive(t *testing.T) {
	a := Hash([]byte("def f(): i32 => 1"))
	b := Hash([]byte("def f(): i32 => 1"))
	c := Hash([]byte("def f(): i32 => 2"))
	if a != b {
		t.Fatalf("expected identical content to hash identically, got %s vs %s", a, b)
	}
	if a == c {
		t.Fatalf("expected different content to hash differently")
	}
}

func TestRecordAndLookup(t *testing.T) {
	c, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error opening cache: %v", err)
	}
	hash := Hash([]byte("source"))
	if _, ok := c.Lookup(hash); ok {
		t.Fatalf("expected a fresh cache to have no entries")
	}
	c.Record(hash, "main", true, 6)
	entry, ok := c.Lookup(hash)
	if !ok || !entry.Clean || entry.Module != "main" || entry.Size != 6 {
		t.Fatalf("unexpected entry after Record: %+v (ok=%v)", entry, ok)
	}
}

func TestSavePersistsAcrossOpen(t *testing.T) {
	dir := t.TempDir()
	c1, err := Open(dir)
	if err != nil {
		t.Fatalf("unexpected error opening cache: %v", err)
	}
	hash := Hash([]byte("source"))
	c1.Record(hash, "main", true, 6)
	if err := c1.Save(); err != nil {
		t.Fatalf("unexpected error saving cache: %v", err)
	}

	c2, err := Open(dir)
	if err != nil {
		t.Fatalf("unexpected error reopening cache: %v", err)
	}
	entry, ok := c2.Lookup(hash)
	if !ok || entry.Module != "main" {
		t.Fatalf("expected the reopened cache to recover the saved entry, got %+v (ok=%v)", entry, ok)
	}
}

func TestSaveIsNoOpWithoutChanges(t *testing.T) {
	dir := t.TempDir()
	c, err := Open(dir)
	if err != nil {
		t.Fatalf("unexpected error opening cache: %v", err)
	}
	if err := c.Save(); err != nil {
		t.Fatalf("unexpected error on no-op save: %v", err)
	}
	if _, err := Open(filepath.Join(dir)); err != nil {
		t.Fatalf("unexpected error reopening untouched cache dir: %v", err)
	}
}

func TestSummaryReportsCounts(t *testing.T) {
	c, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error opening cache: %v", err)
	}
	c.Record(Hash([]byte("a")), "a", true, 1024)
	c.Record(Hash([]byte("b")), "b", false, 2048)
	summary := c.Summary()
	if summary == "" {
		t.Fatalf("expected a non-empty summary")
	}
	if !strings.Contains(summary, "2 cached file(s), 1 clean") {
		t.Fatalf("expected the summary to count 2 files with 1 clean, got %q", summary)
	}
}
