package history

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRecordInMemory(t *testing.T) {
	l := NewAt("")
	l.Record("first")
	l.Record("second")
	lines := l.Lines()
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if !strings.HasSuffix(lines[0], "first") || !strings.HasSuffix(lines[1], "second") {
		t.Errorf("lines = %v", lines)
	}
	if !strings.HasPrefix(lines[0], "[") {
		t.Errorf("line %q has no timestamp prefix", lines[0])
	}
}

func TestRecordAppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit", "operations.txt")
	l := NewAt(path)
	l.Record("one")
	l.Record("two")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read audit file: %v", err)
	}
	got := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(got) != 2 {
		t.Fatalf("file lines = %d, want 2", len(got))
	}
	if !strings.HasSuffix(got[1], "two") {
		t.Errorf("file lines = %v", got)
	}
}

func TestRecordUnwritablePathKeepsMemoryTrail(t *testing.T) {
	// A regular file where the directory should be makes every open fail.
	dir := t.TempDir()
	block := filepath.Join(dir, "block")
	if err := os.WriteFile(block, nil, 0644); err != nil {
		t.Fatal(err)
	}
	l := NewAt(filepath.Join(block, "operations.txt"))
	l.Record("one")
	l.Record("two")

	lines := l.Lines()
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2 despite unwritable path", len(lines))
	}
	if !strings.HasSuffix(lines[1], "two") {
		t.Errorf("lines = %v", lines)
	}
}

func TestLinesReturnsCopy(t *testing.T) {
	l := NewAt("")
	l.Record("x")
	lines := l.Lines()
	lines[0] = "mutated"
	if l.Lines()[0] == "mutated" {
		t.Error("Lines exposes internal storage")
	}
}
