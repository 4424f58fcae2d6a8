package layout_test

import (
	"os"
	"path/filepath"
	"testing"

	"texrepo/internal/layout"
)

func TestFromNameAliases(t *testing.T) {
	tests := map[string]layout.Kind{
		"staged":      layout.KindStaged,
		"old":         layout.KindStaged,
		"world-first": layout.KindWorldFirst,
		"world_first": layout.KindWorldFirst,
		"new":         layout.KindWorldFirst,
	}
	for name, want := range tests {
		l, ok := layout.FromName(name)
		if !ok {
			t.Fatalf("FromName(%q) not recognized", name)
		}
		if l.Kind() != want {
			t.Fatalf("FromName(%q).Kind() = %v, want %v", name, l.Kind(), want)
		}
	}

	if _, ok := layout.FromName("bogus"); ok {
		t.Fatal("FromName(\"bogus\") should not resolve")
	}
}

func TestDetectWorldFirst(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "00_introduction"), 0o755); err != nil {
		t.Fatal(err)
	}
	if got := layout.Detect(root).Kind(); got != layout.KindWorldFirst {
		t.Fatalf("Detect = %v, want world-first", got)
	}
}

func TestDetectStaged(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "00_world"), 0o755); err != nil {
		t.Fatal(err)
	}
	if got := layout.Detect(root).Kind(); got != layout.KindStaged {
		t.Fatalf("Detect = %v, want staged", got)
	}
}

func TestDetectEmptyDefaultsToWorldFirst(t *testing.T) {
	if got := layout.Detect(t.TempDir()).Kind(); got != layout.KindWorldFirst {
		t.Fatalf("Detect on empty dir = %v, want world-first", got)
	}
}

func TestWorldFirstRoles(t *testing.T) {
	l := layout.For(layout.KindWorldFirst)
	if !l.HasBook() || l.BookDir() != "00_introduction" {
		t.Fatalf("unexpected book dir: %q", l.BookDir())
	}
	roots := l.StageRoots()
	if len(roots) != 3 || roots[0] != "01_process_regime" {
		t.Fatalf("unexpected stage roots: %v", roots)
	}
	branches := l.Branches("01_process_regime")
	if len(branches) != 2 || branches[0] != "process" || branches[1] != "regime" {
		t.Fatalf("unexpected branches: %v", branches)
	}
	if b := l.Branches("03_hypothesis"); len(b) != 0 {
		t.Fatalf("expected no branches for hypothesis stage, got %v", b)
	}
}

func TestStagedHasNoBook(t *testing.T) {
	l := layout.For(layout.KindStaged)
	if l.HasBook() {
		t.Fatal("staged layout should not have a book")
	}
	allowed := l.AllowedTopLevel()
	for _, want := range []string{"00_world", "shared", "releases"} {
		if _, ok := allowed[want]; !ok {
			t.Fatalf("AllowedTopLevel missing %q", want)
		}
	}
}

func TestEntryCandidates(t *testing.T) {
	got := layout.EntryCandidates(filepath.Join("02_function_application", "function", "papers", "01_solver"))
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
	if filepath.Base(got[0]) != "01_solver.tex" {
		t.Fatalf("preferred candidate = %q, want 01_solver.tex", got[0])
	}
	if filepath.Base(got[1]) != "main.tex" {
		t.Fatalf("legacy candidate = %q, want main.tex", got[1])
	}
}
