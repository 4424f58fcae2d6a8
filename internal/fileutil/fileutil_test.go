package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteTextAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spine.tex")

	if err := WriteTextAtomic(path, "first\n"); err != nil {
		t.Fatal(err)
	}
	if err := WriteTextAtomic(path, "second\n"); err != nil {
		t.Fatal(err)
	}

	got, err := ReadText(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != "second\n" {
		t.Fatalf("content = %q, want %q", got, "second\n")
	}

	// No temp files may survive a successful write.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the target file in %s, found %d entries", dir, len(entries))
	}
}

func TestExistsAndKinds(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !Exists(dir) || !Exists(file) {
		t.Fatal("Exists should be true for present paths")
	}
	if Exists(filepath.Join(dir, "missing")) {
		t.Fatal("Exists should be false for absent paths")
	}
	if !IsDir(dir) || IsDir(file) {
		t.Fatal("IsDir misclassified")
	}
	if !IsFile(file) || IsFile(dir) {
		t.Fatal("IsFile misclassified")
	}
}

func TestListTexFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.tex", "a.tex", "notes.md"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.MkdirAll(filepath.Join(dir, "sub.tex"), 0o755); err != nil {
		t.Fatal(err)
	}

	files, err := ListTexFiles(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 .tex files, got %v", files)
	}
	if filepath.Base(files[0]) != "a.tex" || filepath.Base(files[1]) != "b.tex" {
		t.Fatalf("unexpected order: %v", files)
	}

	missing, err := ListTexFiles(filepath.Join(dir, "absent"))
	if err != nil || missing != nil {
		t.Fatalf("missing dir should yield nil, nil; got %v, %v", missing, err)
	}
}
