package scan_test

import (
	"os"
	"path/filepath"
	"testing"

	"texrepo/internal/layout"
	"texrepo/internal/scan"
)

func mkdirs(t *testing.T, paths ...string) {
	t.Helper()
	for _, p := range paths {
		if err := os.MkdirAll(p, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", p, err)
		}
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestScanNumberedChildrenSortsAndReportsMalformed(t *testing.T) {
	dir := t.TempDir()
	mkdirs(t,
		filepath.Join(dir, "02_second"),
		filepath.Join(dir, "01_first"),
		filepath.Join(dir, "badname"),
		filepath.Join(dir, "3_short"),
	)
	writeFile(t, filepath.Join(dir, "stray.txt"), "not a dir")

	numbered, malformed, err := scan.ScanNumberedChildren(dir)
	if err != nil {
		t.Fatalf("ScanNumberedChildren: %v", err)
	}

	if len(numbered) != 2 {
		t.Fatalf("expected 2 numbered entities, got %d", len(numbered))
	}
	if numbered[0].Ordinal != 1 || numbered[0].Slug != "first" {
		t.Fatalf("first entity = %+v", numbered[0])
	}
	if numbered[1].Ordinal != 2 || numbered[1].Slug != "second" {
		t.Fatalf("second entity = %+v", numbered[1])
	}

	if len(malformed) != 2 {
		t.Fatalf("expected 2 malformed entries, got %v", malformed)
	}
	if malformed[0].Name != "3_short" || malformed[1].Name != "badname" {
		t.Fatalf("malformed = %v", malformed)
	}
}

func TestScanBookTree(t *testing.T) {
	book := t.TempDir()
	chapters := filepath.Join(book, "parts", "parts", "01_foundations", "chapters")
	writeFile(t, filepath.Join(book, "parts", "parts", "01_foundations", "part.tex"), "% part prologue\n")
	writeFile(t, filepath.Join(chapters, "01_first", "chapter.tex"), "% prologue\n")
	writeFile(t, filepath.Join(chapters, "01_first", "1-2.tex"), "two\n")
	writeFile(t, filepath.Join(chapters, "01_first", "1-1.tex"), "one\n")
	writeFile(t, filepath.Join(chapters, "01_first", "2-1.tex"), "wrong chapter\n")
	writeFile(t, filepath.Join(chapters, "02_second", "2-1.tex"), "only section\n")
	for _, stem := range []string{"title", "preface", "how_to_read", "toc"} {
		writeFile(t, filepath.Join(book, "parts", "frontmatter", stem+".tex"), "%\n")
	}
	writeFile(t, filepath.Join(book, "parts", "backmatter", "scope_limits.tex"), "%\n")
	writeFile(t, filepath.Join(book, "parts", "appendix", "glossary.tex"), "%\n")

	tree, err := scan.ScanBookTree(book)
	if err != nil {
		t.Fatalf("ScanBookTree: %v", err)
	}

	if len(tree.Parts) != 1 {
		t.Fatalf("expected 1 part, got %d", len(tree.Parts))
	}
	part := tree.Parts[0]
	if !part.HasMarker {
		t.Fatal("part.tex should be detected")
	}
	if len(part.Chapters) != 2 {
		t.Fatalf("expected 2 chapters, got %d", len(part.Chapters))
	}

	first := part.Chapters[0]
	if !first.HasMarker {
		t.Fatal("chapter.tex should be detected")
	}
	if len(first.Subsections) != 2 {
		t.Fatalf("chapter 01 subsections = %+v, want the two 1-*.tex files", first.Subsections)
	}
	if first.Subsections[0].Index != 1 || first.Subsections[1].Index != 2 {
		t.Fatalf("subsections out of order: %+v", first.Subsections)
	}

	second := part.Chapters[1]
	if second.HasMarker {
		t.Fatal("chapter 02 has no chapter.tex")
	}
	if len(second.Subsections) != 1 || second.Subsections[0].Index != 1 {
		t.Fatalf("chapter 02 subsections = %+v", second.Subsections)
	}

	if len(tree.FrontmatterFiles) != 4 {
		t.Fatalf("frontmatter files = %v", tree.FrontmatterFiles)
	}
	if len(tree.BackmatterFiles) != 1 || tree.BackmatterFiles[0] != "scope_limits" {
		t.Fatalf("backmatter files = %v", tree.BackmatterFiles)
	}
	if len(tree.AppendixFiles) != 1 || filepath.Base(tree.AppendixFiles[0]) != "glossary.tex" {
		t.Fatalf("appendix files = %v", tree.AppendixFiles)
	}
}

func TestScanBookTreeEmpty(t *testing.T) {
	tree, err := scan.ScanBookTree(t.TempDir())
	if err != nil {
		t.Fatalf("ScanBookTree on empty dir: %v", err)
	}
	if len(tree.Parts) != 0 || len(tree.FrontmatterFiles) != 0 {
		t.Fatalf("expected empty tree, got %+v", tree)
	}
}

func TestDiscoverPapers(t *testing.T) {
	root := t.TempDir()
	lay := layout.For(layout.KindWorldFirst)

	named := filepath.Join(root, "01_process_regime", "process", "papers", "00_entropy")
	writeFile(t, filepath.Join(named, "00_entropy.tex"), "\\documentclass{article}\n")

	legacy := filepath.Join(root, "02_function_application", "function", "papers", "00_solver")
	writeFile(t, filepath.Join(legacy, "main.tex"), "\\documentclass{article}\n")

	// A spine-like file inside a build tree must not register as a paper.
	writeFile(t, filepath.Join(named, "build", "build.tex"), "%\n")

	// Files under the book root are out of bounds for discovery.
	writeFile(t, filepath.Join(root, "00_introduction", "00_introduction.tex"), "%\n")

	papers, err := scan.DiscoverPapers(root, lay)
	if err != nil {
		t.Fatalf("DiscoverPapers: %v", err)
	}
	if len(papers) != 2 {
		t.Fatalf("expected 2 papers, got %+v", papers)
	}
	if papers[0].Path != named || papers[0].LegacyEntry {
		t.Fatalf("first paper = %+v", papers[0])
	}
	if papers[1].Path != legacy || !papers[1].LegacyEntry {
		t.Fatalf("second paper = %+v", papers[1])
	}
}

func TestDiscoverPapersPrefersNamedEntry(t *testing.T) {
	root := t.TempDir()
	lay := layout.For(layout.KindWorldFirst)

	paper := filepath.Join(root, "03_hypothesis", "papers", "00_claim")
	writeFile(t, filepath.Join(paper, "main.tex"), "%\n")
	writeFile(t, filepath.Join(paper, "00_claim.tex"), "%\n")

	papers, err := scan.DiscoverPapers(root, lay)
	if err != nil {
		t.Fatalf("DiscoverPapers: %v", err)
	}
	if len(papers) != 1 {
		t.Fatalf("expected 1 paper, got %+v", papers)
	}
	if papers[0].LegacyEntry || filepath.Base(papers[0].EntryPath) != "00_claim.tex" {
		t.Fatalf("expected the named entry to win, got %+v", papers[0])
	}
}

func TestInsidePapersContainer(t *testing.T) {
	if !scan.InsidePapersContainer(filepath.Join("x", "papers", "00_alpha")) {
		t.Fatal("expected papers container to be recognized")
	}
	if scan.InsidePapersContainer(filepath.Join("x", "process", "00_alpha")) {
		t.Fatal("a branch dir is not a papers container")
	}
}
