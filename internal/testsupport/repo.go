// Package testsupport builds fixture repositories for tests.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile creates path with content, making parent directories as needed.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// MkDirs creates every directory in paths.
func MkDirs(t testing.TB, paths ...string) {
	t.Helper()
	for _, p := range paths {
		if err := os.MkdirAll(p, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", p, err)
		}
	}
}

// RepoOption customizes the generated fixture repository.
type RepoOption func(*repoBuilder)

type repoBuilder struct {
	t    testing.TB
	root string
}

// EntryContent is the canonical book entry fixture used across tests.
const EntryContent = `\documentclass{book}
\begin{document}
\frontmatter
\input{build/frontmatter_spine}
\mainmatter
\input{build/mainmatter_spine}
\backmatter
\end{document}
`

// NewWorldFirstRepo builds a complete, violation-free world-first
// repository in a temp directory: an introduction book with one part and
// one chapter, one paper, and all four stage directories.
func NewWorldFirstRepo(t testing.TB, opts ...RepoOption) string {
	t.Helper()
	root := t.TempDir()
	book := filepath.Join(root, "00_introduction")

	WriteFile(t, filepath.Join(book, "00_introduction.tex"), EntryContent)
	WriteFile(t, filepath.Join(book, "build", "frontmatter_spine.tex"),
		"\\input{parts/frontmatter/title}\n")
	WriteFile(t, filepath.Join(book, "build", "mainmatter_spine.tex"),
		"\\chapter{Basic Notions}\n")
	for _, stem := range []string{"title", "preface", "how_to_read", "toc"} {
		WriteFile(t, filepath.Join(book, "parts", "frontmatter", stem+".tex"), "% "+stem+"\n")
	}
	for _, stem := range []string{"scope_limits", "closing_notes"} {
		WriteFile(t, filepath.Join(book, "parts", "backmatter", stem+".tex"), "% "+stem+"\n")
	}

	part := filepath.Join(book, "parts", "parts", "01_foundations")
	chapter := filepath.Join(part, "chapters", "01_basic_notions")
	WriteFile(t, filepath.Join(part, "part.tex"), "% Part: Foundations\n")
	WriteFile(t, filepath.Join(chapter, "chapter.tex"), "% Chapter: Basic Notions\n")
	WriteFile(t, filepath.Join(chapter, "1-1.tex"), "\\section{Opening}\n")

	AddPaper(t, root, "01_process_regime/process", "00_entropy")

	MkDirs(t,
		filepath.Join(root, "02_function_application"),
		filepath.Join(root, "03_hypothesis"),
	)

	builder := &repoBuilder{t: t, root: root}
	for _, opt := range opts {
		opt(builder)
	}
	return root
}

// AddPaper creates a complete paper under <root>/<branch>/papers/<name>.
func AddPaper(t testing.TB, root, branch, name string) string {
	t.Helper()
	paper := filepath.Join(root, filepath.FromSlash(branch), "papers", name)
	WriteFile(t, filepath.Join(paper, name+".tex"), "\\documentclass{article}\n")
	WriteFile(t, filepath.Join(paper, "refs.bib"), "")
	WriteFile(t, filepath.Join(paper, "README.md"), "# "+name+"\n")
	MkDirs(t, filepath.Join(paper, "sections"), filepath.Join(paper, "build"))
	return paper
}

// WithConfig writes a .texrepo.toml at the fixture root.
func WithConfig(content string) RepoOption {
	return func(b *repoBuilder) {
		WriteFile(b.t, filepath.Join(b.root, ".texrepo.toml"), content)
	}
}
