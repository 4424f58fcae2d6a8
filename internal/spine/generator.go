package spine

import (
	"fmt"
	"path/filepath"
	"strings"

	"texrepo/internal/faults"
	"texrepo/internal/scan"
)

// Generator builds spine documents from one scanned book tree.
type Generator struct {
	tree *scan.BookTree
}

func NewGenerator(tree *scan.BookTree) *Generator {
	return &Generator{tree: tree}
}

// Frontmatter generates the front-matter spine: one include per canonical
// front-matter file in canonical order, without the .tex extension. The
// full set is emitted whether or not the files exist, so a missing phase
// file surfaces at typeset time instead of silently vanishing. The
// document is self-checked before it is returned; a spine that would leak
// sectioning into the front matter is never emitted.
func (g *Generator) Frontmatter() (*Document, error) {
	doc := &Document{Name: scan.FrontmatterSpineName}
	for _, stem := range scan.FrontmatterOrder {
		doc.Directives = append(doc.Directives, includeDirective("parts/frontmatter/"+stem))
	}

	leaks, foreign := CheckFrontmatter(doc.Render())
	if len(leaks) > 0 || len(foreign) > 0 {
		detail := strings.Join(append(leaks, foreign...), ", ")
		return nil, faults.Wrap(faults.ErrSelfCheck, "spine", "frontmatter",
			fmt.Sprintf("generated spine failed its own phase check: %s", detail), nil)
	}
	return doc, nil
}

// Mainmatter generates the main-matter spine: part and chapter markers
// with resolved titles, prologue includes where the prologue files exist,
// subsection includes in index order, the appendix block when appendix
// files are present, and finally the back-matter includes in canonical
// order.
func (g *Generator) Mainmatter() (*Document, error) {
	doc := &Document{Name: scan.MainmatterSpineName}

	for _, part := range g.tree.Parts {
		title, warning := resolveTitle(part.Path, part.Slug)
		if warning != "" {
			doc.Warnings = append(doc.Warnings, warning)
		}
		doc.Directives = append(doc.Directives, markerDirective("part", title))
		if part.HasMarker {
			doc.Directives = append(doc.Directives, includeDirective(g.relTarget(part.MarkerPath)))
		}

		for _, chapter := range part.Chapters {
			title, warning := resolveTitle(chapter.Path, chapter.Slug)
			if warning != "" {
				doc.Warnings = append(doc.Warnings, warning)
			}
			doc.Directives = append(doc.Directives, markerDirective("chapter", title))
			if chapter.HasMarker {
				doc.Directives = append(doc.Directives, includeDirective(g.relTarget(chapter.MarkerPath)))
			}
			for _, sub := range chapter.Subsections {
				doc.Directives = append(doc.Directives, includeDirective(g.relTarget(sub.Path)))
			}
		}
	}

	if len(g.tree.AppendixFiles) > 0 {
		doc.Directives = append(doc.Directives, markerDirective("appendix", ""))
		for _, path := range g.tree.AppendixFiles {
			doc.Directives = append(doc.Directives, includeDirective(g.relTarget(path)))
		}
	}

	for _, stem := range scan.BackmatterOrder {
		doc.Directives = append(doc.Directives, includeDirective("parts/backmatter/"+stem))
	}

	if err := g.verifyMainmatter(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// verifyMainmatter re-checks the generated document against the tree:
// exactly one chapter marker per scanned chapter, with part and chapter
// ordinals strictly ascending.
func (g *Generator) verifyMainmatter(doc *Document) error {
	expected := 0
	lastPart := uint16(0)
	for _, part := range g.tree.Parts {
		if part.Ordinal <= lastPart && lastPart != 0 {
			return faults.Wrap(faults.ErrSelfCheck, "spine", "mainmatter",
				fmt.Sprintf("part %s out of order", part.Name()), nil)
		}
		lastPart = part.Ordinal
		lastChapter := uint16(0)
		for _, chapter := range part.Chapters {
			if chapter.Ordinal <= lastChapter && lastChapter != 0 {
				return faults.Wrap(faults.ErrSelfCheck, "spine", "mainmatter",
					fmt.Sprintf("chapter %s out of order", chapter.Name()), nil)
			}
			lastChapter = chapter.Ordinal
			expected++
		}
	}

	emitted := 0
	for _, dir := range doc.Directives {
		if dir.Marker == "chapter" {
			emitted++
		}
	}
	if emitted != expected {
		return faults.Wrap(faults.ErrSelfCheck, "spine", "mainmatter",
			fmt.Sprintf("emitted %d chapter markers for %d chapters", emitted, expected), nil)
	}
	return nil
}

func (g *Generator) relTarget(path string) string {
	rel, err := filepath.Rel(g.tree.Root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
