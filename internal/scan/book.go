package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"texrepo/internal/fileutil"
)

// Canonical front-matter file stems, in spine order.
var FrontmatterOrder = []string{"title", "preface", "how_to_read", "toc"}

// Canonical back-matter file stems, in spine order.
var BackmatterOrder = []string{"scope_limits", "closing_notes"}

// Generated spine file names under the book build directory.
const (
	FrontmatterSpineName = "frontmatter_spine.tex"
	MainmatterSpineName  = "mainmatter_spine.tex"
)

// Subsection is one content file of a chapter, named <chapterOrdinal>-<k>.tex.
type Subsection struct {
	Index int
	Path  string
}

// Chapter is a numbered chapter directory inside a part.
type Chapter struct {
	NumberedEntity
	MarkerPath  string
	HasMarker   bool
	Subsections []Subsection
}

// Part is a numbered part directory under parts/parts.
type Part struct {
	NumberedEntity
	MarkerPath        string
	HasMarker         bool
	ChaptersDir       string
	HasChaptersDir    bool
	Chapters          []Chapter
	MalformedChapters []MalformedEntry
}

// BookTree is a read-only snapshot of the book subtree, recomputed on each
// scan.
type BookTree struct {
	Root          string
	EntryPath     string
	PartsDir      string
	PartsPartsDir string
	BuildDir      string
	AppendixDir   string

	Parts          []Part
	MalformedParts []MalformedEntry

	// Present canonical front/back-matter stems, in canonical order.
	FrontmatterFiles []string
	BackmatterFiles  []string
	// Appendix .tex files sorted by name.
	AppendixFiles []string
}

// FrontmatterDir returns the directory holding front-matter files.
func (t *BookTree) FrontmatterDir() string {
	return filepath.Join(t.PartsDir, "frontmatter")
}

// BackmatterDir returns the directory holding back-matter files.
func (t *BookTree) BackmatterDir() string {
	return filepath.Join(t.PartsDir, "backmatter")
}

// ScanBookTree resolves every part, chapter, and subsection file under
// bookRoot. Missing directories produce an empty (not nil-panicking) tree;
// the validator decides what is a violation.
func ScanBookTree(bookRoot string) (*BookTree, error) {
	tree := &BookTree{
		Root:          bookRoot,
		EntryPath:     filepath.Join(bookRoot, filepath.Base(bookRoot)+".tex"),
		PartsDir:      filepath.Join(bookRoot, "parts"),
		PartsPartsDir: filepath.Join(bookRoot, "parts", "parts"),
		BuildDir:      filepath.Join(bookRoot, "build"),
		AppendixDir:   filepath.Join(bookRoot, "parts", "appendix"),
	}

	if fileutil.IsDir(tree.PartsPartsDir) {
		parts, malformed, err := ScanNumberedChildren(tree.PartsPartsDir)
		if err != nil {
			return nil, fmt.Errorf("scan parts: %w", err)
		}
		tree.MalformedParts = malformed
		for _, entity := range parts {
			part, err := scanPart(entity)
			if err != nil {
				return nil, err
			}
			tree.Parts = append(tree.Parts, part)
		}
	}

	for _, stem := range FrontmatterOrder {
		if fileutil.IsFile(filepath.Join(tree.FrontmatterDir(), stem+".tex")) {
			tree.FrontmatterFiles = append(tree.FrontmatterFiles, stem)
		}
	}
	for _, stem := range BackmatterOrder {
		if fileutil.IsFile(filepath.Join(tree.BackmatterDir(), stem+".tex")) {
			tree.BackmatterFiles = append(tree.BackmatterFiles, stem)
		}
	}

	appendix, err := fileutil.ListTexFiles(tree.AppendixDir)
	if err != nil {
		return nil, fmt.Errorf("scan appendix: %w", err)
	}
	tree.AppendixFiles = appendix

	return tree, nil
}

func scanPart(entity NumberedEntity) (Part, error) {
	part := Part{
		NumberedEntity: entity,
		MarkerPath:     filepath.Join(entity.Path, "part.tex"),
		ChaptersDir:    filepath.Join(entity.Path, "chapters"),
	}
	part.HasMarker = fileutil.IsFile(part.MarkerPath)
	part.HasChaptersDir = fileutil.IsDir(part.ChaptersDir)
	if !part.HasChaptersDir {
		return part, nil
	}

	chapters, malformed, err := ScanNumberedChildren(part.ChaptersDir)
	if err != nil {
		return Part{}, fmt.Errorf("scan chapters of %s: %w", entity.Name(), err)
	}
	part.MalformedChapters = malformed
	for _, ch := range chapters {
		chapter, err := scanChapter(ch)
		if err != nil {
			return Part{}, err
		}
		part.Chapters = append(part.Chapters, chapter)
	}
	return part, nil
}

func scanChapter(entity NumberedEntity) (Chapter, error) {
	chapter := Chapter{
		NumberedEntity: entity,
		MarkerPath:     filepath.Join(entity.Path, "chapter.tex"),
	}
	chapter.HasMarker = fileutil.IsFile(chapter.MarkerPath)

	entries, err := os.ReadDir(entity.Path)
	if err != nil {
		return Chapter{}, fmt.Errorf("scan subsections of %s: %w", entity.Name(), err)
	}

	// Subsection files carry the unpadded chapter ordinal: 1-2.tex belongs
	// to chapter 01.
	pattern := regexp.MustCompile(`^` + strconv.Itoa(int(entity.Ordinal)) + `-(\d+)\.tex$`)
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		m := pattern.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		index, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		chapter.Subsections = append(chapter.Subsections, Subsection{
			Index: index,
			Path:  filepath.Join(entity.Path, entry.Name()),
		})
	}
	sort.Slice(chapter.Subsections, func(i, j int) bool {
		return chapter.Subsections[i].Index < chapter.Subsections[j].Index
	})
	return chapter, nil
}
