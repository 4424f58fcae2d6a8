// Package repair turns violations into filesystem fixes. Repairs are
// strictly additive: the engine creates missing directories and
// placeholder files but never renames, rewrites, or deletes anything a
// human authored. Violations without a safe mechanical remedy are
// reported as skipped.
package repair

import (
	"fmt"
	"path/filepath"
	"strings"

	"texrepo/internal/fileutil"
	"texrepo/internal/naming"
	"texrepo/internal/scan"
	"texrepo/internal/spine"
	"texrepo/internal/validate"
)

// ActionKind classifies the outcome of one remedy attempt.
type ActionKind int

const (
	// Created means the missing path was written.
	Created ActionKind = iota
	// WouldCreate is the dry-run form of Created.
	WouldCreate
	// Skipped means no remedy applies or the path already exists.
	Skipped
	// Warning means a remedy was attempted and failed; the run continues.
	Warning
)

func (k ActionKind) String() string {
	switch k {
	case Created:
		return "created"
	case WouldCreate:
		return "would create"
	case Skipped:
		return "skipped"
	case Warning:
		return "warning"
	default:
		return fmt.Sprintf("ActionKind(%d)", int(k))
	}
}

// Action records what the engine did (or would do) for one violation.
type Action struct {
	Kind   ActionKind
	Code   validate.Code
	Path   string
	Detail string
}

// Engine applies remedies under one repository root.
type Engine struct {
	root   string
	dryRun bool
}

func New(root string, dryRun bool) *Engine {
	return &Engine{root: root, dryRun: dryRun}
}

// Run walks the violation list in order and applies one remedy per
// violation. A filesystem failure on one item downgrades to a warning so
// the remaining repairs still run. Running twice is safe: everything the
// first pass created is reported as skipped by the second.
func (e *Engine) Run(violations []validate.Violation) ([]Action, error) {
	actions := make([]Action, 0, len(violations))
	for _, v := range violations {
		actions = append(actions, e.apply(v))
	}
	return actions, nil
}

func (e *Engine) apply(v validate.Violation) Action {
	abs := filepath.Join(e.root, filepath.FromSlash(v.Path))

	switch v.Code {
	case validate.CodeStageDirMissing,
		validate.CodeWorldDirMissing,
		validate.CodeBookBuildDirMissing,
		validate.CodeBookPartsDirMissing,
		validate.CodeBookPartsPartsDirMissing,
		validate.CodeBookFrontmatterDirMissing,
		validate.CodeBookBackmatterDirMissing,
		validate.CodeBookChaptersDirMissing,
		validate.CodePaperSectionsDirMissing,
		validate.CodePaperBuildDirMissing:
		return e.createDir(v, abs)

	case validate.CodeBookRootMissing:
		return e.createBookSkeleton(v, abs)

	case validate.CodeBookFrontmatterFileMissing, validate.CodeBookBackmatterFileMissing:
		stem := strings.TrimSuffix(filepath.Base(abs), ".tex")
		return e.createFile(v, abs, matterPlaceholder(stem))

	case validate.CodeBookEntryMissing:
		return e.createFile(v, abs, bookEntryTemplate)

	case validate.CodeBookFrontSpineMissing, validate.CodeBookMainSpineMissing:
		doc := &spine.Document{Name: filepath.Base(abs)}
		return e.createFile(v, abs, doc.Render())

	case validate.CodeBookPartTexMissing:
		return e.createFile(v, abs, prologuePlaceholder("Part", filepath.Dir(abs)))

	case validate.CodeBookChapterTexMissing:
		return e.createFile(v, abs, prologuePlaceholder("Chapter", filepath.Dir(abs)))

	case validate.CodePaperEntryMissing:
		name := filepath.Base(abs)
		return e.createFile(v, filepath.Join(abs, name+".tex"), paperEntryTemplate)

	case validate.CodePaperRefsMissing:
		return e.createFile(v, abs, "")

	case validate.CodePaperReadmeMissing:
		_, slug, ok := naming.ParseOrdinalSlug(filepath.Base(filepath.Dir(abs)))
		title := filepath.Base(filepath.Dir(abs))
		if ok {
			title = naming.Title(slug)
		}
		return e.createFile(v, abs, fmt.Sprintf("# %s\n", title))

	default:
		return Action{
			Kind:   Skipped,
			Code:   v.Code,
			Path:   v.Path,
			Detail: "no automatic remedy; resolve by hand",
		}
	}
}

func (e *Engine) createDir(v validate.Violation, abs string) Action {
	if fileutil.IsDir(abs) {
		return Action{Kind: Skipped, Code: v.Code, Path: v.Path, Detail: "already present"}
	}
	if e.dryRun {
		return Action{Kind: WouldCreate, Code: v.Code, Path: v.Path, Detail: "directory"}
	}
	if err := fileutil.EnsureDir(abs); err != nil {
		return Action{Kind: Warning, Code: v.Code, Path: v.Path, Detail: err.Error()}
	}
	return Action{Kind: Created, Code: v.Code, Path: v.Path, Detail: "directory"}
}

func (e *Engine) createFile(v validate.Violation, abs, content string) Action {
	if fileutil.Exists(abs) {
		return Action{Kind: Skipped, Code: v.Code, Path: v.Path, Detail: "already present"}
	}
	if e.dryRun {
		return Action{Kind: WouldCreate, Code: v.Code, Path: v.Path, Detail: "placeholder file"}
	}
	if err := fileutil.EnsureDir(filepath.Dir(abs)); err != nil {
		return Action{Kind: Warning, Code: v.Code, Path: v.Path, Detail: err.Error()}
	}
	if err := fileutil.WriteTextAtomic(abs, content); err != nil {
		return Action{Kind: Warning, Code: v.Code, Path: v.Path, Detail: err.Error()}
	}
	return Action{Kind: Created, Code: v.Code, Path: v.Path, Detail: "placeholder file"}
}

// createBookSkeleton builds the full canonical book tree in one pass so a
// missing book does not need repeated fix runs to converge.
func (e *Engine) createBookSkeleton(v validate.Violation, bookRoot string) Action {
	if e.dryRun {
		return Action{Kind: WouldCreate, Code: v.Code, Path: v.Path, Detail: "book skeleton"}
	}

	dirs := []string{
		filepath.Join(bookRoot, "build"),
		filepath.Join(bookRoot, "parts", "parts"),
		filepath.Join(bookRoot, "parts", "frontmatter"),
		filepath.Join(bookRoot, "parts", "backmatter"),
	}
	for _, dir := range dirs {
		if err := fileutil.EnsureDir(dir); err != nil {
			return Action{Kind: Warning, Code: v.Code, Path: v.Path, Detail: err.Error()}
		}
	}

	files := map[string]string{
		filepath.Join(bookRoot, filepath.Base(bookRoot)+".tex"): bookEntryTemplate,
	}
	for _, stem := range scan.FrontmatterOrder {
		files[filepath.Join(bookRoot, "parts", "frontmatter", stem+".tex")] = matterPlaceholder(stem)
	}
	for _, stem := range scan.BackmatterOrder {
		files[filepath.Join(bookRoot, "parts", "backmatter", stem+".tex")] = matterPlaceholder(stem)
	}
	for _, name := range []string{scan.FrontmatterSpineName, scan.MainmatterSpineName} {
		doc := &spine.Document{Name: name}
		files[filepath.Join(bookRoot, "build", name)] = doc.Render()
	}

	for path, content := range files {
		if fileutil.Exists(path) {
			continue
		}
		if err := fileutil.WriteTextAtomic(path, content); err != nil {
			return Action{Kind: Warning, Code: v.Code, Path: v.Path, Detail: err.Error()}
		}
	}
	return Action{Kind: Created, Code: v.Code, Path: v.Path, Detail: "book skeleton"}
}

// Summary counts actions by kind for the end-of-run report.
type Summary struct {
	Created  int
	Planned  int
	Skipped  int
	Warnings int
}

func Summarize(actions []Action) Summary {
	var s Summary
	for _, a := range actions {
		switch a.Kind {
		case Created:
			s.Created++
		case WouldCreate:
			s.Planned++
		case Skipped:
			s.Skipped++
		case Warning:
			s.Warnings++
		}
	}
	return s
}
