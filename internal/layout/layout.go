// Package layout defines the closed set of repository layout variants.
//
// A Layout is an immutable description of where the book, the stage roots,
// and the paper containers live. It is constructed once per invocation
// (pinned by configuration or detected from disk) and passed explicitly to
// the scanner, validator, and generator; nothing reads layout state from
// globals.
package layout

import (
	"fmt"
	"os"
	"path/filepath"
)

// Kind enumerates the supported layout variants. The set is closed: adding a
// variant requires updating every switch over Kind.
type Kind int

const (
	// KindStaged is the original four-stage layout without a book.
	KindStaged Kind = iota
	// KindWorldFirst places the book at 00_introduction ahead of the stages.
	KindWorldFirst
)

// PapersDirName is the sanctioned container for papers inside a stage.
const PapersDirName = "papers"

// LegacyEntryName is the accepted legacy alias for a paper entry file.
const LegacyEntryName = "main.tex"

func (k Kind) String() string {
	switch k {
	case KindStaged:
		return "staged"
	case KindWorldFirst:
		return "world-first"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Layout carries the fixed path roles of one variant.
type Layout struct {
	kind         Kind
	requiredDirs []string
	bookDir      string
	stageRoots   []string
	branches     map[string][]string
	extras       []string
	worldRoot    string
	worldDirs    []string
}

var layouts = map[Kind]Layout{
	KindStaged: {
		kind: KindStaged,
		requiredDirs: []string{
			"00_world",
			"01_formalism",
			"02_process_regime",
			"03_function_application",
		},
		bookDir:    "",
		stageRoots: []string{"01_formalism", "02_process_regime", "03_function_application"},
		branches: map[string][]string{
			"02_process_regime":       {"process", "regime"},
			"03_function_application": {"function", "application"},
		},
		extras:    []string{"shared", "scripts", "98_context", "99_legacy", "releases", "04_testbed", "04_testbeds", "SPEC"},
		worldRoot: "00_world",
		worldDirs: []string{"00_foundation", "01_spec"},
	},
	KindWorldFirst: {
		kind: KindWorldFirst,
		requiredDirs: []string{
			"00_introduction",
			"01_process_regime",
			"02_function_application",
			"03_hypothesis",
		},
		bookDir:    "00_introduction",
		stageRoots: []string{"01_process_regime", "02_function_application", "03_hypothesis"},
		branches: map[string][]string{
			"01_process_regime":       {"process", "regime"},
			"02_function_application": {"function", "application"},
		},
		extras: []string{"shared", "scripts", "98_context", "99_legacy", "releases", "04_testbed", "04_testbeds", "SPEC"},
	},
}

// legacy configuration names accepted for each variant.
var aliases = map[string]Kind{
	"staged":      KindStaged,
	"old":         KindStaged,
	"world-first": KindWorldFirst,
	"world_first": KindWorldFirst,
	"new":         KindWorldFirst,
}

// For returns the layout definition for a kind.
func For(kind Kind) Layout {
	l, ok := layouts[kind]
	if !ok {
		return layouts[KindWorldFirst]
	}
	return l
}

// FromName resolves a configured layout name, honoring legacy aliases.
func FromName(name string) (Layout, bool) {
	kind, ok := aliases[name]
	if !ok {
		return Layout{}, false
	}
	return For(kind), true
}

// Detect infers the layout variant from the on-disk tree. A repository with
// an introduction book is world-first; one with a world stage is staged;
// anything else defaults to world-first.
func Detect(root string) Layout {
	if dirExists(filepath.Join(root, layouts[KindWorldFirst].bookDir)) {
		return For(KindWorldFirst)
	}
	if dirExists(filepath.Join(root, "00_world")) {
		return For(KindStaged)
	}
	return For(KindWorldFirst)
}

// Kind returns the variant tag.
func (l Layout) Kind() Kind { return l.kind }

// WithBookDir returns a copy with the book directory overridden. An
// override on the staged variant turns its book role on.
func (l Layout) WithBookDir(dir string) Layout {
	l.bookDir = dir
	return l
}

// RequiredDirs lists the top-level directories every repository of this
// variant must have, in pipeline order.
func (l Layout) RequiredDirs() []string {
	return append([]string(nil), l.requiredDirs...)
}

// BookDir returns the book root directory name, or "" when the variant has
// no book.
func (l Layout) BookDir() string { return l.bookDir }

// HasBook reports whether this variant carries a book.
func (l Layout) HasBook() bool { return l.bookDir != "" }

// StageRoots lists the top-level directories that may contain papers.
func (l Layout) StageRoots() []string {
	return append([]string(nil), l.stageRoots...)
}

// Branches returns the mandatory subdomain split for a stage, or nil when
// papers sit directly under the stage's papers container.
func (l Layout) Branches(stage string) []string {
	return append([]string(nil), l.branches[stage]...)
}

// WorldRoot returns the world-layer directory name, or "" when the
// variant has no world layer.
func (l Layout) WorldRoot() string { return l.worldRoot }

// WorldDirs lists the subdirectories required inside the world layer.
func (l Layout) WorldDirs() []string {
	return append([]string(nil), l.worldDirs...)
}

// AllowedTopLevel returns every directory name permitted at the repository
// root.
func (l Layout) AllowedTopLevel() map[string]struct{} {
	allowed := make(map[string]struct{}, len(l.requiredDirs)+len(l.extras))
	for _, d := range l.requiredDirs {
		allowed[d] = struct{}{}
	}
	for _, d := range l.extras {
		allowed[d] = struct{}{}
	}
	return allowed
}

// EntryCandidates lists the acceptable entry file paths for a paper
// directory, preferred name first.
func EntryCandidates(paperDir string) []string {
	return []string{
		filepath.Join(paperDir, filepath.Base(paperDir)+".tex"),
		filepath.Join(paperDir, LegacyEntryName),
	}
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
