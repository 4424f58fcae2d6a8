// Package validate checks a document repository against its structural
// invariants. Validation is read-only and stateless: every run walks the
// tree from scratch and reports the full set of broken invariants in a
// deterministic order. Nothing here mutates the repository.
package validate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"texrepo/internal/fileutil"
	"texrepo/internal/layout"
	"texrepo/internal/scan"
)

// Validator walks one repository rooted at root under a fixed layout.
type Validator struct {
	root string
	lay  layout.Layout
}

func New(root string, lay layout.Layout) *Validator {
	return &Validator{root: root, lay: lay}
}

// Repository runs every check and returns the violations sorted by
// (code, path). A malformed entity never aborts the run; only I/O
// failures that make the tree unreadable surface as an error.
func (v *Validator) Repository() ([]Violation, error) {
	var violations []Violation

	violations = append(violations, v.checkStageDirs()...)
	violations = append(violations, v.checkWorldDirs()...)

	top, err := v.checkTopLevel()
	if err != nil {
		return nil, err
	}
	violations = append(violations, top...)

	if v.lay.HasBook() {
		book, err := v.checkBook()
		if err != nil {
			return nil, err
		}
		violations = append(violations, book...)
	}

	papers, err := v.checkPapers()
	if err != nil {
		return nil, err
	}
	violations = append(violations, papers...)

	Sort(violations)
	return violations, nil
}

func (v *Validator) checkStageDirs() []Violation {
	var out []Violation
	for _, dir := range v.lay.RequiredDirs() {
		path := filepath.Join(v.root, dir)
		if !fileutil.IsDir(path) {
			out = append(out, Violation{
				Code:    CodeStageDirMissing,
				Path:    dir,
				Message: fmt.Sprintf("Required stage directory %s is missing", dir),
			})
		}
	}
	return out
}

// checkWorldDirs verifies the world layer's required subdirectories on
// layouts that carry one. A missing world root is already reported as a
// missing stage directory, so its subdirectories are not piled on top.
func (v *Validator) checkWorldDirs() []Violation {
	worldRoot := v.lay.WorldRoot()
	if worldRoot == "" || !fileutil.IsDir(filepath.Join(v.root, worldRoot)) {
		return nil
	}
	var out []Violation
	for _, dir := range v.lay.WorldDirs() {
		rel := worldRoot + "/" + dir
		if !fileutil.IsDir(filepath.Join(v.root, worldRoot, dir)) {
			out = append(out, Violation{
				Code:    CodeWorldDirMissing,
				Path:    rel,
				Message: fmt.Sprintf("World layer directory %s is missing", rel),
			})
		}
	}
	return out
}

// checkTopLevel flags root-level directories the layout does not know
// about. Files and hidden entries are left alone; stray files are a
// housekeeping matter, not a structural defect.
func (v *Validator) checkTopLevel() ([]Violation, error) {
	entries, err := os.ReadDir(v.root)
	if err != nil {
		return nil, err
	}
	allowed := v.lay.AllowedTopLevel()
	var out []Violation
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if _, ok := allowed[name]; ok {
			continue
		}
		out = append(out, Violation{
			Code:    CodeUnexpectedTopLevelDir,
			Path:    name,
			Message: fmt.Sprintf("Unexpected top-level directory %s", name),
		})
	}
	return out, nil
}

// rel converts an absolute path inside the repository to the
// slash-separated form used in violation output.
func (v *Validator) rel(path string) string {
	r, err := filepath.Rel(v.root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(r)
}

// checkSequence verifies that ordinals run contiguously from base with no
// duplicates. It reports the observed and expected sequences so the
// message is actionable without re-running anything.
func checkSequence(entities []scan.NumberedEntity, base uint16) (gap bool, duplicates []uint16) {
	seen := map[uint16]bool{}
	var ordinals []uint16
	for _, e := range entities {
		if seen[e.Ordinal] {
			duplicates = append(duplicates, e.Ordinal)
			continue
		}
		seen[e.Ordinal] = true
		ordinals = append(ordinals, e.Ordinal)
	}
	for i, ord := range ordinals {
		if ord != base+uint16(i) {
			gap = true
			break
		}
	}
	return gap, duplicates
}

func describeSequence(entities []scan.NumberedEntity, base uint16) string {
	var got []uint16
	for _, e := range entities {
		got = append(got, e.Ordinal)
	}
	var want []uint16
	for i := range entities {
		want = append(want, base+uint16(i))
	}
	return fmt.Sprintf("found %v, expected %v", got, want)
}

// duplicateSlugs returns each slug that appears more than once, in first
// appearance order.
func duplicateSlugs(entities []scan.NumberedEntity) []string {
	counts := map[string]int{}
	for _, e := range entities {
		counts[e.Slug]++
	}
	var dups []string
	seen := map[string]bool{}
	for _, e := range entities {
		if counts[e.Slug] > 1 && !seen[e.Slug] {
			seen[e.Slug] = true
			dups = append(dups, e.Slug)
		}
	}
	return dups
}
