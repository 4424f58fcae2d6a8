package validate

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"texrepo/internal/fileutil"
	"texrepo/internal/layout"
	"texrepo/internal/scan"
)

func (v *Validator) checkPapers() ([]Violation, error) {
	var out []Violation

	containers, err := v.papersContainers()
	if err != nil {
		return nil, err
	}
	for _, container := range containers {
		checked, err := v.checkPapersContainer(container)
		if err != nil {
			return nil, err
		}
		out = append(out, checked...)
	}

	papers, err := scan.DiscoverPapers(v.root, v.lay)
	if err != nil {
		return nil, err
	}
	for _, paper := range papers {
		out = append(out, v.checkPaper(paper)...)
	}
	return out, nil
}

// papersContainers finds every directory named papers under the stage
// roots, sorted for deterministic reporting.
func (v *Validator) papersContainers() ([]string, error) {
	var containers []string
	for _, stage := range v.lay.StageRoots() {
		stagePath := filepath.Join(v.root, stage)
		if !fileutil.IsDir(stagePath) {
			continue
		}
		err := filepath.WalkDir(stagePath, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}
			if d.Name() == "build" {
				return filepath.SkipDir
			}
			if d.Name() == layout.PapersDirName {
				containers = append(containers, path)
				return filepath.SkipDir
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk stage %s: %w", stage, err)
		}
	}
	sort.Strings(containers)
	return containers, nil
}

// checkPapersContainer validates the numbered children of one papers/
// directory. Paper ordinals are zero-based.
func (v *Validator) checkPapersContainer(container string) ([]Violation, error) {
	numbered, malformed, err := scan.ScanNumberedChildren(container)
	if err != nil {
		return nil, err
	}

	var out []Violation
	for _, bad := range malformed {
		out = append(out, Violation{
			Code:    CodePaperInvalidName,
			Path:    v.rel(bad.Path),
			Message: fmt.Sprintf("Paper directory %s does not match NN_slug", bad.Name),
		})
	}
	out = append(out, v.checkNumbering(numbered, 0, v.rel(container),
		"Paper", CodePaperNumberGap, CodePaperNumberDuplicate, CodePaperDuplicateSlug)...)

	for _, entity := range numbered {
		if !v.hasEntryFile(entity.Path) {
			out = append(out, Violation{
				Code:    CodePaperEntryMissing,
				Path:    v.rel(entity.Path),
				Message: fmt.Sprintf("Paper %s has no entry file %s.tex", entity.Name(), entity.Name()),
			})
		}
	}
	return out, nil
}

func (v *Validator) hasEntryFile(paperDir string) bool {
	for _, candidate := range layout.EntryCandidates(paperDir) {
		if fileutil.IsFile(candidate) {
			return true
		}
	}
	return false
}

// checkPaper validates one discovered paper: its placement, the
// uniqueness of its entry file, its required members, and the hygiene of
// its build directory.
func (v *Validator) checkPaper(paper scan.PaperDir) []Violation {
	var out []Violation
	paperRel := v.rel(paper.Path)

	if !scan.InsidePapersContainer(paper.Path) {
		out = append(out, Violation{
			Code:    CodePaperOutsideContainer,
			Path:    paperRel,
			Message: fmt.Sprintf("Papers must live inside a %s directory", layout.PapersDirName),
		})
	}

	entryCount := 0
	for _, candidate := range layout.EntryCandidates(paper.Path) {
		if fileutil.IsFile(candidate) {
			entryCount++
		}
	}
	if entryCount > 1 {
		out = append(out, Violation{
			Code:    CodePaperEntryNotUnique,
			Path:    paperRel,
			Message: fmt.Sprintf("Paper has both %s.tex and %s", filepath.Base(paper.Path), layout.LegacyEntryName),
		})
	}

	members := []struct {
		code  Code
		name  string
		isDir bool
	}{
		{CodePaperSectionsDirMissing, "sections", true},
		{CodePaperBuildDirMissing, "build", true},
		{CodePaperRefsMissing, "refs.bib", false},
		{CodePaperReadmeMissing, "README.md", false},
	}
	for _, m := range members {
		path := filepath.Join(paper.Path, m.name)
		ok := fileutil.IsFile(path)
		if m.isDir {
			ok = fileutil.IsDir(path)
		}
		if !ok {
			out = append(out, Violation{
				Code:    m.code,
				Path:    v.rel(path),
				Message: fmt.Sprintf("Paper is missing %s", m.name),
			})
		}
	}

	buildDir := filepath.Join(paper.Path, "build")
	if texFiles, err := fileutil.ListTexFiles(buildDir); err == nil {
		for _, path := range texFiles {
			out = append(out, Violation{
				Code:    CodePaperBuildAuthoredContent,
				Path:    v.rel(path),
				Message: "Authored .tex content is not allowed in the paper build directory",
			})
		}
	}
	return out
}
