package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"texrepo/internal/layout"
)

// PaperDir is a directory recognized as a paper: its entry file is named
// after the directory itself, or uses the accepted legacy alias.
type PaperDir struct {
	Path        string
	EntryPath   string
	LegacyEntry bool
}

// DiscoverPapers finds paper directories anywhere under the layout's stage
// roots. The book root never counts as a paper. Results are sorted by path.
func DiscoverPapers(root string, lay layout.Layout) ([]PaperDir, error) {
	found := make(map[string]PaperDir)

	for _, stage := range lay.StageRoots() {
		stagePath := filepath.Join(root, stage)
		if _, err := os.Stat(stagePath); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("stat stage %s: %w", stage, err)
		}

		matches, err := doublestar.Glob(os.DirFS(stagePath), "**/*.tex")
		if err != nil {
			return nil, fmt.Errorf("glob stage %s: %w", stage, err)
		}
		for _, rel := range matches {
			dirRel := filepath.Dir(rel)
			if dirRel == "." || UnderBuildDir(dirRel) {
				continue
			}
			dirName := filepath.Base(dirRel)
			fileName := filepath.Base(rel)
			dirPath := filepath.Join(stagePath, dirRel)

			switch fileName {
			case dirName + ".tex":
				found[dirPath] = PaperDir{
					Path:      dirPath,
					EntryPath: filepath.Join(stagePath, rel),
				}
			case layout.LegacyEntryName:
				// Preferred naming wins when both entries exist.
				if _, ok := found[dirPath]; !ok {
					found[dirPath] = PaperDir{
						Path:        dirPath,
						EntryPath:   filepath.Join(stagePath, rel),
						LegacyEntry: true,
					}
				}
			}
		}
	}

	papers := make([]PaperDir, 0, len(found))
	for _, paper := range found {
		papers = append(papers, paper)
	}
	sort.Slice(papers, func(i, j int) bool { return papers[i].Path < papers[j].Path })
	return papers, nil
}

// InsidePapersContainer reports whether a paper path sits under a sanctioned
// papers/ directory.
func InsidePapersContainer(paperPath string) bool {
	parent := filepath.Base(filepath.Dir(paperPath))
	return parent == layout.PapersDirName
}

// UnderBuildDir reports whether rel (a slash-separated relative path) has a
// build/ component, meaning the file lives inside a generated output tree.
func UnderBuildDir(rel string) bool {
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if part == "build" {
			return true
		}
	}
	return false
}
