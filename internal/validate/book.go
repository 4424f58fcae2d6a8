package validate

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"texrepo/internal/fileutil"
	"texrepo/internal/layout"
	"texrepo/internal/scan"
	"texrepo/internal/spine"
)

func (v *Validator) checkBook() ([]Violation, error) {
	bookRoot := filepath.Join(v.root, v.lay.BookDir())
	if !fileutil.IsDir(bookRoot) {
		return []Violation{{
			Code:    CodeBookRootMissing,
			Path:    v.lay.BookDir(),
			Message: fmt.Sprintf("Book root %s does not exist", v.lay.BookDir()),
		}}, nil
	}

	tree, err := scan.ScanBookTree(bookRoot)
	if err != nil {
		return nil, err
	}

	var out []Violation
	out = append(out, v.checkBookSkeleton(tree)...)
	out = append(out, v.checkBookEntry(tree)...)
	out = append(out, v.checkBookParts(tree)...)
	out = append(out, v.checkBookAppendix(tree)...)
	out = append(out, v.checkBookSpines(tree)...)

	placement, err := v.checkBookPlacement(tree)
	if err != nil {
		return nil, err
	}
	out = append(out, placement...)
	return out, nil
}

func (v *Validator) checkBookSkeleton(tree *scan.BookTree) []Violation {
	var out []Violation

	dirs := []struct {
		code Code
		path string
		what string
	}{
		{CodeBookBuildDirMissing, tree.BuildDir, "build directory"},
		{CodeBookPartsDirMissing, tree.PartsDir, "parts directory"},
		{CodeBookPartsPartsDirMissing, tree.PartsPartsDir, "parts/parts directory"},
		{CodeBookFrontmatterDirMissing, tree.FrontmatterDir(), "frontmatter directory"},
		{CodeBookBackmatterDirMissing, tree.BackmatterDir(), "backmatter directory"},
	}
	for _, d := range dirs {
		if !fileutil.IsDir(d.path) {
			out = append(out, Violation{
				Code:    d.code,
				Path:    v.rel(d.path),
				Message: fmt.Sprintf("Book %s is missing", d.what),
			})
		}
	}

	present := map[string]bool{}
	for _, stem := range tree.FrontmatterFiles {
		present[stem] = true
	}
	for _, stem := range scan.FrontmatterOrder {
		if !present[stem] {
			out = append(out, Violation{
				Code:    CodeBookFrontmatterFileMissing,
				Path:    v.rel(filepath.Join(tree.FrontmatterDir(), stem+".tex")),
				Message: fmt.Sprintf("Front-matter file %s.tex is missing", stem),
			})
		}
	}
	present = map[string]bool{}
	for _, stem := range tree.BackmatterFiles {
		present[stem] = true
	}
	for _, stem := range scan.BackmatterOrder {
		if !present[stem] {
			out = append(out, Violation{
				Code:    CodeBookBackmatterFileMissing,
				Path:    v.rel(filepath.Join(tree.BackmatterDir(), stem+".tex")),
				Message: fmt.Sprintf("Back-matter file %s.tex is missing", stem),
			})
		}
	}
	return out
}

func (v *Validator) checkBookParts(tree *scan.BookTree) []Violation {
	var out []Violation

	for _, bad := range tree.MalformedParts {
		out = append(out, Violation{
			Code:    CodeBookPartInvalidName,
			Path:    v.rel(bad.Path),
			Message: fmt.Sprintf("Part directory %s does not match NN_slug", bad.Name),
		})
	}

	entities := make([]scan.NumberedEntity, 0, len(tree.Parts))
	for _, part := range tree.Parts {
		entities = append(entities, part.NumberedEntity)
	}
	out = append(out, v.checkNumbering(entities, 1, v.rel(tree.PartsPartsDir),
		"Part", CodeBookPartNumberGap, CodeBookPartNumberDuplicate, CodeBookPartDuplicateSlug)...)

	for _, part := range tree.Parts {
		if !part.HasMarker {
			out = append(out, Violation{
				Code:    CodeBookPartTexMissing,
				Path:    v.rel(part.MarkerPath),
				Message: fmt.Sprintf("Part %s has no part.tex prologue", part.Name()),
			})
		}
		if !part.HasChaptersDir {
			out = append(out, Violation{
				Code:    CodeBookChaptersDirMissing,
				Path:    v.rel(part.ChaptersDir),
				Message: fmt.Sprintf("Part %s has no chapters directory", part.Name()),
			})
			continue
		}

		for _, bad := range part.MalformedChapters {
			out = append(out, Violation{
				Code:    CodeBookChapterInvalidName,
				Path:    v.rel(bad.Path),
				Message: fmt.Sprintf("Chapter directory %s does not match NN_slug", bad.Name),
			})
		}

		chapterEntities := make([]scan.NumberedEntity, 0, len(part.Chapters))
		for _, ch := range part.Chapters {
			chapterEntities = append(chapterEntities, ch.NumberedEntity)
		}
		out = append(out, v.checkNumbering(chapterEntities, 1, v.rel(part.ChaptersDir),
			"Chapter", CodeBookChapterNumberGap, CodeBookChapterNumberDuplicate, CodeBookChapterDuplicateSlug)...)

		for _, ch := range part.Chapters {
			if !ch.HasMarker {
				out = append(out, Violation{
					Code:    CodeBookChapterTexMissing,
					Path:    v.rel(ch.MarkerPath),
					Message: fmt.Sprintf("Chapter %s has no chapter.tex prologue", ch.Name()),
				})
			}
		}
	}
	return out
}

// checkNumbering reports gaps, duplicate ordinals, and duplicate slugs for
// one container of numbered entities. The violation path names the
// container so the reader knows which sequence is broken.
func (v *Validator) checkNumbering(entities []scan.NumberedEntity, base uint16, containerPath, noun string, gapCode, dupCode, slugCode Code) []Violation {
	var out []Violation
	gap, duplicates := checkSequence(entities, base)
	if gap {
		out = append(out, Violation{
			Code:    gapCode,
			Path:    containerPath,
			Message: fmt.Sprintf("%s numbering is not contiguous: %s", noun, describeSequence(entities, base)),
		})
	}
	for _, ord := range duplicates {
		out = append(out, Violation{
			Code:    dupCode,
			Path:    containerPath,
			Message: fmt.Sprintf("%s ordinal %02d is used more than once", noun, ord),
		})
	}
	for _, slug := range duplicateSlugs(entities) {
		out = append(out, Violation{
			Code:    slugCode,
			Path:    containerPath,
			Message: fmt.Sprintf("%s slug %q is used more than once", noun, slug),
		})
	}
	return out
}

func (v *Validator) checkBookAppendix(tree *scan.BookTree) []Violation {
	if !fileutil.IsDir(tree.AppendixDir) {
		return nil
	}
	entries, err := os.ReadDir(tree.AppendixDir)
	if err != nil {
		return nil
	}
	var out []Violation
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".tex") {
			continue
		}
		out = append(out, Violation{
			Code:    CodeBookAppendixInvalid,
			Path:    v.rel(filepath.Join(tree.AppendixDir, entry.Name())),
			Message: "Appendix may contain only .tex files",
		})
	}
	return out
}

func (v *Validator) checkBookSpines(tree *scan.BookTree) []Violation {
	var out []Violation

	frontSpine := filepath.Join(tree.BuildDir, scan.FrontmatterSpineName)
	mainSpine := filepath.Join(tree.BuildDir, scan.MainmatterSpineName)

	if !fileutil.IsFile(frontSpine) {
		out = append(out, Violation{
			Code:    CodeBookFrontSpineMissing,
			Path:    v.rel(frontSpine),
			Message: "Generated front-matter spine is missing; run a build",
		})
	} else if content, err := fileutil.ReadText(frontSpine); err == nil {
		leaks, foreign := spine.CheckFrontmatter(content)
		for _, leak := range leaks {
			out = append(out, Violation{
				Code:    CodeFrontSpineSectioningLeak,
				Path:    v.rel(frontSpine),
				Message: fmt.Sprintf("Front-matter spine contains forbidden command %s", leak),
			})
		}
		for _, include := range foreign {
			out = append(out, Violation{
				Code:    CodeFrontSpineForeignInclude,
				Path:    v.rel(frontSpine),
				Message: fmt.Sprintf("Front-matter spine includes material from outside the front matter: %s", include),
			})
		}
	}

	if !fileutil.IsFile(mainSpine) {
		out = append(out, Violation{
			Code:    CodeBookMainSpineMissing,
			Path:    v.rel(mainSpine),
			Message: "Generated main-matter spine is missing; run a build",
		})
	}

	// Spine file names are reserved for the build directory.
	_ = filepath.WalkDir(tree.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path == tree.BuildDir {
				return filepath.SkipDir
			}
			return nil
		}
		name := d.Name()
		if name == scan.FrontmatterSpineName || name == scan.MainmatterSpineName {
			out = append(out, Violation{
				Code:    CodeBookSpineOutsideBuild,
				Path:    v.rel(path),
				Message: "Spine files belong under the book build directory",
			})
		}
		return nil
	})

	// The build directory holds generated artifacts only; the two spines
	// are the sole sanctioned .tex files there.
	if texFiles, err := fileutil.ListTexFiles(tree.BuildDir); err == nil {
		for _, path := range texFiles {
			name := filepath.Base(path)
			if name == scan.FrontmatterSpineName || name == scan.MainmatterSpineName {
				continue
			}
			out = append(out, Violation{
				Code:    CodeBookBuildAuthoredContent,
				Path:    v.rel(path),
				Message: "Authored .tex content is not allowed in the build directory",
			})
		}
	}
	return out
}

// checkBookPlacement rejects papers and papers/ containers anywhere inside
// the book subtree.
func (v *Validator) checkBookPlacement(tree *scan.BookTree) ([]Violation, error) {
	var out []Violation
	err := filepath.WalkDir(tree.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() || path == tree.Root {
			return nil
		}
		if path == tree.BuildDir {
			return filepath.SkipDir
		}
		if d.Name() == layout.PapersDirName {
			out = append(out, Violation{
				Code:    CodeBookPapersDirForbidden,
				Path:    v.rel(path),
				Message: "papers directories are not allowed inside the book",
			})
			return filepath.SkipDir
		}
		for _, candidate := range layout.EntryCandidates(path) {
			if fileutil.IsFile(candidate) {
				out = append(out, Violation{
					Code:    CodePaperUnderBook,
					Path:    v.rel(path),
					Message: "Paper-shaped directory found inside the book subtree",
				})
				return filepath.SkipDir
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk book tree: %w", err)
	}
	return out, nil
}
