package validate_test

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"texrepo/internal/layout"
	"texrepo/internal/validate"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func mkdirs(t *testing.T, paths ...string) {
	t.Helper()
	for _, p := range paths {
		if err := os.MkdirAll(p, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", p, err)
		}
	}
}

const validEntry = `\documentclass{book}
\begin{document}
\frontmatter
\input{build/frontmatter_spine}
\mainmatter
\input{build/mainmatter_spine}
\backmatter
\end{document}
`

// validRepo lays out a complete world-first repository with one part, one
// chapter, and one paper.
func validRepo(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	book := filepath.Join(root, "00_introduction")

	writeFile(t, filepath.Join(book, "00_introduction.tex"), validEntry)
	writeFile(t, filepath.Join(book, "build", "frontmatter_spine.tex"),
		"\\input{parts/frontmatter/title}\n")
	writeFile(t, filepath.Join(book, "build", "mainmatter_spine.tex"),
		"\\chapter{Basic Notions}\n")
	for _, stem := range []string{"title", "preface", "how_to_read", "toc"} {
		writeFile(t, filepath.Join(book, "parts", "frontmatter", stem+".tex"), "x\n")
	}
	for _, stem := range []string{"scope_limits", "closing_notes"} {
		writeFile(t, filepath.Join(book, "parts", "backmatter", stem+".tex"), "x\n")
	}
	part := filepath.Join(book, "parts", "parts", "01_foundations")
	chapter := filepath.Join(part, "chapters", "01_basic_notions")
	writeFile(t, filepath.Join(part, "part.tex"), "% prologue\n")
	writeFile(t, filepath.Join(chapter, "chapter.tex"), "% prologue\n")
	writeFile(t, filepath.Join(chapter, "1-1.tex"), "body\n")

	paper := filepath.Join(root, "01_process_regime", "process", "papers", "00_entropy")
	writeFile(t, filepath.Join(paper, "00_entropy.tex"), "\\documentclass{article}\n")
	writeFile(t, filepath.Join(paper, "refs.bib"), "")
	writeFile(t, filepath.Join(paper, "README.md"), "# entropy\n")
	mkdirs(t, filepath.Join(paper, "sections"), filepath.Join(paper, "build"))

	mkdirs(t,
		filepath.Join(root, "02_function_application"),
		filepath.Join(root, "03_hypothesis"),
	)
	return root
}

func runValidator(t *testing.T, root string) []validate.Violation {
	t.Helper()
	v := validate.New(root, layout.For(layout.KindWorldFirst))
	violations, err := v.Repository()
	if err != nil {
		t.Fatalf("Repository: %v", err)
	}
	return violations
}

func codesOf(violations []validate.Violation) []validate.Code {
	var codes []validate.Code
	for _, v := range violations {
		codes = append(codes, v.Code)
	}
	return codes
}

func filterCode(violations []validate.Violation, code validate.Code) []validate.Violation {
	var out []validate.Violation
	for _, v := range violations {
		if v.Code == code {
			out = append(out, v)
		}
	}
	return out
}

func TestValidRepositoryHasNoViolations(t *testing.T) {
	violations := runValidator(t, validRepo(t))
	if len(violations) != 0 {
		t.Fatalf("expected clean run, got %v", codesOf(violations))
	}
}

func TestMissingStageDirectory(t *testing.T) {
	root := validRepo(t)
	if err := os.RemoveAll(filepath.Join(root, "03_hypothesis")); err != nil {
		t.Fatal(err)
	}
	violations := runValidator(t, root)
	got := filterCode(violations, validate.CodeStageDirMissing)
	if len(got) != 1 || got[0].Path != "03_hypothesis" {
		t.Fatalf("got %v", violations)
	}
}

func TestPartNumberingGapReportedOnce(t *testing.T) {
	root := validRepo(t)
	partsDir := filepath.Join(root, "00_introduction", "parts", "parts")
	gapped := filepath.Join(partsDir, "03_advanced")
	writeFile(t, filepath.Join(gapped, "part.tex"), "% prologue\n")
	mkdirs(t, filepath.Join(gapped, "chapters"))

	violations := runValidator(t, root)
	got := filterCode(violations, validate.CodeBookPartNumberGap)
	if len(got) != 1 {
		t.Fatalf("expected exactly one gap violation, got %v", codesOf(violations))
	}
	if got[0].Path != "00_introduction/parts/parts" {
		t.Fatalf("gap should name the container, got %q", got[0].Path)
	}
	if !strings.Contains(got[0].Message, "expected") {
		t.Fatalf("message should state the expected sequence: %q", got[0].Message)
	}
}

func TestDuplicatePartSlug(t *testing.T) {
	root := validRepo(t)
	partsDir := filepath.Join(root, "00_introduction", "parts", "parts")
	dup := filepath.Join(partsDir, "02_foundations")
	writeFile(t, filepath.Join(dup, "part.tex"), "% prologue\n")
	mkdirs(t, filepath.Join(dup, "chapters"))

	violations := runValidator(t, root)
	if got := filterCode(violations, validate.CodeBookPartDuplicateSlug); len(got) != 1 {
		t.Fatalf("got %v", codesOf(violations))
	}
}

func TestMalformedPartName(t *testing.T) {
	root := validRepo(t)
	mkdirs(t, filepath.Join(root, "00_introduction", "parts", "parts", "Foundations"))

	violations := runValidator(t, root)
	got := filterCode(violations, validate.CodeBookPartInvalidName)
	if len(got) != 1 || got[0].Path != "00_introduction/parts/parts/Foundations" {
		t.Fatalf("got %v", violations)
	}
}

func TestEntryContractMissingMarker(t *testing.T) {
	root := validRepo(t)
	entry := filepath.Join(root, "00_introduction", "00_introduction.tex")
	content := strings.Replace(validEntry, "\\mainmatter\n", "", 1)
	writeFile(t, entry, content)

	violations := runValidator(t, root)
	if got := filterCode(violations, validate.CodeBookEntryMissingMain); len(got) != 1 {
		t.Fatalf("got %v", codesOf(violations))
	}
}

func TestEntryContractSpineIncludeWrongPhase(t *testing.T) {
	root := validRepo(t)
	entry := filepath.Join(root, "00_introduction", "00_introduction.tex")
	// Front-matter spine pulled in during the main-matter phase.
	writeFile(t, entry, `\documentclass{book}
\begin{document}
\frontmatter
\mainmatter
\input{build/frontmatter_spine}
\input{build/mainmatter_spine}
\backmatter
\end{document}
`)

	violations := runValidator(t, root)
	if got := filterCode(violations, validate.CodeBookEntrySpineWrongPhase); len(got) != 1 {
		t.Fatalf("got %v", codesOf(violations))
	}
}

func TestFrontmatterSpineLeakage(t *testing.T) {
	root := validRepo(t)
	spinePath := filepath.Join(root, "00_introduction", "build", "frontmatter_spine.tex")
	writeFile(t, spinePath,
		"\\input{parts/frontmatter/title}\n\\chapter{Leaked}\n\\input{parts/parts/01_foundations/part.tex}\n")

	violations := runValidator(t, root)
	if got := filterCode(violations, validate.CodeFrontSpineSectioningLeak); len(got) != 1 {
		t.Fatalf("leak: got %v", codesOf(violations))
	}
	if got := filterCode(violations, validate.CodeFrontSpineForeignInclude); len(got) != 1 {
		t.Fatalf("foreign include: got %v", codesOf(violations))
	}
}

func TestSpineOutsideBuild(t *testing.T) {
	root := validRepo(t)
	writeFile(t, filepath.Join(root, "00_introduction", "parts", "frontmatter_spine.tex"), "stray\n")

	violations := runValidator(t, root)
	got := filterCode(violations, validate.CodeBookSpineOutsideBuild)
	if len(got) != 1 || got[0].Path != "00_introduction/parts/frontmatter_spine.tex" {
		t.Fatalf("got %v", violations)
	}
}

func TestAuthoredContentInBuild(t *testing.T) {
	root := validRepo(t)
	writeFile(t, filepath.Join(root, "00_introduction", "build", "notes.tex"), "draft\n")

	violations := runValidator(t, root)
	got := filterCode(violations, validate.CodeBookBuildAuthoredContent)
	if len(got) != 1 {
		t.Fatalf("got %v", codesOf(violations))
	}
	// The two generated spines are exempt; only the authored file is
	// flagged, under its real repository path.
	if got[0].Path != "00_introduction/build/notes.tex" {
		t.Fatalf("path = %q, want 00_introduction/build/notes.tex", got[0].Path)
	}
}

func TestPaperZeroBasedNumbering(t *testing.T) {
	root := validRepo(t)
	papers := filepath.Join(root, "01_process_regime", "process", "papers")
	// 01 next to 00 is fine; jumping to 02 is not.
	second := filepath.Join(papers, "02_order")
	writeFile(t, filepath.Join(second, "02_order.tex"), "x\n")
	writeFile(t, filepath.Join(second, "refs.bib"), "")
	writeFile(t, filepath.Join(second, "README.md"), "x\n")
	mkdirs(t, filepath.Join(second, "sections"), filepath.Join(second, "build"))

	violations := runValidator(t, root)
	got := filterCode(violations, validate.CodePaperNumberGap)
	if len(got) != 1 || got[0].Path != "01_process_regime/process/papers" {
		t.Fatalf("got %v", violations)
	}
}

func TestPaperMissingMembers(t *testing.T) {
	root := validRepo(t)
	paper := filepath.Join(root, "01_process_regime", "process", "papers", "00_entropy")
	if err := os.Remove(filepath.Join(paper, "refs.bib")); err != nil {
		t.Fatal(err)
	}
	if err := os.RemoveAll(filepath.Join(paper, "sections")); err != nil {
		t.Fatal(err)
	}

	violations := runValidator(t, root)
	if got := filterCode(violations, validate.CodePaperRefsMissing); len(got) != 1 {
		t.Fatalf("refs: got %v", codesOf(violations))
	}
	if got := filterCode(violations, validate.CodePaperSectionsDirMissing); len(got) != 1 {
		t.Fatalf("sections: got %v", codesOf(violations))
	}
}

func TestPaperOutsidePapersContainer(t *testing.T) {
	root := validRepo(t)
	stray := filepath.Join(root, "02_function_application", "function", "00_misplaced")
	writeFile(t, filepath.Join(stray, "00_misplaced.tex"), "x\n")
	writeFile(t, filepath.Join(stray, "refs.bib"), "")
	writeFile(t, filepath.Join(stray, "README.md"), "x\n")
	mkdirs(t, filepath.Join(stray, "sections"), filepath.Join(stray, "build"))

	violations := runValidator(t, root)
	got := filterCode(violations, validate.CodePaperOutsideContainer)
	if len(got) != 1 || got[0].Path != "02_function_application/function/00_misplaced" {
		t.Fatalf("got %v", violations)
	}
}

func TestPaperForbiddenUnderBook(t *testing.T) {
	root := validRepo(t)
	writeFile(t, filepath.Join(root, "00_introduction", "notes", "00_intruder", "00_intruder.tex"), "x\n")

	violations := runValidator(t, root)
	if got := filterCode(violations, validate.CodePaperUnderBook); len(got) != 1 {
		t.Fatalf("got %v", codesOf(violations))
	}
}

func TestPapersDirForbiddenUnderBook(t *testing.T) {
	root := validRepo(t)
	mkdirs(t, filepath.Join(root, "00_introduction", "notes", "papers"))

	violations := runValidator(t, root)
	if got := filterCode(violations, validate.CodeBookPapersDirForbidden); len(got) != 1 {
		t.Fatalf("got %v", codesOf(violations))
	}
}

func TestViolationsSortedByCodeThenPath(t *testing.T) {
	root := validRepo(t)
	paper := filepath.Join(root, "01_process_regime", "process", "papers", "00_entropy")
	if err := os.Remove(filepath.Join(paper, "refs.bib")); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(filepath.Join(paper, "README.md")); err != nil {
		t.Fatal(err)
	}
	if err := os.RemoveAll(filepath.Join(root, "00_introduction", "parts", "frontmatter")); err != nil {
		t.Fatal(err)
	}

	violations := runValidator(t, root)
	if len(violations) < 3 {
		t.Fatalf("expected several violations, got %v", codesOf(violations))
	}
	sorted := sort.SliceIsSorted(violations, func(i, j int) bool {
		if violations[i].Code != violations[j].Code {
			return violations[i].Code < violations[j].Code
		}
		return violations[i].Path < violations[j].Path
	})
	if !sorted {
		t.Fatalf("violations not sorted: %v", violations)
	}
}

func TestGuardLineFormat(t *testing.T) {
	v := validate.Violation{
		Code:    validate.CodePaperRefsMissing,
		Path:    "01_process_regime/process/papers/00_entropy/refs.bib",
		Message: "Paper is missing refs.bib",
	}
	want := "PAPER_REFS_MISSING\t01_process_regime/process/papers/00_entropy/refs.bib\tPaper is missing refs.bib"
	if got := v.GuardLine(); got != want {
		t.Fatalf("GuardLine() = %q, want %q", got, want)
	}
}

func TestUnexpectedTopLevelDirReported(t *testing.T) {
	root := validRepo(t)
	mkdirs(t,
		filepath.Join(root, "drafts"),
		filepath.Join(root, "shared"),
	)
	writeFile(t, filepath.Join(root, "NOTES.md"), "x\n")

	got := filterCode(runValidator(t, root), validate.CodeUnexpectedTopLevelDir)
	if len(got) != 1 {
		t.Fatalf("violations = %v, want exactly one for drafts", got)
	}
	if got[0].Path != "drafts" {
		t.Fatalf("path = %q, want drafts", got[0].Path)
	}
}

func TestStagedWorldLayerDirsRequired(t *testing.T) {
	root := t.TempDir()
	mkdirs(t,
		filepath.Join(root, "00_world", "00_foundation"),
		filepath.Join(root, "01_formalism"),
		filepath.Join(root, "02_process_regime"),
		filepath.Join(root, "03_function_application"),
	)

	violations, err := validate.New(root, layout.For(layout.KindStaged)).Repository()
	if err != nil {
		t.Fatalf("Repository: %v", err)
	}
	got := filterCode(violations, validate.CodeWorldDirMissing)
	if len(got) != 1 {
		t.Fatalf("violations = %v, want exactly one world layer gap", got)
	}
	if got[0].Path != "00_world/01_spec" {
		t.Fatalf("path = %q, want 00_world/01_spec", got[0].Path)
	}
}

func TestPaperBuildAuthoredContent(t *testing.T) {
	root := validRepo(t)
	paperBuild := filepath.Join(root, "01_process_regime", "process", "papers", "00_entropy", "build")
	writeFile(t, filepath.Join(paperBuild, "draft.tex"), "x\n")

	got := filterCode(runValidator(t, root), validate.CodePaperBuildAuthoredContent)
	if len(got) != 1 {
		t.Fatalf("got %v", got)
	}
	want := "01_process_regime/process/papers/00_entropy/build/draft.tex"
	if got[0].Path != want {
		t.Fatalf("path = %q, want %s", got[0].Path, want)
	}
}
