package validate

// Category groups violation codes into the error taxonomy used by reports
// and by the repair engine's remedy table.
type Category int

const (
	StructureMissing Category = iota
	InvalidName
	NumberingGap
	DuplicateSlug
	InvalidPlacement
	ContentLeakage
	EntryContractViolation
	BuildHygieneViolation
)

func (c Category) String() string {
	switch c {
	case StructureMissing:
		return "StructureMissing"
	case InvalidName:
		return "InvalidName"
	case NumberingGap:
		return "NumberingGap"
	case DuplicateSlug:
		return "DuplicateSlug"
	case InvalidPlacement:
		return "InvalidPlacement"
	case ContentLeakage:
		return "ContentLeakage"
	case EntryContractViolation:
		return "EntryContractViolation"
	case BuildHygieneViolation:
		return "BuildHygieneViolation"
	default:
		return "Unknown"
	}
}

// Code is the machine-readable identifier of one invariant.
type Code string

const (
	CodeStageDirMissing Code = "REPO_STAGE_DIR_MISSING"
	CodeWorldDirMissing Code = "REPO_WORLD_DIR_MISSING"

	CodeBookRootMissing            Code = "BOOK_ROOT_MISSING"
	CodeBookEntryMissing           Code = "BOOK_ENTRY_MISSING"
	CodeBookBuildDirMissing        Code = "BOOK_BUILD_DIR_MISSING"
	CodeBookPartsDirMissing        Code = "BOOK_PARTS_DIR_MISSING"
	CodeBookFrontmatterDirMissing  Code = "BOOK_FRONTMATTER_DIR_MISSING"
	CodeBookBackmatterDirMissing   Code = "BOOK_BACKMATTER_DIR_MISSING"
	CodeBookPartsPartsDirMissing   Code = "BOOK_PARTS_PARTS_DIR_MISSING"
	CodeBookFrontmatterFileMissing Code = "BOOK_FRONTMATTER_FILE_MISSING"
	CodeBookBackmatterFileMissing  Code = "BOOK_BACKMATTER_FILE_MISSING"
	CodeBookFrontSpineMissing      Code = "BOOK_FRONTMATTER_SPINE_MISSING"
	CodeBookMainSpineMissing       Code = "BOOK_MAINMATTER_SPINE_MISSING"
	CodeBookPartTexMissing         Code = "BOOK_PART_TEX_MISSING"
	CodeBookChaptersDirMissing     Code = "BOOK_PART_CHAPTERS_DIR_MISSING"
	CodeBookChapterTexMissing      Code = "BOOK_CHAPTER_TEX_MISSING"
	CodePaperEntryMissing          Code = "PAPER_ENTRY_MISSING"
	CodePaperSectionsDirMissing    Code = "PAPER_SECTIONS_DIR_MISSING"
	CodePaperBuildDirMissing       Code = "PAPER_BUILD_DIR_MISSING"
	CodePaperRefsMissing           Code = "PAPER_REFS_MISSING"
	CodePaperReadmeMissing         Code = "PAPER_README_MISSING"

	CodeBookPartInvalidName    Code = "BOOK_PART_DIR_INVALID_NAME"
	CodeBookChapterInvalidName Code = "BOOK_CHAPTER_DIR_INVALID_NAME"
	CodePaperInvalidName       Code = "PAPER_DIR_INVALID_NAME"

	CodeBookPartNumberGap         Code = "BOOK_PART_NUMBER_GAP"
	CodeBookPartNumberDuplicate   Code = "BOOK_PART_NUMBER_DUPLICATE"
	CodeBookChapterNumberGap      Code = "BOOK_CHAPTER_NUMBER_GAP"
	CodeBookChapterNumberDuplicate Code = "BOOK_CHAPTER_NUMBER_DUPLICATE"
	CodePaperNumberGap            Code = "PAPER_NUMBER_GAP"
	CodePaperNumberDuplicate      Code = "PAPER_NUMBER_DUPLICATE"

	CodeBookPartDuplicateSlug    Code = "BOOK_PART_DUPLICATE_SLUG"
	CodeBookChapterDuplicateSlug Code = "BOOK_CHAPTER_DUPLICATE_SLUG"
	CodePaperDuplicateSlug       Code = "PAPER_DUPLICATE_SLUG"

	CodeUnexpectedTopLevelDir   Code = "REPO_UNEXPECTED_TOP_LEVEL_DIR"
	CodePaperOutsideContainer   Code = "PAPER_OUTSIDE_PAPERS_CONTAINER"
	CodePaperUnderBook          Code = "PAPER_FORBIDDEN_UNDER_BOOK"
	CodeBookPapersDirForbidden  Code = "BOOK_PAPERS_DIR_FORBIDDEN"
	CodeBookAppendixInvalid     Code = "BOOK_APPENDIX_INVALID"

	CodeFrontSpineSectioningLeak Code = "BOOK_FRONTMATTER_SPINE_SECTIONING_LEAK"
	CodeFrontSpineForeignInclude Code = "BOOK_FRONTMATTER_SPINE_FOREIGN_INCLUDE"

	CodeBookEntryNotUnique         Code = "BOOK_ENTRY_NOT_UNIQUE"
	CodeBookEntryMissingFront      Code = "BOOK_ENTRY_MISSING_FRONTMATTER"
	CodeBookEntryMissingMain       Code = "BOOK_ENTRY_MISSING_MAINMATTER"
	CodeBookEntryMissingBack       Code = "BOOK_ENTRY_MISSING_BACKMATTER"
	CodeBookEntrySpineIncludeMissing Code = "BOOK_ENTRY_SPINE_INCLUDE_MISSING"
	CodeBookEntrySpineWrongPhase   Code = "BOOK_ENTRY_SPINE_INCLUDE_WRONG_PHASE"
	CodePaperEntryNotUnique        Code = "PAPER_ENTRY_NOT_UNIQUE"

	CodeBookBuildAuthoredContent  Code = "BOOK_BUILD_CONTAINS_AUTHORED_CONTENT"
	CodeBookSpineOutsideBuild     Code = "BOOK_SPINE_WRITTEN_OUTSIDE_BUILD"
	CodePaperBuildAuthoredContent Code = "PAPER_BUILD_CONTAINS_AUTHORED_CONTENT"
)

var categories = map[Code]Category{
	CodeStageDirMissing: StructureMissing,
	CodeWorldDirMissing: StructureMissing,

	CodeBookRootMissing:            StructureMissing,
	CodeBookEntryMissing:           StructureMissing,
	CodeBookBuildDirMissing:        StructureMissing,
	CodeBookPartsDirMissing:        StructureMissing,
	CodeBookFrontmatterDirMissing:  StructureMissing,
	CodeBookBackmatterDirMissing:   StructureMissing,
	CodeBookPartsPartsDirMissing:   StructureMissing,
	CodeBookFrontmatterFileMissing: StructureMissing,
	CodeBookBackmatterFileMissing:  StructureMissing,
	CodeBookFrontSpineMissing:      StructureMissing,
	CodeBookMainSpineMissing:       StructureMissing,
	CodeBookPartTexMissing:         StructureMissing,
	CodeBookChaptersDirMissing:     StructureMissing,
	CodeBookChapterTexMissing:      StructureMissing,
	CodePaperEntryMissing:          StructureMissing,
	CodePaperSectionsDirMissing:    StructureMissing,
	CodePaperBuildDirMissing:       StructureMissing,
	CodePaperRefsMissing:           StructureMissing,
	CodePaperReadmeMissing:         StructureMissing,

	CodeBookPartInvalidName:    InvalidName,
	CodeBookChapterInvalidName: InvalidName,
	CodePaperInvalidName:       InvalidName,

	CodeBookPartNumberGap:          NumberingGap,
	CodeBookPartNumberDuplicate:    NumberingGap,
	CodeBookChapterNumberGap:       NumberingGap,
	CodeBookChapterNumberDuplicate: NumberingGap,
	CodePaperNumberGap:             NumberingGap,
	CodePaperNumberDuplicate:       NumberingGap,

	CodeBookPartDuplicateSlug:    DuplicateSlug,
	CodeBookChapterDuplicateSlug: DuplicateSlug,
	CodePaperDuplicateSlug:       DuplicateSlug,

	CodeUnexpectedTopLevelDir:  InvalidPlacement,
	CodePaperOutsideContainer:  InvalidPlacement,
	CodePaperUnderBook:         InvalidPlacement,
	CodeBookPapersDirForbidden: InvalidPlacement,
	CodeBookAppendixInvalid:    InvalidPlacement,

	CodeFrontSpineSectioningLeak: ContentLeakage,
	CodeFrontSpineForeignInclude: ContentLeakage,

	CodeBookEntryNotUnique:           EntryContractViolation,
	CodeBookEntryMissingFront:        EntryContractViolation,
	CodeBookEntryMissingMain:         EntryContractViolation,
	CodeBookEntryMissingBack:         EntryContractViolation,
	CodeBookEntrySpineIncludeMissing: EntryContractViolation,
	CodeBookEntrySpineWrongPhase:     EntryContractViolation,
	CodePaperEntryNotUnique:          EntryContractViolation,

	CodeBookBuildAuthoredContent:  BuildHygieneViolation,
	CodeBookSpineOutsideBuild:     BuildHygieneViolation,
	CodePaperBuildAuthoredContent: BuildHygieneViolation,
}

// Category returns the taxonomy bucket for a code.
func (c Code) Category() Category {
	cat, ok := categories[c]
	if !ok {
		return StructureMissing
	}
	return cat
}
