package validate

import (
	"fmt"
	"path/filepath"
	"strings"

	"texrepo/internal/fileutil"
	"texrepo/internal/scan"
)

// Phase markers the book entry file must declare, in order.
const (
	frontmatterMarker = `\frontmatter`
	mainmatterMarker  = `\mainmatter`
	backmatterMarker  = `\backmatter`
)

// Spine include targets as they appear in the entry file, without the
// .tex extension LaTeX resolves itself.
const (
	frontSpineInclude = "build/frontmatter_spine"
	mainSpineInclude  = "build/mainmatter_spine"
)

func (v *Validator) checkBookEntry(tree *scan.BookTree) []Violation {
	var out []Violation

	texFiles, err := fileutil.ListTexFiles(tree.Root)
	if err == nil && len(texFiles) > 1 {
		out = append(out, Violation{
			Code:    CodeBookEntryNotUnique,
			Path:    v.rel(tree.Root),
			Message: fmt.Sprintf("Book root must hold exactly one entry file, found %d .tex files", len(texFiles)),
		})
	}

	if !fileutil.IsFile(tree.EntryPath) {
		out = append(out, Violation{
			Code:    CodeBookEntryMissing,
			Path:    v.rel(tree.EntryPath),
			Message: fmt.Sprintf("Book entry file %s is missing", filepath.Base(tree.EntryPath)),
		})
		return out
	}

	content, err := fileutil.ReadText(tree.EntryPath)
	if err != nil {
		return out
	}
	out = append(out, v.checkEntryContract(v.rel(tree.EntryPath), content)...)
	return out
}

// checkEntryContract verifies the three phase markers and the position of
// each spine include: the front-matter spine between \frontmatter and
// \mainmatter, the main-matter spine between \mainmatter and \backmatter.
func (v *Validator) checkEntryContract(entryRel, content string) []Violation {
	var out []Violation

	front := strings.Index(content, frontmatterMarker)
	main := strings.Index(content, mainmatterMarker)
	back := strings.Index(content, backmatterMarker)

	markers := []struct {
		code  Code
		index int
		name  string
	}{
		{CodeBookEntryMissingFront, front, frontmatterMarker},
		{CodeBookEntryMissingMain, main, mainmatterMarker},
		{CodeBookEntryMissingBack, back, backmatterMarker},
	}
	for _, m := range markers {
		if m.index < 0 {
			out = append(out, Violation{
				Code:    m.code,
				Path:    entryRel,
				Message: fmt.Sprintf("Entry file does not declare %s", m.name),
			})
		}
	}

	includes := []struct {
		target string
		after  int
		before int
		phase  string
	}{
		{frontSpineInclude, front, main, `\frontmatter`},
		{mainSpineInclude, main, back, `\mainmatter`},
	}
	for _, inc := range includes {
		pos := strings.Index(content, inc.target)
		if pos < 0 {
			out = append(out, Violation{
				Code:    CodeBookEntrySpineIncludeMissing,
				Path:    entryRel,
				Message: fmt.Sprintf("Entry file never includes %s", inc.target),
			})
			continue
		}
		if inc.after < 0 || inc.before < 0 {
			// Phase boundaries already reported above.
			continue
		}
		if pos < inc.after || pos > inc.before {
			out = append(out, Violation{
				Code:    CodeBookEntrySpineWrongPhase,
				Path:    entryRel,
				Message: fmt.Sprintf("Include of %s must appear inside the %s phase", inc.target, inc.phase),
			})
		}
	}
	return out
}
