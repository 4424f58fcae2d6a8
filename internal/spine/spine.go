// Package spine generates the two include spines of the book: the
// front-matter spine and the main-matter spine. Generation is a pure
// function of the scanned tree; writing is atomic and idempotent, so a
// rebuild over an unchanged tree produces byte-identical files.
package spine

import (
	"fmt"
	"path/filepath"
	"strings"

	"texrepo/internal/fileutil"
)

// Directive is one line of a spine: either a structural marker with an
// optional title, or an include of a repository file.
type Directive struct {
	// Marker is "part", "chapter", or "appendix". Empty for includes.
	Marker string
	// Title accompanies part and chapter markers.
	Title string
	// Target is the include path relative to the book root, rendered
	// exactly as stored.
	Target string
}

func markerDirective(marker, title string) Directive {
	return Directive{Marker: marker, Title: title}
}

func includeDirective(target string) Directive {
	return Directive{Target: target}
}

// Document is a fully generated spine, ready to render and write.
type Document struct {
	Name       string
	Directives []Directive
	// Warnings carries non-fatal notes from generation, such as an
	// unusable title override.
	Warnings []string
}

const header = "% Auto-generated. DO NOT EDIT.\n% Regenerate with: texrepo build\n"

// Render produces the file content. Output depends only on the
// directives, never on the clock or the environment.
func (d *Document) Render() string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	for _, dir := range d.Directives {
		switch {
		case dir.Marker == "appendix":
			b.WriteString("\\appendix\n")
		case dir.Marker != "":
			fmt.Fprintf(&b, "\\%s{%s}\n", dir.Marker, dir.Title)
		default:
			fmt.Fprintf(&b, "\\input{%s}\n", dir.Target)
		}
	}
	return b.String()
}

// WriteDocument writes the rendered document into the build directory
// using an atomic replace, and returns the written path.
func WriteDocument(buildDir string, doc *Document) (string, error) {
	if err := fileutil.EnsureDir(buildDir); err != nil {
		return "", err
	}
	path := filepath.Join(buildDir, doc.Name)
	if err := fileutil.WriteTextAtomic(path, doc.Render()); err != nil {
		return "", err
	}
	return path, nil
}
