package spine

import (
	"fmt"
	"path/filepath"
	"strings"

	"texrepo/internal/fileutil"
	"texrepo/internal/naming"
)

// TitleFileName is the optional per-entity override for the display title
// derived from the directory slug.
const TitleFileName = "title.txt"

// unsafeTitle reports whether an override contains a forbidden structural
// or inclusion marker. A denylist, not a sandbox: benign LaTeX such as an
// escaped ampersand passes through verbatim.
func unsafeTitle(title string) bool {
	for _, marker := range forbiddenMarkers {
		if strings.Contains(title, marker) {
			return true
		}
	}
	return strings.Contains(title, `\input{`) || strings.Contains(title, `\include{`)
}

// resolveTitle returns the display title for a part or chapter directory.
// A title.txt override wins when present and usable; otherwise the title
// is derived from the slug. An unusable override produces a warning and
// falls back silently to the derived title.
func resolveTitle(entityPath, slug string) (title string, warning string) {
	fallback := naming.Title(slug)

	overridePath := filepath.Join(entityPath, TitleFileName)
	if !fileutil.IsFile(overridePath) {
		return fallback, ""
	}
	content, err := fileutil.ReadText(overridePath)
	if err != nil {
		return fallback, fmt.Sprintf("%s: unreadable title override, using %q", overridePath, fallback)
	}
	override := strings.TrimSpace(content)
	if override == "" {
		return fallback, ""
	}
	if unsafeTitle(override) {
		return fallback, fmt.Sprintf("%s: title override contains a forbidden structural marker, using %q", overridePath, fallback)
	}
	return override, ""
}
