package repair

import (
	"fmt"
	"path/filepath"

	"texrepo/internal/naming"
)

// bookEntryTemplate is the canonical book master file: the three phase
// markers with the two generated spine includes in their phases. The
// main-matter spine carries the back-matter includes, so nothing follows
// the back-matter marker.
const bookEntryTemplate = `\documentclass{book}

\begin{document}

\frontmatter
\input{build/frontmatter_spine}

\mainmatter
\input{build/mainmatter_spine}

\backmatter

\end{document}
`

const paperEntryTemplate = `\documentclass{article}

\begin{document}

% Add \input{sections/...} lines here.

\bibliographystyle{plain}
\bibliography{refs}

\end{document}
`

func matterPlaceholder(stem string) string {
	return fmt.Sprintf("%% %s: placeholder, replace with real content.\n", stem)
}

// prologuePlaceholder seeds a part.tex or chapter.tex with the title
// derived from its directory slug.
func prologuePlaceholder(noun, entityDir string) string {
	name := filepath.Base(entityDir)
	title := name
	if _, slug, ok := naming.ParseOrdinalSlug(name); ok {
		title = naming.Title(slug)
	}
	return fmt.Sprintf("%% %s: %s\n", noun, title)
}
