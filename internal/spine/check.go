package spine

import (
	"regexp"
	"strings"
)

// forbiddenMarkers lists structural commands that must never reach the
// front matter. Anything here in the generated front-matter spine means
// main-matter content leaked across the phase boundary.
var forbiddenMarkers = []string{
	`\part{`, `\part[`,
	`\chapter{`, `\chapter[`, `\chapter*`,
	`\section{`, `\section[`, `\section*`,
	`\subsection{`, `\subsection[`, `\subsection*`,
	`\subsubsection{`, `\subsubsection[`, `\subsubsection*`,
	`\paragraph{`, `\paragraph[`,
	`\subparagraph{`, `\subparagraph[`,
	`\appendix`,
	`\numberline`,
}

var includeRE = regexp.MustCompile(`\\(?:input|include)\{([^}]+)\}`)

// frontmatterIncludePrefix is the only subtree the front-matter spine may
// pull files from.
const frontmatterIncludePrefix = "parts/frontmatter/"

// CheckFrontmatter scans rendered front-matter spine content and returns
// the forbidden sectioning commands it contains and the include targets
// that reach outside the front matter. Comments are ignored.
func CheckFrontmatter(content string) (leaks, foreign []string) {
	for _, line := range strings.Split(content, "\n") {
		line = stripComment(line)
		if line == "" {
			continue
		}
		for _, marker := range forbiddenMarkers {
			if strings.Contains(line, marker) {
				leaks = append(leaks, strings.TrimRight(marker, "{[*"))
				break
			}
		}
		for _, m := range includeRE.FindAllStringSubmatch(line, -1) {
			if !strings.HasPrefix(m[1], frontmatterIncludePrefix) {
				foreign = append(foreign, m[1])
			}
		}
	}
	return leaks, foreign
}

// stripComment drops everything after an unescaped %.
func stripComment(line string) string {
	for i := 0; i < len(line); i++ {
		if line[i] != '%' {
			continue
		}
		if i > 0 && line[i-1] == '\\' {
			continue
		}
		return line[:i]
	}
	return line
}
