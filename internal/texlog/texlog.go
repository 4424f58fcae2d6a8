// Package texlog parses LaTeX engine logs for the first fatal-looking
// error and offers heuristic fixes. It understands the handful of failure
// shapes that dominate real builds; everything else falls back to the
// first bang-prefixed error line.
package texlog

import (
	"regexp"
	"strconv"
	"strings"
)

// ErrorKind tags the recognized failure shape.
type ErrorKind string

const (
	KindNone         ErrorKind = "none"
	KindRunaway      ErrorKind = "runaway"
	KindMissingPkg   ErrorKind = "missing_pkg"
	KindUndefinedCmd ErrorKind = "undefined_cmd"
	KindUnicode      ErrorKind = "unicode"
	KindBang         ErrorKind = "bang"
)

// PrimaryError is the structured form of the first fatal error in a log.
type PrimaryError struct {
	Kind         ErrorKind
	Message      string
	Line         int // 0 when the log names no source line
	Context      string
	File         string
	MissingPkg   string
	UndefinedCmd string
}

var (
	runawayRE     = regexp.MustCompile(`Runaway argument\?`)
	fileswithRE   = regexp.MustCompile(`fileswith@ptions`)
	missingStyRE  = regexp.MustCompile("File [`'\"]?([^`'\"\\s]+)\\.sty[`'\"]? not found")
	styNotFoundRE = regexp.MustCompile(`\.sty.? not found`)
	undefinedRE   = regexp.MustCompile(`! Undefined control sequence\.`)
	commandRE     = regexp.MustCompile(`(\\[A-Za-z@]+\*?)`)
	unicodeRE     = regexp.MustCompile(`inputenc Error: Unicode character|Unicode character .* not set up`)
	bangRE        = regexp.MustCompile(`^!`)
	lineNumberRE  = regexp.MustCompile(`l\.(\d+)`)
	texFileRE     = regexp.MustCompile(`\(([^()]+\.tex)\)`)
)

// ExtractPrimaryError scans the log text and returns the first error it
// recognizes, most specific shape first.
func ExtractPrimaryError(logText string) PrimaryError {
	lines := strings.Split(logText, "\n")

	if idx, ok := firstMatch(lines, runawayRE, fileswithRE); ok {
		return PrimaryError{
			Kind:    KindRunaway,
			Message: "Runaway argument or package options parsing error",
			Line:    lineNumberNear(lines, idx),
			Context: collectContext(lines, idx),
			File:    fileNear(lines, idx),
		}
	}

	if m := missingStyRE.FindStringSubmatch(logText); m != nil {
		e := PrimaryError{
			Kind:       KindMissingPkg,
			Message:    "Package `" + m[1] + ".sty` not found",
			MissingPkg: m[1],
		}
		if idx, ok := firstMatch(lines, styNotFoundRE); ok {
			e.Line = lineNumberNear(lines, idx)
			e.Context = collectContext(lines, idx)
			e.File = fileNear(lines, idx)
		}
		return e
	}

	if idx, ok := firstMatch(lines, undefinedRE); ok {
		cmd := ""
		if idx+1 < len(lines) {
			if m := commandRE.FindStringSubmatch(lines[idx+1]); m != nil {
				cmd = m[1]
			}
		}
		message := "Undefined control sequence"
		if cmd != "" {
			message += " " + cmd
		}
		return PrimaryError{
			Kind:         KindUndefinedCmd,
			Message:      message,
			Line:         lineNumberNear(lines, idx),
			Context:      collectContext(lines, idx),
			File:         fileNear(lines, idx),
			UndefinedCmd: cmd,
		}
	}

	if idx, ok := firstMatch(lines, unicodeRE); ok {
		return PrimaryError{
			Kind:    KindUnicode,
			Message: "Unicode character not configured in LaTeX run",
			Line:    lineNumberNear(lines, idx),
			Context: collectContext(lines, idx),
			File:    fileNear(lines, idx),
		}
	}

	if idx, ok := firstMatch(lines, bangRE); ok {
		return PrimaryError{
			Kind:    KindBang,
			Message: strings.TrimSpace(strings.TrimLeft(lines[idx], "! ")),
			Line:    lineNumberNear(lines, idx),
			Context: collectContext(lines, idx),
			File:    fileNear(lines, idx),
		}
	}

	return PrimaryError{Kind: KindNone}
}

// SuggestFixes returns deduplicated heuristic remedies for a parsed error.
func SuggestFixes(e PrimaryError) []string {
	var suggestions []string

	switch e.Kind {
	case KindRunaway:
		suggestions = append(suggestions,
			`Check unmatched [] or {} in \usepackage[...] lines; syntax example: \usepackage[nameinlink,noabbrev]{cleveref}`)
	case KindMissingPkg:
		if e.MissingPkg != "" {
			suggestions = append(suggestions, packageSuggestion(e.MissingPkg))
		}
	case KindUndefinedCmd:
		suggestions = append(suggestions, commandSuggestions(e.Context, e.UndefinedCmd)...)
	case KindUnicode:
		suggestions = append(suggestions,
			"Use xelatex/lualatex or add appropriate input encoding (utf8) support")
	}

	var deduped []string
	seen := map[string]bool{}
	for _, s := range suggestions {
		if !seen[s] {
			seen[s] = true
			deduped = append(deduped, s)
		}
	}
	return deduped
}

var preambleFixes = map[string]string{
	"cleveref": `\usepackage[nameinlink,noabbrev]{cleveref}`,
	"natbib":   `\usepackage[numbers]{natbib}`,
	"geometry": `\usepackage{geometry}`,
	"graphicx": `\usepackage{graphicx}`,
}

func packageSuggestion(pkg string) string {
	lower := strings.ToLower(pkg)
	if fix, ok := preambleFixes[lower]; ok {
		return "Add " + fix + " to the preamble"
	}
	return "Install or include package `" + lower + "` (missing .sty)"
}

func commandSuggestions(context, cmd string) []string {
	var hints []string
	combined := strings.ToLower(context) + " " + cmd
	if strings.Contains(combined, `\cref`) || strings.Contains(cmd, `\Cref`) {
		hints = append(hints, `Load cleveref: \usepackage[nameinlink,noabbrev]{cleveref}`)
	}
	if strings.Contains(combined, `\includegraphics`) {
		hints = append(hints, `Load graphicx: \usepackage{graphicx}`)
	}
	if strings.Contains(combined, `\mathbb`) {
		hints = append(hints, `Load amsfonts/amsmath: \usepackage{amsfonts}`)
	}
	return hints
}

func firstMatch(lines []string, patterns ...*regexp.Regexp) (int, bool) {
	for i, line := range lines {
		for _, re := range patterns {
			if re.MatchString(line) {
				return i, true
			}
		}
	}
	return 0, false
}

func lineNumberNear(lines []string, idx int) int {
	for _, line := range window(lines, idx, 2, 3) {
		if m := lineNumberRE.FindStringSubmatch(line); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				return n
			}
		}
	}
	return 0
}

func fileNear(lines []string, idx int) string {
	for _, line := range window(lines, idx, 5, 6) {
		if m := texFileRE.FindStringSubmatch(line); m != nil {
			return m[1]
		}
	}
	return ""
}

func collectContext(lines []string, idx int) string {
	return strings.TrimSpace(strings.Join(window(lines, idx, 3, 6), "\n"))
}

func window(lines []string, idx, before, after int) []string {
	start := idx - before
	if start < 0 {
		start = 0
	}
	end := idx + after
	if end > len(lines) {
		end = len(lines)
	}
	return lines[start:end]
}
