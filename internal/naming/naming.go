package naming

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Separator between the two-digit ordinal prefix and the slug.
const Separator = "_"

var (
	numberedName = regexp.MustCompile(`^(\d{2})_([a-z0-9][a-z0-9_-]*)$`)
	ordinalOnly  = regexp.MustCompile(`^\d+_`)
	slugToken    = regexp.MustCompile(`^[a-z0-9]+$`)
)

// connectors are lowercased in titles unless they open the title.
var connectors = map[string]struct{}{
	"vs": {}, "and": {}, "or": {}, "of": {}, "in": {}, "on": {},
	"for": {}, "to": {}, "the": {}, "a": {}, "an": {},
}

// reservedSlugs are placeholder names that never identify real content.
var reservedSlugs = map[string]struct{}{
	"placeholder": {}, "todo": {}, "temp": {}, "test": {}, "tmp": {}, "tbd": {},
}

var titleCaser = cases.Title(language.English)

// ParseOrdinalSlug splits a numbered directory name into its two-digit
// ordinal and slug. ok is false for anything that does not match NN_slug.
func ParseOrdinalSlug(name string) (ordinal uint16, slug string, ok bool) {
	m := numberedName.FindStringSubmatch(name)
	if m == nil {
		return 0, "", false
	}
	n, err := strconv.ParseUint(m[1], 10, 16)
	if err != nil {
		return 0, "", false
	}
	return uint16(n), m[2], true
}

// IsNumberedName reports whether name matches the NN_slug pattern.
func IsNumberedName(name string) bool {
	return numberedName.MatchString(name)
}

// Format renders an ordinal and slug back into a directory name.
func Format(ordinal uint16, slug string) string {
	return fmt.Sprintf("%02d%s%s", ordinal, Separator, slug)
}

// Title converts a slug into a display title using book-style capitalization.
//
// The rules run in order for every token (tokens are split on "_" and "-",
// after stripping a leading numeric prefix):
//
//  1. fully uppercase tokens of length >= 2 are kept (acronyms)
//  2. numeric tokens are kept
//  3. connector words (vs, and, or, of, ...) are lowercased unless first
//  4. lowercase alphabetic tokens of length <= 2 are uppercased
//     (short-acronym heuristic: "np" -> "NP", "io" -> "IO")
//  5. everything else gets its first letter capitalized
//
// This is a best-effort heuristic; it cannot resolve every natural-language
// case and is not meant to.
func Title(slug string) string {
	text := ordinalOnly.ReplaceAllString(slug, "")
	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return r == '_' || r == '-'
	})

	words := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		first := len(words) == 0
		lower := strings.ToLower(tok)
		switch {
		case isAllUpper(tok) && len(tok) >= 2:
			words = append(words, tok)
		case isNumeric(tok):
			words = append(words, tok)
		case isConnector(lower) && !first:
			words = append(words, lower)
		case isLowerAlpha(tok) && len(tok) <= 2 && !isConnector(lower):
			words = append(words, strings.ToUpper(tok))
		default:
			words = append(words, capitalize(tok))
		}
	}
	return strings.Join(words, " ")
}

// ValidSlug reports whether s is acceptable as a new slug: lowercase
// letters, digits, and single "_"/"-" separators, and not a reserved
// placeholder name.
func ValidSlug(s string) bool {
	if s == "" {
		return false
	}
	if _, reserved := reservedSlugs[s]; reserved {
		return false
	}
	if strings.HasPrefix(s, "_") || strings.HasPrefix(s, "-") ||
		strings.HasSuffix(s, "_") || strings.HasSuffix(s, "-") {
		return false
	}
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == '_' || r == '-' }) {
		if !slugToken.MatchString(part) {
			return false
		}
	}
	// Doubled separators leave an empty field behind.
	return !strings.Contains(s, "__") && !strings.Contains(s, "--") &&
		!strings.Contains(s, "_-") && !strings.Contains(s, "-_")
}

// NextPrefix returns the zero-padded prefix following the highest ordinal
// in use. An empty container yields base, so papers (base 0) start at "00"
// while parts and chapters (base 1) start at "01".
func NextPrefix(ordinals []uint16, base uint16) string {
	next := base
	for _, ord := range ordinals {
		if ord+1 > next {
			next = ord + 1
		}
	}
	return fmt.Sprintf("%02d", next)
}

func isConnector(lower string) bool {
	_, ok := connectors[lower]
	return ok
}

func isAllUpper(s string) bool {
	hasUpper := false
	for _, r := range s {
		if r >= 'a' && r <= 'z' {
			return false
		}
		if r >= 'A' && r <= 'Z' {
			hasUpper = true
		}
	}
	return hasUpper
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isLowerAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

func capitalize(tok string) string {
	if tok == "" {
		return tok
	}
	first := tok[0]
	if (first >= 'a' && first <= 'z') || (first >= 'A' && first <= 'Z') {
		return titleCaser.String(strings.ToLower(tok))
	}
	// Tokens that open with a digit keep their shape ("2a" stays "2a").
	return strings.ToLower(tok)
}
