package validate

import (
	"fmt"
	"sort"
)

// Violation is one broken invariant. Path is always relative to the
// repository root and uses forward slashes.
type Violation struct {
	Code    Code
	Path    string
	Message string
}

// GuardLine renders the tab-separated machine form consumed by CI gates.
func (v Violation) GuardLine() string {
	return fmt.Sprintf("%s\t%s\t%s", v.Code, v.Path, v.Message)
}

// Sort orders violations deterministically by (code, path).
func Sort(violations []Violation) {
	sort.Slice(violations, func(i, j int) bool {
		if violations[i].Code != violations[j].Code {
			return violations[i].Code < violations[j].Code
		}
		return violations[i].Path < violations[j].Path
	})
}
