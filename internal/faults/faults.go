// Package faults defines the error markers shared across the validator,
// repair engine, and spine generator, plus a helper to wrap failures with
// component context for later classification.
package faults

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrStructure marks unexpected structural failures that abort a run.
	ErrStructure = errors.New("structure error")
	// ErrValidation marks invariant violations surfaced as errors.
	ErrValidation = errors.New("validation error")
	// ErrSelfCheck marks a generator self-check failure; no artifact was written.
	ErrSelfCheck = errors.New("self-check failed")
	// ErrConfiguration marks unusable configuration.
	ErrConfiguration = errors.New("configuration error")
	// ErrNotFound marks a missing repository or required path.
	ErrNotFound = errors.New("not found")
	// ErrLocked marks a repository already locked by another invocation.
	ErrLocked = errors.New("repository locked")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker. The marker should be one of the exported
// sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrStructure
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "failure"
	}
	return strings.Join(parts, ": ")
}
