package faults_test

import (
	"errors"
	"fmt"
	"testing"

	"texrepo/internal/faults"
)

func TestWrapTagsMarker(t *testing.T) {
	base := fmt.Errorf("disk full")
	err := faults.Wrap(faults.ErrSelfCheck, "spine", "frontmatter", "write aborted", base)
	if !errors.Is(err, faults.ErrSelfCheck) {
		t.Fatalf("expected ErrSelfCheck marker, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped cause to survive, got %v", err)
	}
	want := "self-check failed: spine: frontmatter: write aborted: disk full"
	if err.Error() != want {
		t.Fatalf("message = %q, want %q", err.Error(), want)
	}
}

func TestWrapWithoutCause(t *testing.T) {
	err := faults.Wrap(faults.ErrNotFound, "config", "", "no repository marker above cwd", nil)
	if !errors.Is(err, faults.ErrNotFound) {
		t.Fatalf("expected ErrNotFound marker, got %v", err)
	}
}

func TestWrapNilMarkerDefaultsToStructure(t *testing.T) {
	err := faults.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, faults.ErrStructure) {
		t.Fatalf("expected ErrStructure fallback, got %v", err)
	}
}
