// Package scan walks the repository tree and extracts ordered, typed
// entities: parts, chapters, subsection files, and papers. The scanner never
// drops data; names that fail the NN_slug pattern are reported as malformed
// entries so the validator can flag them.
package scan

import (
	"os"
	"path/filepath"
	"sort"

	"texrepo/internal/naming"
)

// NumberedEntity is one sibling in a numbered container.
type NumberedEntity struct {
	Ordinal uint16
	Slug    string
	Path    string
}

// Name returns the on-disk directory name.
func (e NumberedEntity) Name() string {
	return naming.Format(e.Ordinal, e.Slug)
}

// MalformedEntry is a directory whose name fails the NN_slug pattern.
type MalformedEntry struct {
	Path string
	Name string
}

// ScanNumberedChildren lists the immediate subdirectories of dir. Entries
// matching the naming pattern are returned sorted ascending by ordinal (then
// slug, so duplicate ordinals keep a stable order); everything else comes
// back as a MalformedEntry.
func ScanNumberedChildren(dir string) ([]NumberedEntity, []MalformedEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, err
	}

	var numbered []NumberedEntity
	var malformed []MalformedEntry
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		ordinal, slug, ok := naming.ParseOrdinalSlug(entry.Name())
		if !ok {
			malformed = append(malformed, MalformedEntry{
				Path: filepath.Join(dir, entry.Name()),
				Name: entry.Name(),
			})
			continue
		}
		numbered = append(numbered, NumberedEntity{
			Ordinal: ordinal,
			Slug:    slug,
			Path:    filepath.Join(dir, entry.Name()),
		})
	}

	sort.Slice(numbered, func(i, j int) bool {
		if numbered[i].Ordinal != numbered[j].Ordinal {
			return numbered[i].Ordinal < numbered[j].Ordinal
		}
		return numbered[i].Slug < numbered[j].Slug
	})
	sort.Slice(malformed, func(i, j int) bool {
		return malformed[i].Path < malformed[j].Path
	})
	return numbered, malformed, nil
}
