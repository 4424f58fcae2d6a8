package repair

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"texrepo/internal/faults"
	"texrepo/internal/fileutil"
	"texrepo/internal/naming"
	"texrepo/internal/scan"
)

// ScaffoldPaper creates the next-numbered paper skeleton inside the papers
// container at containerDir. slug is the bare name without a numeric
// prefix; the ordinal is assigned from the existing siblings, so the first
// paper in a container gets 00. Returns the new paper directory.
func ScaffoldPaper(containerDir, slug string) (string, error) {
	if naming.IsNumberedName(slug) {
		return "", faults.Wrap(faults.ErrValidation, "scaffold", "paper",
			fmt.Sprintf("%s already carries a numeric prefix; pass the bare slug", slug), nil)
	}
	if !naming.ValidSlug(slug) {
		return "", faults.Wrap(faults.ErrValidation, "scaffold", "paper",
			fmt.Sprintf("%q is not a valid slug", slug), nil)
	}

	siblings, _, err := scan.ScanNumberedChildren(containerDir)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", faults.Wrap(faults.ErrStructure, "scaffold", "paper", "listing papers container", err)
	}
	ordinals := make([]uint16, 0, len(siblings))
	for _, sib := range siblings {
		if sib.Slug == slug {
			return "", faults.Wrap(faults.ErrValidation, "scaffold", "paper",
				fmt.Sprintf("a paper named %s already exists here", sib.Name()), nil)
		}
		ordinals = append(ordinals, sib.Ordinal)
	}

	name := naming.NextPrefix(ordinals, 0) + naming.Separator + slug
	paperDir := filepath.Join(containerDir, name)

	for _, dir := range []string{
		filepath.Join(paperDir, "sections"),
		filepath.Join(paperDir, "build"),
	} {
		if err := fileutil.EnsureDir(dir); err != nil {
			return "", faults.Wrap(faults.ErrStructure, "scaffold", "paper", "creating "+dir, err)
		}
	}

	files := map[string]string{
		filepath.Join(paperDir, name+".tex"): paperEntryTemplate,
		filepath.Join(paperDir, "refs.bib"):  "% BibTeX entries here.\n",
		filepath.Join(paperDir, "README.md"): fmt.Sprintf("# %s\n", naming.Title(slug)),
	}
	for path, content := range files {
		if err := fileutil.WriteTextAtomic(path, content); err != nil {
			return "", faults.Wrap(faults.ErrStructure, "scaffold", "paper", "writing "+path, err)
		}
	}
	return paperDir, nil
}
