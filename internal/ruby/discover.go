// SPDX-License-Identifier: MPL-2.0

package ruby

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"rb-cli/internal/issue"
	"rb-cli/internal/platform"
	"rb-cli/internal/version"

	"github.com/charmbracelet/log"
)

// Discover scans root for Ruby installations and returns them ordered
// descending by version. Candidates that do not match the naming pattern,
// carry an unparsable version, or lack a runnable bin/ruby are skipped
// silently (logged at debug level only). Only a missing or unreadable root
// is fatal, wrapped as ErrRubiesDirMissing.
//
// Two installations parsing to the identical version keep their
// directory-listing order; that order is filesystem-dependent.
func Discover(root string) (Catalog, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, issue.NewContext().
			WithOperation("discover ruby installations").
			WithResource(root).
			WithSuggestion("Create the directory and install a Ruby into it, e.g. with ruby-install").
			WithSuggestion("Or point --rubies-dir (RB_RUBIES_DIR) at your installations").
			Wrap(ErrRubiesDirMissing).
			BuildError()
	}

	var catalog Catalog
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, dirPrefix) {
			continue
		}

		v, err := version.Parse(strings.TrimPrefix(name, dirPrefix))
		if err != nil {
			log.Debug("skipping entry with unparsable version", "dir", name)
			continue
		}

		inst := Installation{Version: v, Root: filepath.Join(root, name)}
		if !platform.IsExecutableFile(inst.Executable()) {
			log.Debug("skipping entry without runnable interpreter", "dir", name, "want", inst.Executable())
			continue
		}

		log.Debug("found ruby installation", "version", v.String(), "root", inst.Root)
		catalog = append(catalog, inst)
	}

	// Descending by version; SliceStable preserves listing order for
	// duplicates.
	sort.SliceStable(catalog, func(i, j int) bool {
		return catalog[i].Version.Compare(catalog[j].Version) > 0
	})

	return catalog, nil
}
