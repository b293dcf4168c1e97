package pacman

import (
	"fmt"
	"strings"

	"github.com/open-edge-platform/minfs-builder/internal/ospackage"
	"github.com/open-edge-platform/minfs-builder/internal/utils/shell"
)

// ListFiles lists every path owned by members of the set via one batched
// owned-files query. Directory entries lose their trailing slash; paths
// reported by multiple packages are not deduplicated.
func (p *Pacman) ListFiles(set ospackage.Set) ([]ospackage.FileEntry, error) {
	if err := p.ensureInit(); err != nil {
		return nil, err
	}

	names := p.sortedNames(set)
	if len(names) == 0 {
		return nil, nil
	}

	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = shell.Quote(n)
	}
	cmdStr := "pacman -Ql " + strings.Join(quoted, " ")

	out, err := p.exec(cmdStr, false, nil)
	if err != nil {
		return nil, fmt.Errorf("owned-files query failed: %s: %w", cmdStr, err)
	}

	var entries []ospackage.FileEntry
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		path := strings.TrimSuffix(fields[1], "/")
		entries = append(entries, ospackage.FileEntry{
			Path:   path,
			Config: p.isConfig(path),
		})
	}
	return entries, nil
}

// isConfig classifies a path as configuration: it must lie under the
// configuration root and currently exist as a regular file. Filesystem
// errors during the check are swallowed; the path is then simply not
// configuration.
func (p *Pacman) isConfig(path string) bool {
	if !strings.HasPrefix(path, p.configRoot) {
		return false
	}
	info, err := p.stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
