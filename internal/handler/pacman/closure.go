package pacman

import (
	"fmt"
	"strings"

	"github.com/open-edge-platform/minfs-builder/internal/ospackage"
	"github.com/open-edge-platform/minfs-builder/internal/utils/shell"
)

// CloseRequires computes the union of set with every package transitively
// required by any member. One batched toolchain invocation lists the full
// dependency tree per name and deduplicates the merged output; listed
// names that do not resolve to an installed package are silently dropped.
// Closing an already-closed set adds nothing new.
func (p *Pacman) CloseRequires(set ospackage.Set) (ospackage.Set, error) {
	if err := p.ensureInit(); err != nil {
		return nil, err
	}

	result := set.Clone()
	names := p.sortedNames(set)
	if len(names) == 0 {
		return result, nil
	}

	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = shell.Quote(n)
	}
	cmdStr := fmt.Sprintf("for p in %s; do pactree -u \"$p\"; done | sort -u",
		strings.Join(quoted, " "))

	out, err := p.exec(cmdStr, false, nil)
	if err != nil {
		return nil, fmt.Errorf("dependency query failed: %s: %w", cmdStr, err)
	}

	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		h, ok, err := p.Resolve(fields[0])
		if err != nil {
			return nil, err
		}
		if ok {
			result.Add(h)
		}
	}
	return result, nil
}
