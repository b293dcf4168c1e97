package pacman

import (
	"github.com/open-edge-platform/minfs-builder/internal/ospackage"
	"github.com/open-edge-platform/minfs-builder/internal/utils/shell"
)

// Resolve maps a raw package string to a handle, memoized per Pacman
// value: the existence check and the info query each run at most once per
// distinct string, and a confirmed-absent outcome is cached the same as a
// hit.
func (p *Pacman) Resolve(raw string) (ospackage.Handle, bool, error) {
	if err := p.ensureInit(); err != nil {
		return 0, false, err
	}

	if r, ok := p.resolved[raw]; ok {
		return r.handle, r.ok, nil
	}

	// Cheap existence check first; exit status only.
	if _, err := p.exec("pacman -Q "+shell.Quote(raw), false, nil); err != nil {
		p.resolved[raw] = resolution{}
		return 0, false, nil
	}

	id, err := p.queryIdentity(raw)
	if err != nil {
		return 0, false, err
	}

	h := p.arena.Intern(id)
	p.resolved[raw] = resolution{handle: h, ok: true}
	return h, true, nil
}
