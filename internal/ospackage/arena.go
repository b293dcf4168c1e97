package ospackage

import "sort"

// Handle is an interned reference to a PackageIdentity. Handles are cheap
// to compare and hash; two handles from the same Arena are equal iff their
// identities are equal.
type Handle int

// Arena interns PackageIdentity values. Each distinct identity maps to
// exactly one Handle for the Arena's lifetime and each Handle maps back to
// exactly one identity. Append-only, not safe for concurrent use.
type Arena struct {
	ids   []PackageIdentity
	index map[PackageIdentity]Handle
}

func NewArena() *Arena {
	return &Arena{index: make(map[PackageIdentity]Handle)}
}

// Intern returns the Handle for id, allocating one on first sight.
func (a *Arena) Intern(id PackageIdentity) Handle {
	if h, ok := a.index[id]; ok {
		return h
	}
	h := Handle(len(a.ids))
	a.ids = append(a.ids, id)
	a.index[id] = h
	return h
}

// Identity returns the PackageIdentity backing h. Panics on a handle not
// issued by this Arena.
func (a *Arena) Identity(h Handle) PackageIdentity {
	return a.ids[h]
}

// Len reports how many distinct identities have been interned.
func (a *Arena) Len() int { return len(a.ids) }

// Set is a set of package handles.
type Set map[Handle]struct{}

func NewSet(hs ...Handle) Set {
	s := make(Set, len(hs))
	for _, h := range hs {
		s[h] = struct{}{}
	}
	return s
}

func (s Set) Add(h Handle)      { s[h] = struct{}{} }
func (s Set) Has(h Handle) bool { _, ok := s[h]; return ok }

// Clone returns an independent copy of s.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for h := range s {
		out[h] = struct{}{}
	}
	return out
}

// Union adds every member of o to s and returns s.
func (s Set) Union(o Set) Set {
	for h := range o {
		s[h] = struct{}{}
	}
	return s
}

// Handles materializes the set in ascending handle order so that commands
// built from it are reproducible.
func (s Set) Handles() []Handle {
	out := make([]Handle, 0, len(s))
	for h := range s {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Equal reports whether s and o contain the same handles.
func (s Set) Equal(o Set) bool {
	if len(s) != len(o) {
		return false
	}
	for h := range s {
		if !o.Has(h) {
			return false
		}
	}
	return true
}
