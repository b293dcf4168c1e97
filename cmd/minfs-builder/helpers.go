package main

import (
	"fmt"
	"sort"

	"github.com/open-edge-platform/minfs-builder/internal/handler"
	"github.com/open-edge-platform/minfs-builder/internal/ospackage"
)

// resolveSet resolves every named package; any name that is not installed
// fails the whole command.
func resolveSet(h handler.Handler, names []string) (ospackage.Set, error) {
	set := ospackage.NewSet()
	for _, raw := range names {
		handle, ok, err := h.Resolve(raw)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("package %q is not installed", raw)
		}
		set.Add(handle)
	}
	return set, nil
}

// sortedSpecifiers renders a set as sorted canonical specifiers.
func sortedSpecifiers(h handler.Handler, set ospackage.Set) []string {
	out := make([]string, 0, len(set))
	for _, handle := range set.Handles() {
		out = append(out, h.Format(handle))
	}
	sort.Strings(out)
	return out
}
