package handler

import (
	"fmt"
	"sort"
	"time"

	"github.com/open-edge-platform/minfs-builder/internal/config"
	"github.com/open-edge-platform/minfs-builder/internal/ospackage"
)

// Handler is the capability table every package backend must implement.
// A generic driver selects one backend at startup and drives every
// package operation through it.
type Handler interface {
	// Name is a unique ID, e.g. "pacman".
	Name() string

	// Detect reports whether this backend's package database is present
	// on the host.
	Detect() bool

	// Init captures the settings once, before any other operation.
	Init(settings *config.Settings) error

	// Resolve maps a raw package string to a handle. The second return
	// is false when the package is not installed, which is not an error.
	Resolve(raw string) (ospackage.Handle, bool, error)

	// Format renders a handle into the toolchain's canonical specifier.
	Format(h ospackage.Handle) string

	// PackageName projects a handle to its bare package name.
	PackageName(h ospackage.Handle) string

	// DBModTime returns the modification time of the package database.
	DBModTime() (time.Time, error)

	// CloseRequires returns the union of set with every package
	// transitively required by any member.
	CloseRequires(set ospackage.Set) (ospackage.Set, error)

	// ListFiles lists every file owned by members of the set.
	ListFiles(set ospackage.Set) ([]ospackage.FileEntry, error)

	// Download fetches and unpacks the payloads of the set into destDir.
	Download(set ospackage.Set, destDir string) error
}

var (
	handlers = make(map[string]Handler)
)

// Register makes a Handler available under its Name().
func Register(h Handler) {
	handlers[h.Name()] = h
}

// Get returns the Handler by name.
func Get(name string) (Handler, bool) {
	h, ok := handlers[name]
	return h, ok
}

// Names lists the registered backend names, sorted.
func Names() []string {
	out := make([]string, 0, len(handlers))
	for name := range handlers {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Detect walks the registered backends in name order and returns the
// first whose package database is present on the host.
func Detect() (Handler, error) {
	for _, name := range Names() {
		h := handlers[name]
		if h.Detect() {
			return h, nil
		}
	}
	return nil, fmt.Errorf("no package backend detected on this host")
}
