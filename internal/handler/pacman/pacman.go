// Package pacman implements the package-handler backend for hosts whose
// package database is managed by the pacman toolchain. All package
// metadata is acquired by running the toolchain and parsing its textual
// output; nothing here touches the database files directly except for
// modification-time checks.
package pacman

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/open-edge-platform/minfs-builder/internal/config"
	"github.com/open-edge-platform/minfs-builder/internal/fetcher"
	"github.com/open-edge-platform/minfs-builder/internal/handler"
	"github.com/open-edge-platform/minfs-builder/internal/ospackage"
	"github.com/open-edge-platform/minfs-builder/internal/utils/shell"
)

const (
	defaultDBPath     = "/var/lib/pacman/local"
	defaultConfigRoot = "/etc/"
	defaultAURRoot    = "https://aur.archlinux.org/packages"
)

// resolution is a memoized outcome for one raw query string. ok is false
// when the package is confirmed absent; absence is cached for the
// lifetime of the Pacman value, the same as a hit.
type resolution struct {
	handle ospackage.Handle
	ok     bool
}

// Pacman implements handler.Handler. The zero value is not usable;
// construct with New. Not safe for concurrent use: the caches are
// append-only but unsynchronized, matching the single logical run the
// driver performs per process.
type Pacman struct {
	settings *config.Settings
	arena    *ospackage.Arena
	resolved map[string]resolution

	exec  shell.ExecFunc
	fetch fetcher.FetchFunc
	stat  func(string) (os.FileInfo, error)

	dbPath     string
	configRoot string
	aurRoot    string
}

func init() {
	handler.Register(New())
}

// New returns a Pacman backend wired to the real toolchain.
func New() *Pacman {
	return &Pacman{
		arena:      ospackage.NewArena(),
		resolved:   make(map[string]resolution),
		exec:       shell.ExecCmd,
		fetch:      fetcher.Fetch,
		stat:       os.Stat,
		dbPath:     defaultDBPath,
		configRoot: defaultConfigRoot,
		aurRoot:    defaultAURRoot,
	}
}

// Name returns the unique name of the backend
func (p *Pacman) Name() string { return "pacman" }

// Detect reports whether the pacman database directory exists.
func (p *Pacman) Detect() bool {
	info, err := p.stat(p.dbPath)
	return err == nil && info.IsDir()
}

// Init captures the settings. Must be called before any resolution or
// download operation.
func (p *Pacman) Init(settings *config.Settings) error {
	if settings == nil {
		return fmt.Errorf("pacman backend: nil settings")
	}
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("pacman backend: %w", err)
	}
	p.settings = settings
	return nil
}

func (p *Pacman) ensureInit() error {
	if p.settings == nil {
		return fmt.Errorf("pacman backend used before Init")
	}
	return nil
}

// Format renders the canonical package specifier for a handle.
func (p *Pacman) Format(h ospackage.Handle) string {
	return p.arena.Identity(h).Canonical()
}

// PackageName projects a handle to its bare package name.
func (p *Pacman) PackageName(h ospackage.Handle) string {
	return p.arena.Identity(h).Name
}

// DBModTime returns the modification time of the pacman database.
func (p *Pacman) DBModTime() (time.Time, error) {
	info, err := p.stat(p.dbPath)
	if err != nil {
		return time.Time{}, fmt.Errorf("package database %s: %w", p.dbPath, err)
	}
	return info.ModTime(), nil
}

// sortedNames materializes the distinct package names of a set in sorted
// order so generated commands are reproducible.
func (p *Pacman) sortedNames(set ospackage.Set) []string {
	seen := make(map[string]struct{}, len(set))
	for _, h := range set.Handles() {
		seen[p.arena.Identity(h).Name] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
