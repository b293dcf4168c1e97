package pacman

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/open-edge-platform/minfs-builder/internal/archive"
	"github.com/open-edge-platform/minfs-builder/internal/ospackage"
	"github.com/open-edge-platform/minfs-builder/internal/utils/logger"
	"github.com/open-edge-platform/minfs-builder/internal/utils/shell"
)

// Download fetches the payloads of every package in the set and unpacks
// them into destDir. All packages share one scratch directory, so a
// dependency pulled in while fetching an earlier package is never fetched
// again for a later one; that sharing is the dedup mechanism, not an
// optimization detail.
func (p *Pacman) Download(set ospackage.Set, destDir string) error {
	if err := p.ensureInit(); err != nil {
		return err
	}
	log := logger.Logger()

	scratch := filepath.Join(p.settings.TempDir(), "minfs-pkgs-"+uuid.NewString())
	if err := os.MkdirAll(scratch, 0755); err != nil {
		return fmt.Errorf("creating scratch directory %s: %w", scratch, err)
	}

	names := p.sortedNames(set)
	log.Infof("downloading %d packages into %s", len(names), scratch)
	for _, name := range names {
		if err := p.acquire(name, scratch); err != nil {
			return err
		}
	}

	staged, err := archive.Scan(scratch)
	if err != nil {
		return err
	}
	log.Infof("staged %d package archives", len(staged))
	if len(staged) == 0 {
		return nil
	}

	absDest, err := filepath.Abs(destDir)
	if err != nil {
		return fmt.Errorf("resolving destination %s: %w", destDir, err)
	}
	if err := os.MkdirAll(absDest, 0755); err != nil {
		return fmt.Errorf("creating destination %s: %w", absDest, err)
	}

	report := &logger.StagedReport{Title: "Packages"}
	for _, s := range staged {
		report.Items = append(report.Items, filepath.Base(s))
	}
	if err := report.Write(absDest); err != nil {
		log.Warnf("writing staged-package report: %v", err)
	}

	cmdStr := fmt.Sprintf("cd %s && for f in *.pkg.tar*; do tar -xf \"$f\" -C %s; done",
		shell.Quote(scratch), shell.Quote(absDest))
	if _, err := p.exec(cmdStr, false, nil); err != nil {
		return fmt.Errorf("unpacking package archives failed: %s: %w", cmdStr, err)
	}
	return nil
}

// acquire stages one named package (and its dependencies) into the shared
// scratch directory: first through the package manager's fetch mode, then
// through the source-repository fallback when that fails.
func (p *Pacman) acquire(name, scratch string) error {
	log := logger.Logger()

	cmdStr := "fakeroot pacman -Sw --noconfirm --cachedir " + shell.Quote(scratch)
	if p.settings.PackagerConfig != "" {
		cmdStr += " --config " + shell.Quote(p.settings.PackagerConfig)
	}
	cmdStr += " " + shell.Quote(name)

	if _, err := p.exec(cmdStr, false, nil); err == nil {
		return nil
	}

	log.Warnf("repository fetch failed for %s, falling back to source build", name)
	return p.buildFromSource(name, scratch)
}

// buildFromSource is the fallback acquisition path: fetch the package's
// snapshot archive from the source repository, unpack it, build it, and
// move the resulting package archives into the scratch directory. Any
// failure here is fatal to the whole download.
func (p *Pacman) buildFromSource(name, scratch string) error {
	prefix := name
	if len(name) >= 2 {
		prefix = name[:2]
	}
	url := fmt.Sprintf("%s/%s/%s/%s.tar.gz", p.aurRoot, prefix, name, name)

	buildDir := filepath.Join(scratch, "build-"+name)
	if err := os.MkdirAll(buildDir, 0755); err != nil {
		return fmt.Errorf("creating build directory %s: %w", buildDir, err)
	}

	tarball, err := p.fetch(url, buildDir)
	if err != nil {
		return fmt.Errorf("fallback fetch of %s failed: %w", url, err)
	}

	unpack := fmt.Sprintf("tar -xzf %s -C %s", shell.Quote(tarball), shell.Quote(buildDir))
	if _, err := p.exec(unpack, false, nil); err != nil {
		return fmt.Errorf("unpacking snapshot failed: %s: %w", unpack, err)
	}

	srcDir := filepath.Join(buildDir, name)
	build := fmt.Sprintf("cd %s && makepkg", shell.Quote(srcDir))
	if _, err := p.exec(build, false, nil); err != nil {
		return fmt.Errorf("source build failed: %s: %w", build, err)
	}

	move := fmt.Sprintf("mv %s/%s-*.pkg.tar.* %s", shell.Quote(srcDir), name, shell.Quote(scratch))
	if _, err := p.exec(move, false, nil); err != nil {
		return fmt.Errorf("collecting built archives failed: %s: %w", move, err)
	}
	return nil
}
