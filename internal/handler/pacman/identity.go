package pacman

import (
	"fmt"
	"strings"

	"github.com/open-edge-platform/minfs-builder/internal/ospackage"
	"github.com/open-edge-platform/minfs-builder/internal/utils/shell"
)

// queryIdentity runs the package-info query for one installed package and
// parses its line-oriented "Field : value" output into a PackageIdentity.
// A missing Name/Version/Architecture line is a toolchain-contract
// violation and fails the run; a malformed version field surfaces as an
// ospackage.ParseError.
func (p *Pacman) queryIdentity(name string) (ospackage.PackageIdentity, error) {
	cmdStr := "pacman -Qi " + shell.Quote(name)
	out, err := p.exec(cmdStr, false, nil)
	if err != nil {
		return ospackage.PackageIdentity{}, fmt.Errorf("package info query failed: %s: %w", cmdStr, err)
	}

	var pkgName, verField, arch string
	for _, line := range strings.Split(out, "\n") {
		i := strings.Index(line, ":")
		if i < 0 {
			continue
		}
		key := strings.TrimSpace(line[:i])
		var value string
		if i+2 <= len(line) {
			value = strings.TrimSpace(line[i+2:])
		}
		switch key {
		case "Name":
			pkgName = value
		case "Version":
			verField = value
		case "Architecture":
			arch = value
		}
	}

	switch {
	case pkgName == "":
		return ospackage.PackageIdentity{}, fmt.Errorf("%s: output missing Name field", cmdStr)
	case verField == "":
		return ospackage.PackageIdentity{}, fmt.Errorf("%s: output missing Version field", cmdStr)
	case arch == "":
		return ospackage.PackageIdentity{}, fmt.Errorf("%s: output missing Architecture field", cmdStr)
	}

	epoch, version, release, err := ospackage.ParseEVR(verField)
	if err != nil {
		return ospackage.PackageIdentity{}, err
	}
	return ospackage.NewPackageIdentity(pkgName, epoch, version, release, arch)
}
