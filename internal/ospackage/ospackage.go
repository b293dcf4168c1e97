package ospackage

import (
	"fmt"
	"strconv"
	"strings"
)

// PackageIdentity identifies one installed package build. Values are
// immutable once constructed; compare with ==.
type PackageIdentity struct {
	Name    string // e.g. "glibc"
	Epoch   int    // 0 unless the packager set one
	Version string // upstream version text, opaque (e.g. "1.8.3")
	Release int    // packager release counter
	Arch    string // e.g. "x86_64", "any"
}

// ParseError reports a malformed epoch/version/release field in
// package-manager output.
type ParseError struct {
	Field string
	Value string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed package %s field %q", e.Field, e.Value)
}

// NewPackageIdentity validates the identity invariant: name, version and
// arch non-empty, epoch and release non-negative.
func NewPackageIdentity(name string, epoch int, version string, release int, arch string) (PackageIdentity, error) {
	if name == "" || version == "" || arch == "" {
		return PackageIdentity{}, fmt.Errorf("incomplete package identity %q-%q.%q", name, version, arch)
	}
	if epoch < 0 {
		return PackageIdentity{}, &ParseError{Field: "epoch", Value: strconv.Itoa(epoch)}
	}
	if release < 0 {
		return PackageIdentity{}, &ParseError{Field: "release", Value: strconv.Itoa(release)}
	}
	return PackageIdentity{Name: name, Epoch: epoch, Version: version, Release: release, Arch: arch}, nil
}

// ParseEVR splits a version field of the form "[epoch:]version-release".
// The epoch prefix, when present, must be a non-negative integer; the
// remainder splits on the last '-' and the release must be a non-negative
// integer.
func ParseEVR(field string) (epoch int, version string, release int, err error) {
	rest := field
	if i := strings.Index(rest, ":"); i >= 0 {
		epoch, err = strconv.Atoi(rest[:i])
		if err != nil || epoch < 0 {
			return 0, "", 0, &ParseError{Field: "epoch", Value: field}
		}
		rest = rest[i+1:]
	}
	j := strings.LastIndex(rest, "-")
	if j <= 0 || j == len(rest)-1 {
		return 0, "", 0, &ParseError{Field: "version", Value: field}
	}
	version = rest[:j]
	release, err = strconv.Atoi(rest[j+1:])
	if err != nil || release < 0 {
		return 0, "", 0, &ParseError{Field: "release", Value: field}
	}
	return epoch, version, release, nil
}

// Canonical renders the package manager's canonical specifier:
// name-version-release.arch, with an epoch: prefix on the version when
// the epoch is non-zero.
func (id PackageIdentity) Canonical() string {
	if id.Epoch == 0 {
		return fmt.Sprintf("%s-%s-%d.%s", id.Name, id.Version, id.Release, id.Arch)
	}
	return fmt.Sprintf("%s-%d:%s-%d.%s", id.Name, id.Epoch, id.Version, id.Release, id.Arch)
}

// FileEntry is one path owned by a package. Config is true only for
// regular files under the configuration root.
type FileEntry struct {
	Path   string
	Config bool
}
