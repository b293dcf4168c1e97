package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/open-edge-platform/minfs-builder/internal/config/validate"
)

// Manifest is the package-list template a build consumes: the seed
// packages to resolve and the directory the minimal filesystem is
// unpacked into.
type Manifest struct {
	Packages []string `yaml:"packages" json:"packages"`
	Output   string   `yaml:"output" json:"output"`
}

// LoadManifest reads, schema-validates and parses a YAML manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	if err := validate.ValidateManifestYAML(data); err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}

	if len(m.Packages) == 0 {
		return nil, fmt.Errorf("manifest %s lists no packages", path)
	}
	if m.Output == "" {
		return nil, fmt.Errorf("manifest %s has no output directory", path)
	}
	return &m, nil
}
