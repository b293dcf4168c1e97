package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Settings is the backend configuration, captured once before any
// resolution or download operation.
type Settings struct {
	TmpDir         string `yaml:"tmpDir"`         // scratch-directory root
	PackagerConfig string `yaml:"packagerConfig"` // optional pacman.conf override
	LogLevel       string `yaml:"logLevel"`
}

// TempDir returns the scratch-directory root, defaulting to the system
// temp directory.
func (s *Settings) TempDir() string {
	if s.TmpDir == "" {
		return os.TempDir()
	}
	return s.TmpDir
}

// Validate checks that the configured paths are usable before the backend
// starts shelling out.
func (s *Settings) Validate() error {
	if info, err := os.Stat(s.TempDir()); err != nil {
		return fmt.Errorf("tmp dir %s: %w", s.TempDir(), err)
	} else if !info.IsDir() {
		return fmt.Errorf("tmp dir %s is not a directory", s.TempDir())
	}
	if s.PackagerConfig != "" {
		if _, err := os.Stat(s.PackagerConfig); err != nil {
			return fmt.Errorf("packager config %s: %w", s.PackagerConfig, err)
		}
	}
	return nil
}

// AbsTempDir returns the absolute scratch-directory root.
func (s *Settings) AbsTempDir() (string, error) {
	return filepath.Abs(s.TempDir())
}
