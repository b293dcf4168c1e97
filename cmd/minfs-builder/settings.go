package main

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/open-edge-platform/minfs-builder/internal/config"
	"github.com/open-edge-platform/minfs-builder/internal/handler"
)

const (
	configFileName = "minfs-builder"
	configFileType = "yaml"

	cfgKeyTmpDir         = "tmpDir"
	cfgKeyPackagerConfig = "packagerConfig"
	cfgKeyLogLevel       = "logLevel"
)

// loadSettings reads minfs-builder.yaml (working directory, then
// ~/.config/minfs-builder) through Viper and applies flag overrides.
// A missing config file is not an error.
func loadSettings() (*config.Settings, error) {
	v := viper.New()
	v.SetDefault(cfgKeyTmpDir, os.TempDir())
	v.SetDefault(cfgKeyLogLevel, "info")
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home + "/.config/minfs-builder")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	settings := &config.Settings{
		TmpDir:         v.GetString(cfgKeyTmpDir),
		PackagerConfig: v.GetString(cfgKeyPackagerConfig),
		LogLevel:       v.GetString(cfgKeyLogLevel),
	}
	if tmpDir != "" {
		settings.TmpDir = tmpDir
	}
	if packagerCfg != "" {
		settings.PackagerConfig = packagerCfg
	}
	return settings, nil
}

// selectBackend picks the backend named by --backend, or autodetects one,
// and initializes it with the loaded settings.
func selectBackend() (handler.Handler, error) {
	settings, err := loadSettings()
	if err != nil {
		return nil, err
	}

	var h handler.Handler
	if backendName != "" {
		got, ok := handler.Get(backendName)
		if !ok {
			return nil, fmt.Errorf("unknown backend %q (registered: %v)", backendName, handler.Names())
		}
		h = got
	} else {
		got, err := handler.Detect()
		if err != nil {
			return nil, err
		}
		h = got
	}

	if err := h.Init(settings); err != nil {
		return nil, err
	}
	return h, nil
}
