// Package config locates the per-user app config directory and loads the
// user settings stored in it.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Identifier names the app's directory under the OS config dir.
const Identifier = "com.entropy.app"

// FileName is the settings file inside the config dir.
const FileName = "config.json"

// AppConfig holds persistent user settings.
type AppConfig struct {
	LogLevel string `json:"logLevel"`
	// Autostart mirrors the last value set through the app. The OS entry
	// is the source of truth.
	Autostart bool `json:"autostart"`
}

var (
	dirOnce     sync.Once
	dirOverride string
	appDir      string
)

// SetDir overrides the config dir. It must be called before the first Dir call.
func SetDir(dir string) {
	dirOverride = dir
}

// Dir returns the app config dir, creating it if needed. When the OS config
// dir is unknown it falls back to the executable's directory.
func Dir() string {
	dirOnce.Do(func() {
		if dirOverride != "" {
			appDir = dirOverride
		} else {
			base, err := os.UserConfigDir()
			if err != nil {
				if exe, err2 := os.Executable(); err2 == nil {
					appDir = filepath.Dir(exe)
				} else {
					appDir = "."
				}
				return
			}
			appDir = filepath.Join(base, Identifier)
		}
		os.MkdirAll(appDir, 0755)
	})
	return appDir
}

// Path returns the full path for a file inside the config dir.
func Path(elem ...string) string {
	return filepath.Join(append([]string{Dir()}, elem...)...)
}

// Default returns config with default values.
func Default() *AppConfig {
	return &AppConfig{LogLevel: "error"}
}

// Load reads the config at path. A missing or malformed file yields Default.
func Load(path string) *AppConfig {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "config file malformed, using defaults: %v\n", err)
		return Default()
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "error"
	}
	return cfg
}

// Save writes cfg to path.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
