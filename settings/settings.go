// Package settings loads the application configuration. Settings are read
// once at startup from a TOML file and treated as read-only afterwards.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const appDir = "displays"

// AppSettings is the externally loaded configuration.
type AppSettings struct {
	// MonitorsConfPath is where Save writes the arrangement.
	MonitorsConfPath string `toml:"monitors_conf_path"`

	// Backend forces a display-server backend ("wlr" or "x11") instead of
	// detecting one from the environment.
	Backend string `toml:"backend"`
}

// DefaultPath returns the settings file location under the user's
// configuration directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, appDir, "settings.toml")
}

// Default returns the settings used when no file exists.
func Default() AppSettings {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return AppSettings{
		MonitorsConfPath: filepath.Join(dir, appDir, "monitors.conf"),
	}
}

// Load reads settings from path. A missing file is not an error and yields
// the defaults; any other failure also yields the defaults alongside the
// error, so the session can start regardless.
func Load(path string) (AppSettings, error) {
	s := Default()

	if _, err := toml.DecodeFile(path, &s); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return Default(), fmt.Errorf("settings: load %s: %w", path, err)
	}

	if s.MonitorsConfPath == "" {
		s.MonitorsConfPath = Default().MonitorsConfPath
	}
	return s, nil
}
