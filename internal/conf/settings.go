package conf

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// settingsFile is the optional defaults file, relative to the user config
// directory (e.g. ~/.config/syno-photos-util/config.toml).
const settingsFile = "syno-photos-util/config.toml"

// Settings are optional defaults loaded from the TOML config file. CLI flags
// always win over these.
type Settings struct {
	// URL is the default DSM address for login when none is given.
	URL string `toml:"url"`
	// TimeoutSeconds is the default HTTP request timeout.
	TimeoutSeconds int `toml:"timeout_seconds"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`
}

// LoadSettings reads the defaults file. A missing file yields zero settings;
// a malformed file is an error so typos do not silently vanish.
func LoadSettings(path string) (Settings, error) {
	if path == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return Settings{}, nil
		}

		path = filepath.Join(configDir, settingsFile)
	}

	var s Settings

	if _, err := toml.DecodeFile(path, &s); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Settings{}, nil
		}

		return Settings{}, fmt.Errorf("conf: parsing %s: %w", path, err)
	}

	return s, nil
}
