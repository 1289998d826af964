// Package conf persists the DSM session record and remembered device ids in
// a single JSON file in the user's home directory, and loads the optional
// TOML defaults file.
package conf

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
)

// FileName is the session record file, directly under $HOME.
const FileName = ".syno-photos-util"

// FilePerms restricts the session record to owner-only read/write: it holds
// a live session id.
const FilePerms = 0o600

// Session is the persisted authentication state for one DSM server.
type Session struct {
	URL string `json:"url"`
	SID string `json:"sid"`
}

// Conf is the on-disk record: the current session (nil when signed out) and
// the remembered device ids keyed by server URL.
type Conf struct {
	Session   *Session          `json:"session"`
	DeviceIDs map[string]string `json:"device_ids"`
}

// New returns an empty, signed-out configuration.
func New() *Conf {
	return &Conf{DeviceIDs: make(map[string]string)}
}

// SignedIn reports whether a session is present.
func (c *Conf) SignedIn() bool {
	return c.Session != nil
}

// DeviceID returns the remembered device id for url, or "".
func (c *Conf) DeviceID(url string) string {
	return c.DeviceIDs[url]
}

// SetDeviceID remembers a device id for the current session's server.
// A no-op when signed out or when id is empty.
func (c *Conf) SetDeviceID(id string) {
	if c.Session == nil || id == "" {
		return
	}

	if c.DeviceIDs == nil {
		c.DeviceIDs = make(map[string]string)
	}

	c.DeviceIDs[c.Session.URL] = id
}

// Path returns the session record location. Overridable via dir for tests.
func Path(dir string) (string, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("conf: finding home dir: %w", err)
		}

		dir = home
	}

	return filepath.Join(dir, FileName), nil
}

// Load reads the session record from path. A missing or unreadable file
// yields a fresh empty configuration. A readable file with too-wide
// permissions is used but warned about.
func Load(path string, logger *slog.Logger) *Conf {
	if logger == nil {
		logger = slog.Default()
	}

	if runtime.GOOS != "windows" {
		if info, err := os.Stat(path); err == nil {
			if mode := info.Mode().Perm(); mode != FilePerms {
				logger.Warn("session file permissions too wide",
					slog.String("path", path),
					slog.String("mode", fmt.Sprintf("%o", mode)),
					slog.String("want", fmt.Sprintf("%o", FilePerms)),
				)
			}
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("could not read session file", slog.String("error", err.Error()))
		}

		return New()
	}

	var c Conf
	if err := json.Unmarshal(data, &c); err != nil {
		logger.Warn("could not parse session file, starting fresh", slog.String("error", err.Error()))

		return New()
	}

	if c.DeviceIDs == nil {
		c.DeviceIDs = make(map[string]string)
	}

	return &c
}

// Save writes the session record atomically (write-to-temp + rename in the
// same directory) with owner-only permissions.
func (c *Conf) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("conf: encoding: %w", err)
	}

	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, FileName+"-*.tmp")
	if err != nil {
		return fmt.Errorf("conf: creating temp file: %w", err)
	}

	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmpPath)
		}
	}()

	if err := os.Chmod(tmpPath, FilePerms); err != nil {
		tmp.Close()
		return fmt.Errorf("conf: setting permissions: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("conf: writing: %w", err)
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("conf: syncing: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("conf: closing: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("conf: renaming: %w", err)
	}

	success = true

	return nil
}
