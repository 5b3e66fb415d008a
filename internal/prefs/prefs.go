// Package prefs remembers the theme and the picker directory between runs.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/quotedrop/internal/config"
)

// Prefs are the settings quotedrop carries from one run to the next. The
// selected file is never stored, only the directory it was picked from.
type Prefs struct {
	Theme   string `toml:"theme"`
	LastDir string `toml:"last_dir,omitempty"`
}

const (
	defaultPrefsPath = "~/.config/quotedrop/prefs.toml"
	defaultTheme     = "Nightfox"
)

// DefaultPath returns the preferences file used when none is given.
func DefaultPath() string {
	return defaultPrefsPath
}

// Defaults returns the preferences of a first run.
func Defaults() Prefs {
	return Prefs{Theme: defaultTheme}
}

// Load reads the preferences at path, or DefaultPath when path is empty. A
// missing file yields Defaults and no error. A file that cannot be read or
// parsed also yields Defaults, together with the error for the caller to log.
func Load(path string) (Prefs, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Defaults(), err
	}

	data, err := os.ReadFile(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return Defaults(), nil
	case err != nil:
		return Defaults(), fmt.Errorf("read prefs: %w", err)
	}

	var p Prefs
	if err := toml.Unmarshal(data, &p); err != nil {
		return Defaults(), fmt.Errorf("parse prefs %s: %w", resolved, err)
	}
	return p.normalized(), nil
}

// Save replaces the preferences file at path, creating its directory. The new
// content is written to a temporary file first and renamed into place.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	data, err := toml.Marshal(p.normalized())
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".prefs-*.toml")
	if err != nil {
		return fmt.Errorf("create temp prefs: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := os.Rename(tmp.Name(), resolved); err != nil {
		return fmt.Errorf("replace prefs: %w", err)
	}
	return nil
}

func (p Prefs) normalized() Prefs {
	p.Theme = strings.TrimSpace(p.Theme)
	if p.Theme == "" {
		p.Theme = defaultTheme
	}
	p.LastDir = strings.TrimSpace(p.LastDir)
	return p
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultPrefsPath
	}
	resolved, err := config.ExpandPath(path)
	if err != nil {
		return "", fmt.Errorf("resolve prefs path: %w", err)
	}
	return resolved, nil
}
