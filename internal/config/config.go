package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the settings quotedrop reads once at start.
type Config struct {
	APIURL     string
	AcceptExt  string
	HealthBind string
	LogFile    string
}

// EnvAPIURL overrides api_url when set.
const EnvAPIURL = "QUOTEDROP_API_URL"

// UnsetAPIURL is the base used when no backend URL is configured. Requests
// then go to "undefined/<path>" and fail at the transport.
const UnsetAPIURL = "undefined"

const (
	defaultConfigPath = "~/.config/quotedrop/config.toml"
	defaultAcceptExt  = ".json"
	defaultHealthBind = "127.0.0.1:3000"
	defaultLogFile    = "~/.local/share/quotedrop/quotedrop.log"
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	var raw struct {
		APIURL     string `toml:"api_url"`
		AcceptExt  string `toml:"accept_ext"`
		HealthBind string `toml:"health_bind"`
		LogFile    string `toml:"log_file"`
	}

	file, err := os.Open(resolved)
	switch {
	case err == nil:
		defer file.Close()
		bytes, err := io.ReadAll(file)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(bytes, &raw); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("open config: %w", err)
	}

	cfg := Config{
		APIURL:     strings.TrimSpace(raw.APIURL),
		AcceptExt:  normalizeExt(raw.AcceptExt),
		HealthBind: strings.TrimSpace(raw.HealthBind),
		LogFile:    strings.TrimSpace(raw.LogFile),
	}
	if env := strings.TrimSpace(os.Getenv(EnvAPIURL)); env != "" {
		cfg.APIURL = env
	}
	if cfg.APIURL == "" {
		cfg.APIURL = UnsetAPIURL
	}
	if cfg.HealthBind == "" {
		cfg.HealthBind = defaultHealthBind
	}
	if cfg.LogFile == "" {
		cfg.LogFile = defaultLogFile
	}
	cfg.LogFile = mustExpand(cfg.LogFile)

	return cfg, nil
}

// BaseURL returns the backend base with one trailing slash removed, so
// joining it with "/upload" does not double the separator. Anything else in
// the configured value is kept as written.
func (c Config) BaseURL() string {
	return strings.TrimSuffix(c.APIURL, "/")
}

func normalizeExt(ext string) string {
	ext = strings.TrimSpace(ext)
	if ext == "" {
		return defaultAcceptExt
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading "~" and makes path absolute.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
