// Package config resolves runtime settings from defaults, an optional TOML
// file and TASKLIST_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sandeepkv93/tasklist/internal/storage"
)

const (
	DefaultFile       = "tasks.txt"
	DefaultSQLiteFile = "tasks.db"
	DefaultBackend    = "file"
	DefaultTheme      = "dark"

	// DefaultConfigFile is read from the working directory when present.
	DefaultConfigFile = "tasklist.toml"
)

type Config struct {
	File     string `toml:"file"`
	Backend  string `toml:"backend"`
	Theme    string `toml:"theme"`
	DebugLog string `toml:"debug_log"`
}

// Default leaves File empty so Resolved can pick a file matching the
// backend.
func Default() Config {
	return Config{
		Backend: DefaultBackend,
		Theme:   DefaultTheme,
	}
}

// Resolved fills in the task file when no layer set one.
func (c Config) Resolved() Config {
	if strings.TrimSpace(c.File) != "" {
		return c
	}
	c.File = DefaultFile
	if c.Backend == storage.BackendSQLite {
		c.File = DefaultSQLiteFile
	}
	return c
}

// LoadFile overlays the TOML file at path onto base. A missing file is not
// an error.
func LoadFile(base Config, path string) (Config, error) {
	cfg := base
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return base, fmt.Errorf("read config %s: %w", path, err)
	}
	var fromFile Config
	md, err := toml.Decode(string(raw), &fromFile)
	if err != nil {
		return base, fmt.Errorf("decode config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return base, fmt.Errorf("decode config %s: unknown key %q", path, undecoded[0].String())
	}
	return merge(cfg, fromFile), nil
}

func FromEnv(base Config) Config {
	return merge(base, Config{
		File:     getEnv("TASKLIST_FILE"),
		Backend:  getEnv("TASKLIST_BACKEND"),
		Theme:    getEnv("TASKLIST_THEME"),
		DebugLog: getEnv("TASKLIST_DEBUG_LOG"),
	})
}

// Merge returns base with every non-blank field of override applied.
func Merge(base, override Config) Config {
	return merge(base, override)
}

func merge(base, override Config) Config {
	cfg := base
	if v := strings.TrimSpace(override.File); v != "" {
		cfg.File = v
	}
	if v := strings.TrimSpace(override.Backend); v != "" {
		cfg.Backend = strings.ToLower(v)
	}
	if v := strings.TrimSpace(override.Theme); v != "" {
		cfg.Theme = strings.ToLower(v)
	}
	if v := strings.TrimSpace(override.DebugLog); v != "" {
		cfg.DebugLog = v
	}
	return cfg
}

func getEnv(name string) string {
	return strings.TrimSpace(os.Getenv(name))
}
