// Package config reads the aptcache TOML configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/git-pkgs/aptcache/internal/index"
)

// DefaultPath is read when neither --config nor APTCACHE_CONFIG names a
// file. It is fine for it not to exist.
const DefaultPath = "/etc/aptcache/config.toml"

// Index is one explicitly configured index file.
type Index struct {
	Path         string `toml:"path"`
	Type         string `toml:"type"`    // "" guesses from the file name
	Release      string `toml:"release"` // Release or InRelease file
	BaseURI      string `toml:"base_uri"`
	Component    string `toml:"component"`
	Architecture string `toml:"architecture"`
	Archive      string `toml:"archive"`
}

// Config is the aptcache configuration file.
type Config struct {
	Architecture         string   `toml:"architecture"`
	ForeignArchitectures []string `toml:"foreign_architectures"`
	StatusFile           string   `toml:"status_file"`
	ListsDir             string   `toml:"lists_dir"`
	Preferences          []string `toml:"preferences"`
	DefaultRelease       string   `toml:"default_release"`
	LogLevel             string   `toml:"log_level"`
	Indexes              []Index  `toml:"index"`
}

// Default returns the configuration used when no file is present: the
// running system's dpkg status file and apt lists.
func Default() *Config {
	return &Config{
		Architecture: DebianArch(runtime.GOARCH),
		StatusFile:   index.DefaultStatusFile,
		ListsDir:     index.DefaultListsDir,
		LogLevel:     "warn",
	}
}

// Path returns the configuration file to read: explicit if set, else
// APTCACHE_CONFIG, else DefaultPath.
func Path(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv("APTCACHE_CONFIG"); env != "" {
		return env
	}
	return DefaultPath
}

// Load reads the configuration at Path(explicit) over the defaults and
// applies environment overrides. A missing file is only an error when it
// was named explicitly.
func Load(explicit string) (*Config, error) {
	cfg := Default()
	path := Path(explicit)

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && path == DefaultPath:
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if env := os.Getenv("APTCACHE_ARCH"); env != "" {
		c.Architecture = env
	}
	if env := os.Getenv("APTCACHE_LISTS_DIR"); env != "" {
		c.ListsDir = env
	}
}

// Level returns the configured log level, warn if unset or unknown.
func (c *Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelWarn
	}
	return level
}

// Sources lists the index files to load: the status file, then every
// Packages index found in the lists directory, then the explicit [[index]]
// entries.
func (c *Config) Sources() ([]index.Source, error) {
	var sources []index.Source
	if c.StatusFile != "" {
		sources = append(sources, index.Source{Path: c.StatusFile, Archive: "now"})
	}
	if c.ListsDir != "" {
		found, err := index.Discover(c.ListsDir)
		if err != nil {
			return nil, err
		}
		sources = append(sources, found...)
	}
	for i, ix := range c.Indexes {
		if ix.Path == "" {
			return nil, fmt.Errorf("index %d: path is required", i+1)
		}
		sources = append(sources, index.Source{
			Path:         ix.Path,
			Type:         ix.Type,
			Release:      ix.Release,
			BaseURI:      ix.BaseURI,
			Component:    ix.Component,
			Architecture: ix.Architecture,
			Archive:      ix.Archive,
		})
	}
	return sources, nil
}

// DebianArch maps a GOARCH to the Debian architecture name.
func DebianArch(goarch string) string {
	switch goarch {
	case "386":
		return "i386"
	case "arm":
		return "armhf"
	case "ppc64le":
		return "ppc64el"
	case "mipsle":
		return "mipsel"
	case "mips64le":
		return "mips64el"
	}
	return strings.ToLower(goarch)
}
