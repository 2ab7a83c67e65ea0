// Package config loads the bannerkit configuration file.
//
// Configuration lives in a TOML file, bannerkit.toml in the working
// directory by default. A missing file is not an error: every setting has a
// default and the manifest defaults to the shipped banner set.
//
//	out_dir = "media/banners"
//	engine  = "chrome"
//
//	[log]
//	level = "info"
//
//	[cache]
//	backend = "file"
//	ttl     = "24h"
//
//	[[banner]]
//	name   = "github-social-preview"
//	width  = 1280
//	height = 640
package config

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/bannerkit/pkg/errors"
	bkio "github.com/matzehuels/bannerkit/pkg/io"
	"github.com/matzehuels/bannerkit/pkg/manifest"
	"github.com/matzehuels/bannerkit/pkg/pipeline"
	"github.com/matzehuels/bannerkit/pkg/raster"
)

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "bannerkit.toml"

// Cache backends.
const (
	CacheNone  = "none"
	CacheFile  = "file"
	CacheRedis = "redis"
)

// ///////////////////////////////////////////////
// Configuration Types
// ///////////////////////////////////////////////

// Config represents the top-level configuration.
type Config struct {
	// OutDir receives the generated .svg and .png files.
	OutDir string `toml:"out_dir"`
	// Engine selects the renderer: "chrome" or "rsvg".
	Engine string `toml:"engine"`
	// Generator labels the header comment of every document.
	Generator string `toml:"generator"`
	// Chrome holds chrome engine settings.
	Chrome ChromeConfig `toml:"chrome"`
	// Log holds logging settings.
	Log LogConfig `toml:"log"`
	// Cache holds preview cache settings.
	Cache CacheConfig `toml:"cache"`
	// Serve holds preview server settings.
	Serve ServeConfig `toml:"serve"`
	// Banners is the ordered manifest.
	Banners []manifest.Canvas `toml:"banner"`

	// path is where the config was loaded from.
	path string
}

// ChromeConfig holds chrome engine settings.
type ChromeConfig struct {
	// ExecPath points at a Chrome or Chromium binary. Empty searches PATH.
	ExecPath string `toml:"exec_path,omitempty"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `toml:"level"`
	// File, when set, also writes logs to this file with rotation.
	File string `toml:"file,omitempty"`
	// MaxSizeMB is the log file size in megabytes before rotation.
	MaxSizeMB int `toml:"max_size_mb"`
}

// CacheConfig holds preview cache settings.
type CacheConfig struct {
	// Backend is "none", "file", or "redis".
	Backend string `toml:"backend"`
	// Dir overrides the file cache directory.
	Dir string `toml:"dir,omitempty"`
	// RedisAddr is host:port of the Redis server for the redis backend.
	RedisAddr string `toml:"redis_addr,omitempty"`
	// TTL is how long cached artifacts stay valid, as a Go duration.
	TTL string `toml:"ttl"`
}

// ServeConfig holds preview server settings.
type ServeConfig struct {
	// Addr is the listen address.
	Addr string `toml:"addr"`
}

// DefaultConfig returns a config populated with defaults.
func DefaultConfig() *Config {
	return &Config{
		OutDir:    pipeline.DefaultOutDir,
		Engine:    raster.DefaultEngine,
		Generator: pipeline.DefaultGenerator,
		Log: LogConfig{
			Level:     "info",
			MaxSizeMB: 10,
		},
		Cache: CacheConfig{
			Backend: CacheFile,
			TTL:     "24h",
		},
		Serve: ServeConfig{
			Addr: "127.0.0.1:8080",
		},
		Banners: manifest.Default(),
	}
}

// Path returns the file the config was loaded from, or "" for defaults.
func (c *Config) Path() string { return c.path }

// Load reads the config at path. An empty path means DefaultPath. A missing
// file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read config file")
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", path)
	}
	cfg.path = path
	return cfg, nil
}

// Parse decodes TOML data over the defaults and validates the result.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	cfg.Banners = nil

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	if len(cfg.Banners) == 0 {
		cfg.Banners = manifest.Default()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to disk as TOML using atomic file write.
func (c *Config) Save(path string) error {
	data, err := c.Encode()
	if err != nil {
		return err
	}
	return bkio.WriteFile(path, data, 0o644)
}

// Encode renders the config as TOML.
func (c *Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.Indent = ""
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return buf.Bytes(), nil
}

// ///////////////////////////////////////////////
// Validation
// ///////////////////////////////////////////////

// Validate checks that all configuration values are usable.
func (c *Config) Validate() error {
	if c.OutDir == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "out_dir must not be empty")
	}
	if _, err := raster.Lookup(c.Engine); err != nil {
		return err
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid log level %q", c.Log.Level)
	}
	if c.Log.MaxSizeMB < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "log max_size_mb must not be negative")
	}

	switch c.Cache.Backend {
	case CacheNone, CacheFile:
	case CacheRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache backend redis requires redis_addr")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig,
			"invalid cache backend %q: must be none, file, or redis", c.Cache.Backend)
	}
	if _, err := c.CacheTTL(); err != nil {
		return err
	}

	if c.Serve.Addr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "serve addr must not be empty")
	}

	return manifest.Validate(c.Banners)
}

// CacheTTL parses the cache TTL. An empty TTL means no expiry.
func (c *Config) CacheTTL() (time.Duration, error) {
	if c.Cache.TTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Cache.TTL)
	if err != nil || d < 0 {
		return 0, errors.New(errors.ErrCodeInvalidConfig, "invalid cache ttl %q", c.Cache.TTL)
	}
	return d, nil
}

// LogLevel returns the parsed log level, defaulting to info.
func (c *Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
