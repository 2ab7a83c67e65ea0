// Package cli implements the bannerkit command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bannerkit/internal/config"
	"github.com/matzehuels/bannerkit/pkg/buildinfo"
	"github.com/matzehuels/bannerkit/pkg/cache"
	"github.com/matzehuels/bannerkit/pkg/raster"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "bannerkit"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	out        io.Writer
	configPath string
	verbose    bool
	logFile    io.WriteCloser
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:     newLogger(w, level),
		out:        w,
		configPath: config.DefaultPath,
	}
}

// Close flushes and closes the rotating log file, if one was opened.
func (c *CLI) Close() error {
	if c.logFile == nil {
		return nil
	}
	err := c.logFile.Close()
	c.logFile = nil
	return err
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "bannerkit",
		Short:        "Bannerkit renders project banners at every size you publish",
		Long:         `Bannerkit picks the best-fitting layout of your project art for each target canvas, writes an SVG document per banner, and rasterizes it to a pixel-exact PNG.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", config.DefaultPath, "config file")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	// Register all subcommands
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.planCommand())
	root.AddCommand(c.variantsCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config Loading
// =============================================================================

// loadConfig reads the config file and applies its log settings. The
// --verbose flag wins over the configured level.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	c.applyLogConfig(cfg.Log)
	return cfg, nil
}

func (c *CLI) applyLogConfig(lc config.LogConfig) {
	level, err := log.ParseLevel(lc.Level)
	if err != nil {
		level = log.InfoLevel
	}
	if c.verbose {
		level = log.DebugLevel
	}
	c.Logger.SetLevel(level)

	if lc.File != "" && c.logFile == nil {
		c.logFile = newLogFile(lc)
		c.Logger.SetOutput(io.MultiWriter(c.out, c.logFile))
	}
}

// =============================================================================
// Factories
// =============================================================================

// newEngine resolves the engine by name, falling back to the configured one.
func newEngine(cfg *config.Config, name string) (raster.Engine, error) {
	if name == "" {
		name = cfg.Engine
	}
	if name == raster.EngineChrome && cfg.Chrome.ExecPath != "" {
		return raster.NewChrome(raster.WithExecPath(cfg.Chrome.ExecPath)), nil
	}
	return raster.Lookup(name)
}

// newCache opens the configured preview cache backend. A file cache with no
// resolvable directory degrades to no caching.
func newCache(ctx context.Context, cfg *config.Config) (cache.Cache, error) {
	switch cfg.Cache.Backend {
	case config.CacheNone:
		return cache.NewNullCache(), nil
	case config.CacheRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:   cfg.Cache.RedisAddr,
			Prefix: appName + ":",
		})
		if err != nil {
			return nil, err
		}
		return rc, nil
	}

	dir := cfg.Cache.Dir
	if dir == "" {
		d, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		dir = d
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return fc, nil
}

// newKeyer scopes cache keys by release.
func newKeyer() cache.Keyer {
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.Scope()+":")
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/bannerkit/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
