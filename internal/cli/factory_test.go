package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/matzehuels/bannerkit/internal/config"
	"github.com/matzehuels/bannerkit/pkg/cache"
	"github.com/matzehuels/bannerkit/pkg/errors"
	"github.com/matzehuels/bannerkit/pkg/raster"
)

func TestNewEngine(t *testing.T) {
	tests := []struct {
		name     string
		cfg      string // configured engine
		flag     string
		execPath string
		want     string
		wantCode errors.Code
	}{
		{name: "configured", cfg: raster.EngineRSVG, want: raster.EngineRSVG},
		{name: "flag wins", cfg: raster.EngineChrome, flag: raster.EngineRSVG, want: raster.EngineRSVG},
		{name: "chrome with exec path", cfg: raster.EngineChrome, execPath: "/opt/chromium", want: raster.EngineChrome},
		{name: "unknown flag", cfg: raster.EngineChrome, flag: "inkscape", wantCode: errors.ErrCodeInvalidEngine},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Engine = tt.cfg
			cfg.Chrome.ExecPath = tt.execPath

			engine, err := newEngine(cfg, tt.flag)
			if tt.wantCode != "" {
				if !errors.Is(err, tt.wantCode) {
					t.Fatalf("err = %v, want %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("newEngine: %v", err)
			}
			if engine.Name() != tt.want {
				t.Errorf("engine = %s, want %s", engine.Name(), tt.want)
			}
		})
	}
}

func TestNewCache(t *testing.T) {
	ctx := context.Background()

	t.Run("none", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Cache.Backend = config.CacheNone
		c, err := newCache(ctx, cfg)
		if err != nil {
			t.Fatalf("newCache: %v", err)
		}
		if _, ok := c.(*cache.NullCache); !ok {
			t.Errorf("cache = %T, want *cache.NullCache", c)
		}
	})

	t.Run("file in configured dir", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Cache.Dir = filepath.Join(t.TempDir(), "previews")
		c, err := newCache(ctx, cfg)
		if err != nil {
			t.Fatalf("newCache: %v", err)
		}
		defer c.Close()
		fc, ok := c.(*cache.FileCache)
		if !ok {
			t.Fatalf("cache = %T, want *cache.FileCache", c)
		}
		if fc.Dir() != cfg.Cache.Dir {
			t.Errorf("dir = %s, want %s", fc.Dir(), cfg.Cache.Dir)
		}
	})

	t.Run("file under XDG cache home", func(t *testing.T) {
		t.Setenv("XDG_CACHE_HOME", t.TempDir())
		c, err := newCache(ctx, config.DefaultConfig())
		if err != nil {
			t.Fatalf("newCache: %v", err)
		}
		defer c.Close()
		want, _ := cacheDir()
		if fc := c.(*cache.FileCache); fc.Dir() != want {
			t.Errorf("dir = %s, want %s", fc.Dir(), want)
		}
	})

	t.Run("redis unreachable", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Cache.Backend = config.CacheRedis
		cfg.Cache.RedisAddr = "127.0.0.1:1"
		if _, err := newCache(ctx, cfg); err == nil {
			t.Error("expected connection error")
		}
	})
}
