package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/bannerkit/internal/config"
	"github.com/matzehuels/bannerkit/pkg/errors"
)

func TestInitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bannerkit.toml")

	if err := initConfig(path, false); err != nil {
		t.Fatalf("initConfig: %v", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load written config: %v", err)
	}
	if len(cfg.Banners) != 4 {
		t.Errorf("banners = %d, want 4", len(cfg.Banners))
	}

	if err := os.WriteFile(path, []byte("engine = \"rsvg\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := initConfig(path, false); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("initConfig over existing file = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "engine = \"rsvg\"\n" {
		t.Error("existing file was modified without --force")
	}

	if err := initConfig(path, true); err != nil {
		t.Fatalf("initConfig --force: %v", err)
	}
	cfg, err = config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Engine != "chrome" {
		t.Errorf("engine = %q after --force, want chrome", cfg.Engine)
	}
}

func TestConfigShowCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bannerkit.toml")
	if err := os.WriteFile(path, []byte("out_dir = \"site/img\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	c := New(&bytes.Buffer{}, LogInfo)
	root := c.RootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"--config", path, "config", "show"})
	if err := root.Execute(); err != nil {
		t.Fatalf("config show: %v", err)
	}

	for _, want := range []string{`out_dir = "site/img"`, `name = "github-social-preview"`} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestLoadConfigAppliesLogSettings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bannerkit.toml")
	logPath := filepath.Join(dir, "bannerkit.log")
	data := "[log]\nlevel = \"warn\"\nfile = \"" + filepath.ToSlash(logPath) + "\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	var stderr bytes.Buffer
	c := New(&stderr, LogInfo)
	defer c.Close()
	c.configPath = path

	if _, err := c.loadConfig(); err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	c.Logger.Info("hidden")
	c.Logger.Warn("shown")
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if strings.Contains(stderr.String(), "hidden") || !strings.Contains(stderr.String(), "shown") {
		t.Errorf("stderr = %q", stderr.String())
	}
	logged, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(logged), "shown") {
		t.Errorf("log file = %q, want it to contain the warning", logged)
	}
}

func TestLoadConfigVerboseWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bannerkit.toml")
	if err := os.WriteFile(path, []byte("[log]\nlevel = \"error\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(&bytes.Buffer{}, LogInfo)
	c.configPath = path
	c.verbose = true
	if _, err := c.loadConfig(); err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if got := c.Logger.GetLevel(); got != LogDebug {
		t.Errorf("level = %v, want debug", got)
	}
}
