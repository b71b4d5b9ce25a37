package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, contents string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
reserved:
  - jQuery
  - $
cache:
  enabled: true
  dir: .cache
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Reserved) != 2 || cfg.Reserved[0] != "jQuery" || cfg.Reserved[1] != "$" {
		t.Fatalf("reserved = %v", cfg.Reserved)
	}
	if !cfg.Cache.Enabled {
		t.Fatal("cache should be enabled")
	}
	if cfg.Cache.Dir != ".cache" {
		t.Fatalf("cache dir = %q, want .cache", cfg.Cache.Dir)
	}
}

func TestLoadDefaultsCacheDir(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `reserved: [keep]`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Cache.Dir != DefaultCacheDir {
		t.Fatalf("cache dir = %q, want %q", cfg.Cache.Dir, DefaultCacheDir)
	}
}

func TestLoadRejectsEmptyReserved(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `reserved: ["ok", ""]`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for an empty reserved entry")
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `reserved: [unclosed`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `reserved: [fromRoot]`)
	nested := filepath.Join(root, "src", "app")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, path, err := Discover(nested)
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join(root, ConfigFileName) {
		t.Fatalf("discovered %q, want the root config", path)
	}
	if len(cfg.Reserved) != 1 || cfg.Reserved[0] != "fromRoot" {
		t.Fatalf("reserved = %v", cfg.Reserved)
	}
}

func TestDiscoverFallsBackToDefault(t *testing.T) {
	cfg, path, err := Discover(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if path != "" {
		t.Fatalf("path = %q, want empty", path)
	}
	if len(cfg.Reserved) != 0 {
		t.Fatalf("default reserved = %v, want empty", cfg.Reserved)
	}
}

func TestDiscoverPrefersNearest(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `reserved: [outer]`)
	nested := filepath.Join(root, "pkg")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	writeConfig(t, nested, `reserved: [inner]`)

	cfg, _, err := Discover(nested)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Reserved) != 1 || cfg.Reserved[0] != "inner" {
		t.Fatalf("reserved = %v, want [inner]", cfg.Reserved)
	}
}
