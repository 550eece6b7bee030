package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestGetConfigDir(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG layout only applies on linux")
	}
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	dir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}
	if dir != filepath.Join("/tmp/xdg", "maptools") {
		t.Errorf("GetConfigDir() = %v, want /tmp/xdg/maptools", dir)
	}
}

func TestGetConfigPath(t *testing.T) {
	path, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}
	if filepath.Base(path) != "config.yaml" {
		t.Errorf("GetConfigPath() should end with 'config.yaml', got: %v", path)
	}
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig()

	if cfg.Version != 1 {
		t.Errorf("NewConfig().Version = %v, want 1", cfg.Version)
	}
	if cfg.DataDir != "data" {
		t.Errorf("NewConfig().DataDir = %v, want data", cfg.DataDir)
	}
	if cfg.Mirror == nil || cfg.Mirror.Addr != ":7420" {
		t.Errorf("NewConfig().Mirror = %+v, want default addr :7420", cfg.Mirror)
	}
	if cfg.Mirror.BrowseTimeout != 5 {
		t.Errorf("NewConfig().Mirror.BrowseTimeout = %v, want 5", cfg.Mirror.BrowseTimeout)
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Version != CurrentVersion {
		t.Errorf("LoadFrom() on a missing file should return defaults, got %+v", cfg)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := NewConfig()
	cfg.DataDir = "/srv/maps"
	cfg.DefaultMap = "montlake"
	cfg.Log.Level = "debug"
	cfg.Mirror.Enabled = true

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file should not remain after save")
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if loaded.DataDir != "/srv/maps" {
		t.Errorf("DataDir = %v, want /srv/maps", loaded.DataDir)
	}
	if loaded.DefaultMap != "montlake" {
		t.Errorf("DefaultMap = %v, want montlake", loaded.DefaultMap)
	}
	if loaded.Log.Level != "debug" {
		t.Errorf("Log.Level = %v, want debug", loaded.Log.Level)
	}
	if !loaded.Mirror.Enabled {
		t.Error("Mirror.Enabled should survive a round trip")
	}
}

func TestLoadFromRejectsVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("version: 2\ndata_dir: x\n"), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFrom(path)
	if err == nil || !strings.Contains(err.Error(), "unsupported config version") {
		t.Errorf("LoadFrom() error = %v, want unsupported version", err)
	}
}

func TestLoadFromFillsMissingSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("version: 1\n"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.DataDir != "data" || cfg.Log == nil || cfg.Mirror == nil {
		t.Errorf("LoadFrom() = %+v, want defaults filled in", cfg)
	}
}

func TestLogFile(t *testing.T) {
	cfg := NewConfig()
	cfg.Log.File = "/var/log/maptools.log"
	if got := cfg.LogFile(); got != "/var/log/maptools.log" {
		t.Errorf("LogFile() = %v, want explicit file", got)
	}

	cfg.Log.File = ""
	if got := cfg.LogFile(); filepath.Base(got) != "maptools.log" {
		t.Errorf("LogFile() = %v, want default maptools.log", got)
	}
}
