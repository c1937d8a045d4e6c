package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	t.Setenv("ANIMLIB_CONFIG", filepath.Join(t.TempDir(), "config.yaml"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("missing config file is not an error: %v", err)
	}
	if cfg.Port != DefaultPort {
		t.Errorf("Port = %d, want %d", cfg.Port, DefaultPort)
	}
	if cfg.LibraryDir != "" || cfg.Theme != "" {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "library_dir: /data/animations\nport: 9000\ntheme: dark\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ANIMLIB_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LibraryDir != "/data/animations" {
		t.Errorf("LibraryDir = %q", cfg.LibraryDir)
	}
	if cfg.Port != 9000 {
		t.Errorf("Port = %d", cfg.Port)
	}
	if cfg.Theme != "dark" {
		t.Errorf("Theme = %q", cfg.Theme)
	}
}

func TestLoadMalformedConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("port: [not a number\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ANIMLIB_CONFIG", path)

	if _, err := Load(); err == nil {
		t.Error("malformed config file loaded without error")
	}
}

func TestLoadZeroPortFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("theme: light\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ANIMLIB_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != DefaultPort {
		t.Errorf("Port = %d, want default %d", cfg.Port, DefaultPort)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("ANIMLIB_CONFIG", filepath.Join(t.TempDir(), "nested", "config.yaml"))

	cfg := &Config{LibraryDir: "/data/animations", Port: 9000, Theme: "light"}
	if err := cfg.Save(); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip = %+v, want %+v", loaded, cfg)
	}
}

func TestAnimationsDirResolution(t *testing.T) {
	cfg := &Config{LibraryDir: "/from/config"}

	t.Setenv("ANIMLIB_DIR", "/from/env")
	if got := cfg.AnimationsDir(); got != "/from/env" {
		t.Errorf("env override ignored: %q", got)
	}

	t.Setenv("ANIMLIB_DIR", "")
	if got := cfg.AnimationsDir(); got != "/from/config" {
		t.Errorf("config dir ignored: %q", got)
	}

	empty := &Config{}
	got := empty.AnimationsDir()
	if !strings.Contains(got, filepath.Join(".animlib", "animations")) {
		t.Errorf("default dir = %q", got)
	}
}
