package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	SetDefaults(viper.GetViper())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want :8080", cfg.Server.Addr)
	}
	if cfg.Search.MaxQueryLength != DefaultMaxQueryLength {
		t.Errorf("MaxQueryLength = %d, want %d", cfg.Search.MaxQueryLength, DefaultMaxQueryLength)
	}
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	t.Setenv("COOKME_SERVER_ADDR", "127.0.0.1:9999")
	t.Setenv("COOKME_LOG_LEVEL", "debug")
	SetDefaults(viper.GetViper())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:9999" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
}

func TestLoad_ZeroQueryLengthFallsBack(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	viper.Set(KeyMaxQueryLength, 0)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Search.MaxQueryLength != DefaultMaxQueryLength {
		t.Fatalf("expected fallback to %d, got %d", DefaultMaxQueryLength, cfg.Search.MaxQueryLength)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	defer func() { _ = os.Chdir(wd) }()

	// no .env is not an error
	if err := LoadDotEnv(); err != nil {
		t.Fatalf("LoadDotEnv without file: %v", err)
	}

	t.Setenv("COOKME_DOTENV_PROBE", "")
	_ = os.Unsetenv("COOKME_DOTENV_PROBE")
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("COOKME_DOTENV_PROBE=fridge\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	if err := LoadDotEnv(); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := os.Getenv("COOKME_DOTENV_PROBE"); got != "fridge" {
		t.Fatalf("expected value from .env, got %q", got)
	}
}
