package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Environment overrides for the data directory and database file.
const (
	EnvCookmeHome = "COOKME_HOME"
	EnvCookmeDB   = "COOKME_DB"
)

// DataDir returns the directory used to store cookme data.
// COOKME_HOME wins over the data_dir config key, which wins over ~/.cookme.
func DataDir() (string, error) {
	if d := os.Getenv(EnvCookmeHome); d != "" {
		return d, nil
	}
	if d := viper.GetString(KeyDataDir); d != "" {
		return d, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cookme"), nil
}

// EnsureDataDir returns DataDir after creating it if needed.
func EnsureDataDir() (string, error) {
	d, err := DataDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(d, 0o755); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}
	return d, nil
}

// DBPath returns the full path to the SQLite database file.
func DBPath() (string, error) {
	if p := os.Getenv(EnvCookmeDB); p != "" {
		return p, nil
	}
	if p := viper.GetString(KeyDBPath); p != "" {
		return p, nil
	}
	d, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "cookme.db"), nil
}
