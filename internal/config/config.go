// Package config loads BookDeck settings from a TOML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const (
	// DefaultModel is the Gemini model used when nothing else is configured.
	DefaultModel = "gemini-3-pro-preview"

	appDir = "bookdeck"
)

// ErrMissingAPIKey is returned when neither GEMINI_API_KEY nor API_KEY is set.
var ErrMissingAPIKey = errors.New("config: GEMINI_API_KEY (or API_KEY) is not set")

// Config is the resolved runtime configuration.
type Config struct {
	APIKey    string `toml:"-"`
	Model     string `toml:"model"`
	OutputDir string `toml:"output_dir"`
	LogFile   string `toml:"log_file"`
	LogMode   string `toml:"log_mode"`
	AltScreen bool   `toml:"alt_screen"`
}

// Defaults returns the configuration used before any file or env is read.
func Defaults() Config {
	return Config{
		Model:     DefaultModel,
		OutputDir: ".",
		LogFile:   defaultLogFile(),
		LogMode:   "development",
		AltScreen: true,
	}
}

// DefaultPath is <user config dir>/bookdeck/config.toml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, appDir, "config.toml")
}

func defaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, appDir, "bookdeck.log")
}

// Load reads path over the defaults and resolves the API credential. A
// missing file is fine; a malformed one is not.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = DefaultModel
	}
	if strings.TrimSpace(cfg.OutputDir) == "" {
		cfg.OutputDir = "."
	}

	cfg.APIKey = apiKeyFromEnv()
	if cfg.APIKey == "" {
		return cfg, ErrMissingAPIKey
	}
	return cfg, nil
}

// Save writes the file-backed fields of cfg to path.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

func apiKeyFromEnv() string {
	for _, name := range []string{"GEMINI_API_KEY", "API_KEY"} {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v
		}
	}
	return ""
}
