package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "")

	cfg, err := Load("")
	require.ErrorIs(t, err, ErrMissingAPIKey)
	assert.Equal(t, DefaultModel, cfg.Model)
}

func TestLoadFallsBackToAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "fallback")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, "fallback", cfg.APIKey)
}

func TestLoadPrefersGeminiKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "primary")
	t.Setenv("API_KEY", "fallback")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "primary", cfg.APIKey)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "k")
	path := filepath.Join(t.TempDir(), "config.toml")
	body := "model = \"gemini-2.5-flash\"\noutput_dir = \"/tmp/decks\"\nalt_screen = false\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-flash", cfg.Model)
	assert.Equal(t, "/tmp/decks", cfg.OutputDir)
	assert.False(t, cfg.AltScreen)
	assert.Equal(t, "development", cfg.LogMode)
}

func TestLoadMalformedFile(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "k")
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("model = ["), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMissingAPIKey)
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "k")
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	cfg := Defaults()
	cfg.Model = "custom-model"
	cfg.APIKey = "must-not-persist"
	require.NoError(t, Save(path, cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "must-not-persist")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "custom-model", loaded.Model)
}
