package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeKVsRedactsCredentials(t *testing.T) {
	out := sanitizeKVs([]interface{}{"api_key", "abc123", "model", "gemini", "dangling"})
	assert.Equal(t, []interface{}{"api_key", "[REDACTED]", "model", "gemini", "dangling"}, out)
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "bookdeck.log")
	log, err := New("production", path)
	require.NoError(t, err)

	log.Info("generation finished", "request_id", "r-1")
	log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "generation finished")
	assert.Contains(t, string(data), "r-1")
}

func TestNopDiscards(t *testing.T) {
	log := NewNop().With("component", "test")
	log.Error("ignored", "err", "boom")
	log.Sync()
}
