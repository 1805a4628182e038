package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"remote_url":     "https://json.example",
		"remote_timeout": "5s",
		"sync_interval":  float64(2 * time.Minute),
	})

	t.Run("loads from flags", func(t *testing.T) {
		cfg := &Config{DatabaseDSN: "keep.db"}
		require.NoError(t, parseJson(cfg, []string{"-config", pathFlag}))

		assert.Equal(t, "https://json.example", cfg.RemoteURL)
		assert.Equal(t, 5*time.Second, cfg.RemoteTimeout)
		assert.Equal(t, 2*time.Minute, cfg.SyncInterval)
		assert.Equal(t, "keep.db", cfg.DatabaseDSN, "absent keys must not reset values")
	})

	t.Run("no flags → no changes", func(t *testing.T) {
		cfg := &Config{RemoteURL: "defaults", SyncInterval: 42 * time.Second}
		require.NoError(t, parseJson(cfg, nil))

		assert.Equal(t, "defaults", cfg.RemoteURL)
		assert.Equal(t, 42*time.Second, cfg.SyncInterval)
	})

	t.Run("missing file → error", func(t *testing.T) {
		err := parseJson(&Config{}, []string{"-c", filepath.Join(dir, "absent.json")})
		assert.Error(t, err)
	})

	t.Run("invalid JSON → error", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		assert.Error(t, parseJson(&Config{}, []string{"-config", bad}))
	})

	t.Run("invalid duration → error", func(t *testing.T) {
		bad := writeTempJSON(t, dir, "dur.json", map[string]any{"sync_interval": "soon"})
		assert.Error(t, parseJson(&Config{}, []string{"-c", bad}))
	})
}
