package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, def.Addr, cfg.Addr)
	assert.Equal(t, def.RunTimeout, cfg.RunTimeout)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "treelox.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"prompt: \"lox> \"\n"+
			"history_file: /tmp/lox_history\n"+
			"addr: 0.0.0.0:9000\n"+
			"run_timeout: 250ms\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "lox> ", cfg.Prompt)
	assert.Equal(t, "/tmp/lox_history", cfg.HistoryFile)
	assert.Equal(t, "0.0.0.0:9000", cfg.Addr)
	assert.Equal(t, 250*time.Millisecond, cfg.RunTimeout)
	assert.Equal(t, Default().MaxSourceBytes, cfg.MaxSourceBytes)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read config")

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("run_timeout: [1, 2]\n"), 0o600))
	_, err = Load(path)
	assert.ErrorContains(t, err, "parse config")

	path = filepath.Join(t.TempDir(), "invalid.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_source_bytes: -1\naddr: \"\"\n"), 0o600))
	_, err = Load(path)
	assert.ErrorContains(t, err, "max_source_bytes must be positive")
	assert.ErrorContains(t, err, "addr must not be empty")
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"TREELOX_PROMPT":           ">> ",
		"TREELOX_ADDR":             ":7000",
		"TREELOX_RUN_TIMEOUT":      "2s",
		"TREELOX_MAX_SOURCE_BYTES": "10",
	}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	cfg := Default()
	require.NoError(t, cfg.applyEnv(lookup))
	assert.Equal(t, ">> ", cfg.Prompt)
	assert.Equal(t, ":7000", cfg.Addr)
	assert.Equal(t, 2*time.Second, cfg.RunTimeout)
	assert.Equal(t, 10, cfg.MaxSourceBytes)

	env["TREELOX_RUN_TIMEOUT"] = "soon"
	assert.ErrorContains(t, cfg.applyEnv(lookup), "TREELOX_RUN_TIMEOUT")
}
