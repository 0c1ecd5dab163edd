package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"data_dir": "/models",
		"target_version": "wotlk",
		"workers": 4,
		"verbose": true
	}`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/models", cfg.DataDir)
	assert.Equal(t, "", cfg.OutputDir)
	assert.Equal(t, "wotlk", cfg.TargetVersion)
	assert.Equal(t, 4, cfg.Workers)
	assert.True(t, cfg.Verbose)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))
	_, err = Load(path)
	require.Error(t, err)
}

func TestResolveDefaults(t *testing.T) {
	var cfg Config
	cfg.Resolve(Flags{})

	assert.Equal(t, ".", cfg.DataDir)
	assert.Equal(t, ".", cfg.OutputDir)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
	assert.False(t, cfg.Verbose)
}

func TestResolveFlagsOverrideFile(t *testing.T) {
	cfg := Config{DataDir: "/file", TargetVersion: "cata", Workers: 2}
	cfg.Resolve(Flags{DataDir: "/flag", Workers: 8, Verbose: true})

	assert.Equal(t, "/flag", cfg.DataDir)
	assert.Equal(t, "/flag", cfg.OutputDir, "output dir defaults to the resolved data dir")
	assert.Equal(t, "cata", cfg.TargetVersion)
	assert.Equal(t, 8, cfg.Workers)
	assert.True(t, cfg.Verbose)
}
