package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diderotnet/morpho3d/pkg/config"
)

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	assert.Equal(t, "dilation", cfg.Filter.Operation)
	assert.Equal(t, "cube", cfg.Filter.Shape)
	assert.Equal(t, 2, cfg.Filter.RadiusX)
	assert.GreaterOrEqual(t, cfg.Processing.Workers, 1)
	assert.Equal(t, 0.0, cfg.Processing.Background)
	assert.Equal(t, 255.0, cfg.Processing.Foreground)
	assert.Equal(t, "z", cfg.Output.Axis)
}

func TestLoadConfig_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := config.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "morpho3d.yaml")

	cfg := config.DefaultConfig()
	cfg.Filter.Operation = "closing"
	cfg.Filter.Shape = "line-z"
	cfg.Filter.RadiusZ = 9
	cfg.Processing.Workers = 3
	cfg.Output.Verbose = true

	require.NoError(t, config.SaveConfig(cfg, path))

	loaded, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("filter:\n  operation: erosion\n"), 0644))

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "erosion", cfg.Filter.Operation)
	assert.Equal(t, "cube", cfg.Filter.Shape, "unset keys keep their defaults")
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("filter: [not a mapping"), 0644))

	_, err := config.LoadConfig(path)
	assert.Error(t, err)
}
