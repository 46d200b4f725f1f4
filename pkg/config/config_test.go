package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"microstack/internal/models"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.True(t, cfg.Import.Sort)
	assert.True(t, cfg.Import.InvertOrder)
	assert.Equal(t, 0, cfg.Import.ImgnamePosition)
	assert.Equal(t, string(models.Float64), cfg.Import.DType)
	assert.Equal(t, SkipRowsAuto, cfg.Import.SkipRows)
	assert.Equal(t, models.DefaultUnit, cfg.Meta.Unit)
}

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "microstack.yaml")

	cfg := DefaultConfig()
	cfg.Import.FnameExtension = "txt"
	cfg.Import.ImgnamePosition = 1
	cfg.Meta.PixelLength = 0.169
	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadConfigRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("import: [not a map"), 0644))

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestImportOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Import.FnameExtension = "txt"
	cfg.Import.ImgnamePosition = 1
	cfg.Meta.PixelLength = 0.169

	opts, err := cfg.ImportOptions()
	require.NoError(t, err)

	assert.Equal(t, "txt", opts.Extension)
	require.NotNil(t, opts.NamePosition)
	assert.Equal(t, 1, *opts.NamePosition)
	assert.Nil(t, opts.SkipRows)
	assert.Equal(t, models.Float64, opts.DType)
	assert.Equal(t, 0.169, opts.PixelLength)
}

func TestImportOptionsStemNames(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Import.StemNames = true

	opts, err := cfg.ImportOptions()
	require.NoError(t, err)
	assert.Nil(t, opts.NamePosition)
}

func TestImportOptionsExplicitSkipRows(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Import.SkipRows = 2

	opts, err := cfg.ImportOptions()
	require.NoError(t, err)
	require.NotNil(t, opts.SkipRows)
	assert.Equal(t, 2, *opts.SkipRows)
}

func TestImportOptionsRejectsBadValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Import.DType = "float16"
	_, err := cfg.ImportOptions()
	var cfgErr *models.ConfigError
	require.True(t, errors.As(err, &cfgErr))

	cfg = DefaultConfig()
	cfg.Import.SkipRows = -5
	_, err = cfg.ImportOptions()
	require.True(t, errors.As(err, &cfgErr))
}
