package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chromatools/resv6/format"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoadRunConfig(t *testing.T) {
	t.Run("OverridesDefaults", func(t *testing.T) {
		path := writeConfig(t, `
output_dir = "artifacts"
workers = 4
curves = ["UV 1_280", "Fractions"]
format = "json"
compression = "zstd"
volume_range = [0.5, 10.0]
`)

		cfg, err := loadRunConfig(path)
		require.NoError(t, err)
		require.Equal(t, "artifacts", cfg.OutputDir)
		require.Equal(t, 4, cfg.Workers)
		require.Equal(t, []string{"UV 1_280", "Fractions"}, cfg.Curves)
		require.Equal(t, format.ArtifactJSON, cfg.Artifact)
		require.Equal(t, format.CompressionZstd, cfg.Compression)
		require.NotNil(t, cfg.VolumeRange)
		require.Equal(t, [2]float64{0.5, 10.0}, *cfg.VolumeRange)
	})

	t.Run("AbsentKeysKeepDefaults", func(t *testing.T) {
		path := writeConfig(t, `workers = 2`)

		cfg, err := loadRunConfig(path)
		require.NoError(t, err)
		require.Equal(t, 2, cfg.Workers)
		require.Equal(t, "out", cfg.OutputDir)
		require.Equal(t, format.ArtifactCSV, cfg.Artifact)
		require.Equal(t, format.CompressionNone, cfg.Compression)
		require.Nil(t, cfg.VolumeRange)
	})

	t.Run("UnknownFormat", func(t *testing.T) {
		path := writeConfig(t, `format = "parquet"`)

		_, err := loadRunConfig(path)
		require.ErrorContains(t, err, "unknown artifact format")
	})

	t.Run("UnknownCompression", func(t *testing.T) {
		path := writeConfig(t, `compression = "brotli"`)

		_, err := loadRunConfig(path)
		require.ErrorContains(t, err, "unknown compression")
	})

	t.Run("BadVolumeRange", func(t *testing.T) {
		_, err := loadRunConfig(writeConfig(t, `volume_range = [1.0]`))
		require.ErrorContains(t, err, "exactly two values")

		_, err = loadRunConfig(writeConfig(t, `volume_range = [5.0, 1.0]`))
		require.ErrorContains(t, err, "exceeds max")
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := loadRunConfig(filepath.Join(t.TempDir(), "absent.toml"))
		require.Error(t, err)
	})
}

func TestParseVolumeRangeFlag(t *testing.T) {
	window, err := parseVolumeRangeFlag("0.5:10")
	require.NoError(t, err)
	require.Equal(t, [2]float64{0.5, 10}, *window)

	_, err = parseVolumeRangeFlag("0.5")
	require.ErrorContains(t, err, "min:max")

	_, err = parseVolumeRangeFlag("ten:20")
	require.Error(t, err)

	// Trailing garbage after a valid number is rejected, not truncated.
	_, err = parseVolumeRangeFlag("1.5abc:9")
	require.Error(t, err)

	_, err = parseVolumeRangeFlag("1:9xyz")
	require.Error(t, err)
}

func TestSplitCurves(t *testing.T) {
	require.Equal(t, []string{"UV 1_280", "Cond"}, splitCurves(" UV 1_280, Cond ,"))
	require.Nil(t, splitCurves(""))
}

func TestExpandInputs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.zip", "a.zip", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	loose := filepath.Join(dir, "notes.txt")

	files, err := expandInputs([]string{loose, dir})
	require.NoError(t, err)
	require.Equal(t, []string{
		loose,
		filepath.Join(dir, "a.zip"),
		filepath.Join(dir, "b.zip"),
	}, files)

	_, err = expandInputs([]string{filepath.Join(dir, "absent")})
	require.Error(t, err)
}
