package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/chromatools/resv6/format"
)

// resv6 config.toml key mapping to batch run settings.
type fileConfig struct {
	OutputDir   string    `toml:"output_dir"`
	Workers     int       `toml:"workers"`
	Curves      []string  `toml:"curves"`
	Format      string    `toml:"format"`
	Compression string    `toml:"compression"`
	VolumeRange []float64 `toml:"volume_range"`
}

// runConfig is the resolved configuration for one batch invocation.
type runConfig struct {
	OutputDir   string
	Workers     int
	Curves      []string
	Artifact    format.ArtifactType
	Compression format.CompressionType
	VolumeRange *[2]float64
}

func defaultRunConfig() runConfig {
	return runConfig{
		OutputDir:   "out",
		Artifact:    format.ArtifactCSV,
		Compression: format.CompressionNone,
	}
}

// loadRunConfig overlays a TOML file on the defaults. Only keys present in
// the file override; absent keys keep their default.
func loadRunConfig(path string) (runConfig, error) {
	cfg := defaultRunConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return runConfig{}, fmt.Errorf("load config: %w", err)
	}

	if meta.IsDefined("output_dir") {
		cfg.OutputDir = strings.TrimSpace(raw.OutputDir)
	}
	if meta.IsDefined("workers") {
		cfg.Workers = raw.Workers
	}
	if meta.IsDefined("curves") {
		cfg.Curves = raw.Curves
	}
	if meta.IsDefined("format") {
		cfg.Artifact, err = parseArtifact(raw.Format)
		if err != nil {
			return runConfig{}, err
		}
	}
	if meta.IsDefined("compression") {
		cfg.Compression, err = parseCompression(raw.Compression)
		if err != nil {
			return runConfig{}, err
		}
	}
	if meta.IsDefined("volume_range") {
		cfg.VolumeRange, err = parseVolumeRangePair(raw.VolumeRange)
		if err != nil {
			return runConfig{}, err
		}
	}

	return cfg, nil
}

func parseArtifact(name string) (format.ArtifactType, error) {
	a, ok := format.ParseArtifact(strings.TrimSpace(name))
	if !ok {
		return 0, fmt.Errorf("unknown artifact format %q (want csv or json)", name)
	}

	return a, nil
}

func parseCompression(name string) (format.CompressionType, error) {
	c, ok := format.ParseCompression(strings.TrimSpace(name))
	if !ok {
		return 0, fmt.Errorf("unknown compression %q (want none, zstd, s2 or lz4)", name)
	}

	return c, nil
}

func parseVolumeRangePair(values []float64) (*[2]float64, error) {
	if len(values) != 2 {
		return nil, fmt.Errorf("volume_range wants exactly two values, got %d", len(values))
	}
	if values[0] > values[1] {
		return nil, fmt.Errorf("volume_range min %g exceeds max %g", values[0], values[1])
	}

	return &[2]float64{values[0], values[1]}, nil
}

// parseVolumeRangeFlag parses the -xlim flag form "min:max".
func parseVolumeRangeFlag(s string) (*[2]float64, error) {
	lo, hi, ok := strings.Cut(s, ":")
	if !ok {
		return nil, fmt.Errorf("xlim wants min:max, got %q", s)
	}

	var window [2]float64
	var err error
	if window[0], err = strconv.ParseFloat(strings.TrimSpace(lo), 64); err != nil {
		return nil, fmt.Errorf("xlim min %q: %w", lo, err)
	}
	if window[1], err = strconv.ParseFloat(strings.TrimSpace(hi), 64); err != nil {
		return nil, fmt.Errorf("xlim max %q: %w", hi, err)
	}

	return parseVolumeRangePair(window[:])
}
