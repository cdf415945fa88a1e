// Command resv6 decodes chromatography result containers and writes their
// primary chromatogram as CSV or JSON artifacts.
//
// Usage:
//
//	resv6 [flags] <file-or-directory> ...
//
// Directory arguments expand to every .zip file they contain. Settings come
// from defaults, then an optional TOML config file, then flags; each layer
// overrides the previous one.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/chromatools/resv6/batch"
	"github.com/chromatools/resv6/export"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "resv6: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("resv6", flag.ExitOnError)
	var (
		configPath  = fs.String("config", "", "TOML config file")
		outputDir   = fs.String("out", "", "output directory for artifacts")
		workers     = fs.Int("workers", 0, "concurrent files (0 = one per CPU)")
		curves      = fs.String("curves", "", "comma-separated curve names to export (default all)")
		artifact    = fs.String("format", "", "artifact format: csv or json")
		compression = fs.String("compression", "", "artifact compression: none, zstd, s2 or lz4")
		xlim        = fs.String("xlim", "", "volume window min:max to export")
		quiet       = fs.Bool("quiet", false, "log errors only")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := defaultRunConfig()
	if *configPath != "" {
		loaded, err := loadRunConfig(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	var flagErr error
	fs.Visit(func(f *flag.Flag) {
		if flagErr != nil {
			return
		}
		switch f.Name {
		case "out":
			cfg.OutputDir = *outputDir
		case "workers":
			cfg.Workers = *workers
		case "curves":
			cfg.Curves = splitCurves(*curves)
		case "format":
			cfg.Artifact, flagErr = parseArtifact(*artifact)
		case "compression":
			cfg.Compression, flagErr = parseCompression(*compression)
		case "xlim":
			cfg.VolumeRange, flagErr = parseVolumeRangeFlag(*xlim)
		}
	})
	if flagErr != nil {
		return flagErr
	}

	files, err := expandInputs(fs.Args())
	if err != nil {
		return err
	}

	logger := newLogger(*quiet)

	exporter, err := export.New(cfg.OutputDir, export.Options{
		Artifact:    cfg.Artifact,
		Compression: cfg.Compression,
		Curves:      cfg.Curves,
		VolumeRange: cfg.VolumeRange,
	})
	if err != nil {
		return err
	}

	_, err = batch.Run(context.Background(), files, batch.Options{
		Workers:  cfg.Workers,
		Renderer: exporter,
		Logger:   logger,
	})

	return err
}

func newLogger(quiet bool) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	logger := zerolog.New(output).With().Timestamp().Logger()
	if quiet {
		logger = logger.Level(zerolog.ErrorLevel)
	}

	return logger
}

// expandInputs resolves positional arguments: files pass through, and each
// directory contributes its .zip members in sorted order.
func expandInputs(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("input %s: %w", arg, err)
		}
		if !info.IsDir() {
			files = append(files, arg)

			continue
		}

		matches, err := filepath.Glob(filepath.Join(arg, "*.zip"))
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", arg, err)
		}
		sort.Strings(matches)
		files = append(files, matches...)
	}

	return files, nil
}

func splitCurves(s string) []string {
	var names []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			names = append(names, part)
		}
	}

	return names
}
