package batch

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	resv6 "github.com/chromatools/resv6"
	"github.com/chromatools/resv6/chrom"
	"github.com/chromatools/resv6/errs"
	"github.com/chromatools/resv6/export"
)

// Renderer consumes one assembled dataset and produces an artifact named
// after the input file's stem. export.Exporter is the data renderer; plot
// renderers satisfy the same interface.
type Renderer interface {
	Render(ds *chrom.Dataset, stem string) (export.Result, error)
}

// Options configure a batch run.
type Options struct {
	// Workers bounds how many files decode concurrently. Zero or negative
	// means one worker per CPU.
	Workers int

	// Renderer receives every successfully assembled primary dataset.
	// Nil skips rendering; outcomes then carry only the dataset.
	Renderer Renderer

	// Logger receives one line per finished file.
	Logger zerolog.Logger

	// Progress, when non-nil, is called after each file finishes with the
	// number of completed files and the total. Calls are serialized.
	Progress func(done, total int)
}

// Outcome reports one input file, in input order.
type Outcome struct {
	// Path is the input file as given.
	Path string

	// Dataset is the assembled primary chromatogram; nil when Err is set.
	Dataset *chrom.Dataset

	// Created is the run creation date recovered from the container.
	Created string

	// Artifact describes the rendered output, when a renderer ran.
	Artifact export.Result

	// Elapsed covers decode, assembly and rendering for this file.
	Elapsed time.Duration

	// Err is the failure for this file only; other files are unaffected.
	Err error
}

// Run decodes every file with up to Options.Workers files in flight and
// returns one outcome per input, in input order. Files are independent;
// per-file failures land in their outcome. Run itself fails only when
// files is empty, when ctx is cancelled, or with errs.ErrAllFailed when
// no file succeeded.
func Run(ctx context.Context, files []string, opts Options) ([]Outcome, error) {
	if len(files) == 0 {
		return nil, errs.ErrNoInputs
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(files) {
		workers = len(files)
	}

	outcomes := make([]Outcome, len(files))

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		done int
	)
	sem := make(chan struct{}, workers)

	for i, path := range files {
		if err := ctx.Err(); err != nil {
			// Mark the rest as not run and stop dispatching.
			for j := i; j < len(files); j++ {
				outcomes[j] = Outcome{Path: files[j], Err: err}
			}

			break
		}

		sem <- struct{}{}
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			defer func() { <-sem }()

			outcomes[i] = runOne(path, opts.Renderer)
			logOutcome(opts.Logger, &outcomes[i])

			if opts.Progress != nil {
				mu.Lock()
				done++
				opts.Progress(done, len(files))
				mu.Unlock()
			}
		}(i, path)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return outcomes, err
	}

	failed := 0
	for i := range outcomes {
		if outcomes[i].Err != nil {
			failed++
		}
	}
	if failed == len(outcomes) {
		return outcomes, fmt.Errorf("%w: %d file(s)", errs.ErrAllFailed, failed)
	}

	return outcomes, nil
}

// runOne executes the full pipeline for a single file.
func runOne(path string, renderer Renderer) Outcome {
	start := time.Now()
	out := Outcome{Path: path}

	result, err := resv6.Decode(path)
	if err != nil {
		out.Err = fmt.Errorf("%s: %w", path, err)
		out.Elapsed = time.Since(start)

		return out
	}

	ds := result.Primary()
	if ds == nil {
		out.Err = fmt.Errorf("%s: %w", path, errs.ErrNoChromatogram)
		out.Elapsed = time.Since(start)

		return out
	}
	if ds.Len() == 0 {
		out.Err = fmt.Errorf("%s: %w", path, errs.ErrEmptyDataset)
		out.Elapsed = time.Since(start)

		return out
	}

	out.Dataset = ds
	out.Created = result.Created

	if renderer != nil {
		artifact, err := renderer.Render(ds, stem(path))
		if err != nil {
			out.Err = fmt.Errorf("%s: render: %w", path, err)
			out.Elapsed = time.Since(start)

			return out
		}
		out.Artifact = artifact
	}

	out.Elapsed = time.Since(start)

	return out
}

// stem strips the directory and extension from an input path.
func stem(path string) string {
	base := filepath.Base(path)

	return strings.TrimSuffix(base, filepath.Ext(base))
}

func logOutcome(logger zerolog.Logger, out *Outcome) {
	if out.Err != nil {
		logger.Error().Err(out.Err).Str("file", out.Path).Dur("elapsed", out.Elapsed).Msg("decode failed")

		return
	}

	evt := logger.Info().
		Str("file", out.Path).
		Int("curves", out.Dataset.Len()).
		Str("fingerprint", fmt.Sprintf("%016x", out.Dataset.Fingerprint())).
		Dur("elapsed", out.Elapsed)
	if out.Created != "" {
		evt = evt.Str("created", out.Created)
	}
	evt.Msg("decoded")

	for _, name := range out.Dataset.Names() {
		c, ok := out.Dataset.Curve(name)
		if ok && c.LengthMismatch > 0 {
			logger.Warn().
				Str("file", out.Path).
				Str("curve", name).
				Int("dropped", c.LengthMismatch).
				Msg("coordinate arrays had unequal lengths")
		}
	}
	if len(out.Artifact.Missing) > 0 {
		logger.Warn().
			Str("file", out.Path).
			Strs("curves", out.Artifact.Missing).
			Msg("requested curves not in dataset")
	}
}
