package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/chromatools/resv6/chrom"
	"github.com/chromatools/resv6/compress"
	"github.com/chromatools/resv6/format"
	"github.com/chromatools/resv6/internal/hash"
	"github.com/chromatools/resv6/internal/pool"
)

// Options configure how datasets are rendered to artifacts.
type Options struct {
	// Artifact selects the output representation; zero value means CSV.
	Artifact format.ArtifactType

	// Compression is applied to the encoded artifact; zero value means
	// no compression.
	Compression format.CompressionType

	// Curves selects curve names to export, in the given order. Empty
	// exports every curve in sorted name order. Requested names absent
	// from a dataset are reported in Result.Missing, not failed on.
	Curves []string

	// VolumeRange, when non-nil, clips exported points and events to the
	// inclusive [min, max] volume window (the plot drivers' x-axis limit,
	// applied here as a row filter).
	VolumeRange *[2]float64
}

// Result reports one rendered artifact.
type Result struct {
	Path    string
	Curves  int
	Missing []string

	// Checksum is the xxHash64 of the artifact bytes as written (after
	// compression), for cheap verification of copied artifacts.
	Checksum uint64
}

// Exporter renders datasets into a fixed output directory. Safe for
// concurrent use by the batch driver's workers.
type Exporter struct {
	dir   string
	opts  Options
	codec compress.Codec
}

// New creates an Exporter writing into dir, creating it if needed.
func New(dir string, opts Options) (*Exporter, error) {
	if opts.Artifact == 0 {
		opts.Artifact = format.ArtifactCSV
	}
	if opts.Compression == 0 {
		opts.Compression = format.CompressionNone
	}

	codec, err := compress.GetCodec(opts.Compression)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	return &Exporter{dir: dir, opts: opts, codec: codec}, nil
}

// Render writes one dataset as <stem><artifact-ext>[<compression-ext>]
// inside the exporter's directory.
func (e *Exporter) Render(ds *chrom.Dataset, stem string) (Result, error) {
	names, missing := e.selectNames(ds)

	buf := pool.GetEntryBuffer()
	defer pool.PutEntryBuffer(buf)

	var err error
	switch e.opts.Artifact {
	case format.ArtifactJSON:
		err = writeJSON(buf, ds, names, e.opts.VolumeRange)
	default:
		err = writeCSV(buf, ds, names, e.opts.VolumeRange)
	}
	if err != nil {
		return Result{}, fmt.Errorf("encode %s artifact: %w", e.opts.Artifact, err)
	}

	packed, err := e.codec.Compress(buf.Bytes())
	if err != nil {
		return Result{}, fmt.Errorf("compress artifact: %w", err)
	}

	path := filepath.Join(e.dir, stem+e.opts.Artifact.Ext()+e.opts.Compression.Ext())
	if err := os.WriteFile(path, packed, 0o644); err != nil {
		return Result{}, fmt.Errorf("write artifact: %w", err)
	}

	return Result{
		Path:     path,
		Curves:   len(names),
		Missing:  missing,
		Checksum: hash.Sum64(packed),
	}, nil
}

// selectNames resolves the curve selection against the dataset.
func (e *Exporter) selectNames(ds *chrom.Dataset) (names, missing []string) {
	if len(e.opts.Curves) == 0 {
		return ds.Names(), nil
	}

	for _, name := range e.opts.Curves {
		if ds.Has(name) {
			names = append(names, name)
		} else {
			missing = append(missing, name)
		}
	}

	return names, missing
}

func inRange(volume float64, r *[2]float64) bool {
	if r == nil {
		return true
	}

	return volume >= r[0] && volume <= r[1]
}
