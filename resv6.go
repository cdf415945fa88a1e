// Package resv6 decodes chromatography result containers into in-memory
// datasets.
//
// A result container is a zip archive whose entries hold descriptive XML
// documents and nested sub-archives of binary coordinate arrays. Decoding
// runs in three stages, each exposed by its own package: container reads
// and repairs the archive structure, decode classifies and decodes the
// entries, and chrom assembles the decoded values into named curves.
//
// This package provides one-call helpers over that pipeline. Callers that
// need the intermediate representations use the stage packages directly.
package resv6

import (
	"github.com/chromatools/resv6/chrom"
	"github.com/chromatools/resv6/container"
	"github.com/chromatools/resv6/decode"
	"github.com/chromatools/resv6/errs"
)

// Decode reads the container file at path and assembles every chromatogram
// dataset it holds.
func Decode(path string) (*chrom.Result, error) {
	c, err := container.Open(path)
	if err != nil {
		return nil, err
	}

	return chrom.AssembleAll(decode.Decode(c))
}

// DecodeBytes assembles every chromatogram dataset from an in-memory
// container image.
func DecodeBytes(data []byte) (*chrom.Result, error) {
	c, err := container.FromBytes(data)
	if err != nil {
		return nil, err
	}

	return chrom.AssembleAll(decode.Decode(c))
}

// DecodePrimary reads the container file at path and returns its primary
// chromatogram dataset. Returns errs.ErrNoChromatogram when the container
// assembles but holds no primary chromatogram, and errs.ErrEmptyDataset
// when the primary chromatogram has no curves.
func DecodePrimary(path string) (*chrom.Dataset, error) {
	result, err := Decode(path)
	if err != nil {
		return nil, err
	}

	ds := result.Primary()
	if ds == nil {
		return nil, errs.ErrNoChromatogram
	}
	if ds.Len() == 0 {
		return nil, errs.ErrEmptyDataset
	}

	return ds, nil
}
