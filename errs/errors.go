// Package errs defines sentinel error values shared across resv6 packages.
//
// Errors are wrapped with fmt.Errorf("%w: ...") at the point of failure so
// callers can discriminate with errors.Is while still seeing context.
package errs

import "errors"

var (
	// ErrNotContainer indicates the outer file could not be opened as a
	// result container at all. This is the only structural (per-file fatal)
	// error class; the batch driver reports it and moves on.
	ErrNotContainer = errors.New("not a valid result container")

	// ErrNoChromatogram indicates no chromatogram descriptor entry was
	// found in the container.
	ErrNoChromatogram = errors.New("no chromatogram descriptor found")

	// ErrEmptyDataset indicates a descriptor was found but assembly
	// produced zero curves ("no plottable data").
	ErrEmptyDataset = errors.New("dataset contains no curves")

	// ErrMissingCoordinates indicates a curve referenced coordinate arrays
	// that are absent or failed to decode. The assembler treats this as
	// curve omission, never as a dataset failure.
	ErrMissingCoordinates = errors.New("referenced coordinate data missing")

	// ErrManifestNotFound indicates the container has no manifest entry.
	// Fatal only to the cleanup pass, never to assembled datasets.
	ErrManifestNotFound = errors.New("manifest entry not found")

	// ErrWrongKind indicates a decoded value was accessed as a kind it
	// does not hold.
	ErrWrongKind = errors.New("decoded value has wrong kind")

	// ErrNoInputs indicates a batch run was started with no input files.
	ErrNoInputs = errors.New("no input files")

	// ErrAllFailed indicates every input file of a batch run failed.
	ErrAllFailed = errors.New("all input files failed")
)
