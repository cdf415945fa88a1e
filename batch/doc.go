// Package batch decodes many result containers concurrently.
//
// Each input file runs the full pipeline independently: open the
// container, decode its entries, assemble the primary chromatogram and
// hand the dataset to a renderer. Files never share state, so the only
// parallelism is across files; a failure in one input is reported in its
// outcome and never disturbs the others.
package batch
