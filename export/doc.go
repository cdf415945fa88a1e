// Package export writes assembled chromatogram datasets to disk as data
// artifacts.
//
// The batch driver invokes decode-then-render per input file; this package
// is the data-side renderer: CSV or JSON tables of the selected curves,
// optionally compressed with any codec from the compress package. Plot
// renderers consume the same chrom.Dataset through the same interface and
// live outside this module.
package export
