// Package chrom assembles decoded container entries into chromatogram
// datasets.
//
// Each descriptor entry (key containing ".Xml") is parsed structurally and
// joined against the decoded store: signal curves reference a detached
// coordinate entry by filename, whose "CoordinateData.Volumes" and
// "CoordinateData.Amplitudes" float arrays are paired index-wise into
// (volume, amplitude) points; event curves carry (volume, label) pairs and
// keep only blocks flagged as original data.
//
// A curve whose coordinate reference cannot be resolved is omitted from the
// dataset and never aborts assembly of its siblings. The assembled Dataset
// is the only artifact exposed to downstream consumers and outlives the
// container it was built from.
package chrom
