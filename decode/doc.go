// Package decode classifies and decodes the raw entries of an extracted
// container into typed values.
//
// Every entry is inspected once and assigned a decoded Value with a
// format.Kind of Text, FloatArray, XML, or Unknown. The classification
// heuristics mirror the vendor's container layout:
//
//   - entries whose key contains "Xml" hold descriptor documents and decode
//     as XML node trees (the raw bytes stay available for the structural
//     parse in package chrom);
//   - nested-archive entries whose key contains "True" hold detached
//     coordinate arrays: little-endian float32 data framed by a fixed
//     47-byte header and 49-byte trailer;
//   - sub-entries whose key contains "DataType" hold short UTF-8 tags;
//   - remaining sub-entries over 24 bytes are tried as XML, anything
//     smaller is treated as empty.
//
// A failed decode produces a Value carrying the failure reason; it never
// aborts the pass and never affects sibling entries. Decoding is pure with
// respect to the raw bytes, so repeated runs over the same container yield
// identical stores.
package decode
