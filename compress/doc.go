// Package compress provides the compression codecs applied to exported
// dataset artifacts.
//
// Exported curve tables compress well (volume columns are near-monotonic
// text), so the batch driver offers the same codec palette for artifacts
// regardless of format: None, Zstd, S2, or LZ4, selected by
// format.CompressionType. The Zstd codec uses the cgo gozstd bindings when
// cgo is available and falls back to the pure-Go implementation otherwise.
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	packed, err := codec.Compress(artifactBytes)
package compress
