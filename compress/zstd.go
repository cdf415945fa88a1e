package compress

// ZstdCompressor favors compression ratio; the right choice for archived
// artifacts that are written once and rarely re-read.
//
// Two implementations back this type: the cgo gozstd bindings (zstd_cgo.go)
// and the pure-Go klauspost decoder/encoder (zstd_pure.go), selected at
// build time by the cgo constraint.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd codec with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
