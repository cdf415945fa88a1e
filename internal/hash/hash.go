package hash

import "github.com/cespare/xxhash/v2"

// Sum64 computes the xxHash64 of the given bytes.
func Sum64(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Digest is a streaming xxHash64 accumulator, used to fingerprint
// assembled datasets without concatenating their contents.
type Digest struct {
	d *xxhash.Digest
}

// NewDigest creates a new streaming digest.
func NewDigest() *Digest {
	return &Digest{d: xxhash.New()}
}

// WriteString feeds a string into the digest.
func (d *Digest) WriteString(s string) {
	_, _ = d.d.WriteString(s)
}

// Write feeds bytes into the digest.
func (d *Digest) Write(b []byte) {
	_, _ = d.d.Write(b)
}

// Sum64 returns the accumulated hash.
func (d *Digest) Sum64() uint64 {
	return d.d.Sum64()
}
