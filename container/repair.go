package container

import "bytes"

// Signatures of the vendor's nested archives. The start signature is the
// local-file-header magic plus the exact version/flag/method bytes the
// instrument software writes, which is what distinguishes a nested result
// archive from arbitrary zip content.
var (
	nestedStartSignature = []byte{0x50, 0x4B, 0x03, 0x04, 0x2D, 0x00, 0x00, 0x00, 0x08}
	endOfCentralDirSig   = []byte{0x50, 0x4B, 0x05, 0x06, 0x00, 0x00, 0x00, 0x00}
)

// eocdRecordSize is the fixed size of an end-of-central-directory record
// with an empty comment field.
const eocdRecordSize = 22

// repairNested strips corrupted trailing padding from a suspected nested
// archive.
//
// Nested archives are written with garbage bytes after the
// end-of-central-directory record, which makes the zip reader reject them.
// When data starts with the nested-archive signature, the buffer is
// truncated to end exactly eocdRecordSize bytes past the start of the last
// end-of-central-directory signature. Buffers without the start signature,
// or without any end signature, are returned unchanged.
func repairNested(data []byte) []byte {
	if !bytes.HasPrefix(data, nestedStartSignature) {
		return data
	}

	end := bytes.LastIndex(data, endOfCentralDirSig)
	if end < 0 {
		return data
	}

	limit := end + eocdRecordSize
	if limit > len(data) {
		return data
	}

	return data[:limit]
}
