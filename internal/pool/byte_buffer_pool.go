package pool

import (
	"io"
	"sync"
)

const (
	// EntryBufferDefaultSize is the default capacity of buffers used to
	// slurp container entries.
	EntryBufferDefaultSize = 1024 * 16 // 16KiB

	// EntryBufferMaxThreshold is the largest capacity returned to the pool;
	// oversized buffers from unusually large entries are dropped.
	EntryBufferMaxThreshold = 1024 * 1024 * 4 // 4MiB
)

// ByteBuffer is a reusable byte slice wrapper handed out by GetEntryBuffer.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified default size.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Write appends p to the buffer, growing it if necessary. It never fails;
// the error is present to satisfy io.Writer.
func (bb *ByteBuffer) Write(p []byte) (int, error) {
	bb.B = append(bb.B, p...)

	return len(p), nil
}

// ReadFrom fills the buffer from r until EOF, growing as needed.
func (bb *ByteBuffer) ReadFrom(r io.Reader) (int64, error) {
	var total int64
	for {
		if len(bb.B) == cap(bb.B) {
			bb.B = append(bb.B, 0)[:len(bb.B)]
		}
		n, err := r.Read(bb.B[len(bb.B):cap(bb.B)])
		bb.B = bb.B[:len(bb.B)+n]
		total += int64(n)
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

var entryBufferPool = sync.Pool{
	New: func() any {
		return NewByteBuffer(EntryBufferDefaultSize)
	},
}

// GetEntryBuffer obtains a reset ByteBuffer from the pool.
func GetEntryBuffer() *ByteBuffer {
	bb, _ := entryBufferPool.Get().(*ByteBuffer)
	bb.Reset()

	return bb
}

// PutEntryBuffer returns a buffer to the pool. Buffers grown past
// EntryBufferMaxThreshold are discarded to bound pool memory.
func PutEntryBuffer(bb *ByteBuffer) {
	if cap(bb.B) > EntryBufferMaxThreshold {
		return
	}
	entryBufferPool.Put(bb)
}
