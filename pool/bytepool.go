// File: pool/bytepool.go
// Author: momentics <momentics@gmail.com>

package pool

import "sync"

// DefaultChunkSize is the read chunk used by buffered streams.
const DefaultChunkSize = 4096

// BytePool hands out fixed-size scratch chunks.
type BytePool struct {
	chunks sync.Pool
	size   int
}

// NewBytePool returns a pool of size-byte chunks. Non-positive sizes fall
// back to DefaultChunkSize.
func NewBytePool(size int) *BytePool {
	if size <= 0 {
		size = DefaultChunkSize
	}
	bp := &BytePool{size: size}
	bp.chunks.New = func() any {
		b := make([]byte, size)
		return &b
	}
	return bp
}

// Size returns the chunk length.
func (b *BytePool) Size() int { return b.size }

// GetBuffer returns a chunk of Size bytes.
func (b *BytePool) GetBuffer() []byte {
	return (*b.chunks.Get().(*[]byte))[:b.size]
}

// PutBuffer returns a chunk to the pool. Foreign-sized slices are dropped.
func (b *BytePool) PutBuffer(buf []byte) {
	if cap(buf) < b.size {
		return
	}
	buf = buf[:b.size]
	b.chunks.Put(&buf)
}
