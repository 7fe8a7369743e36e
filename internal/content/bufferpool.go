package content

import "sync"

const (
	smallBufferSize  = 4 << 10
	mediumBufferSize = 32 << 10
)

// bufferPool hands out reusable copy buffers for file bodies.
type bufferPool struct {
	small  sync.Pool
	medium sync.Pool
}

var globalBufferPool = &bufferPool{
	small: sync.Pool{
		New: func() interface{} {
			buf := make([]byte, smallBufferSize)
			return &buf
		},
	},
	medium: sync.Pool{
		New: func() interface{} {
			buf := make([]byte, mediumBufferSize)
			return &buf
		},
	},
}

// getBuffer returns a buffer sized for a body of the given length. Bodies
// larger than the medium tier still get a medium buffer; it is only used
// as copy scratch space.
func getBuffer(size int64) []byte {
	if size <= smallBufferSize {
		buf := globalBufferPool.small.Get().(*[]byte)
		return *buf
	}
	buf := globalBufferPool.medium.Get().(*[]byte)
	return *buf
}

// putBuffer returns a buffer to the pool it came from
func putBuffer(buf []byte) {
	switch cap(buf) {
	case smallBufferSize:
		full := buf[:smallBufferSize]
		globalBufferPool.small.Put(&full)
	case mediumBufferSize:
		full := buf[:mediumBufferSize]
		globalBufferPool.medium.Put(&full)
	}
	// Else: not one of ours, let GC handle it
}
