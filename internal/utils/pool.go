package utils

import (
	"sync"
)

// Copy buffers are pooled to keep GC pressure down when staging many files.
var (
	// 64KB for small files
	smallBufferPool = sync.Pool{
		New: func() interface{} {
			buf := make([]byte, 64*1024)
			return &buf
		},
	}

	// 1MB for bulk copies
	largeBufferPool = sync.Pool{
		New: func() interface{} {
			buf := make([]byte, 1024*1024)
			return &buf
		},
	}
)

func GetSmallBuffer() *[]byte {
	return smallBufferPool.Get().(*[]byte)
}

func PutSmallBuffer(buf *[]byte) {
	smallBufferPool.Put(buf)
}

func GetLargeBuffer() *[]byte {
	return largeBufferPool.Get().(*[]byte)
}

func PutLargeBuffer(buf *[]byte) {
	largeBufferPool.Put(buf)
}
