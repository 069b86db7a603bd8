package edit

import "sync"

// bufferPool provides reusable scratch buffers for mini stream assembly and
// in-place padding. Images handed back to callers are never pooled.
var bufferPool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, 0, 64*1024)
		return &buf
	},
}

// getBuffer retrieves a zero-length buffer from the pool.
func getBuffer() *[]byte {
	buf, ok := bufferPool.Get().(*[]byte)
	if !ok {
		panic("bufferPool returned unexpected type")
	}
	*buf = (*buf)[:0]
	return buf
}

// putBuffer returns a buffer to the pool for reuse.
// Buffers larger than 1 MB are dropped so one large document does not pin memory.
func putBuffer(buf *[]byte) {
	if buf == nil || cap(*buf) > 1024*1024 {
		return
	}
	bufferPool.Put(buf)
}
