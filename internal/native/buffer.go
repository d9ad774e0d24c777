// ABOUTME: Reference-counted data buffers
// ABOUTME: Backing storage shared between frames, freed when the last reference drops
package native

import (
	"errors"
	"sync/atomic"
)

var (
	// ErrNoMem is returned when an allocation exceeds the configured ceiling.
	ErrNoMem = errors.New("native: cannot allocate memory")

	// ErrInvalid is returned for invalid arguments or frame state.
	ErrInvalid = errors.New("native: invalid argument")
)

var (
	maxAlloc   atomic.Int64
	liveBytes  atomic.Int64
	liveFrames atomic.Int64
)

func init() {
	maxAlloc.Store(-1)
}

// SetMaxAlloc sets the largest single allocation the layer will perform.
// A negative value removes the limit.
func SetMaxAlloc(n int64) {
	maxAlloc.Store(n)
}

// MaxAlloc returns the current allocation ceiling, or -1 when unlimited.
func MaxAlloc() int64 {
	return maxAlloc.Load()
}

// LiveBytes returns the number of bytes held by buffers that have not been freed.
func LiveBytes() int64 {
	return liveBytes.Load()
}

// LiveFrames returns the number of allocated frames that have not been freed.
func LiveFrames() int64 {
	return liveFrames.Load()
}

func checkAlloc(size int64) error {
	limit := maxAlloc.Load()
	if limit >= 0 && size > limit {
		return ErrNoMem
	}
	return nil
}

// Buffer is a refcounted block of memory.
type Buffer struct {
	data []byte
	refs atomic.Int32
}

// BufferRef is one reference to a Buffer.
type BufferRef struct {
	buf  *Buffer
	Data []byte
}

// NewBuffer allocates a zeroed buffer of size bytes and returns the first reference to it.
func NewBuffer(size int) (*BufferRef, error) {
	if size < 0 {
		return nil, ErrInvalid
	}
	if err := checkAlloc(int64(size)); err != nil {
		return nil, err
	}
	b := &Buffer{data: make([]byte, size)}
	b.refs.Store(1)
	liveBytes.Add(int64(size))
	return &BufferRef{buf: b, Data: b.data}, nil
}

// Ref creates a new reference to the same buffer.
func (r *BufferRef) Ref() *BufferRef {
	r.buf.refs.Add(1)
	return &BufferRef{buf: r.buf, Data: r.Data}
}

// Unref drops this reference. The memory is released when the last one goes.
func (r *BufferRef) Unref() {
	if r == nil || r.buf == nil {
		return
	}
	if r.buf.refs.Add(-1) == 0 {
		liveBytes.Add(-int64(len(r.buf.data)))
		r.buf.data = nil
	}
	r.buf = nil
	r.Data = nil
}

// RefCount returns how many references point at the underlying buffer.
func (r *BufferRef) RefCount() int {
	if r == nil || r.buf == nil {
		return 0
	}
	return int(r.buf.refs.Load())
}

// Writable reports whether this is the only reference to the buffer.
func (r *BufferRef) Writable() bool {
	return r.RefCount() == 1
}
