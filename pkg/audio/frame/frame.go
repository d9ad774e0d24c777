// ABOUTME: Frame handle owning one native frame
// ABOUTME: Allocation, release-once, identity equality and generic properties
package frame

import (
	"fmt"
	"runtime"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/Resonate-Protocol/avframe/internal/native"
)

// NoPTS marks an unset timestamp.
const NoPTS = native.NoPTS

// SetMaxAlloc sets the largest single allocation the native layer will
// perform; a negative value removes the limit. It applies process-wide.
func SetMaxAlloc(n int64) {
	native.SetMaxAlloc(n)
}

// Frame owns one native frame handle.
type Frame struct {
	ptr     *native.Frame
	gen     uint64
	cleanup runtime.Cleanup
}

// Alloc allocates an empty frame with no data buffers.
func Alloc() (*Frame, error) {
	ptr, err := native.FrameAlloc()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAllocation, err)
	}
	return wrap(ptr), nil
}

// wrap takes ownership of ptr.
func wrap(ptr *native.Frame) *Frame {
	f := &Frame{ptr: ptr}
	f.cleanup = runtime.AddCleanup(f, releaseLeaked, ptr)
	return f
}

func releaseLeaked(ptr *native.Frame) {
	if ptr.Freed() {
		return
	}
	logrus.Warnf("frame: releasing handle of a frame that was never closed")
	ptr.Free()
}

// Close releases the native handle. It is safe to call more than once.
func (f *Frame) Close() error {
	if f == nil || f.ptr == nil {
		return nil
	}
	f.cleanup.Stop()
	f.ptr.Free()
	f.ptr = nil
	f.gen++
	return nil
}

// Closed reports whether Close has been called.
func (f *Frame) Closed() bool {
	return f.ptr == nil
}

// Equal reports whether f and other wrap the same handle.
func (f *Frame) Equal(other *Frame) bool {
	if f == nil || other == nil {
		return f == other
	}
	return f == other || (f.ptr != nil && f.ptr == other.ptr)
}

func (f *Frame) handle() *native.Frame {
	if f.ptr == nil {
		panic("frame: use of closed frame")
	}
	return f.ptr
}

// field names one numeric slot of the native frame.
type field int

const (
	fieldFormat field = iota
	fieldNbSamples
	fieldSampleRate
	fieldChannels
	fieldChannelLayout
	fieldPTS
	fieldDuration
	fieldBestEffortTimestamp
)

// get reads a native field widened to int64. The channel layout comes back
// as its bit pattern.
func (f *Frame) get(k field) int64 {
	h := f.handle()
	switch k {
	case fieldFormat:
		return int64(h.Format)
	case fieldNbSamples:
		return int64(h.NbSamples)
	case fieldSampleRate:
		return int64(h.SampleRate)
	case fieldChannels:
		return int64(h.Channels)
	case fieldChannelLayout:
		return int64(h.ChannelLayout)
	case fieldPTS:
		return h.Pts
	case fieldDuration:
		return h.Duration
	case fieldBestEffortTimestamp:
		return h.BestEffortTimestamp
	}
	panic(fmt.Sprintf("frame: unknown field %d", k))
}

// set writes a native field. 32-bit fields keep the low 32 bits of v;
// callers range-check beforehand. Writes to shape fields invalidate views.
func (f *Frame) set(k field, v int64) {
	h := f.handle()
	switch k {
	case fieldFormat:
		h.Format = int32(v)
	case fieldNbSamples:
		h.NbSamples = int32(v)
	case fieldSampleRate:
		h.SampleRate = int32(v)
	case fieldChannels:
		h.Channels = int32(v)
	case fieldChannelLayout:
		h.ChannelLayout = uint64(v)
	case fieldPTS:
		h.Pts = v
		return
	case fieldDuration:
		h.Duration = v
		return
	case fieldBestEffortTimestamp:
		h.BestEffortTimestamp = v
		return
	default:
		panic(fmt.Sprintf("frame: unknown field %d", k))
	}
	f.gen++
}

// PTS returns the presentation timestamp in TimeBase units, or NoPTS.
func (f *Frame) PTS() int64 { return f.get(fieldPTS) }

// SetPTS sets the presentation timestamp.
func (f *Frame) SetPTS(v int64) { f.set(fieldPTS, v) }

// Duration returns the frame duration in TimeBase units.
func (f *Frame) Duration() int64 { return f.get(fieldDuration) }

// SetDuration sets the frame duration.
func (f *Frame) SetDuration(v int64) { f.set(fieldDuration, v) }

// BestEffortTimestamp returns the timestamp estimated by a decoder, or NoPTS.
func (f *Frame) BestEffortTimestamp() int64 { return f.get(fieldBestEffortTimestamp) }

// SetBestEffortTimestamp sets the estimated timestamp.
func (f *Frame) SetBestEffortTimestamp(v int64) { f.set(fieldBestEffortTimestamp, v) }

// TimeBase returns the unit of PTS and Duration as num/den seconds.
func (f *Frame) TimeBase() (num, den int32) {
	tb := f.handle().TimeBase
	return tb.Num, tb.Den
}

// SetTimeBase sets the unit of PTS and Duration.
func (f *Frame) SetTimeBase(num, den int32) {
	f.handle().TimeBase = native.Rational{Num: num, Den: den}
}

// Metadata returns the value stored under key.
func (f *Frame) Metadata(key string) (string, bool) {
	v, ok := f.handle().Metadata[key]
	return v, ok
}

// SetMetadata stores value under key.
func (f *Frame) SetMetadata(key, value string) {
	h := f.handle()
	if h.Metadata == nil {
		h.Metadata = make(map[string]string)
	}
	h.Metadata[key] = value
}

// DeleteMetadata removes key.
func (f *Frame) DeleteMetadata(key string) {
	delete(f.handle().Metadata, key)
}

// MetadataKeys returns the metadata keys in sorted order.
func (f *Frame) MetadataKeys() []string {
	keys := make([]string, 0, len(f.handle().Metadata))
	for k := range f.handle().Metadata {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// IsAllocated reports whether the frame has data buffers.
func (f *Frame) IsAllocated() bool {
	return f.handle().Allocated()
}

// Planes returns the number of data planes, 0 before allocation.
func (f *Frame) Planes() int {
	return len(f.handle().Planes())
}

// allocBuffer asks the native layer for buffers sized to the current fields.
func (f *Frame) allocBuffer(align int) error {
	if err := native.GetBuffer(f.handle(), align); err != nil {
		return err
	}
	f.gen++
	return nil
}

// copyFrom copies sample data and properties from src.
func (f *Frame) copyFrom(src *Frame) error {
	dst, s := f.handle(), src.handle()
	if err := native.Copy(dst, s); err != nil {
		return err
	}
	native.CopyProps(dst, s)
	f.gen++
	return nil
}

// copyProps copies properties but no sample data from src.
func (f *Frame) copyProps(src *Frame) {
	native.CopyProps(f.handle(), src.handle())
}

// ref returns a new frame sharing f's buffers. Views of f taken before the
// buffers became shared go stale.
func (f *Frame) ref() (*Frame, error) {
	n, err := Alloc()
	if err != nil {
		return nil, err
	}
	if err := native.Ref(n.handle(), f.handle()); err != nil {
		n.Close()
		return nil, fmt.Errorf("%w: %w", ErrPrecondition, err)
	}
	f.gen++
	return n, nil
}

// exclusive reports whether no other frame shares f's buffers.
func (f *Frame) exclusive() bool {
	h := f.handle()
	for _, b := range h.Buf {
		if b != nil && !b.Writable() {
			return false
		}
	}
	for _, b := range h.ExtendedBuf {
		if !b.Writable() {
			return false
		}
	}
	return true
}

// planes returns the raw plane slices.
func (f *Frame) planes() [][]byte {
	return f.handle().Planes()
}
