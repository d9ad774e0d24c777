// ABOUTME: Native frame struct and its allocation, sizing and copy operations
// ABOUTME: The opaque handle wrapped by pkg/audio/frame
package native

import (
	"maps"
	"math/bits"
	"unsafe"
)

// NumDataPointers is the number of planes addressable through Data and Buf.
const NumDataPointers = 8

// NoPTS marks an unset timestamp.
const NoPTS int64 = -1 << 63

// Rational is a time base.
type Rational struct {
	Num, Den int32
}

// Frame describes decoded media and the buffers holding it.
//
// For audio, Data[i] points at plane i. Planar formats with more than
// NumDataPointers channels keep the extra planes only in ExtendedData.
type Frame struct {
	Data         [NumDataPointers][]byte
	Linesize     [NumDataPointers]int
	ExtendedData [][]byte

	Buf         [NumDataPointers]*BufferRef
	ExtendedBuf []*BufferRef

	NbSamples     int32
	Format        int32
	SampleRate    int32
	Channels      int32
	ChannelLayout uint64

	Pts                 int64
	PktDts              int64
	BestEffortTimestamp int64
	Duration            int64
	TimeBase            Rational
	Flags               int32

	Metadata map[string]string
	Opaque   any

	freed bool
}

// FrameAlloc allocates a frame with every field at its default.
// No data buffers are allocated.
func FrameAlloc() (*Frame, error) {
	if err := checkAlloc(int64(unsafe.Sizeof(Frame{}))); err != nil {
		return nil, err
	}
	f := &Frame{}
	f.reset()
	liveFrames.Add(1)
	return f, nil
}

func (f *Frame) reset() {
	*f = Frame{
		Format:              int32(SampleFmtNone),
		Pts:                 NoPTS,
		PktDts:              NoPTS,
		BestEffortTimestamp: NoPTS,
		TimeBase:            Rational{0, 1},
	}
}

// Unref drops all buffer references held by the frame and resets its fields.
func (f *Frame) Unref() {
	for i := range f.Buf {
		f.Buf[i].Unref()
	}
	for _, b := range f.ExtendedBuf {
		b.Unref()
	}
	f.reset()
}

// Free unrefs the frame and marks it released. Calling Free again is a no-op.
func (f *Frame) Free() {
	if f == nil || f.freed {
		return
	}
	f.Unref()
	f.freed = true
	liveFrames.Add(-1)
}

// Freed reports whether Free has been called.
func (f *Frame) Freed() bool {
	return f.freed
}

// Allocated reports whether the frame holds data buffers.
func (f *Frame) Allocated() bool {
	return f.Buf[0] != nil || len(f.ExtendedData) > 0
}

// Planes returns the data planes of an audio frame.
func (f *Frame) Planes() [][]byte {
	if len(f.ExtendedData) > 0 {
		return f.ExtendedData
	}
	return nil
}

// LayoutChannels returns the number of channels named by a layout mask.
func LayoutChannels(layout uint64) int {
	return bits.OnesCount64(layout)
}

// GetBuffer allocates data buffers sized to the frame's format, sample count
// and channels. If Channels is zero it is derived from ChannelLayout.
func GetBuffer(f *Frame, align int) error {
	if f.Allocated() {
		return ErrInvalid
	}

	format := SampleFormat(f.Format)
	if !format.Valid() || f.NbSamples <= 0 {
		return ErrInvalid
	}

	if f.Channels == 0 {
		f.Channels = int32(LayoutChannels(f.ChannelLayout))
	} else if f.ChannelLayout != 0 && LayoutChannels(f.ChannelLayout) != int(f.Channels) {
		return ErrInvalid
	}
	if f.Channels <= 0 {
		return ErrInvalid
	}

	channels := int(f.Channels)
	_, linesize, err := SamplesBufferSize(channels, int(f.NbSamples), format, align)
	if err != nil {
		return err
	}

	planes := 1
	if format.IsPlanar() {
		planes = channels
	}

	bufs := make([]*BufferRef, 0, planes)
	for i := 0; i < planes; i++ {
		b, err := NewBuffer(linesize)
		if err != nil {
			for _, prev := range bufs {
				prev.Unref()
			}
			return err
		}
		bufs = append(bufs, b)
	}

	f.ExtendedData = make([][]byte, planes)
	for i, b := range bufs {
		f.ExtendedData[i] = b.Data
		if i < NumDataPointers {
			f.Buf[i] = b
			f.Data[i] = b.Data
		} else {
			f.ExtendedBuf = append(f.ExtendedBuf, b)
		}
	}
	f.Linesize[0] = linesize
	return nil
}

// planeBytes is the number of meaningful bytes in each plane.
func (f *Frame) planeBytes() int {
	format := SampleFormat(f.Format)
	n := int(f.NbSamples) * format.BytesPerSample()
	if !format.IsPlanar() {
		n *= int(f.Channels)
	}
	return n
}

// Copy copies sample data from src into dst. Both frames must already have
// buffers and agree on format, sample count, channels and layout.
func Copy(dst, src *Frame) error {
	if !dst.Allocated() || !src.Allocated() {
		return ErrInvalid
	}
	if dst.Format != src.Format || dst.NbSamples != src.NbSamples ||
		dst.Channels != src.Channels || dst.ChannelLayout != src.ChannelLayout {
		return ErrInvalid
	}

	n := src.planeBytes()
	dp, sp := dst.Planes(), src.Planes()
	if len(dp) != len(sp) {
		return ErrInvalid
	}
	for i := range sp {
		if len(dp[i]) < n || len(sp[i]) < n {
			return ErrInvalid
		}
		copy(dp[i][:n], sp[i][:n])
	}
	return nil
}

// CopyProps copies everything except data buffers and shape from src to dst.
func CopyProps(dst, src *Frame) {
	dst.Pts = src.Pts
	dst.PktDts = src.PktDts
	dst.BestEffortTimestamp = src.BestEffortTimestamp
	dst.Duration = src.Duration
	dst.TimeBase = src.TimeBase
	dst.SampleRate = src.SampleRate
	dst.Flags = src.Flags
	dst.Opaque = src.Opaque
	dst.Metadata = maps.Clone(src.Metadata)
}

// Ref sets up dst as a new reference to the data described by src.
// dst must not hold buffers.
func Ref(dst, src *Frame) error {
	if dst.Allocated() {
		return ErrInvalid
	}
	dst.Format = src.Format
	dst.NbSamples = src.NbSamples
	dst.Channels = src.Channels
	dst.ChannelLayout = src.ChannelLayout
	CopyProps(dst, src)

	if !src.Allocated() {
		return nil
	}
	for i, b := range src.Buf {
		if b != nil {
			dst.Buf[i] = b.Ref()
		}
	}
	for _, b := range src.ExtendedBuf {
		dst.ExtendedBuf = append(dst.ExtendedBuf, b.Ref())
	}
	dst.Data = src.Data
	dst.Linesize = src.Linesize
	dst.ExtendedData = append([][]byte(nil), src.ExtendedData...)
	return nil
}
