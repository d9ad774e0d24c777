// ABOUTME: Samples view over an audio frame's planes
// ABOUTME: Borrowed, generation-checked access to raw and int32 sample data
package frame

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/Resonate-Protocol/avframe/pkg/audio"
)

// Samples is a borrowed view of an audio frame's data planes. It does not
// own memory; it is valid until its frame is reshaped, overwritten by
// CloneFrom, or closed.
//
// Sample data is stored little-endian.
type Samples struct {
	owner    *Frame
	gen      uint64
	planes   [][]byte
	format   audio.Sample
	rate     uint32
	n        int
	channels int
	writable bool
}

func wrapSamples(owner *Frame, planes [][]byte, format audio.Sample, rate uint32, n, channels int, writable bool) *Samples {
	s := &Samples{
		owner:    owner,
		gen:      owner.gen,
		format:   format,
		rate:     rate,
		n:        n,
		channels: channels,
		writable: writable,
	}
	if !s.fits(planes) {
		s.n = 0
		return s
	}

	size := s.planeSize()
	s.planes = make([][]byte, len(planes))
	for i, p := range planes {
		s.planes[i] = p[:size:size]
	}
	return s
}

// fits reports whether the metadata describes data that the planes can
// hold. Metadata changed after allocation can make it disagree.
func (s *Samples) fits(planes [][]byte) bool {
	if len(planes) == 0 || s.n == 0 || s.channels == 0 || s.format.BytesPerSample() == 0 {
		return false
	}
	want := 1
	if s.format.IsPlanar() {
		want = s.channels
	}
	if len(planes) != want {
		return false
	}
	size := s.planeSize()
	for _, p := range planes {
		if len(p) < size {
			return false
		}
	}
	return true
}

// Valid reports whether the view still reflects its frame.
func (s *Samples) Valid() bool {
	return s.owner.ptr != nil && s.owner.gen == s.gen
}

func (s *Samples) check() error {
	if !s.Valid() {
		return ErrStaleView
	}
	return nil
}

// Format returns the sample format of the frame when the view was made.
func (s *Samples) Format() audio.Sample { return s.format }

// Rate returns the sample rate in Hz.
func (s *Samples) Rate() uint32 { return s.rate }

// Len returns the number of samples per channel. It is 0 when the frame has
// no buffers or its metadata no longer matches them.
func (s *Samples) Len() int { return s.n }

// Channels returns the channel count.
func (s *Samples) Channels() int { return s.channels }

// IsPlanar reports whether each channel has its own plane.
func (s *Samples) IsPlanar() bool { return s.format.IsPlanar() }

// Planes returns the number of data planes.
func (s *Samples) Planes() int { return len(s.planes) }

// Writable reports whether the view permits writes.
func (s *Samples) Writable() bool { return s.writable }

// Linesize returns the number of bytes of sample data in each plane.
func (s *Samples) Linesize() int {
	if len(s.planes) == 0 {
		return 0
	}
	return s.planeSize()
}

func (s *Samples) planeSize() int {
	size := s.n * s.format.BytesPerSample()
	if !s.format.IsPlanar() {
		size *= s.channels
	}
	return size
}

// Plane returns the bytes of plane i. The slice aliases frame memory and
// must only be modified if the view came from SamplesMut.
func (s *Samples) Plane(i int) ([]byte, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	if i < 0 || i >= len(s.planes) {
		return nil, fmt.Errorf("plane %d out of range [0, %d)", i, len(s.planes))
	}
	return s.planes[i], nil
}

// Int32s returns all samples interleaved, in 24-bit range.
func (s *Samples) Int32s() ([]int32, error) {
	out := make([]int32, s.n*s.channels)
	if _, err := s.ReadInt32(out); err != nil {
		return nil, err
	}
	return out, nil
}

// ReadInt32 fills dst with interleaved samples converted to 24-bit range
// and returns the number of values written. Only whole sample frames (one
// value per channel) are written.
func (s *Samples) ReadInt32(dst []int32) (int, error) {
	if err := s.check(); err != nil {
		return 0, err
	}
	if s.channels == 0 {
		return 0, nil
	}

	frames := min(len(dst)/s.channels, s.n)
	for i := 0; i < frames; i++ {
		for ch := 0; ch < s.channels; ch++ {
			plane, off := s.locate(i, ch)
			dst[i*s.channels+ch] = decodeSample(s.format, plane[off:])
		}
	}
	return frames * s.channels, nil
}

// WriteInt32 stores interleaved 24-bit range samples from src into the
// frame, converting to its format, and returns the number of values used.
func (s *Samples) WriteInt32(src []int32) (int, error) {
	if err := s.check(); err != nil {
		return 0, err
	}
	if !s.writable {
		return 0, ErrReadOnly
	}
	if s.channels == 0 {
		return 0, nil
	}

	frames := min(len(src)/s.channels, s.n)
	for i := 0; i < frames; i++ {
		for ch := 0; ch < s.channels; ch++ {
			plane, off := s.locate(i, ch)
			encodeSample(s.format, plane[off:], src[i*s.channels+ch])
		}
	}
	return frames * s.channels, nil
}

// locate returns the plane and byte offset of sample i of channel ch.
func (s *Samples) locate(i, ch int) ([]byte, int) {
	bps := s.format.BytesPerSample()
	if s.format.IsPlanar() {
		return s.planes[ch], i * bps
	}
	return s.planes[0], (i*s.channels + ch) * bps
}

const floatScale = 1 << 23

func decodeSample(format audio.Sample, b []byte) int32 {
	switch format.Packed() {
	case audio.SampleU8:
		return (int32(b[0]) - 128) << 16
	case audio.SampleS16:
		return audio.SampleFromInt16(int16(binary.LittleEndian.Uint16(b)))
	case audio.SampleS32:
		return int32(binary.LittleEndian.Uint32(b)) >> 8
	case audio.SampleS64:
		return int32(int64(binary.LittleEndian.Uint64(b)) >> 40)
	case audio.SampleF32:
		f := math.Float32frombits(binary.LittleEndian.Uint32(b))
		return audio.Clamp24(int64(math.Round(float64(f) * floatScale)))
	case audio.SampleF64:
		f := math.Float64frombits(binary.LittleEndian.Uint64(b))
		return audio.Clamp24(int64(math.Round(f * floatScale)))
	}
	return 0
}

func encodeSample(format audio.Sample, b []byte, v int32) {
	v = audio.Clamp24(int64(v))
	switch format.Packed() {
	case audio.SampleU8:
		b[0] = byte((v >> 16) + 128)
	case audio.SampleS16:
		binary.LittleEndian.PutUint16(b, uint16(audio.SampleToInt16(v)))
	case audio.SampleS32:
		binary.LittleEndian.PutUint32(b, uint32(v<<8))
	case audio.SampleS64:
		binary.LittleEndian.PutUint64(b, uint64(int64(v)<<40))
	case audio.SampleF32:
		binary.LittleEndian.PutUint32(b, math.Float32bits(float32(v)/floatScale))
	case audio.SampleF64:
		binary.LittleEndian.PutUint64(b, math.Float64bits(float64(v)/floatScale))
	}
}
