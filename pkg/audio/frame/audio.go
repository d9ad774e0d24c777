// ABOUTME: Audio frame built on the Frame handle
// ABOUTME: Audio metadata accessors, buffer sizing, samples views and deep clone
package frame

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/Resonate-Protocol/avframe/internal/native"
	"github.com/Resonate-Protocol/avframe/pkg/audio"
)

// bufferAlign is the alignment requested from the native allocator: planes
// are sized exactly, with no padding.
const bufferAlign = 1

// Audio is a frame of audio samples.
type Audio struct {
	*Frame
}

// Empty allocates an audio frame with unset metadata and no buffers.
func Empty() (*Audio, error) {
	f, err := Alloc()
	if err != nil {
		return nil, err
	}
	return &Audio{f}, nil
}

// New allocates an audio frame holding samples samples per channel in the
// given format and layout. The channel count is taken from the layout.
func New(format audio.Sample, samples int, layout audio.ChannelLayout) (*Audio, error) {
	a, err := Empty()
	if err != nil {
		return nil, err
	}

	a.SetFormat(format)
	if err := a.SetSampleNumber(samples); err != nil {
		a.Close()
		return nil, fmt.Errorf("%w: %w", ErrAllocation, err)
	}
	a.SetChannelLayout(layout)

	if err := a.AllocBuffer(); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

// AllocBuffer allocates data buffers sized to the current format, sample
// number and channel layout (or channel count). It can be called once.
func (a *Audio) AllocBuffer() error {
	if a.IsAllocated() {
		return fmt.Errorf("%w: buffer already allocated", ErrPrecondition)
	}

	if missing := a.missingSizing(); missing != "" {
		return fmt.Errorf("%w: %w: %s not set", ErrAllocation, ErrPrecondition, missing)
	}

	if err := a.allocBuffer(bufferAlign); err != nil {
		logrus.Debugf("frame: buffer allocation failed for %s: %v", a, err)
		return fmt.Errorf("%w: %w", ErrAllocation, err)
	}
	return nil
}

func (a *Audio) missingSizing() string {
	switch {
	case a.Format() == audio.SampleNone:
		return "sample format"
	case a.SampleNumber() == 0:
		return "sample number"
	case a.ChannelLayout() == 0 && a.Channels() == 0:
		return "channel layout"
	}
	return ""
}

// Format returns the sample format, SampleNone if unset or unknown.
func (a *Audio) Format() audio.Sample {
	return sampleFromNative(native.SampleFormat(a.get(fieldFormat)))
}

// SetFormat sets the sample format.
func (a *Audio) SetFormat(value audio.Sample) {
	a.set(fieldFormat, int64(sampleToNative(value)))
}

// ChannelLayout returns the channel layout mask, 0 if unset.
func (a *Audio) ChannelLayout() audio.ChannelLayout {
	return audio.ChannelLayout(uint64(a.get(fieldChannelLayout)))
}

// SetChannelLayout sets the channel layout mask. Any value is accepted.
func (a *Audio) SetChannelLayout(value audio.ChannelLayout) {
	a.set(fieldChannelLayout, int64(uint64(value)))
}

// Channels returns the channel count. Only the low 16 bits of the native
// field are reported.
func (a *Audio) Channels() uint16 {
	return uint16(a.get(fieldChannels))
}

// SetChannels sets the channel count.
func (a *Audio) SetChannels(value uint16) {
	a.set(fieldChannels, int64(value))
}

// Rate returns the sample rate in Hz.
func (a *Audio) Rate() uint32 {
	return uint32(int32(a.get(fieldSampleRate)))
}

// SetRate sets the sample rate in Hz. The native field is a signed 32-bit
// integer; values above math.MaxInt32 are stored by bit pattern and read
// back unchanged through Rate.
func (a *Audio) SetRate(value uint32) {
	a.set(fieldSampleRate, int64(int32(value)))
}

// SampleNumber returns the number of samples per channel.
func (a *Audio) SampleNumber() int {
	return int(a.get(fieldNbSamples))
}

// SetSampleNumber sets the number of samples per channel. Values outside
// [0, math.MaxInt32] do not fit the native field and are rejected.
func (a *Audio) SetSampleNumber(value int) error {
	if value < 0 || value > math.MaxInt32 {
		return fmt.Errorf("%w: sample number %d out of range [0, %d]", ErrPrecondition, value, math.MaxInt32)
	}
	a.set(fieldNbSamples, int64(value))
	return nil
}

// Samples returns a read-only view of the frame's planes. Before buffers
// are allocated the view is empty.
func (a *Audio) Samples() *Samples {
	return a.view(false)
}

// SamplesMut returns a writable view of the frame's planes. It fails with
// ErrReadOnly while the buffers are shared with a frame created by Ref.
func (a *Audio) SamplesMut() (*Samples, error) {
	if !a.exclusive() {
		return nil, fmt.Errorf("%w: buffers shared with another frame", ErrReadOnly)
	}
	return a.view(true), nil
}

func (a *Audio) view(writable bool) *Samples {
	if !a.IsAllocated() {
		return wrapSamples(a.Frame, nil, a.Format(), a.Rate(), 0, int(a.Channels()), writable)
	}
	return wrapSamples(a.Frame, a.planes(), a.Format(), a.Rate(), a.SampleNumber(), int(a.Channels()), writable)
}

// Equal reports whether a and other wrap the same handle.
func (a *Audio) Equal(other *Audio) bool {
	if a == nil || other == nil {
		return a == other
	}
	return a.Frame.Equal(other.Frame)
}

// Ref returns a new frame that shares a's buffers. Each frame must be closed
// on its own; the buffers are freed when the last one is closed. Neither
// frame can be written through SamplesMut while both are open.
func (a *Audio) Ref() (*Audio, error) {
	f, err := a.ref()
	if err != nil {
		return nil, err
	}
	return &Audio{f}, nil
}

// Clone returns a deep copy of a with its own handle and buffers.
func (a *Audio) Clone() (*Audio, error) {
	c, err := Empty()
	if err != nil {
		return nil, err
	}

	c.SetFormat(a.Format())
	c.set(fieldNbSamples, int64(a.SampleNumber()))
	c.SetChannelLayout(a.ChannelLayout())
	c.SetChannels(a.Channels())

	if !a.IsAllocated() {
		c.copyProps(a.Frame)
		return c, nil
	}

	if err := c.AllocBuffer(); err != nil {
		c.Close()
		return nil, err
	}
	if err := c.CloneFrom(a); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

// CloneFrom copies sample data and all properties from source into a.
// Both frames must have buffers of the same format, sample number, channel
// count and channel layout.
func (a *Audio) CloneFrom(source *Audio) error {
	if source == nil || source.Frame == nil {
		return fmt.Errorf("%w: nil source frame", ErrPrecondition)
	}
	if a.Equal(source) {
		return nil
	}
	if !a.IsAllocated() || !source.IsAllocated() {
		return fmt.Errorf("%w: clone requires allocated buffers on both frames", ErrPrecondition)
	}
	if a.Format() != source.Format() || a.SampleNumber() != source.SampleNumber() ||
		a.Channels() != source.Channels() || a.ChannelLayout() != source.ChannelLayout() {
		return fmt.Errorf("%w: cannot clone %s into %s", ErrPrecondition, source, a)
	}
	if !a.exclusive() {
		return fmt.Errorf("%w: destination buffers shared with another frame", ErrReadOnly)
	}
	if err := a.copyFrom(source.Frame); err != nil {
		return fmt.Errorf("%w: %w", ErrPrecondition, err)
	}
	return nil
}

func (a *Audio) String() string {
	if a.Closed() {
		return "audio(closed)"
	}
	return fmt.Sprintf("audio(%s %dHz %s, %d ch, %d samples)",
		a.Format(), a.Rate(), a.ChannelLayout(), a.Channels(), a.SampleNumber())
}
