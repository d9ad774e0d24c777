// ABOUTME: Decoder interface definition
// ABOUTME: Common interface for all audio decoders and frame helpers
package decode

import (
	"fmt"

	"github.com/Resonate-Protocol/avframe/pkg/audio"
	"github.com/Resonate-Protocol/avframe/pkg/audio/frame"
)

// Decoder decodes audio in various formats to frames
type Decoder interface {
	// Decode converts encoded audio data to a frame. It returns a nil frame
	// when data holds no complete samples.
	Decode(data []byte) (*frame.Audio, error)

	// Close releases decoder resources
	Close() error
}

// New creates a decoder for the specified format
func New(format audio.Format) (Decoder, error) {
	switch format.Codec {
	case "pcm":
		return NewPCM(format)
	case "opus":
		return NewOpus(format)
	case "flac":
		return NewFLAC(format)
	case "mp3":
		return NewMP3(format)
	default:
		return nil, fmt.Errorf("unsupported codec: %s", format.Codec)
	}
}

// NewFrame allocates a frame for samples samples per channel. The channel
// layout is the default one for channels, or left unset when there is none.
func NewFrame(format audio.Sample, samples, channels, sampleRate int) (*frame.Audio, error) {
	if channels <= 0 || channels > 0xffff {
		return nil, fmt.Errorf("invalid channel count: %d", channels)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate: %d", sampleRate)
	}

	f, err := frame.Empty()
	if err != nil {
		return nil, err
	}
	f.SetFormat(format)
	f.SetChannelLayout(audio.DefaultLayout(channels))
	f.SetChannels(uint16(channels))
	f.SetRate(uint32(sampleRate))
	if err := f.SetSampleNumber(samples); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.AllocBuffer(); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// Clock stamps consecutive frames with a running PTS in units of
// 1/SampleRate. The zero value starts at 0.
type Clock struct {
	next int64
}

// Stamp sets the time base, PTS and duration of f and advances the clock
// by its sample number.
func (c *Clock) Stamp(f *frame.Audio) {
	n := int64(f.SampleNumber())
	f.SetTimeBase(1, int32(f.Rate()))
	f.SetPTS(c.next)
	f.SetDuration(n)
	c.next += n
}

// writeInterleaved stores interleaved 24-bit range samples into f.
func writeInterleaved(f *frame.Audio, samples []int32) error {
	view, err := f.SamplesMut()
	if err != nil {
		return err
	}
	_, err = view.WriteInt32(samples)
	return err
}

// writeRaw copies little-endian packed bytes into plane 0 of f.
func writeRaw(f *frame.Audio, data []byte) error {
	view, err := f.SamplesMut()
	if err != nil {
		return err
	}
	plane, err := view.Plane(0)
	if err != nil {
		return err
	}
	copy(plane, data)
	return nil
}
