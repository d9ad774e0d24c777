// ABOUTME: Encoder interface definition
// ABOUTME: Common interface for all audio encoders
package encode

import (
	"fmt"

	"github.com/Resonate-Protocol/avframe/pkg/audio"
	"github.com/Resonate-Protocol/avframe/pkg/audio/frame"
)

// Encoder encodes audio frames to various formats
type Encoder interface {
	// Encode converts a frame to encoded audio data. The frame is borrowed.
	Encode(f *frame.Audio) ([]byte, error)

	// Close releases encoder resources
	Close() error
}

// New creates an encoder for the specified format
func New(format audio.Format) (Encoder, error) {
	switch format.Codec {
	case "pcm":
		return NewPCM(format)
	case "opus":
		return NewOpus(format)
	default:
		return nil, fmt.Errorf("unsupported codec: %s", format.Codec)
	}
}

// interleaved checks f against format and returns its samples in 24-bit range
func interleaved(f *frame.Audio, format audio.Format) ([]int32, error) {
	if f == nil || !f.IsAllocated() {
		return nil, fmt.Errorf("frame has no sample data")
	}
	if int(f.Channels()) != format.Channels {
		return nil, fmt.Errorf("frame has %d channels, encoder expects %d", f.Channels(), format.Channels)
	}
	if format.SampleRate != 0 && int(f.Rate()) != format.SampleRate {
		return nil, fmt.Errorf("frame rate %d Hz, encoder expects %d Hz", f.Rate(), format.SampleRate)
	}
	return f.Samples().Int32s()
}
