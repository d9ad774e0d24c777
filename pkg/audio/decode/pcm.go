// ABOUTME: PCM audio decoder
// ABOUTME: Decodes 16-bit and 24-bit PCM audio to frames
package decode

import (
	"fmt"

	"github.com/Resonate-Protocol/avframe/pkg/audio"
	"github.com/Resonate-Protocol/avframe/pkg/audio/frame"
)

// PCMDecoder decodes interleaved little-endian PCM audio
type PCMDecoder struct {
	clock Clock
	bitDepth   int
	channels   int
	sampleRate int
}

// NewPCM creates a new PCM decoder
func NewPCM(format audio.Format) (Decoder, error) {
	if format.Codec != "pcm" {
		return nil, fmt.Errorf("invalid codec for PCM decoder: %s", format.Codec)
	}

	if format.BitDepth != 16 && format.BitDepth != 24 {
		return nil, fmt.Errorf("unsupported bit depth: %d (supported: 16, 24)", format.BitDepth)
	}

	if format.Channels <= 0 {
		return nil, fmt.Errorf("invalid channel count: %d", format.Channels)
	}

	return &PCMDecoder{
		bitDepth:   format.BitDepth,
		channels:   format.Channels,
		sampleRate: format.SampleRate,
	}, nil
}

// Decode converts PCM bytes to a frame. Trailing bytes that do not make a
// whole sample frame are ignored.
func (d *PCMDecoder) Decode(data []byte) (*frame.Audio, error) {
	bytesPerSample := d.bitDepth / 8
	n := len(data) / (bytesPerSample * d.channels)
	if n == 0 {
		return nil, nil
	}

	if d.bitDepth == 16 {
		// 16-bit PCM is already the frame's S16 layout
		f, err := NewFrame(audio.SampleS16, n, d.channels, d.sampleRate)
		if err != nil {
			return nil, err
		}
		if err := writeRaw(f, data[:n*d.channels*2]); err != nil {
			f.Close()
			return nil, err
		}
		d.clock.Stamp(f)
		return f, nil
	}

	// 24-bit PCM: 3 bytes per sample
	samples := make([]int32, n*d.channels)
	for i := range samples {
		b := [3]byte{data[i*3], data[i*3+1], data[i*3+2]}
		samples[i] = audio.SampleFrom24Bit(b)
	}

	f, err := NewFrame(audio.SampleS32, n, d.channels, d.sampleRate)
	if err != nil {
		return nil, err
	}
	if err := writeInterleaved(f, samples); err != nil {
		f.Close()
		return nil, err
	}
	d.clock.Stamp(f)
	return f, nil
}

// Close releases resources
func (d *PCMDecoder) Close() error {
	return nil
}
