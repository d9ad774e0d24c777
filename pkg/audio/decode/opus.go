// ABOUTME: Opus audio decoder
// ABOUTME: Decodes Opus packets to S16 frames
package decode

import (
	"encoding/binary"
	"fmt"

	"gopkg.in/hraban/opus.v2"

	"github.com/Resonate-Protocol/avframe/pkg/audio"
	"github.com/Resonate-Protocol/avframe/pkg/audio/frame"
)

// maxOpusFrame is the largest Opus frame, 120ms at 48kHz, per channel
const maxOpusFrame = 5760

// OpusDecoder decodes Opus audio
type OpusDecoder struct {
	clock Clock
	decoder *opus.Decoder
	format  audio.Format
	pcm16   []int16
}

// NewOpus creates a new Opus decoder
func NewOpus(format audio.Format) (Decoder, error) {
	if format.Codec != "opus" {
		return nil, fmt.Errorf("invalid codec for Opus decoder: %s", format.Codec)
	}

	dec, err := opus.NewDecoder(format.SampleRate, format.Channels)
	if err != nil {
		return nil, fmt.Errorf("failed to create opus decoder: %w", err)
	}

	return &OpusDecoder{
		decoder: dec,
		format:  format,
		pcm16:   make([]int16, maxOpusFrame*format.Channels),
	}, nil
}

// Decode converts one Opus packet to a frame
func (d *OpusDecoder) Decode(data []byte) (*frame.Audio, error) {
	if len(data) == 0 {
		return nil, nil
	}

	n, err := d.decoder.Decode(data, d.pcm16)
	if err != nil {
		return nil, fmt.Errorf("opus decode failed: %w", err)
	}
	if n == 0 {
		return nil, nil
	}

	// Opus is always 16-bit here
	raw := make([]byte, n*d.format.Channels*2)
	for i := 0; i < n*d.format.Channels; i++ {
		binary.LittleEndian.PutUint16(raw[i*2:], uint16(d.pcm16[i]))
	}

	f, err := NewFrame(audio.SampleS16, n, d.format.Channels, d.format.SampleRate)
	if err != nil {
		return nil, err
	}
	if err := writeRaw(f, raw); err != nil {
		f.Close()
		return nil, err
	}
	d.clock.Stamp(f)
	return f, nil
}

// Close releases decoder resources
func (d *OpusDecoder) Close() error {
	return nil
}
