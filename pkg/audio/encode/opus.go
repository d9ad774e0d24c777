// ABOUTME: Opus audio encoder
// ABOUTME: Encodes 20ms frames to Opus packets
package encode

import (
	"fmt"

	"gopkg.in/hraban/opus.v2"

	"github.com/Resonate-Protocol/avframe/pkg/audio"
	"github.com/Resonate-Protocol/avframe/pkg/audio/frame"
)

// maxOpusPacket is the largest packet Encode will produce
const maxOpusPacket = 4000

// OpusEncoder encodes Opus audio
type OpusEncoder struct {
	encoder   *opus.Encoder
	format    audio.Format
	frameSize int
}

// NewOpus creates a new Opus encoder
func NewOpus(format audio.Format) (Encoder, error) {
	if format.Codec != "opus" {
		return nil, fmt.Errorf("invalid codec for Opus encoder: %s", format.Codec)
	}

	encoder, err := opus.NewEncoder(format.SampleRate, format.Channels, opus.AppAudio)
	if err != nil {
		return nil, fmt.Errorf("failed to create opus encoder: %w", err)
	}

	return &OpusEncoder{
		encoder:   encoder,
		format:    format,
		frameSize: FrameSize(format.SampleRate),
	}, nil
}

// FrameSize returns the samples per channel of a 20ms Opus frame
func FrameSize(sampleRate int) int {
	return sampleRate / 50
}

// Encode converts one 20ms frame to an Opus packet
func (e *OpusEncoder) Encode(f *frame.Audio) ([]byte, error) {
	samples, err := interleaved(f, e.format)
	if err != nil {
		return nil, err
	}
	if f.SampleNumber() != e.frameSize {
		return nil, fmt.Errorf("opus frame must hold %d samples per channel, got %d", e.frameSize, f.SampleNumber())
	}

	pcm := make([]int16, len(samples))
	for i, sample := range samples {
		pcm[i] = audio.SampleToInt16(sample)
	}

	data := make([]byte, maxOpusPacket)
	n, err := e.encoder.Encode(pcm, data)
	if err != nil {
		return nil, fmt.Errorf("opus encode error: %w", err)
	}

	return data[:n], nil
}

// Close releases resources
func (e *OpusEncoder) Close() error {
	return nil
}
