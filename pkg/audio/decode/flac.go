// ABOUTME: FLAC audio decoder
// ABOUTME: Decodes FLAC streams to planar frames
package decode

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/mewkiz/flac"
	flacframe "github.com/mewkiz/flac/frame"

	"github.com/Resonate-Protocol/avframe/pkg/audio"
	"github.com/Resonate-Protocol/avframe/pkg/audio/frame"
)

// FLACDecoder decodes FLAC audio
type FLACDecoder struct {
	clock Clock
	format audio.Format
}

// NewFLAC creates a new FLAC decoder
func NewFLAC(format audio.Format) (Decoder, error) {
	if format.Codec != "flac" {
		return nil, fmt.Errorf("invalid codec for FLAC decoder: %s", format.Codec)
	}

	return &FLACDecoder{
		format: format,
	}, nil
}

// Decode converts a complete FLAC stream (header and audio frames) to one frame
func (d *FLACDecoder) Decode(data []byte) (*frame.Audio, error) {
	if len(data) == 0 {
		return nil, nil
	}

	stream, err := flac.New(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode FLAC: %w", err)
	}
	defer stream.Close()

	var blocks []*flacframe.Frame
	total := 0
	for {
		block, err := stream.ParseNext()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("flac decode error: %w", err)
		}
		blocks = append(blocks, block)
		total += int(block.BlockSize)
	}
	if total == 0 {
		return nil, nil
	}

	info := stream.Info
	channels := int(info.NChannels)
	bitDepth := int(info.BitsPerSample)

	samples := make([]int32, 0, total*channels)
	for _, block := range blocks {
		samples = appendFLACSamples(samples, block, channels, bitDepth)
	}

	format := audio.SampleS32P
	if bitDepth <= 16 {
		format = audio.SampleS16P
	}
	f, err := NewFrame(format, total, channels, int(info.SampleRate))
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

// appendFLACSamples interleaves one FLAC frame's subframes into 24-bit range
func appendFLACSamples(dst []int32, block *flacframe.Frame, channels, bitDepth int) []int32 {
	for i := 0; i < int(block.BlockSize); i++ {
		for ch := 0; ch < channels; ch++ {
			dst = append(dst, ScaleTo24(block.Subframes[ch].Samples[i], bitDepth))
		}
	}
	return dst
}

// ScaleTo24 moves a sample of the given bit depth into 24-bit range
func ScaleTo24(sample int32, bitDepth int) int32 {
	shift := bitDepth - 24
	if shift > 0 {
		return sample >> shift
	}
	return sample << -shift
}

// Close releases decoder resources
func (d *FLACDecoder) Close() error {
	return nil
}
