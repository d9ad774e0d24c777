// ABOUTME: Test fixtures for audio packages
// ABOUTME: Builds small FLAC streams in memory for decoder and source tests
package testaudio

import (
	"bytes"
	"fmt"

	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
	"github.com/mewkiz/flac/meta"
)

// FLAC encodes per-channel samples as a verbatim FLAC stream split into
// blocks of blockSize samples.
func FLAC(sampleRate, bitDepth, blockSize int, channels [][]int32) ([]byte, error) {
	if len(channels) != 1 && len(channels) != 2 {
		return nil, fmt.Errorf("unsupported channel count: %d", len(channels))
	}

	info := &meta.StreamInfo{
		BlockSizeMin:  16,
		BlockSizeMax:  65535,
		SampleRate:    uint32(sampleRate),
		NChannels:     uint8(len(channels)),
		BitsPerSample: uint8(bitDepth),
	}

	var buf bytes.Buffer
	enc, err := flac.NewEncoder(&buf, info)
	if err != nil {
		return nil, fmt.Errorf("failed to create encoder: %w", err)
	}

	layout := frame.ChannelsMono
	if len(channels) == 2 {
		layout = frame.ChannelsLR
	}

	total := len(channels[0])
	for start := 0; start < total; start += blockSize {
		end := min(start+blockSize, total)

		subframes := make([]*frame.Subframe, len(channels))
		for ch := range channels {
			subframes[ch] = &frame.Subframe{
				SubHeader: frame.SubHeader{Pred: frame.PredVerbatim},
				Samples:   channels[ch][start:end],
				NSamples:  end - start,
			}
		}

		block := &frame.Frame{
			Header: frame.Header{
				BlockSize:     uint16(end - start),
				SampleRate:    uint32(sampleRate),
				Channels:      layout,
				BitsPerSample: uint8(bitDepth),
			},
			Subframes: subframes,
		}
		if err := enc.WriteFrame(block); err != nil {
			return nil, fmt.Errorf("failed to write frame: %w", err)
		}
	}

	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to close encoder: %w", err)
	}
	return buf.Bytes(), nil
}
