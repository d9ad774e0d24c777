// ABOUTME: Test tone generator for audio source
// ABOUTME: Mixes one or more sine waves into S32 frames
package source

import (
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/Resonate-Protocol/avframe/pkg/audio"
	"github.com/Resonate-Protocol/avframe/pkg/audio/decode"
	"github.com/Resonate-Protocol/avframe/pkg/audio/frame"
)

// ToneConfig describes a generated tone
type ToneConfig struct {
	SampleRate  int
	Channels    int
	FrameSize   int
	Frequencies []float64
	// Length is the total samples per channel to produce. 0 means endless.
	Length int
}

// ToneSource generates a mix of sine waves
type ToneSource struct {
	cfg         ToneConfig
	sampleIndex uint64
	mu          sync.Mutex
	clock decode.Clock
}

// NewTone creates a tone generator
func NewTone(cfg ToneConfig) (*ToneSource, error) {
	if cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate: %d", cfg.SampleRate)
	}
	if cfg.Channels <= 0 {
		return nil, fmt.Errorf("invalid channel count: %d", cfg.Channels)
	}
	if len(cfg.Frequencies) == 0 {
		return nil, fmt.Errorf("tone needs at least one frequency")
	}
	if cfg.FrameSize <= 0 {
		cfg.FrameSize = DefaultFrameSize
	}
	return &ToneSource{cfg: cfg}, nil
}

// Read generates the next frame
func (s *ToneSource) Read() (*frame.Audio, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	numFrames := s.cfg.FrameSize
	if s.cfg.Length > 0 {
		remaining := s.cfg.Length - int(s.sampleIndex)
		if remaining <= 0 {
			return nil, io.EOF
		}
		numFrames = min(numFrames, remaining)
	}

	samples := make([]int32, numFrames*s.cfg.Channels)
	for i := 0; i < numFrames; i++ {
		t := float64(s.sampleIndex+uint64(i)) / float64(s.cfg.SampleRate)

		// Mix all frequencies together
		var mixed float64
		for _, freq := range s.cfg.Frequencies {
			mixed += math.Sin(2 * math.Pi * freq * t)
		}
		mixed /= float64(len(s.cfg.Frequencies))

		// 50% volume to prevent clipping
		pcmValue := int32(mixed * audio.Max24Bit * 0.5)

		for ch := 0; ch < s.cfg.Channels; ch++ {
			samples[i*s.cfg.Channels+ch] = pcmValue
		}
	}

	f, err := decode.NewFrame(audio.SampleS32, numFrames, s.cfg.Channels, s.cfg.SampleRate)
	if err != nil {
		return nil, err
	}
	view, err := f.SamplesMut()
	if err != nil {
		f.Close()
		return nil, err
	}
	if _, err := view.WriteInt32(samples); err != nil {
		f.Close()
		return nil, err
	}

	s.sampleIndex += uint64(numFrames)
	s.clock.Stamp(f)
	return f, nil
}

func (s *ToneSource) SampleRate() int { return s.cfg.SampleRate }
func (s *ToneSource) Channels() int   { return s.cfg.Channels }
func (s *ToneSource) Metadata() (string, string, string) {
	return "Test Tone", "avframe", "Generated"
}
func (s *ToneSource) Close() error { return nil }
