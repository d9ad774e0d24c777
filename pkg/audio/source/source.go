// ABOUTME: Audio source abstraction for reading files or generating test tones as frames
// ABOUTME: Supports MP3 and FLAC files with automatic decoding
package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Resonate-Protocol/avframe/pkg/audio/frame"
)

// DefaultFrameSize is the number of samples per channel in each frame a
// source returns unless told otherwise
const DefaultFrameSize = 1024

// Source produces a stream of audio frames
type Source interface {
	// Read returns the next frame, owned by the caller, holding at most the
	// source's frame size in samples per channel. It returns io.EOF at the
	// end of the stream.
	Read() (*frame.Audio, error)
	// SampleRate returns the sample rate of the audio
	SampleRate() int
	// Channels returns the number of channels
	Channels() int
	// Metadata returns title, artist, album
	Metadata() (title, artist, album string)
	// Close closes the audio source
	Close() error
}

// New creates an audio source from a file path.
// If path is empty, returns an endless 440Hz stereo test tone at 48kHz.
func New(path string, frameSize int) (Source, error) {
	if frameSize <= 0 {
		frameSize = DefaultFrameSize
	}

	if path == "" {
		tone, err := NewTone(ToneConfig{
			SampleRate:  48000,
			Channels:    2,
			FrameSize:   frameSize,
			Frequencies: []float64{440.0},
		})
		if err != nil {
			return nil, err
		}
		return tone, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("audio file not found: %s", path)
	}

	// Determine file type by extension
	ext := strings.ToLower(filepath.Ext(path))

	var source Source
	var err error

	switch ext {
	case ".mp3":
		source, err = NewMP3(path, frameSize)
	case ".flac":
		source, err = NewFLAC(path, frameSize)
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .mp3, .flac)", ext)
	}
	if err != nil {
		return nil, err
	}
	return source, nil
}

// titleFromPath uses the file name without extension as a title
func titleFromPath(path string) string {
	filename := filepath.Base(path)
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}
