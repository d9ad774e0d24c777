// ABOUTME: Audio output interface definition
// ABOUTME: Common interface for audio playback backends
package output

import "github.com/Resonate-Protocol/avframe/pkg/audio/frame"

// Output represents an audio output device
type Output interface {
	// Open initializes the output device
	Open(sampleRate, channels, bitDepth int) error

	// Write plays a frame (blocks until written). The frame is borrowed.
	Write(f *frame.Audio) error

	// Close releases output resources
	Close() error
}
