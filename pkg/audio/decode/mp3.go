// ABOUTME: MP3 audio decoder
// ABOUTME: Decodes MP3 data to stereo S16 frames
package decode

import (
	"bytes"
	"fmt"
	"io"

	"github.com/hajimehoshi/go-mp3"

	"github.com/Resonate-Protocol/avframe/pkg/audio"
	"github.com/Resonate-Protocol/avframe/pkg/audio/frame"
)

// mp3Channels is fixed: go-mp3 always outputs interleaved stereo
const mp3Channels = 2

// MP3Decoder decodes MP3 audio
type MP3Decoder struct {
	clock Clock
}

// NewMP3 creates a new MP3 decoder
func NewMP3(format audio.Format) (Decoder, error) {
	if format.Codec != "mp3" {
		return nil, fmt.Errorf("invalid codec for MP3 decoder: %s", format.Codec)
	}

	return &MP3Decoder{}, nil
}

// Decode converts a self-contained run of MP3 frames to one frame
func (d *MP3Decoder) Decode(data []byte) (*frame.Audio, error) {
	if len(data) == 0 {
		return nil, nil
	}

	decoder, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create mp3 decoder: %w", err)
	}

	pcm, err := io.ReadAll(decoder)
	if err != nil {
		return nil, fmt.Errorf("mp3 decode error: %w", err)
	}

	n := len(pcm) / (2 * mp3Channels)
	if n == 0 {
		return nil, nil
	}

	f, err := NewFrame(audio.SampleS16, n, mp3Channels, decoder.SampleRate())
	if err != nil {
		return nil, err
	}
	if err := writeRaw(f, pcm[:n*2*mp3Channels]); err != nil {
		f.Close()
		return nil, err
	}
	d.clock.Stamp(f)
	return f, nil
}

// Close releases decoder resources
func (d *MP3Decoder) Close() error {
	return nil
}
