// ABOUTME: MP3 file source
// ABOUTME: Streams decoded MP3 audio as stereo S16 frames
package source

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hajimehoshi/go-mp3"
	"github.com/sirupsen/logrus"

	"github.com/Resonate-Protocol/avframe/pkg/audio"
	"github.com/Resonate-Protocol/avframe/pkg/audio/decode"
	"github.com/Resonate-Protocol/avframe/pkg/audio/frame"
)

// MP3Source reads from an MP3 file
type MP3Source struct {
	clock decode.Clock
	file       *os.File
	decoder    *mp3.Decoder
	frameSize  int
	sampleRate int
	channels   int
	title      string
	buf        []byte
}

// NewMP3 creates a new MP3 audio source
func NewMP3(path string, frameSize int) (*MP3Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open MP3 file: %w", err)
	}

	decoder, err := mp3.NewDecoder(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to decode MP3: %w", err)
	}

	if frameSize <= 0 {
		frameSize = DefaultFrameSize
	}

	title := titleFromPath(path)
	logrus.Infof("source: loaded MP3 %s (sample rate: %d Hz)", title, decoder.SampleRate())

	return &MP3Source{
		file:       f,
		decoder:    decoder,
		frameSize:  frameSize,
		sampleRate: decoder.SampleRate(),
		channels:   2, // MP3 decoder outputs stereo
		title:      title,
		buf:        make([]byte, frameSize*2*2),
	}, nil
}

// Read decodes the next frame
func (s *MP3Source) Read() (*frame.Audio, error) {
	n, err := io.ReadFull(s.decoder, s.buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("mp3 decode error: %w", err)
	}

	numFrames := n / (2 * s.channels)
	if numFrames == 0 {
		return nil, io.EOF
	}

	f, err := decode.NewFrame(audio.SampleS16, numFrames, s.channels, s.sampleRate)
	if err != nil {
		return nil, err
	}
	view, err := f.SamplesMut()
	if err != nil {
		f.Close()
		return nil, err
	}
	plane, err := view.Plane(0)
	if err != nil {
		f.Close()
		return nil, err
	}
	copy(plane, s.buf[:numFrames*2*s.channels])

	s.clock.Stamp(f)
	return f, nil
}

func (s *MP3Source) SampleRate() int { return s.sampleRate }
func (s *MP3Source) Channels() int   { return s.channels }
func (s *MP3Source) Metadata() (string, string, string) {
	return s.title, "Unknown Artist", "Unknown Album"
}
func (s *MP3Source) Close() error {
	return s.file.Close()
}
