// ABOUTME: FLAC file source
// ABOUTME: Streams FLAC audio as planar frames with Vorbis comment metadata
package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/meta"
	"github.com/sirupsen/logrus"

	"github.com/Resonate-Protocol/avframe/pkg/audio"
	"github.com/Resonate-Protocol/avframe/pkg/audio/decode"
	"github.com/Resonate-Protocol/avframe/pkg/audio/frame"
)

// FLACSource reads from a FLAC file
type FLACSource struct {
	clock decode.Clock
	file       *os.File
	stream     *flac.Stream
	frameSize  int
	sampleRate int
	channels   int
	bitDepth   int
	title      string
	artist     string
	album      string
	// decoded samples not yet returned, per channel
	pending [][]int32
	eof     bool
}

// NewFLAC creates a new FLAC audio source
func NewFLAC(path string, frameSize int) (*FLACSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open FLAC file: %w", err)
	}

	stream, err := flac.Parse(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to decode FLAC: %w", err)
	}

	if frameSize <= 0 {
		frameSize = DefaultFrameSize
	}

	info := stream.Info
	s := &FLACSource{
		file:       f,
		stream:     stream,
		frameSize:  frameSize,
		sampleRate: int(info.SampleRate),
		channels:   int(info.NChannels),
		bitDepth:   int(info.BitsPerSample),
		title:      titleFromPath(path),
		artist:     "Unknown Artist",
		album:      "Unknown Album",
		pending:    make([][]int32, info.NChannels),
	}
	s.readTags(stream.Blocks)

	logrus.Infof("source: loaded FLAC %s (sample rate: %d Hz, channels: %d, bit depth: %d)",
		s.title, s.sampleRate, s.channels, s.bitDepth)

	return s, nil
}

// readTags takes title, artist and album from a Vorbis comment block
func (s *FLACSource) readTags(blocks []*meta.Block) {
	for _, block := range blocks {
		comment, ok := block.Body.(*meta.VorbisComment)
		if !ok {
			continue
		}
		for _, tag := range comment.Tags {
			switch strings.ToUpper(tag[0]) {
			case "TITLE":
				s.title = tag[1]
			case "ARTIST":
				s.artist = tag[1]
			case "ALBUM":
				s.album = tag[1]
			}
		}
	}
}

// fill parses FLAC frames until a full output frame is pending or the
// stream ends
func (s *FLACSource) fill() error {
	for !s.eof && len(s.pending[0]) < s.frameSize {
		block, err := s.stream.ParseNext()
		if errors.Is(err, io.EOF) {
			s.eof = true
			break
		}
		if err != nil {
			return fmt.Errorf("flac decode error: %w", err)
		}
		for ch := 0; ch < s.channels; ch++ {
			s.pending[ch] = append(s.pending[ch], block.Subframes[ch].Samples[:block.BlockSize]...)
		}
	}
	return nil
}

// Read decodes the next frame
func (s *FLACSource) Read() (*frame.Audio, error) {
	if err := s.fill(); err != nil {
		return nil, err
	}

	numFrames := min(s.frameSize, len(s.pending[0]))
	if numFrames == 0 {
		return nil, io.EOF
	}

	samples := make([]int32, numFrames*s.channels)
	for i := 0; i < numFrames; i++ {
		for ch := 0; ch < s.channels; ch++ {
			samples[i*s.channels+ch] = decode.ScaleTo24(s.pending[ch][i], s.bitDepth)
		}
	}
	for ch := range s.pending {
		s.pending[ch] = s.pending[ch][numFrames:]
	}

	format := audio.SampleS32P
	if s.bitDepth <= 16 {
		format = audio.SampleS16P
	}
	f, err := decode.NewFrame(format, numFrames, s.channels, s.sampleRate)
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

	s.clock.Stamp(f)
	return f, nil
}

func (s *FLACSource) SampleRate() int { return s.sampleRate }
func (s *FLACSource) Channels() int   { return s.channels }
func (s *FLACSource) Metadata() (string, string, string) {
	return s.title, s.artist, s.album
}
func (s *FLACSource) Close() error {
	return s.file.Close()
}
