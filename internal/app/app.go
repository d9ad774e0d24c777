// ABOUTME: Frame pipeline orchestration for the CLI
// ABOUTME: Reads frames from a source, optionally clones, encodes and plays them
package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/Resonate-Protocol/avframe/pkg/audio"
	"github.com/Resonate-Protocol/avframe/pkg/audio/encode"
	"github.com/Resonate-Protocol/avframe/pkg/audio/frame"
	"github.com/Resonate-Protocol/avframe/pkg/audio/output"
	"github.com/Resonate-Protocol/avframe/pkg/audio/source"
)

// Config holds pipeline configuration
type Config struct {
	// Codec re-encodes every frame when set ("pcm" or "opus")
	Codec string
	// Clone deep-copies every frame and verifies the copy
	Clone bool
	// MaxFrames stops after this many frames. 0 reads to the end.
	MaxFrames int
	// OnFrame is called after each frame has passed every stage, before the
	// frame is closed. f must not be retained.
	OnFrame func(f *frame.Audio, stats Stats)
}

// Stats summarizes a run
type Stats struct {
	Frames  int
	Samples int
	Encoded int
	Cloned  int
}

// Pipeline moves frames from a source to the optional stages
type Pipeline struct {
	config  Config
	source  source.Source
	encoder encode.Encoder
	output  output.Output
	stats   Stats
}

// New creates a pipeline. out may be nil.
func New(config Config, src source.Source, out output.Output) (*Pipeline, error) {
	p := &Pipeline{
		config: config,
		source: src,
		output: out,
	}

	if config.Codec != "" {
		enc, err := encode.New(audio.Format{
			Codec:      config.Codec,
			SampleRate: src.SampleRate(),
			Channels:   src.Channels(),
			BitDepth:   16,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create encoder: %w", err)
		}
		p.encoder = enc
	}

	return p, nil
}

// Run processes frames until the source ends, ctx is done or a stage fails
func (p *Pipeline) Run(ctx context.Context) (Stats, error) {
	title, artist, album := p.source.Metadata()
	logrus.Infof("app: playing %q by %s from %s (%d Hz, %d channels)",
		title, artist, album, p.source.SampleRate(), p.source.Channels())

	if p.output != nil {
		if err := p.output.Open(p.source.SampleRate(), p.source.Channels(), 16); err != nil {
			return p.stats, fmt.Errorf("failed to open output: %w", err)
		}
	}

	for p.config.MaxFrames == 0 || p.stats.Frames < p.config.MaxFrames {
		select {
		case <-ctx.Done():
			return p.stats, ctx.Err()
		default:
		}

		f, err := p.source.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return p.stats, fmt.Errorf("source read failed: %w", err)
		}

		err = p.process(f)
		f.Close()
		if err != nil {
			return p.stats, err
		}
	}

	logrus.Infof("app: done, %d frames, %d samples", p.stats.Frames, p.stats.Samples)
	return p.stats, nil
}

func (p *Pipeline) process(f *frame.Audio) error {
	p.stats.Frames++
	p.stats.Samples += f.SampleNumber()
	logrus.Debugf("app: frame %d %s pts=%d", p.stats.Frames, f, f.PTS())

	if p.config.Clone {
		if err := verifyClone(f); err != nil {
			return fmt.Errorf("frame %d: %w", p.stats.Frames, err)
		}
		p.stats.Cloned++
	}

	if p.encoder != nil {
		data, err := p.encoder.Encode(f)
		if err != nil {
			return fmt.Errorf("frame %d: encode failed: %w", p.stats.Frames, err)
		}
		p.stats.Encoded += len(data)
	}

	if p.output != nil {
		if err := p.output.Write(f); err != nil {
			return fmt.Errorf("frame %d: output failed: %w", p.stats.Frames, err)
		}
	}

	if p.config.OnFrame != nil {
		p.config.OnFrame(f, p.stats)
	}
	return nil
}

// verifyClone deep-copies f and checks the copy matches byte for byte
func verifyClone(f *frame.Audio) error {
	c, err := f.Clone()
	if err != nil {
		return fmt.Errorf("clone failed: %w", err)
	}
	defer c.Close()

	if c.Equal(f) {
		return fmt.Errorf("clone shares identity with its source")
	}
	if c.PTS() != f.PTS() || c.Rate() != f.Rate() {
		return fmt.Errorf("clone properties differ: %s vs %s", c, f)
	}

	src, dst := f.Samples(), c.Samples()
	if src.Planes() != dst.Planes() {
		return fmt.Errorf("clone has %d planes, source %d", dst.Planes(), src.Planes())
	}
	for i := 0; i < src.Planes(); i++ {
		a, err := src.Plane(i)
		if err != nil {
			return err
		}
		b, err := dst.Plane(i)
		if err != nil {
			return err
		}
		if !bytes.Equal(a, b) {
			return fmt.Errorf("clone plane %d differs", i)
		}
	}
	return nil
}

// Close releases pipeline resources
func (p *Pipeline) Close() error {
	var errs []error
	if p.encoder != nil {
		errs = append(errs, p.encoder.Close())
	}
	if p.output != nil {
		errs = append(errs, p.output.Close())
	}
	errs = append(errs, p.source.Close())
	return errors.Join(errs...)
}
