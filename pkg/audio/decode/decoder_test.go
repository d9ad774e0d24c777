// ABOUTME: Tests for the decoder factory and frame helpers
// ABOUTME: Tests codec dispatch and NewFrame layout handling
package decode

import (
	"testing"

	"github.com/Resonate-Protocol/avframe/pkg/audio"
)

func TestNew(t *testing.T) {
	tests := []struct {
		codec   string
		wantErr bool
	}{
		{"pcm", false},
		{"opus", false},
		{"flac", false},
		{"mp3", false},
		{"aac", true},
	}

	for _, tt := range tests {
		t.Run(tt.codec, func(t *testing.T) {
			format := audio.Format{
				Codec:      tt.codec,
				SampleRate: 48000,
				Channels:   2,
				BitDepth:   16,
			}
			decoder, err := New(format)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			decoder.Close()
		})
	}
}

func TestNewFrame(t *testing.T) {
	tests := []struct {
		name     string
		channels int
		layout   audio.ChannelLayout
	}{
		{"mono", 1, audio.LayoutMono},
		{"stereo", 2, audio.LayoutStereo},
		{"no default layout", 7, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewFrame(audio.SampleF32P, 64, tt.channels, 48000)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			defer f.Close()

			if f.ChannelLayout() != tt.layout {
				t.Errorf("expected layout %s, got %s", tt.layout, f.ChannelLayout())
			}
			if int(f.Channels()) != tt.channels {
				t.Errorf("expected %d channels, got %d", tt.channels, f.Channels())
			}
			if f.Planes() != tt.channels {
				t.Errorf("expected %d planes, got %d", tt.channels, f.Planes())
			}
		})
	}
}

func TestNewFrameInvalid(t *testing.T) {
	if _, err := NewFrame(audio.SampleS16, 10, 0, 48000); err == nil {
		t.Error("expected error for zero channels")
	}
	if _, err := NewFrame(audio.SampleS16, 10, 2, 0); err == nil {
		t.Error("expected error for zero rate")
	}
	if _, err := NewFrame(audio.SampleS16, 0, 2, 48000); err == nil {
		t.Error("expected error for zero samples")
	}
}

func TestClockStamp(t *testing.T) {
	var clock Clock

	for _, tt := range []struct {
		samples int
		pts     int64
	}{
		{100, 0},
		{50, 100},
		{100, 150},
	} {
		f, err := NewFrame(audio.SampleS16, tt.samples, 1, 44100)
		if err != nil {
			t.Fatal(err)
		}
		clock.Stamp(f)

		if f.PTS() != tt.pts {
			t.Errorf("expected pts %d, got %d", tt.pts, f.PTS())
		}
		if f.Duration() != int64(tt.samples) {
			t.Errorf("expected duration %d, got %d", tt.samples, f.Duration())
		}
		if num, den := f.TimeBase(); num != 1 || den != 44100 {
			t.Errorf("expected time base 1/44100, got %d/%d", num, den)
		}
		f.Close()
	}
}
