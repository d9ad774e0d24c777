// ABOUTME: Tests for the encoder factory and frame validation
// ABOUTME: Shared helpers for building input frames
package encode

import (
	"strings"
	"testing"

	"github.com/Resonate-Protocol/avframe/pkg/audio"
	"github.com/Resonate-Protocol/avframe/pkg/audio/frame"
)

// frameOf builds a frame holding interleaved samples
func frameOf(t *testing.T, format audio.Sample, channels, rate int, samples []int32) *frame.Audio {
	t.Helper()
	f, err := frame.New(format, len(samples)/channels, audio.DefaultLayout(channels))
	if err != nil {
		t.Fatalf("failed to create frame: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	f.SetRate(uint32(rate))

	view, err := f.SamplesMut()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := view.WriteInt32(samples); err != nil {
		t.Fatal(err)
	}
	return f
}

func TestNew(t *testing.T) {
	tests := []struct {
		codec   string
		wantErr bool
	}{
		{"pcm", false},
		{"opus", false},
		{"flac", true},
	}

	for _, tt := range tests {
		t.Run(tt.codec, func(t *testing.T) {
			encoder, err := New(audio.Format{Codec: tt.codec, SampleRate: 48000, Channels: 2, BitDepth: 16})
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			encoder.Close()
		})
	}
}

func TestEncodeRejectsMismatchedFrame(t *testing.T) {
	encoder, err := NewPCM(audio.Format{Codec: "pcm", SampleRate: 48000, Channels: 2, BitDepth: 16})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name        string
		frame       *frame.Audio
		errContains string
	}{
		{"mono frame", frameOf(t, audio.SampleS16, 1, 48000, make([]int32, 4)), "channels"},
		{"wrong rate", frameOf(t, audio.SampleS16, 2, 44100, make([]int32, 4)), "rate"},
		{"nil frame", nil, "no sample data"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := encoder.Encode(tt.frame)
			if err == nil || !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("expected error containing %q, got %v", tt.errContains, err)
			}
		})
	}
}

func TestEncodeUnallocatedFrame(t *testing.T) {
	encoder, err := NewPCM(audio.Format{Codec: "pcm", SampleRate: 48000, Channels: 2, BitDepth: 16})
	if err != nil {
		t.Fatal(err)
	}

	f, err := frame.Empty()
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if _, err := encoder.Encode(f); err == nil {
		t.Error("expected error for frame without buffers")
	}
}
