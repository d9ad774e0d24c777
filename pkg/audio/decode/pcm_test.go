// ABOUTME: Tests for PCM decoder
// ABOUTME: Tests 16-bit and 24-bit PCM decoding
package decode

import (
	"testing"

	"github.com/Resonate-Protocol/avframe/pkg/audio"
)

func TestNewPCM(t *testing.T) {
	format := audio.Format{
		Codec:      "pcm",
		SampleRate: 48000,
		Channels:   2,
		BitDepth:   16,
	}

	decoder, err := NewPCM(format)
	if err != nil {
		t.Fatalf("failed to create decoder: %v", err)
	}

	if decoder == nil {
		t.Fatal("expected decoder to be created")
	}
}

func TestPCMDecode16Bit(t *testing.T) {
	format := audio.Format{
		Codec:      "pcm",
		SampleRate: 48000,
		Channels:   2,
		BitDepth:   16,
	}

	decoder, err := NewPCM(format)
	if err != nil {
		t.Fatalf("failed to create decoder: %v", err)
	}

	// One stereo sample frame: L = 0x0100, R = 0x0302
	input := []byte{0x00, 0x01, 0x02, 0x03}
	f, err := decoder.Decode(input)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	defer f.Close()

	if f.SampleNumber() != 1 {
		t.Errorf("expected 1 sample per channel, got %d", f.SampleNumber())
	}
	if f.Format() != audio.SampleS16 {
		t.Errorf("expected s16, got %s", f.Format())
	}
	if f.Rate() != 48000 {
		t.Errorf("expected rate 48000, got %d", f.Rate())
	}

	output, err := f.Samples().Int32s()
	if err != nil {
		t.Fatal(err)
	}

	// 16-bit values scaled to 24-bit range
	expected0 := int32(256 << 8)
	if output[0] != expected0 {
		t.Errorf("expected first sample %d, got %d", expected0, output[0])
	}
	expected1 := int32(770 << 8)
	if output[1] != expected1 {
		t.Errorf("expected second sample %d, got %d", expected1, output[1])
	}
}

func TestPCMDecode24Bit(t *testing.T) {
	format := audio.Format{
		Codec:      "pcm",
		SampleRate: 192000,
		Channels:   2,
		BitDepth:   24,
	}

	decoder, err := NewPCM(format)
	if err != nil {
		t.Fatalf("failed to create decoder: %v", err)
	}

	// 24-bit PCM: 3 bytes per sample
	input := []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05}
	f, err := decoder.Decode(input)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	defer f.Close()

	if f.Format() != audio.SampleS32 {
		t.Errorf("expected s32, got %s", f.Format())
	}

	output, err := f.Samples().Int32s()
	if err != nil {
		t.Fatal(err)
	}

	// 0x00, 0x01, 0x02 -> 0x020100
	expected0 := int32(0x020100)
	if output[0] != expected0 {
		t.Errorf("expected first sample %d, got %d", expected0, output[0])
	}

	// 0x03, 0x04, 0x05 -> 0x050403
	expected1 := int32(0x050403)
	if output[1] != expected1 {
		t.Errorf("expected second sample %d, got %d", expected1, output[1])
	}
}

func TestPCMDecodeTimestamps(t *testing.T) {
	format := audio.Format{
		Codec:      "pcm",
		SampleRate: 48000,
		Channels:   1,
		BitDepth:   16,
	}

	decoder, err := NewPCM(format)
	if err != nil {
		t.Fatalf("failed to create decoder: %v", err)
	}

	chunk := make([]byte, 200)
	for i, want := range []int64{0, 100, 200} {
		f, err := decoder.Decode(chunk)
		if err != nil {
			t.Fatalf("decode %d failed: %v", i, err)
		}
		if f.PTS() != want {
			t.Errorf("chunk %d: expected pts %d, got %d", i, want, f.PTS())
		}
		if f.Duration() != 100 {
			t.Errorf("chunk %d: expected duration 100, got %d", i, f.Duration())
		}
		if num, den := f.TimeBase(); num != 1 || den != 48000 {
			t.Errorf("chunk %d: expected time base 1/48000, got %d/%d", i, num, den)
		}
		f.Close()
	}
}

func TestPCMDecodePartial(t *testing.T) {
	format := audio.Format{
		Codec:      "pcm",
		SampleRate: 48000,
		Channels:   2,
		BitDepth:   16,
	}

	decoder, err := NewPCM(format)
	if err != nil {
		t.Fatalf("failed to create decoder: %v", err)
	}

	// Less than one stereo sample frame
	f, err := decoder.Decode([]byte{0x01, 0x02, 0x03})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f != nil {
		t.Errorf("expected no frame, got %s", f)
	}

	// Trailing byte is dropped
	f, err = decoder.Decode([]byte{0x01, 0x02, 0x03, 0x04, 0x05})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer f.Close()
	if f.SampleNumber() != 1 {
		t.Errorf("expected 1 sample, got %d", f.SampleNumber())
	}
}

func TestNewPCM_InvalidCodec(t *testing.T) {
	format := audio.Format{
		Codec:      "opus",
		SampleRate: 48000,
		Channels:   2,
		BitDepth:   16,
	}

	decoder, err := NewPCM(format)
	if err == nil {
		t.Fatal("expected error for invalid codec, got nil")
	}

	if decoder != nil {
		t.Fatal("expected decoder to be nil for invalid codec")
	}

	expectedError := "invalid codec for PCM decoder: opus"
	if err.Error() != expectedError {
		t.Errorf("expected error %q, got %q", expectedError, err.Error())
	}
}

func TestNewPCM_UnsupportedBitDepth(t *testing.T) {
	format := audio.Format{
		Codec:      "pcm",
		SampleRate: 48000,
		Channels:   2,
		BitDepth:   32,
	}

	decoder, err := NewPCM(format)
	if err == nil {
		t.Fatal("expected error for unsupported bit depth, got nil")
	}

	if decoder != nil {
		t.Fatal("expected decoder to be nil for unsupported bit depth")
	}

	expectedError := "unsupported bit depth: 32 (supported: 16, 24)"
	if err.Error() != expectedError {
		t.Errorf("expected error %q, got %q", expectedError, err.Error())
	}
}

func TestNewPCM_InvalidChannels(t *testing.T) {
	format := audio.Format{
		Codec:      "pcm",
		SampleRate: 48000,
		Channels:   0,
		BitDepth:   16,
	}

	if _, err := NewPCM(format); err == nil {
		t.Fatal("expected error for zero channels, got nil")
	}
}
