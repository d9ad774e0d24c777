// ABOUTME: Audio decoder package for multiple codec support
// ABOUTME: Provides Decoder interface and implementations for PCM, Opus, FLAC, MP3
// Package decode turns encoded audio into frames.
//
// Supports: PCM (16-bit and 24-bit), Opus, FLAC, MP3
//
// Every call to Decode returns a newly allocated *frame.Audio owned by the
// caller, who must Close it. Frames are stamped with a running PTS in units
// of 1/SampleRate.
//
//	16-bit sources → audio.SampleS16 (FLAC: audio.SampleS16P)
//	24-bit sources → audio.SampleS32 (FLAC: audio.SampleS32P)
//
// Example:
//
//	decoder, err := decode.NewPCM(format)
//	f, err := decoder.Decode(audioData)
//	defer f.Close()
package decode
