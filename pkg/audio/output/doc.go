// ABOUTME: Audio output package for playing audio
// ABOUTME: Provides Output interface and oto implementation
// Package output provides audio playback interfaces.
//
// Currently supports oto for cross-platform audio output. Frames of any
// sample format are converted to interleaved 16-bit PCM for the device.
//
// Example:
//
//	out := output.NewOto()
//	err := out.Open(48000, 2, 16)
//	err = out.Write(f)
package output
