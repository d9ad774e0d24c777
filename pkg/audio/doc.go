// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines Sample, ChannelLayout and Format types and sample conversion functions
// Package audio provides fundamental audio types shared by the frame, codec
// and output packages.
//
// This package defines:
//   - Sample: the sample format enumeration (packed/planar, integer/float, bit width)
//   - ChannelLayout: the speaker-position bitmask of a stream
//   - Format: describes an encoded stream (codec, sample rate, channels, bit depth)
//
// It also provides helpers for the int32 "24-bit range" sample convention
// used when moving samples between frames, codecs and outputs:
//   - 16-bit ↔ 24-bit conversions
//   - int32 ↔ packed byte conversions
//
// Example:
//
//	layout := audio.DefaultLayout(2) // audio.LayoutStereo
//	fmt.Println(audio.SampleS16P, layout.NumChannels())
//
//	// Convert 16-bit sample to 24-bit range
//	sample24 := audio.SampleFromInt16(sample16)
package audio
