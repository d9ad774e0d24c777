// ABOUTME: Audio encoder package for encoding frames to various formats
// ABOUTME: Provides Encoder interface and implementations for PCM, Opus
// Package encode provides audio encoders for various codecs.
//
// Supports: PCM (16-bit and 24-bit), Opus
//
// All encoders read frames of any sample format through their int32
// (24-bit range) view and encode to wire format. The frame's channel
// count and rate must match the encoder's format.
//
// Example:
//
//	encoder, err := encode.NewPCM(format)
//	data, err := encoder.Encode(f)
package encode
