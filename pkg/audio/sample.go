// ABOUTME: Sample format enumeration
// ABOUTME: Numeric encoding and plane arrangement of one audio sample
package audio

import (
	"fmt"
	"strings"
)

// Sample identifies how a single audio sample is encoded.
// Planar variants store each channel in its own plane.
type Sample int

const (
	SampleNone Sample = iota

	SampleU8
	SampleS16
	SampleS32
	SampleS64
	SampleF32
	SampleF64

	SampleU8P
	SampleS16P
	SampleS32P
	SampleS64P
	SampleF32P
	SampleF64P
)

var sampleNames = map[Sample]string{
	SampleNone: "none",
	SampleU8:   "u8",
	SampleS16:  "s16",
	SampleS32:  "s32",
	SampleS64:  "s64",
	SampleF32:  "f32",
	SampleF64:  "f64",
	SampleU8P:  "u8p",
	SampleS16P: "s16p",
	SampleS32P: "s32p",
	SampleS64P: "s64p",
	SampleF32P: "f32p",
	SampleF64P: "f64p",
}

// AllSamples lists every format except SampleNone.
func AllSamples() []Sample {
	return []Sample{
		SampleU8, SampleS16, SampleS32, SampleS64, SampleF32, SampleF64,
		SampleU8P, SampleS16P, SampleS32P, SampleS64P, SampleF32P, SampleF64P,
	}
}

func (s Sample) String() string {
	if name, ok := sampleNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Sample(%d)", int(s))
}

// ParseSample returns the format with the given name ("s16", "f32p", ...).
func ParseSample(name string) (Sample, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for s, n := range sampleNames {
		if n == name {
			return s, nil
		}
	}
	return SampleNone, fmt.Errorf("unknown sample format: %q", name)
}

// IsPlanar reports whether channels are stored in separate planes.
func (s Sample) IsPlanar() bool {
	return s >= SampleU8P && s <= SampleF64P
}

// Packed returns the interleaved variant of s.
func (s Sample) Packed() Sample {
	if s.IsPlanar() {
		return s - (SampleU8P - SampleU8)
	}
	return s
}

// Planar returns the planar variant of s.
func (s Sample) Planar() Sample {
	if s >= SampleU8 && s <= SampleF64 {
		return s + (SampleU8P - SampleU8)
	}
	return s
}

// IsFloat reports whether samples are IEEE floating point.
func (s Sample) IsFloat() bool {
	p := s.Packed()
	return p == SampleF32 || p == SampleF64
}

// BytesPerSample returns the size of one sample of one channel.
func (s Sample) BytesPerSample() int {
	switch s.Packed() {
	case SampleU8:
		return 1
	case SampleS16:
		return 2
	case SampleS32, SampleF32:
		return 4
	case SampleS64, SampleF64:
		return 8
	default:
		return 0
	}
}
