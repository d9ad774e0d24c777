// ABOUTME: Channel layout bitmask
// ABOUTME: Speaker positions present in a stream and the standard layouts
package audio

import (
	"fmt"
	"math/bits"
	"strings"
)

// ChannelLayout is a bitmask of speaker positions. Zero means unset.
type ChannelLayout uint64

const (
	ChFrontLeft ChannelLayout = 1 << iota
	ChFrontRight
	ChFrontCenter
	ChLowFrequency
	ChBackLeft
	ChBackRight
	ChFrontLeftOfCenter
	ChFrontRightOfCenter
	ChBackCenter
	ChSideLeft
	ChSideRight
)

const (
	LayoutMono        = ChFrontCenter
	LayoutStereo      = ChFrontLeft | ChFrontRight
	Layout2Point1     = LayoutStereo | ChLowFrequency
	LayoutSurround    = LayoutStereo | ChFrontCenter
	LayoutQuad        = LayoutStereo | ChBackLeft | ChBackRight
	Layout5Point0     = LayoutSurround | ChSideLeft | ChSideRight
	Layout5Point1     = Layout5Point0 | ChLowFrequency
	Layout5Point1Back = LayoutSurround | ChLowFrequency | ChBackLeft | ChBackRight
	Layout7Point1     = Layout5Point1 | ChBackLeft | ChBackRight
)

var layoutNames = map[ChannelLayout]string{
	LayoutMono:        "mono",
	LayoutStereo:      "stereo",
	Layout2Point1:     "2.1",
	LayoutSurround:    "3.0",
	LayoutQuad:        "quad",
	Layout5Point0:     "5.0",
	Layout5Point1:     "5.1",
	Layout5Point1Back: "5.1(back)",
	Layout7Point1:     "7.1",
}

// NumChannels returns the number of speaker positions set in the mask.
func (l ChannelLayout) NumChannels() int {
	return bits.OnesCount64(uint64(l))
}

func (l ChannelLayout) String() string {
	if l == 0 {
		return "unset"
	}
	if name, ok := layoutNames[l]; ok {
		return name
	}
	return fmt.Sprintf("%d channels (0x%x)", l.NumChannels(), uint64(l))
}

// DefaultLayout returns the conventional layout for a channel count, or 0
// when there is none.
func DefaultLayout(channels int) ChannelLayout {
	switch channels {
	case 1:
		return LayoutMono
	case 2:
		return LayoutStereo
	case 3:
		return LayoutSurround
	case 4:
		return LayoutQuad
	case 5:
		return Layout5Point0
	case 6:
		return Layout5Point1
	case 8:
		return Layout7Point1
	default:
		return 0
	}
}

// ParseLayout accepts a standard layout name or a channel count.
func ParseLayout(name string) (ChannelLayout, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for l, n := range layoutNames {
		if n == name {
			return l, nil
		}
	}
	var n int
	if _, err := fmt.Sscanf(name, "%d", &n); err == nil {
		if l := DefaultLayout(n); l != 0 {
			return l, nil
		}
	}
	return 0, fmt.Errorf("unknown channel layout: %q", name)
}
