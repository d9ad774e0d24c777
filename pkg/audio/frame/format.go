// ABOUTME: Mapping between audio.Sample and native sample format codes
// ABOUTME: Unknown native codes read back as SampleNone
package frame

import (
	"github.com/Resonate-Protocol/avframe/internal/native"
	"github.com/Resonate-Protocol/avframe/pkg/audio"
)

var toNative = map[audio.Sample]native.SampleFormat{
	audio.SampleNone: native.SampleFmtNone,
	audio.SampleU8:   native.SampleFmtU8,
	audio.SampleS16:  native.SampleFmtS16,
	audio.SampleS32:  native.SampleFmtS32,
	audio.SampleS64:  native.SampleFmtS64,
	audio.SampleF32:  native.SampleFmtFlt,
	audio.SampleF64:  native.SampleFmtDbl,
	audio.SampleU8P:  native.SampleFmtU8P,
	audio.SampleS16P: native.SampleFmtS16P,
	audio.SampleS32P: native.SampleFmtS32P,
	audio.SampleS64P: native.SampleFmtS64P,
	audio.SampleF32P: native.SampleFmtFltP,
	audio.SampleF64P: native.SampleFmtDblP,
}

var fromNative = make(map[native.SampleFormat]audio.Sample, len(toNative))

func init() {
	for s, n := range toNative {
		fromNative[n] = s
	}
}

func sampleToNative(s audio.Sample) native.SampleFormat {
	if n, ok := toNative[s]; ok {
		return n
	}
	return native.SampleFmtNone
}

func sampleFromNative(n native.SampleFormat) audio.Sample {
	if s, ok := fromNative[n]; ok {
		return s
	}
	return audio.SampleNone
}
