// ABOUTME: Native sample format codes and buffer sizing
// ABOUTME: Mirrors the multimedia library's sample format table and size math
package native

// SampleFormat is the native integer code for a sample format.
type SampleFormat int32

const (
	SampleFmtNone SampleFormat = -1
	SampleFmtU8   SampleFormat = 0
	SampleFmtS16  SampleFormat = 1
	SampleFmtS32  SampleFormat = 2
	SampleFmtFlt  SampleFormat = 3
	SampleFmtDbl  SampleFormat = 4
	SampleFmtU8P  SampleFormat = 5
	SampleFmtS16P SampleFormat = 6
	SampleFmtS32P SampleFormat = 7
	SampleFmtFltP SampleFormat = 8
	SampleFmtDblP SampleFormat = 9
	SampleFmtS64  SampleFormat = 10
	SampleFmtS64P SampleFormat = 11

	// SampleFmtNB is the number of known formats. Codes at or above it are
	// treated as unknown.
	SampleFmtNB SampleFormat = 12
)

// DefaultAlign is used when GetBuffer or SamplesBufferSize is called with align 0.
const DefaultAlign = 32

type sampleFmtInfo struct {
	name   string
	bits   int
	planar bool
}

var sampleFmtTable = [SampleFmtNB]sampleFmtInfo{
	SampleFmtU8:   {"u8", 8, false},
	SampleFmtS16:  {"s16", 16, false},
	SampleFmtS32:  {"s32", 32, false},
	SampleFmtFlt:  {"flt", 32, false},
	SampleFmtDbl:  {"dbl", 64, false},
	SampleFmtU8P:  {"u8p", 8, true},
	SampleFmtS16P: {"s16p", 16, true},
	SampleFmtS32P: {"s32p", 32, true},
	SampleFmtFltP: {"fltp", 32, true},
	SampleFmtDblP: {"dblp", 64, true},
	SampleFmtS64:  {"s64", 64, false},
	SampleFmtS64P: {"s64p", 64, true},
}

// Valid reports whether f is one of the known sample formats.
func (f SampleFormat) Valid() bool {
	return f >= 0 && f < SampleFmtNB
}

// Name returns the short library name of the format, or "" if unknown.
func (f SampleFormat) Name() string {
	if !f.Valid() {
		return ""
	}
	return sampleFmtTable[f].name
}

// BytesPerSample returns the size of one sample, or 0 for an unknown format.
func (f SampleFormat) BytesPerSample() int {
	if !f.Valid() {
		return 0
	}
	return sampleFmtTable[f].bits >> 3
}

// IsPlanar reports whether each channel lives in its own plane.
func (f SampleFormat) IsPlanar() bool {
	if !f.Valid() {
		return false
	}
	return sampleFmtTable[f].planar
}

// SamplesBufferSize computes the total size and per-plane line size needed to
// hold nbSamples samples for the given channel count and format.
func SamplesBufferSize(channels, nbSamples int, format SampleFormat, align int) (size, linesize int, err error) {
	if !format.Valid() || channels <= 0 || nbSamples <= 0 || align < 0 {
		return 0, 0, ErrInvalid
	}
	if align == 0 {
		align = DefaultAlign
	}

	bps := format.BytesPerSample()
	if nbSamples > maxBufferSize/channels/bps {
		return 0, 0, ErrInvalid
	}
	planes := 1
	lineSamples := nbSamples * channels
	if format.IsPlanar() {
		planes = channels
		lineSamples = nbSamples
	}

	linesize = alignUp(lineSamples*bps, align)
	if linesize > maxBufferSize/planes {
		return 0, 0, ErrInvalid
	}
	return linesize * planes, linesize, nil
}

// maxBufferSize bounds a single frame's storage to what an int32 size field can address.
const maxBufferSize = 1<<31 - 1

func alignUp(n, align int) int {
	return (n + align - 1) / align * align
}
