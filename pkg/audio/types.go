// ABOUTME: Audio type definitions
// ABOUTME: Defines stream headers, container specs and sample width dispatch
package audio

import "fmt"

// Sample is the set of signed integer widths a sample sequence can carry
type Sample interface {
	~int8 | ~int16 | ~int32
}

// SampleWidth selects the integer width samples are produced at
type SampleWidth int

const (
	// Narrow carries samples as int8 (up to 8 bits per sample)
	Narrow SampleWidth = iota
	// Medium carries samples as int16 (9 to 16 bits per sample)
	Medium
	// Wide carries samples as int32 (17 bits per sample and above)
	Wide
)

// WidthFor returns the sample width for a stream's bits per sample.
// The choice is made once per stream and held for its whole lifetime.
func WidthFor(bitsPerSample int) SampleWidth {
	switch {
	case bitsPerSample <= 8:
		return Narrow
	case bitsPerSample <= 16:
		return Medium
	default:
		return Wide
	}
}

// Bits returns the size in bits of the integer type backing the width
func (w SampleWidth) Bits() int {
	switch w {
	case Narrow:
		return 8
	case Medium:
		return 16
	default:
		return 32
	}
}

func (w SampleWidth) String() string {
	switch w {
	case Narrow:
		return "int8"
	case Medium:
		return "int16"
	case Wide:
		return "int32"
	default:
		return fmt.Sprintf("SampleWidth(%d)", int(w))
	}
}

// StreamInfo describes a decoded stream header
type StreamInfo struct {
	Channels      int
	SampleRate    int
	BitsPerSample int
	TotalSamples  uint64 // Inter-channel samples, 0 when unknown
}

// OutputSpec describes the format header of an uncompressed container.
// Field widths follow the WAVE fmt chunk.
type OutputSpec struct {
	Channels      uint16
	SampleRate    uint32
	BitsPerSample uint16
}

// OutputSpec narrows the stream header to container field widths.
// Values outside the container range wrap as Go conversions do.
func (i StreamInfo) OutputSpec() OutputSpec {
	return OutputSpec{
		Channels:      uint16(i.Channels),
		SampleRate:    uint32(i.SampleRate),
		BitsPerSample: uint16(i.BitsPerSample),
	}
}

// Width returns the sample width selected for this stream
func (i StreamInfo) Width() SampleWidth {
	return WidthFor(i.BitsPerSample)
}

// SampleRange returns the inclusive signed range representable in bits.
// bits must be within 1..32.
func SampleRange(bits int) (lo, hi int32) {
	if bits >= 32 {
		return -1 << 31, 1<<31 - 1
	}
	return -(1 << (bits - 1)), 1<<(bits-1) - 1
}
