// ABOUTME: Backend kinds, value ranges and the Sampler interface
// ABOUTME: Converts samples to output values with clamping
package backend

import "github.com/Resonate-Protocol/pcmstream/pkg/audio"

// Kind identifies an output backend
type Kind int

const (
	KindConverter Kind = iota
	KindPulse
	KindCircular
)

func (k Kind) String() string {
	switch k {
	case KindConverter:
		return "converter"
	case KindPulse:
		return "pulse"
	case KindCircular:
		return "circular"
	default:
		return "unknown"
	}
}

// Range describes the output values of a backend
type Range struct {
	// Center is the silence value for 16-bit sources
	Center int
	// Max is the largest accepted value
	Max int
	// WideScale narrows 16-bit samples to the output resolution
	WideScale int
}

// Value converts one sample into an output value in [0, Max].
//
// 8-bit samples are unsigned and only divided by the volume divisor. 16-bit
// samples are signed and are scaled around Center with floor division.
func (r Range) Value(sample int32, width, divisor int) int {
	if divisor < 1 {
		divisor = 1
	}

	var v int
	if width == audio.Width8 {
		v = int(sample) / divisor
	} else {
		v = r.Center + floorDiv(int(sample), divisor*r.WideScale)
	}

	if v < 0 {
		return 0
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Codes converts samples into dst, growing it as needed
func (r Range) Codes(samples []int32, width, divisor int, dst []uint16) []uint16 {
	if cap(dst) < len(samples) {
		dst = make([]uint16, len(samples))
	}
	dst = dst[:len(samples)]
	for i, s := range samples {
		dst[i] = uint16(r.Value(s, width, divisor))
	}
	return dst
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Sampler is a backend written one value per sample period
type Sampler interface {
	Kind() Kind
	Range() Range
	Write(value int) error
}

// ConverterRange returns the range of a DAC with the given resolution
func ConverterRange(bits int) Range {
	return Range{
		Center:    1 << (bits - 1),
		Max:       1<<bits - 1,
		WideScale: 16,
	}
}

// PulseRange returns the range of the PWM backend
func PulseRange() Range {
	return Range{
		Center:    128,
		Max:       PulsePeriod,
		WideScale: 128,
	}
}

// converterBits picks the DAC resolution for a source width
func converterBits(width int) int {
	if width == audio.Width8 {
		return 8
	}
	return 12
}
