// ABOUTME: Streaming resampler for host sinks
// ABOUTME: Converts interleaved 24-bit samples to float, resamples and converts back
package resample

import (
	"fmt"

	resampler "github.com/tphakala/go-audio-resampler"
)

// FullScale is the magnitude of a full-scale 24-bit sample
const FullScale = 1 << 23

// Resampler converts interleaved int32 samples between rates. It is not
// safe for concurrent use.
type Resampler struct {
	inputRate  int
	outputRate int
	channels   int

	engine resampler.Resampler
	in     []float64
	out    []int32
}

// New creates a resampler for interleaved streams of channels channels
func New(inputRate, outputRate, channels int) (*Resampler, error) {
	if inputRate <= 0 || outputRate <= 0 {
		return nil, fmt.Errorf("invalid sample rates %d -> %d", inputRate, outputRate)
	}
	if channels < 1 {
		channels = 1
	}

	engine, err := resampler.New(&resampler.Config{
		InputRate:  float64(inputRate),
		OutputRate: float64(outputRate),
		Channels:   channels,
		Quality:    resampler.QualitySpec{Preset: resampler.QualityLow},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create resampler: %w", err)
	}

	return &Resampler{
		inputRate:  inputRate,
		outputRate: outputRate,
		channels:   channels,
		engine:     engine,
	}, nil
}

// InputRate returns the source sample rate
func (r *Resampler) InputRate() int { return r.inputRate }

// OutputRate returns the device sample rate
func (r *Resampler) OutputRate() int { return r.outputRate }

// Channels returns the interleaved channel count
func (r *Resampler) Channels() int { return r.channels }

// Resample converts interleaved input and returns the samples ready so far.
// The returned slice is reused by the next call.
func (r *Resampler) Resample(input []int32) ([]int32, error) {
	input = input[:len(input)/r.channels*r.channels]
	if len(input) == 0 {
		return r.out[:0], nil
	}

	if cap(r.in) < len(input) {
		r.in = make([]float64, len(input))
	}
	r.in = r.in[:len(input)]
	for i, s := range input {
		r.in[i] = float64(s) / FullScale
	}

	output, err := r.engine.Process(r.in)
	if err != nil {
		return nil, fmt.Errorf("resample error: %w", err)
	}
	return r.convert(output), nil
}

// Flush drains the samples held by the filter at the end of a stream
func (r *Resampler) Flush() ([]int32, error) {
	output, err := r.engine.Flush()
	if err != nil {
		return nil, fmt.Errorf("resample flush error: %w", err)
	}
	return r.convert(output), nil
}

func (r *Resampler) convert(output []float64) []int32 {
	n := len(output) / r.channels * r.channels
	if cap(r.out) < n {
		r.out = make([]int32, n)
	}
	r.out = r.out[:n]
	for i, s := range output[:n] {
		r.out[i] = toSample(s)
	}
	return r.out
}

func toSample(v float64) int32 {
	switch {
	case v >= 1.0:
		return FullScale - 1
	case v <= -1.0:
		return -FullScale
	}
	return int32(v * FullScale)
}
