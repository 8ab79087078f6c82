// ABOUTME: Rate-converting wrapper around another Output
// ABOUTME: Opens the device at a fixed rate and resamples the stream to it
package output

import (
	"errors"

	"github.com/Resonate-Protocol/pcmstream/pkg/audio/resample"
)

// Resampled opens its inner output at a fixed device rate and converts
// every stream to that rate
type Resampled struct {
	out        Output
	deviceRate int
	r          *resample.Resampler
}

// NewResampled wraps out so it always runs at deviceRate
func NewResampled(out Output, deviceRate int) *Resampled {
	return &Resampled{out: out, deviceRate: deviceRate}
}

// Open opens the inner output at the device rate
func (o *Resampled) Open(sampleRate, channels int) error {
	o.r = nil
	if sampleRate != o.deviceRate {
		r, err := resample.New(sampleRate, o.deviceRate, channels)
		if err != nil {
			return err
		}
		o.r = r
	}
	return o.out.Open(o.deviceRate, channels)
}

// Write converts samples to the device rate and forwards them
func (o *Resampled) Write(samples []int32) error {
	if o.r == nil {
		return o.out.Write(samples)
	}

	converted, err := o.r.Resample(samples)
	if err != nil {
		return err
	}
	if len(converted) == 0 {
		return nil
	}
	return o.out.Write(converted)
}

// Close writes the resampler tail and closes the inner output
func (o *Resampled) Close() error {
	var flushErr error
	if o.r != nil {
		tail, err := o.r.Flush()
		if err == nil && len(tail) > 0 {
			err = o.out.Write(tail)
		}
		flushErr = err
		o.r = nil
	}
	return errors.Join(flushErr, o.out.Close())
}
