// ABOUTME: Test tone generator for sample sources
// ABOUTME: Generates a sine wave as 8-bit or 16-bit mono PCM
package source

import (
	"math"

	"github.com/Resonate-Protocol/pcmstream/pkg/audio"
	"github.com/Resonate-Protocol/pcmstream/pkg/audio/encode"
)

// DefaultToneHz is the A4 note
const DefaultToneHz = 440.0

// ToneSamples generates frames of a sine wave at half scale. 8-bit samples
// are unsigned around 128, 16-bit samples are signed around 0.
func ToneSamples(format audio.Format, frequency float64, frames int) []int32 {
	if frequency <= 0 {
		frequency = DefaultToneHz
	}

	samples := make([]int32, frames)
	for i := range samples {
		t := float64(i) / float64(format.SampleRate)
		v := math.Sin(2 * math.Pi * frequency * t)

		if format.BitDepth == audio.Width8 {
			samples[i] = audio.Center8 + int32(v*127.0*0.5)
		} else {
			samples[i] = int32(v * 32767.0 * 0.5)
		}
	}
	return samples
}

// NewTone creates an in-memory source holding a sine wave
func NewTone(format audio.Format, frequency float64, frames int) (*MemorySource, error) {
	enc, err := encode.NewPCM(format)
	if err != nil {
		return nil, err
	}

	data, err := enc.Encode(ToneSamples(format, frequency, frames))
	if err != nil {
		return nil, err
	}

	return NewMemory(format, data)
}
