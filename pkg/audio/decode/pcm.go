// ABOUTME: PCM audio decoder
// ABOUTME: Decodes 8-bit unsigned and 16-bit signed PCM to int32 samples
package decode

import (
	"fmt"

	"github.com/Resonate-Protocol/pcmstream/pkg/audio"
)

// PCMDecoder decodes PCM audio
type PCMDecoder struct {
	bitDepth int
	buf      []int32
}

// NewPCM creates a new PCM decoder
func NewPCM(format audio.Format) (*PCMDecoder, error) {
	if format.BitDepth != audio.Width8 && format.BitDepth != audio.Width16 {
		return nil, fmt.Errorf("unsupported bit depth: %d (supported: 8, 16)", format.BitDepth)
	}

	return &PCMDecoder{
		bitDepth: format.BitDepth,
	}, nil
}

// Decode converts PCM bytes to int32 samples
func (d *PCMDecoder) Decode(data []byte) ([]int32, error) {
	if d.bitDepth == audio.Width16 {
		if len(data)%2 != 0 {
			return nil, fmt.Errorf("odd byte count %d for 16-bit PCM", len(data))
		}
		// 16-bit PCM: 2 bytes per sample
		samples := d.grow(len(data) / 2)
		for i := range samples {
			samples[i] = audio.SampleFromInt16LE(data[i*2:])
		}
		return samples, nil
	}

	// 8-bit PCM: 1 byte per sample, unsigned
	samples := d.grow(len(data))
	for i, b := range data {
		samples[i] = audio.SampleFromUint8(b)
	}
	return samples, nil
}

func (d *PCMDecoder) grow(n int) []int32 {
	if cap(d.buf) < n {
		d.buf = make([]int32, n)
	}
	return d.buf[:n]
}

// Close releases resources
func (d *PCMDecoder) Close() error {
	d.buf = nil
	return nil
}
