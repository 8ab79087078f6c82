// ABOUTME: PCM audio encoder
// ABOUTME: Encodes int32 samples to 8-bit unsigned or 16-bit signed PCM bytes
package encode

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/Resonate-Protocol/pcmstream/pkg/audio"
)

// PCMEncoder encodes PCM audio
type PCMEncoder struct {
	bitDepth int
}

// NewPCM creates a new PCM encoder
func NewPCM(format audio.Format) (Encoder, error) {
	if format.BitDepth != audio.Width8 && format.BitDepth != audio.Width16 {
		return nil, fmt.Errorf("unsupported bit depth: %d (supported: 8, 16)", format.BitDepth)
	}

	return &PCMEncoder{
		bitDepth: format.BitDepth,
	}, nil
}

// Encode converts int32 samples to PCM bytes. 8-bit samples are expected in
// 0-255, 16-bit samples in the signed 16-bit range; values outside are clipped.
func (e *PCMEncoder) Encode(samples []int32) ([]byte, error) {
	if e.bitDepth == audio.Width16 {
		output := make([]byte, len(samples)*2)
		for i, sample := range samples {
			binary.LittleEndian.PutUint16(output[i*2:], uint16(clip(sample, math.MinInt16, math.MaxInt16)))
		}
		return output, nil
	}

	output := make([]byte, len(samples))
	for i, sample := range samples {
		output[i] = byte(clip(sample, 0, math.MaxUint8))
	}
	return output, nil
}

// Close releases resources
func (e *PCMEncoder) Close() error {
	return nil
}

func clip(v, lo, hi int32) int32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
