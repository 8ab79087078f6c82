// ABOUTME: Audio type definitions
// ABOUTME: Defines the mono PCM format and sample conversion helpers
package audio

import (
	"encoding/binary"
	"fmt"
	"time"
)

// Supported sample widths in bits
const (
	Width8  = 8
	Width16 = 16
)

const (
	// 8-bit unsigned silence level
	Center8 = 128

	// 24-bit audio range constants, used by host sinks
	Max24Bit = 8388607  // 2^23 - 1
	Min24Bit = -8388608 // -2^23
)

// Format describes a PCM stream
type Format struct {
	SampleRate int
	BitDepth   int
	Channels   int
}

// BytesPerSample returns the container width of one sample
func (f Format) BytesPerSample() int {
	return (f.BitDepth + 7) / 8
}

// Duration returns the play time of the given number of frames
func (f Format) Duration(frames int) time.Duration {
	if f.SampleRate <= 0 {
		return 0
	}
	return time.Duration(frames) * time.Second / time.Duration(f.SampleRate)
}

// Validate checks the format against what the engine can play
func (f Format) Validate() error {
	if f.Channels != 1 {
		return fmt.Errorf("unsupported channel count: %d (mono only)", f.Channels)
	}
	if f.BitDepth != Width8 && f.BitDepth != Width16 {
		return fmt.Errorf("unsupported bit depth: %d (supported: 8, 16)", f.BitDepth)
	}
	if f.SampleRate <= 0 {
		return fmt.Errorf("invalid sample rate: %d", f.SampleRate)
	}
	return nil
}

func (f Format) String() string {
	return fmt.Sprintf("%dHz %d-bit mono", f.SampleRate, f.BitDepth)
}

// SampleFromUint8 converts an unsigned 8-bit sample to int32 without recentering
func SampleFromUint8(b byte) int32 {
	return int32(b)
}

// SampleFromInt16LE decodes a signed 16-bit little-endian sample
func SampleFromInt16LE(b []byte) int32 {
	return int32(int16(binary.LittleEndian.Uint16(b)))
}

// SampleTo24Bit scales a value centered at center with the given bit range
// into the 24-bit range used by host sinks
func SampleTo24Bit(value, center, bits int) int32 {
	shift := 24 - bits
	s := int32(value-center) << shift
	if s > Max24Bit {
		s = Max24Bit
	} else if s < Min24Bit {
		s = Min24Bit
	}
	return s
}

// SampleToInt16 narrows a 24-bit sample to 16 bits
func SampleToInt16(s int32) int16 {
	return int16(s >> 8)
}
