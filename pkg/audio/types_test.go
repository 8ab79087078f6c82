// ABOUTME: Tests for audio types
// ABOUTME: Tests format validation and sample conversion functions
package audio

import (
	"errors"
	"io"
	"testing"
	"time"
)

func TestFormatValidate(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		wantErr bool
	}{
		{"8-bit mono", Format{SampleRate: 8000, BitDepth: 8, Channels: 1}, false},
		{"16-bit mono", Format{SampleRate: 44100, BitDepth: 16, Channels: 1}, false},
		{"stereo", Format{SampleRate: 8000, BitDepth: 8, Channels: 2}, true},
		{"24-bit", Format{SampleRate: 48000, BitDepth: 24, Channels: 1}, true},
		{"zero rate", Format{SampleRate: 0, BitDepth: 16, Channels: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.format.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("expected error=%v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestFormatBytesPerSample(t *testing.T) {
	if got := (Format{BitDepth: 8}).BytesPerSample(); got != 1 {
		t.Errorf("expected 1, got %d", got)
	}
	if got := (Format{BitDepth: 16}).BytesPerSample(); got != 2 {
		t.Errorf("expected 2, got %d", got)
	}
}

func TestFormatDuration(t *testing.T) {
	f := Format{SampleRate: 8000, BitDepth: 8, Channels: 1}
	if got := f.Duration(4000); got != 500*time.Millisecond {
		t.Errorf("expected 500ms, got %v", got)
	}
	if got := (Format{}).Duration(100); got != 0 {
		t.Errorf("expected 0 for zero rate, got %v", got)
	}
}

func TestSampleFromInt16LE(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected int32
	}{
		{"zero", []byte{0x00, 0x00}, 0},
		{"positive", []byte{0x00, 0x01}, 256},
		{"negative", []byte{0xFF, 0xFF}, -1},
		{"max", []byte{0xFF, 0x7F}, 32767},
		{"min", []byte{0x00, 0x80}, -32768},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SampleFromInt16LE(tt.input)
			if result != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestSampleFromUint8(t *testing.T) {
	if got := SampleFromUint8(200); got != 200 {
		t.Errorf("expected 200, got %d", got)
	}
}

func TestSampleTo24Bit(t *testing.T) {
	tests := []struct {
		name                string
		value, center, bits int
		expected            int32
	}{
		{"12-bit center", 2048, 2048, 12, 0},
		{"12-bit top", 4095, 2048, 12, 2047 << 12},
		{"12-bit bottom", 0, 2048, 12, -2048 << 12},
		{"8-bit pulse", 255, 128, 8, 127 << 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SampleTo24Bit(tt.value, tt.center, tt.bits)
			if result != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestFormatError(t *testing.T) {
	err := NewFormatError("a.wav", "not PCM", io.ErrUnexpectedEOF)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Error("expected FormatError to unwrap to underlying error")
	}

	var fe *FormatError
	if !errors.As(error(err), &fe) {
		t.Fatal("expected errors.As to match *FormatError")
	}
	if fe.Path != "a.wav" {
		t.Errorf("expected path a.wav, got %s", fe.Path)
	}
}
