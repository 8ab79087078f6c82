// ABOUTME: Tests for PCM decoder
// ABOUTME: Tests 8-bit and 16-bit PCM decoding
package decode

import (
	"testing"

	"github.com/Resonate-Protocol/pcmstream/pkg/audio"
)

func TestNewPCM(t *testing.T) {
	format := audio.Format{
		SampleRate: 8000,
		BitDepth:   8,
		Channels:   1,
	}

	decoder, err := NewPCM(format)
	if err != nil {
		t.Fatalf("failed to create decoder: %v", err)
	}

	if decoder == nil {
		t.Fatal("expected decoder to be created")
	}
}

func TestNewPCM_UnsupportedBitDepth(t *testing.T) {
	format := audio.Format{
		SampleRate: 48000,
		BitDepth:   24,
		Channels:   1,
	}

	decoder, err := NewPCM(format)
	if err == nil {
		t.Fatal("expected error for 24-bit, got nil")
	}
	if decoder != nil {
		t.Fatal("expected decoder to be nil")
	}

	expectedError := "unsupported bit depth: 24 (supported: 8, 16)"
	if err.Error() != expectedError {
		t.Errorf("expected error %q, got %q", expectedError, err.Error())
	}
}

func TestPCMDecode8Bit(t *testing.T) {
	decoder, err := NewPCM(audio.Format{SampleRate: 8000, BitDepth: 8, Channels: 1})
	if err != nil {
		t.Fatalf("failed to create decoder: %v", err)
	}

	input := []byte{0x00, 0x80, 0xFF}
	output, err := decoder.Decode(input)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	expected := []int32{0, 128, 255}
	if len(output) != len(expected) {
		t.Fatalf("expected %d samples, got %d", len(expected), len(output))
	}
	for i := range expected {
		if output[i] != expected[i] {
			t.Errorf("sample %d: expected %d, got %d", i, expected[i], output[i])
		}
	}
}

func TestPCMDecode16Bit(t *testing.T) {
	decoder, err := NewPCM(audio.Format{SampleRate: 16000, BitDepth: 16, Channels: 1})
	if err != nil {
		t.Fatalf("failed to create decoder: %v", err)
	}

	// 0x00, 0x01 -> 0x0100 = 256
	// 0x00, 0x80 -> 0x8000 = -32768
	input := []byte{0x00, 0x01, 0x00, 0x80}
	output, err := decoder.Decode(input)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if len(output) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(output))
	}
	if output[0] != 256 {
		t.Errorf("expected first sample 256, got %d", output[0])
	}
	if output[1] != -32768 {
		t.Errorf("expected second sample -32768, got %d", output[1])
	}
}

func TestPCMDecode16BitOddLength(t *testing.T) {
	decoder, err := NewPCM(audio.Format{SampleRate: 16000, BitDepth: 16, Channels: 1})
	if err != nil {
		t.Fatalf("failed to create decoder: %v", err)
	}

	if _, err := decoder.Decode([]byte{0x01, 0x02, 0x03}); err == nil {
		t.Fatal("expected error for odd byte count")
	}
}

func TestPCMDecodeReusesBuffer(t *testing.T) {
	decoder, err := NewPCM(audio.Format{SampleRate: 8000, BitDepth: 8, Channels: 1})
	if err != nil {
		t.Fatalf("failed to create decoder: %v", err)
	}

	first, _ := decoder.Decode(make([]byte, 64))
	second, _ := decoder.Decode(make([]byte, 32))
	if &first[0] != &second[0] {
		t.Error("expected smaller chunk to reuse the decode buffer")
	}
	if len(second) != 32 {
		t.Errorf("expected 32 samples, got %d", len(second))
	}
}

func TestPCMClose(t *testing.T) {
	decoder, err := NewPCM(audio.Format{SampleRate: 8000, BitDepth: 8, Channels: 1})
	if err != nil {
		t.Fatalf("failed to create decoder: %v", err)
	}

	if err := decoder.Close(); err != nil {
		t.Errorf("expected Close to succeed, got error: %v", err)
	}
}
