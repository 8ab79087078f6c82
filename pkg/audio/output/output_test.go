// ABOUTME: Audio output tests
// ABOUTME: Verifies the sink factory, the discard sink and the ring buffer
package output

import (
	"testing"
)

func TestImplementsOutput(t *testing.T) {
	var _ Output = (*PortAudio)(nil)
	var _ Output = (*Oto)(nil)
	var _ Output = (*Malgo)(nil)
	var _ Output = (*Discard)(nil)
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"", false},
		{"none", false},
		{"oto", false},
		{"MALGO", false},
		{"portaudio", false},
		{"alsa", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := New(tt.name)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil || out == nil {
				t.Fatalf("New(%q) failed: %v", tt.name, err)
			}
		})
	}
}

func TestDiscard(t *testing.T) {
	d := NewDiscard()
	if err := d.Write([]int32{1}); err == nil {
		t.Error("expected error writing before Open")
	}

	if err := d.Open(8000, 1); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	d.Write([]int32{1, 2, 3})
	d.Write([]int32{4})
	if d.Samples() != 4 {
		t.Errorf("expected 4 samples, got %d", d.Samples())
	}
	d.Close()
}

func TestRingBuffer(t *testing.T) {
	rb := NewRingBuffer(4)

	if n := rb.Write([]int32{1, 2, 3, 4, 5}); n != 4 {
		t.Errorf("expected 4 written, got %d", n)
	}
	if rb.Free() != 0 {
		t.Errorf("expected full buffer, free=%d", rb.Free())
	}

	out := make([]int32, 2)
	rb.Read(out)
	if out[0] != 1 || out[1] != 2 {
		t.Errorf("unexpected read %v", out)
	}

	rb.Write([]int32{6, 7})
	out = make([]int32, 6)
	if n := rb.Read(out); n != 4 {
		t.Errorf("expected 4 read, got %d", n)
	}
	want := []int32{3, 4, 6, 7, 0, 0}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("index %d: expected %d, got %d", i, want[i], out[i])
		}
	}
	if rb.Available() != 0 {
		t.Errorf("expected empty buffer, got %d", rb.Available())
	}
}

func TestPack24(t *testing.T) {
	out := make([]byte, 6)
	pack24(out, []int32{0x123456, -1})
	want := []byte{0x56, 0x34, 0x12, 0xff, 0xff, 0xff}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("byte %d: expected %#x, got %#x", i, want[i], out[i])
		}
	}
}

func TestResampledConvertsRate(t *testing.T) {
	inner := NewDiscard()
	out := NewResampled(inner, 48000)

	if err := out.Open(8000, 1); err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if inner.sampleRate != 48000 {
		t.Errorf("expected device opened at 48000, got %d", inner.sampleRate)
	}

	samples := make([]int32, 800)
	for i := range samples {
		samples[i] = 1 << 20
	}
	for i := 0; i < 2; i++ {
		if err := out.Write(samples); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}

	if err := out.Close(); err != nil {
		t.Errorf("close failed: %v", err)
	}

	// 1600 frames at 6x once the filter tail is flushed
	if got := inner.Samples(); got < 9120 || got > 10080 {
		t.Errorf("expected ~9600 samples, got %d", got)
	}
}

func TestResampledRejectsBadRate(t *testing.T) {
	inner := NewDiscard()
	out := NewResampled(inner, 48000)

	if err := out.Open(0, 1); err == nil {
		t.Fatal("expected error for a zero source rate")
	}
	if inner.sampleRate != 0 {
		t.Errorf("inner output should stay closed, opened at %d", inner.sampleRate)
	}
}

func TestResampledPassThrough(t *testing.T) {
	inner := NewDiscard()
	out := NewResampled(inner, 16000)

	if err := out.Open(16000, 1); err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if err := out.Write(make([]int32, 100)); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if inner.Samples() != 100 {
		t.Errorf("expected 100 samples, got %d", inner.Samples())
	}
}
