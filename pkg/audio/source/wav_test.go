package source

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Resonate-Protocol/pcmstream/pkg/audio"
	"github.com/Resonate-Protocol/pcmstream/pkg/audio/encode"
)

func writeFixture(t *testing.T, format audio.Format, samples []int32) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.wav")
	if err := encode.WriteWAVFile(path, format, samples); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestOpenWAV16Bit(t *testing.T) {
	format := audio.Format{SampleRate: 16000, BitDepth: 16, Channels: 1}
	samples := []int32{0, 1000, -1000, 32767, -32768}
	path := writeFixture(t, format, samples)

	src, err := OpenWAV(path)
	if err != nil {
		t.Fatalf("OpenWAV failed: %v", err)
	}
	defer src.Close()

	if src.Format() != format {
		t.Errorf("expected format %v, got %v", format, src.Format())
	}
	if src.TotalFrames() != len(samples) {
		t.Errorf("expected %d frames, got %d", len(samples), src.TotalFrames())
	}

	chunk, err := src.ReadChunk(len(samples))
	if err != nil {
		t.Fatalf("ReadChunk failed: %v", err)
	}
	if len(chunk) != len(samples)*2 {
		t.Fatalf("expected %d bytes, got %d", len(samples)*2, len(chunk))
	}
	for i, want := range samples {
		if got := audio.SampleFromInt16LE(chunk[i*2:]); got != want {
			t.Errorf("sample %d: expected %d, got %d", i, want, got)
		}
	}
}

func TestOpenWAV8Bit(t *testing.T) {
	format := audio.Format{SampleRate: 8000, BitDepth: 8, Channels: 1}
	samples := []int32{0, 64, 128, 200, 255}
	path := writeFixture(t, format, samples)

	src, err := OpenWAV(path)
	if err != nil {
		t.Fatalf("OpenWAV failed: %v", err)
	}
	defer src.Close()

	chunk, err := src.ReadChunk(10)
	if err != nil {
		t.Fatalf("ReadChunk failed: %v", err)
	}
	if len(chunk) != len(samples) {
		t.Fatalf("expected %d bytes, got %d", len(samples), len(chunk))
	}
	for i, want := range samples {
		if got := audio.SampleFromUint8(chunk[i]); got != want {
			t.Errorf("sample %d: expected %d, got %d", i, want, got)
		}
	}
}

func TestWAVChunkedReadsAndEOF(t *testing.T) {
	format := audio.Format{SampleRate: 8000, BitDepth: 16, Channels: 1}
	samples := make([]int32, 10)
	for i := range samples {
		samples[i] = int32(i)
	}
	src, err := OpenWAV(writeFixture(t, format, samples))
	if err != nil {
		t.Fatalf("OpenWAV failed: %v", err)
	}
	defer src.Close()

	sizes := []int{}
	for {
		chunk, err := src.ReadChunk(4)
		if err != nil {
			t.Fatalf("ReadChunk failed: %v", err)
		}
		if len(chunk) == 0 {
			break
		}
		sizes = append(sizes, len(chunk)/2)
	}

	want := []int{4, 4, 2}
	if len(sizes) != len(want) {
		t.Fatalf("expected chunk sizes %v, got %v", want, sizes)
	}
	for i := range want {
		if sizes[i] != want[i] {
			t.Errorf("chunk %d: expected %d frames, got %d", i, want[i], sizes[i])
		}
	}
	if src.Position() != 10 {
		t.Errorf("expected position 10, got %d", src.Position())
	}
}

func TestWAVSeek(t *testing.T) {
	format := audio.Format{SampleRate: 8000, BitDepth: 16, Channels: 1}
	samples := []int32{10, 20, 30, 40, 50}
	src, err := OpenWAV(writeFixture(t, format, samples))
	if err != nil {
		t.Fatalf("OpenWAV failed: %v", err)
	}
	defer src.Close()

	if err := src.Seek(3); err != nil {
		t.Fatalf("Seek failed: %v", err)
	}
	chunk, _ := src.ReadChunk(1)
	if got := audio.SampleFromInt16LE(chunk); got != 40 {
		t.Errorf("expected 40 after seek, got %d", got)
	}

	if err := src.Seek(100); err != nil {
		t.Fatalf("Seek failed: %v", err)
	}
	if src.Position() != 5 {
		t.Errorf("expected seek to clamp at 5, got %d", src.Position())
	}

	if err := src.Seek(-3); err != nil {
		t.Fatalf("Seek failed: %v", err)
	}
	if src.Position() != 0 {
		t.Errorf("expected seek to clamp at 0, got %d", src.Position())
	}
}

func TestNewWAVRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"not riff", []byte("this is definitely not a wave file at all")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWAV(bytes.NewReader(tt.data), tt.name)
			if err == nil {
				t.Fatal("expected error")
			}
			var fe *audio.FormatError
			if !errors.As(err, &fe) {
				t.Errorf("expected FormatError, got %T: %v", err, err)
			}
		})
	}
}

// monoWAV hand-builds a mono PCM container whose data chunk header
// declares dataSize bytes, followed by the given sample bytes
func monoWAV(bits int, dataSize uint32, pcm []byte) []byte {
	le := binary.LittleEndian
	bps := bits / 8

	b := []byte("RIFF\x00\x00\x00\x00WAVEfmt ")
	b = le.AppendUint32(b, 16)
	b = le.AppendUint16(b, 1)
	b = le.AppendUint16(b, 1)
	b = le.AppendUint32(b, 8000)
	b = le.AppendUint32(b, uint32(8000*bps))
	b = le.AppendUint16(b, uint16(bps))
	b = le.AppendUint16(b, uint16(bits))
	b = append(b, "data"...)
	b = le.AppendUint32(b, dataSize)
	b = append(b, pcm...)
	le.PutUint32(b[4:8], uint32(len(b)-8))
	return b
}

func TestNewWAVDataSize(t *testing.T) {
	pcm16 := []byte{0x00, 0x10, 0x00, 0x20, 0x00, 0x30, 0x00, 0x40}
	pcm8 := []byte{10, 20, 30, 40}

	tests := []struct {
		name     string
		bits     int
		dataSize uint32
		pcm      []byte
		want     int
	}{
		{"16-bit exact", 16, 8, pcm16, 4},
		{"16-bit streaming size", 16, 0xFFFFFFFF, pcm16, 4},
		{"8-bit streaming size", 8, 0xFFFFFFFF, pcm8, 4},
		{"size past end of file", 16, 4096, pcm16, 4},
		{"torn trailing frame", 16, 0xFFFFFFFF, pcm16[:7], 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := NewWAV(bytes.NewReader(monoWAV(tt.bits, tt.dataSize, tt.pcm)), tt.name)
			if err != nil {
				t.Fatalf("NewWAV failed: %v", err)
			}
			if src.TotalFrames() != tt.want {
				t.Fatalf("expected %d frames, got %d", tt.want, src.TotalFrames())
			}

			chunk, err := src.ReadChunk(16)
			if err != nil {
				t.Fatalf("ReadChunk failed: %v", err)
			}
			if want := tt.want * tt.bits / 8; len(chunk) != want {
				t.Fatalf("expected %d bytes, got %d", want, len(chunk))
			}
			if !bytes.Equal(chunk, tt.pcm[:len(chunk)]) {
				t.Errorf("unexpected sample bytes %v", chunk)
			}
		})
	}
}

func TestOpenWAVRejectsStereo(t *testing.T) {
	// Hand-built 16-bit stereo header with an empty data chunk
	header := []byte{
		'R', 'I', 'F', 'F', 36, 0, 0, 0, 'W', 'A', 'V', 'E',
		'f', 'm', 't', ' ', 16, 0, 0, 0,
		1, 0, // PCM
		2, 0, // channels
		0x40, 0x1f, 0, 0, // 8000 Hz
		0x00, 0x7d, 0, 0, // byte rate
		4, 0, // block align
		16, 0, // bits
		'd', 'a', 't', 'a', 0, 0, 0, 0,
	}
	path := filepath.Join(t.TempDir(), "stereo.wav")
	if err := os.WriteFile(path, header, 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := OpenWAV(path)
	var fe *audio.FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FormatError, got %v", err)
	}
	if fe.Path != path {
		t.Errorf("expected path %q, got %q", path, fe.Path)
	}
}

func TestOpenWAVMissingFile(t *testing.T) {
	_, err := OpenWAV(filepath.Join(t.TempDir(), "missing.wav"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}
