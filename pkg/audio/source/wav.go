// ABOUTME: WAV file sample source
// ABOUTME: Parses the RIFF header with go-audio/wav and streams raw PCM frames
package source

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/go-audio/wav"

	"github.com/Resonate-Protocol/pcmstream/pkg/audio"
)

// wavFormatPCM is the WAVE_FORMAT_PCM tag
const wavFormatPCM = 1

// WAVSource reads raw frames from a mono PCM WAV container
type WAVSource struct {
	name       string
	r          io.ReadSeeker
	closer     io.Closer
	format     audio.Format
	dataOffset int64
	frames     int
	pos        int
	buf        []byte
}

// OpenWAV opens a WAV file from disk
func OpenWAV(path string) (*WAVSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open WAV file: %w", err)
	}

	src, err := NewWAV(f, path)
	if err != nil {
		f.Close()
		return nil, err
	}
	src.closer = f

	log.Printf("Loaded WAV: %s (%s, %d frames)", filepath.Base(path), src.format, src.frames)

	return src, nil
}

// NewWAV parses a WAV container from r. name is only used in errors.
func NewWAV(r io.ReadSeeker, name string) (*WAVSource, error) {
	dec := wav.NewDecoder(r)
	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return nil, audio.NewFormatError(name, "invalid RIFF/WAVE header", err)
	}

	if dec.SampleRate == 0 && dec.NumChans == 0 {
		return nil, audio.NewFormatError(name, "missing fmt chunk", nil)
	}

	if dec.WavAudioFormat != wavFormatPCM {
		return nil, audio.NewFormatError(name, fmt.Sprintf("not PCM (format tag %d)", dec.WavAudioFormat), nil)
	}

	format := audio.Format{
		SampleRate: int(dec.SampleRate),
		BitDepth:   int(dec.BitDepth),
		Channels:   int(dec.NumChans),
	}
	if err := format.Validate(); err != nil {
		return nil, audio.NewFormatError(name, "unsupported sample layout", err)
	}

	if err := dec.FwdToPCM(); err != nil {
		return nil, audio.NewFormatError(name, "missing data chunk", err)
	}

	// The decoder leaves r positioned at the first sample
	offset, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("failed to locate PCM data: %w", err)
	}

	end, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to size WAV file: %w", err)
	}
	avail := end - offset

	// Trust the file length over a data chunk size that runs past it or
	// that the writer left unset
	pcmBytes := int64(dec.PCMSize)
	declared, ok := declaredDataSize(r, offset)
	switch {
	case ok && declared == streamingDataSize:
		pcmBytes = avail
	case pcmBytes <= 0 && (!ok || declared != 0):
		pcmBytes = avail
	case pcmBytes > avail:
		pcmBytes = avail
	}
	if _, err := r.Seek(offset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to seek to PCM data: %w", err)
	}

	return &WAVSource{
		name:       name,
		r:          r,
		format:     format,
		dataOffset: offset,
		frames:     int(pcmBytes) / format.BytesPerSample(),
	}, nil
}

// streamingDataSize is the data chunk size written by encoders that do not
// know the stream length up front
const streamingDataSize = 0xFFFFFFFF

// declaredDataSize reads the raw size field of the data chunk header that
// ends at offset
func declaredDataSize(r io.ReadSeeker, offset int64) (uint32, bool) {
	if offset < 8 {
		return 0, false
	}
	if _, err := r.Seek(offset-4, io.SeekStart); err != nil {
		return 0, false
	}
	var size [4]byte
	if _, err := io.ReadFull(r, size[:]); err != nil {
		return 0, false
	}
	return binary.LittleEndian.Uint32(size[:]), true
}

// Format returns the stream format
func (s *WAVSource) Format() audio.Format { return s.format }

// TotalFrames returns the number of frames in the data chunk
func (s *WAVSource) TotalFrames() int { return s.frames }

// Position returns the current frame offset
func (s *WAVSource) Position() int { return s.pos }

// ReadChunk reads up to maxSamples frames at the cursor
func (s *WAVSource) ReadChunk(maxSamples int) ([]byte, error) {
	bps := s.format.BytesPerSample()

	n := maxSamples
	if remain := s.frames - s.pos; n > remain {
		n = remain
	}
	if n <= 0 {
		return s.buf[:0], nil
	}

	need := n * bps
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}

	read, err := io.ReadFull(s.r, s.buf[:need])
	got := read / bps
	s.pos += got

	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return s.buf[:got*bps], fmt.Errorf("failed to read PCM frames: %w", err)
	}

	// Keep the reader aligned to whole frames after a torn read
	if read%bps != 0 {
		if _, err := s.r.Seek(s.dataOffset+int64(s.pos*bps), io.SeekStart); err != nil {
			return s.buf[:got*bps], fmt.Errorf("failed to realign reader: %w", err)
		}
	}

	return s.buf[:got*bps], nil
}

// Seek moves the cursor to frame
func (s *WAVSource) Seek(frame int) error {
	frame = clampFrame(frame, s.frames)
	offset := s.dataOffset + int64(frame*s.format.BytesPerSample())
	if _, err := s.r.Seek(offset, io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek to frame %d: %w", frame, err)
	}
	s.pos = frame
	return nil
}

// Close closes the underlying file, if any
func (s *WAVSource) Close() error {
	if s.closer != nil {
		err := s.closer.Close()
		s.closer = nil
		return err
	}
	return nil
}
