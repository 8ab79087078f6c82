// ABOUTME: In-memory sample source
// ABOUTME: Serves raw PCM bytes held in RAM, used for synthetic audio and tests
package source

import (
	"fmt"

	"github.com/Resonate-Protocol/pcmstream/pkg/audio"
)

// MemorySource serves frames from a byte slice
type MemorySource struct {
	format audio.Format
	data   []byte
	frames int
	pos    int

	// Reads counts the frames handed out by ReadChunk
	Reads int
}

// NewMemory creates a source over raw PCM bytes in the given format
func NewMemory(format audio.Format, data []byte) (*MemorySource, error) {
	if err := format.Validate(); err != nil {
		return nil, audio.NewFormatError("memory", "unsupported sample layout", err)
	}

	bps := format.BytesPerSample()
	if len(data)%bps != 0 {
		return nil, audio.NewFormatError("memory", fmt.Sprintf("%d bytes is not a whole number of frames", len(data)), nil)
	}

	return &MemorySource{
		format: format,
		data:   data,
		frames: len(data) / bps,
	}, nil
}

func (s *MemorySource) Format() audio.Format { return s.format }
func (s *MemorySource) TotalFrames() int     { return s.frames }
func (s *MemorySource) Position() int        { return s.pos }

// ReadChunk returns up to maxSamples frames without copying
func (s *MemorySource) ReadChunk(maxSamples int) ([]byte, error) {
	n := maxSamples
	if remain := s.frames - s.pos; n > remain {
		n = remain
	}
	if n <= 0 {
		return nil, nil
	}

	bps := s.format.BytesPerSample()
	chunk := s.data[s.pos*bps : (s.pos+n)*bps]
	s.pos += n
	s.Reads += n
	return chunk, nil
}

func (s *MemorySource) Seek(frame int) error {
	s.pos = clampFrame(frame, s.frames)
	return nil
}

func (s *MemorySource) Close() error { return nil }
