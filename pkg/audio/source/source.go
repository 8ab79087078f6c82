// ABOUTME: Sample source abstraction for the streaming engine
// ABOUTME: Defines the Source interface implemented by WAV and in-memory sources
// Package source provides the sample sources read by the streaming engine.
//
// A Source wraps a mono PCM container, reports its format and frame count,
// and yields raw sample bytes chunk by chunk while tracking a read cursor.
// End of stream is signalled by a short or empty chunk, never by an error.
package source

import "github.com/Resonate-Protocol/pcmstream/pkg/audio"

// Source provides raw PCM sample bytes
type Source interface {
	// Format returns the stream format (sample rate, bit depth, mono)
	Format() audio.Format

	// TotalFrames returns the number of frames in the stream
	TotalFrames() int

	// ReadChunk returns up to maxSamples samples of raw bytes starting at the
	// cursor and advances the cursor by the samples returned. The slice may
	// be reused by the next call.
	ReadChunk(maxSamples int) ([]byte, error)

	// Seek moves the cursor to frame, clamped to [0, TotalFrames]
	Seek(frame int) error

	// Position returns the cursor's frame offset
	Position() int

	// Close releases the underlying container
	Close() error
}

func clampFrame(frame, total int) int {
	if frame < 0 {
		return 0
	}
	if frame > total {
		return total
	}
	return frame
}
