// ABOUTME: Chunked streaming engine
// ABOUTME: Reads, scales and paces samples to a backend one chunk at a time
package player

import (
	"fmt"
	"log"
	"sync/atomic"

	"github.com/Resonate-Protocol/pcmstream/pkg/audio"
	"github.com/Resonate-Protocol/pcmstream/pkg/audio/decode"
	"github.com/Resonate-Protocol/pcmstream/pkg/audio/source"
	"github.com/Resonate-Protocol/pcmstream/pkg/backend"
	"github.com/Resonate-Protocol/pcmstream/pkg/hal"
)

// Pacing factors leave headroom for per-sample processing
const (
	pacing8  = 0.90
	pacing16 = 0.95
)

// PeriodMicros returns the per-sample delay for a stream
func PeriodMicros(sampleRateHz, widthBits int) int {
	if sampleRateHz <= 0 {
		return 0
	}
	factor := pacing16
	if widthBits == audio.Width8 {
		factor = pacing8
	}
	return int(1e6 / float64(sampleRateHz) * factor)
}

// Outcome describes how a session ended
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeExhausted
	OutcomeStopped
	OutcomeFailed
	OutcomeLooping
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeExhausted:
		return "exhausted"
	case OutcomeStopped:
		return "stopped"
	case OutcomeFailed:
		return "failed"
	case OutcomeLooping:
		return "looping"
	default:
		return "unknown"
	}
}

// Result summarizes a playback session
type Result struct {
	Outcome Outcome
	Frames  int
	Chunks  int
}

type engine struct {
	src         source.Source
	dec         decode.Decoder
	out         backend.Sampler
	delay       hal.Delayer
	stream      StreamConfig
	dropPartial bool
	debug       bool

	volume *atomic.Int32
	stop   *atomic.Bool
	played *atomic.Int64
}

func (e *engine) run(session string) (Result, error) {
	var res Result

	width := e.stream.SampleWidthBits
	period := PeriodMicros(e.stream.SampleRateHz, width)
	rng := e.out.Range()
	size := e.stream.BufferSize

	limit := e.stream.TotalFrames
	if e.dropPartial {
		limit = (limit / size) * size
	}

	for start := 0; start < limit; start += size {
		if e.stop.Load() {
			res.Outcome = OutcomeStopped
			return res, nil
		}

		requested := size
		if limit-start < requested {
			requested = limit - start
		}

		chunk, err := e.src.ReadChunk(requested)
		if err != nil {
			res.Outcome = OutcomeFailed
			return res, fmt.Errorf("failed to read chunk at frame %d: %w", start, err)
		}

		// Realign to the next chunk boundary regardless of how much was read
		if err := e.src.Seek(start + requested); err != nil {
			res.Outcome = OutcomeFailed
			return res, err
		}

		if len(chunk) == 0 {
			break
		}

		divisor := audio.Divisor(int(e.volume.Load()))

		samples, err := e.dec.Decode(chunk)
		if err != nil {
			res.Outcome = OutcomeFailed
			return res, fmt.Errorf("failed to decode chunk at frame %d: %w", start, err)
		}

		for i, s := range samples {
			if err := e.out.Write(rng.Value(s, width, divisor)); err != nil {
				res.Frames += i
				res.Outcome = OutcomeFailed
				return res, fmt.Errorf("%s write failed at frame %d: %w", e.out.Kind(), start+i, err)
			}
			e.delay.DelayMicros(period)
		}

		res.Frames += len(samples)
		res.Chunks++
		e.played.Add(int64(len(samples)))

		if e.debug {
			log.Printf("[%s] chunk %d: %d frames at divisor %d", shortID(session), res.Chunks, len(samples), divisor)
		}
	}

	res.Outcome = OutcomeExhausted
	return res, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
