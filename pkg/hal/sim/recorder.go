// ABOUTME: Write recorder shared by simulated peripherals
// ABOUTME: Counts codes, keeps optional history and forwards batches to a sink
package sim

import (
	"fmt"
	"log"
	"sync"

	"github.com/Resonate-Protocol/pcmstream/pkg/audio"
)

// Sink receives the audio a simulated peripheral produces. Host outputs
// from pkg/audio/output satisfy it.
type Sink interface {
	Open(sampleRate, channels int) error
	Write(samples []int32) error
	Close() error
}

// samples buffered before a sink write
const sinkBatch = 256

// Options configures a simulated peripheral
type Options struct {
	// Record keeps every written code for History
	Record bool

	// OnWrite is called after each write with the running write count
	OnWrite func(count int)

	// FailAfter makes the write after this many successful ones fail.
	// Zero disables failure injection.
	FailAfter int
}

type recorder struct {
	mu      sync.Mutex
	opts    Options
	writes  int
	last    int
	history []int

	sink    Sink
	center  int
	bits    int
	pending []int32
}

func (r *recorder) record(code int) error {
	r.mu.Lock()
	if r.opts.FailAfter > 0 && r.writes >= r.opts.FailAfter {
		r.mu.Unlock()
		return fmt.Errorf("simulated write failure after %d writes", r.writes)
	}

	r.writes++
	r.last = code
	if r.opts.Record {
		r.history = append(r.history, code)
	}
	count := r.writes

	var flush []int32
	if r.sink != nil {
		r.pending = append(r.pending, audio.SampleTo24Bit(code, r.center, r.bits))
		if len(r.pending) >= sinkBatch {
			flush = r.pending
			r.pending = make([]int32, 0, sinkBatch)
		}
	}
	sink := r.sink
	onWrite := r.opts.OnWrite
	r.mu.Unlock()

	if flush != nil {
		if err := sink.Write(flush); err != nil {
			log.Printf("Sink write error: %v", err)
		}
	}
	if onWrite != nil {
		onWrite(count)
	}
	return nil
}

// attach routes future codes to sink, scaled from a bits-wide range
// centered at center
func (r *recorder) attach(sink Sink, sampleRate, center, bits int) error {
	if err := sink.Open(sampleRate, 1); err != nil {
		return fmt.Errorf("failed to open sink: %w", err)
	}

	r.mu.Lock()
	r.sink = sink
	r.center = center
	r.bits = bits
	r.pending = make([]int32, 0, sinkBatch)
	r.mu.Unlock()
	return nil
}

func (r *recorder) setRange(center, bits int) {
	r.mu.Lock()
	r.center = center
	r.bits = bits
	r.mu.Unlock()
}

// flush pushes buffered samples to the sink
func (r *recorder) flush() {
	r.mu.Lock()
	pending := r.pending
	sink := r.sink
	r.pending = make([]int32, 0, sinkBatch)
	r.mu.Unlock()

	if sink != nil && len(pending) > 0 {
		if err := sink.Write(pending); err != nil {
			log.Printf("Sink write error: %v", err)
		}
	}
}

func (r *recorder) detach() error {
	r.flush()
	r.mu.Lock()
	sink := r.sink
	r.sink = nil
	r.mu.Unlock()

	if sink != nil {
		return sink.Close()
	}
	return nil
}

// Writes returns the number of codes written
func (r *recorder) Writes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writes
}

// Last returns the most recent code
func (r *recorder) Last() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

// History returns a copy of the recorded codes
func (r *recorder) History() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]int, len(r.history))
	copy(out, r.history)
	return out
}

// Reset clears counters and history
func (r *recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes = 0
	r.last = 0
	r.history = nil
}
