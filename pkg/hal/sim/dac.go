// ABOUTME: Simulated DAC with circular DMA playback
// ABOUTME: Implements hal.DAC and hal.TimedDAC on a goroutine ticker
package sim

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// DMA tick period of the simulated timer
const dmaTick = 10 * time.Millisecond

// DAC simulates a converter channel
type DAC struct {
	recorder

	bits   int
	inited bool

	dmaMu   sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	codes   []uint16
	dmaRate int
	cycles  int
	dmaErr  error
}

// NewDAC creates a simulated converter
func NewDAC(opts Options) *DAC {
	return &DAC{recorder: recorder{opts: opts, center: 2048, bits: 12}}
}

// Init accepts 8 or 12 bit resolution
func (d *DAC) Init(bits int) error {
	if bits != 8 && bits != 12 {
		return fmt.Errorf("unsupported DAC resolution: %d bits", bits)
	}
	d.bits = bits
	d.inited = true
	d.setRange(1<<(bits-1), bits)
	return nil
}

// Bits returns the configured resolution
func (d *DAC) Bits() int { return d.bits }

// Write records one output code
func (d *DAC) Write(code int) error {
	if !d.inited {
		return fmt.Errorf("DAC not initialized")
	}
	if code < 0 || code >= 1<<d.bits {
		return fmt.Errorf("DAC code %d out of range for %d bits", code, d.bits)
	}
	return d.record(code)
}

// Attach forwards written codes to sink at sampleRate
func (d *DAC) Attach(sink Sink, sampleRate int) error {
	bits := d.bits
	if bits == 0 {
		bits = 12
	}
	return d.attach(sink, sampleRate, 1<<(bits-1), bits)
}

// Detach flushes and closes the attached sink
func (d *DAC) Detach() error {
	return d.detach()
}

// WriteTimed starts replaying codes in a loop at rateHz
func (d *DAC) WriteTimed(codes []uint16, rateHz int) error {
	if !d.inited {
		return fmt.Errorf("DAC not initialized")
	}
	if len(codes) == 0 {
		return fmt.Errorf("empty DMA buffer")
	}
	if rateHz <= 0 {
		return fmt.Errorf("invalid DMA rate: %d", rateHz)
	}

	d.dmaMu.Lock()
	defer d.dmaMu.Unlock()
	if d.cancel != nil {
		return fmt.Errorf("circular transfer already running")
	}

	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	d.done = make(chan struct{})
	d.codes = codes
	d.dmaRate = rateHz
	d.cycles = 0
	d.dmaErr = nil

	go d.runDMA(ctx, codes, rateHz, d.done)
	return nil
}

func (d *DAC) runDMA(ctx context.Context, codes []uint16, rateHz int, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(dmaTick)
	defer ticker.Stop()

	perTick := rateHz / int(time.Second/dmaTick)
	if perTick < 1 {
		perTick = 1
	}

	pos := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for i := 0; i < perTick; i++ {
				if err := d.record(int(codes[pos])); err != nil {
					d.abortDMA(err)
					return
				}
				pos++
				if pos == len(codes) {
					pos = 0
					d.dmaMu.Lock()
					d.cycles++
					d.dmaMu.Unlock()
				}
			}
		}
	}
}

// abortDMA ends a transfer that failed on its own; Halt reports err
func (d *DAC) abortDMA(err error) {
	d.dmaMu.Lock()
	defer d.dmaMu.Unlock()
	d.dmaErr = fmt.Errorf("circular transfer aborted: %w", err)
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}

// Halt stops circular playback and waits for the timer to quiesce. It
// returns the error that aborted the transfer, if any.
func (d *DAC) Halt() error {
	d.dmaMu.Lock()
	cancel, done, err := d.cancel, d.done, d.dmaErr
	d.cancel, d.done, d.dmaErr = nil, nil, nil
	d.dmaMu.Unlock()

	if done == nil {
		return nil
	}
	if cancel != nil {
		cancel()
	}
	<-done
	d.flush()
	return err
}

// Err returns the error that aborted the last transfer, until Halt
func (d *DAC) Err() error {
	d.dmaMu.Lock()
	defer d.dmaMu.Unlock()
	return d.dmaErr
}

// Running reports whether a circular transfer is active
func (d *DAC) Running() bool {
	d.dmaMu.Lock()
	defer d.dmaMu.Unlock()
	return d.cancel != nil
}

// TimedBuffer returns the buffer and rate of the last circular transfer
func (d *DAC) TimedBuffer() ([]uint16, int) {
	d.dmaMu.Lock()
	defer d.dmaMu.Unlock()
	return d.codes, d.dmaRate
}

// Cycles returns how many times the circular buffer wrapped
func (d *DAC) Cycles() int {
	d.dmaMu.Lock()
	defer d.dmaMu.Unlock()
	return d.cycles
}
