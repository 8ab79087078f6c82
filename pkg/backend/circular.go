// ABOUTME: Circular transfer backend for loop playback
// ABOUTME: Hands a full buffer of codes to a timer-driven DAC
package backend

import (
	"fmt"
	"sync"

	"github.com/Resonate-Protocol/pcmstream/pkg/hal"
)

// CircularTransfer plays a buffer repeatedly without CPU involvement
type CircularTransfer struct {
	dac  hal.TimedDAC
	bits int
	rng  Range

	mu     sync.Mutex
	codes  []uint16
	active bool
}

// NewCircularTransfer initializes dac for a source width
func NewCircularTransfer(dac hal.TimedDAC, width int) (*CircularTransfer, error) {
	if dac == nil {
		return nil, &HardwareInitError{Backend: KindCircular.String(), Reason: "no timed DAC channel"}
	}

	bits := converterBits(width)
	if err := dac.Init(bits); err != nil {
		return nil, &HardwareInitError{
			Backend: KindCircular.String(),
			Reason:  fmt.Sprintf("init at %d bits", bits),
			Err:     err,
		}
	}

	return &CircularTransfer{dac: dac, bits: bits, rng: ConverterRange(bits)}, nil
}

func (c *CircularTransfer) Kind() Kind   { return KindCircular }
func (c *CircularTransfer) Range() Range { return c.rng }

// Start hands codes to the peripheral, which owns them until Stop
func (c *CircularTransfer) Start(codes []uint16, sampleRateHz int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active {
		return fmt.Errorf("circular transfer already active")
	}
	if err := c.dac.WriteTimed(codes, sampleRateHz); err != nil {
		return fmt.Errorf("failed to start circular transfer: %w", err)
	}
	c.codes = codes
	c.active = true
	return nil
}

// Stop halts the transfer and parks the output at 0
func (c *CircularTransfer) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	// A transfer that aborted on its own still needs the output parked
	haltErr := c.dac.Halt()
	c.active = false
	c.codes = nil

	if err := c.dac.Write(0); err != nil {
		return fmt.Errorf("failed to park converter: %w", err)
	}
	if haltErr != nil {
		return fmt.Errorf("failed to halt circular transfer: %w", haltErr)
	}
	return nil
}

// Active reports whether a buffer is playing
func (c *CircularTransfer) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Len returns the number of codes held by the running transfer
func (c *CircularTransfer) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.codes)
}
