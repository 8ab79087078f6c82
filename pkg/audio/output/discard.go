// ABOUTME: Discarding audio output
// ABOUTME: Counts samples without playing them, used headless and in tests
package output

import (
	"fmt"
	"sync"
)

// Discard drops samples after counting them
type Discard struct {
	mu         sync.Mutex
	sampleRate int
	samples    int
	open       bool
}

// NewDiscard creates a discard sink
func NewDiscard() *Discard {
	return &Discard{}
}

func (d *Discard) Open(sampleRate, channels int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sampleRate = sampleRate
	d.open = true
	return nil
}

func (d *Discard) Write(samples []int32) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.open {
		return fmt.Errorf("output not initialized")
	}
	d.samples += len(samples)
	return nil
}

// Samples returns how many samples have been written
func (d *Discard) Samples() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.samples
}

func (d *Discard) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.open = false
	return nil
}
