// ABOUTME: Simulated PWM timer channel
// ABOUTME: Implements hal.PWM, recording pulse widths
package sim

import (
	"fmt"
)

// PWM simulates a timer channel in PWM mode
type PWM struct {
	recorder

	prescaler int
	period    int
}

// NewPWM creates a simulated PWM channel
func NewPWM(opts Options) *PWM {
	return &PWM{recorder: recorder{opts: opts, center: 128, bits: 8}}
}

// Init configures the timer
func (p *PWM) Init(prescaler, period int) error {
	if prescaler < 1 || prescaler > 65535 {
		return fmt.Errorf("prescaler %d out of range", prescaler)
	}
	if period < 1 {
		return fmt.Errorf("invalid period %d", period)
	}
	p.prescaler = prescaler
	p.period = period
	return nil
}

// Prescaler returns the configured prescaler
func (p *PWM) Prescaler() int { return p.prescaler }

// Period returns the configured period
func (p *PWM) Period() int { return p.period }

// SetPulseWidth records a compare value
func (p *PWM) SetPulseWidth(width int) error {
	if p.period == 0 {
		return fmt.Errorf("PWM not initialized")
	}
	if width < 0 || width > p.period {
		return fmt.Errorf("pulse width %d outside 0..%d", width, p.period)
	}
	return p.record(width)
}

// Attach forwards pulse widths to sink at sampleRate
func (p *PWM) Attach(sink Sink, sampleRate int) error {
	return p.attach(sink, sampleRate, 128, 8)
}

// Detach flushes and closes the attached sink
func (p *PWM) Detach() error {
	return p.detach()
}
