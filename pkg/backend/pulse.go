// ABOUTME: PWM backend
// ABOUTME: Drives a timer channel at a fixed carrier with pulse width per sample
package backend

import (
	"fmt"

	"github.com/Resonate-Protocol/pcmstream/pkg/hal"
)

const (
	// DefaultSysClockHz is the timer input clock
	DefaultSysClockHz = 84_000_000

	// DefaultCarrierHz is the PWM carrier frequency
	DefaultCarrierHz = 120_000

	// PulsePeriod is the timer period and maximum pulse width
	PulsePeriod = 255

	maxPrescaler = 65535
)

// Prescaler computes the timer prescaler for a carrier frequency
func Prescaler(sysClockHz, carrierHz int) (int, error) {
	if sysClockHz <= 0 {
		return 0, fmt.Errorf("invalid system clock %d Hz", sysClockHz)
	}
	if carrierHz <= 0 {
		return 0, fmt.Errorf("invalid carrier %d Hz", carrierHz)
	}

	p := (sysClockHz * 2) / PulsePeriod / carrierHz
	if p < 1 || p > maxPrescaler {
		return 0, fmt.Errorf("prescaler %d outside 1..%d (clock %d Hz, carrier %d Hz)",
			p, maxPrescaler, sysClockHz, carrierHz)
	}
	return p, nil
}

// ModulatedPulse writes samples as PWM duty cycles
type ModulatedPulse struct {
	pwm       hal.PWM
	prescaler int
}

// NewModulatedPulse configures pwm for the given clocks
func NewModulatedPulse(pwm hal.PWM, sysClockHz, carrierHz int) (*ModulatedPulse, error) {
	if pwm == nil {
		return nil, &HardwareInitError{Backend: KindPulse.String(), Reason: "no PWM channel"}
	}

	prescaler, err := Prescaler(sysClockHz, carrierHz)
	if err != nil {
		return nil, &HardwareInitError{Backend: KindPulse.String(), Reason: "timer configuration", Err: err}
	}

	if err := pwm.Init(prescaler, PulsePeriod); err != nil {
		return nil, &HardwareInitError{Backend: KindPulse.String(), Reason: "timer init", Err: err}
	}

	return &ModulatedPulse{pwm: pwm, prescaler: prescaler}, nil
}

func (p *ModulatedPulse) Kind() Kind   { return KindPulse }
func (p *ModulatedPulse) Range() Range { return PulseRange() }

// Prescaler returns the configured prescaler
func (p *ModulatedPulse) Prescaler() int { return p.prescaler }

func (p *ModulatedPulse) Write(value int) error {
	return p.pwm.SetPulseWidth(value)
}
