// ABOUTME: Hardware capability interfaces
// ABOUTME: Peripheral contracts shared by backends and simulated hardware
package hal

// DAC is a digital-to-analog converter channel
type DAC interface {
	// Init configures the converter resolution (8 or 12 bits)
	Init(bits int) error

	// Write sets the output code
	Write(code int) error
}

// PWM is a timer channel driving a pulse-width output
type PWM interface {
	// Init configures the timer prescaler and period
	Init(prescaler, period int) error

	// SetPulseWidth sets the compare value, 0 to period
	SetPulseWidth(width int) error
}

// TimedDAC is a converter that can replay a buffer from a hardware timer
// in circular DMA mode
type TimedDAC interface {
	DAC

	// WriteTimed starts circular playback of codes at rateHz. The peripheral
	// owns codes until Halt returns.
	WriteTimed(codes []uint16, rateHz int) error

	// Halt stops circular playback
	Halt() error
}

// Delayer blocks the caller for a number of microseconds
type Delayer interface {
	DelayMicros(us int)
}

// Spawner runs fn on a background execution context
type Spawner interface {
	Go(fn func())
}

// DelayFunc adapts a function to Delayer
type DelayFunc func(us int)

func (f DelayFunc) DelayMicros(us int) { f(us) }

// SpawnFunc adapts a function to Spawner
type SpawnFunc func(fn func())

func (f SpawnFunc) Go(fn func()) { f(fn) }
