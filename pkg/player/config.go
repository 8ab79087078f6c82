// ABOUTME: Player configuration and hardware bundle
// ABOUTME: Defaults mirror the reference board: 2048-sample chunks, 84MHz clock, 120kHz carrier
package player

import (
	"github.com/Resonate-Protocol/pcmstream/pkg/audio"
	"github.com/Resonate-Protocol/pcmstream/pkg/audio/source"
	"github.com/Resonate-Protocol/pcmstream/pkg/backend"
	"github.com/Resonate-Protocol/pcmstream/pkg/hal"
)

// DefaultBufferSize is the chunk size in samples
const DefaultBufferSize = 2048

// Config holds player configuration
type Config struct {
	// Path is the WAV file to play
	Path string

	// Pulse selects the PWM backend instead of the DAC
	Pulse bool

	// Loop converts the whole file and replays it through circular DMA
	Loop bool

	// Background runs playback on the Spawner instead of the caller
	Background bool

	// BufferSize is the chunk size in samples (default: 2048)
	BufferSize int

	// Volume is the initial level 0-12 (default: 10 when nil)
	Volume *int

	// SysClockHz is the PWM timer input clock (default: 84MHz)
	SysClockHz int

	// CarrierHz is the PWM carrier frequency (default: 120kHz)
	CarrierHz int

	// DropPartialChunk skips the trailing frames that do not fill a chunk
	DropPartialChunk bool

	// Debug enables per-chunk logging
	Debug bool

	// OpenSource opens Path (default: source.OpenWAV)
	OpenSource func(path string) (source.Source, error)

	// OnStateChange is called after every state or volume change
	OnStateChange func(Status)

	// OnError is called when a session ends with an error
	OnError func(error)
}

// Hardware bundles the peripherals a player may drive
type Hardware struct {
	// DAC drives the converter backend. TimedDAC is used when nil.
	DAC hal.DAC

	// TimedDAC drives loop mode
	TimedDAC hal.TimedDAC

	// PWM drives the pulse backend
	PWM hal.PWM

	// Delay paces samples (default: hal.SpinDelay)
	Delay hal.Delayer

	// Spawner runs background sessions (default: goroutines)
	Spawner hal.Spawner
}

func (c *Config) applyDefaults() {
	if c.BufferSize <= 0 {
		c.BufferSize = DefaultBufferSize
	}
	level := audio.DefaultVolume
	if c.Volume != nil {
		level = audio.ClampVolume(*c.Volume)
	}
	c.Volume = &level
	if c.SysClockHz == 0 {
		c.SysClockHz = backend.DefaultSysClockHz
	}
	if c.CarrierHz == 0 {
		c.CarrierHz = backend.DefaultCarrierHz
	}
	if c.OpenSource == nil {
		c.OpenSource = func(path string) (source.Source, error) {
			return source.OpenWAV(path)
		}
	}
}

// Level returns a Config.Volume value for level
func Level(level int) *int {
	return &level
}

func (h *Hardware) applyDefaults() {
	if h.Delay == nil {
		h.Delay = hal.SpinDelay{}
	}
	if h.Spawner == nil {
		h.Spawner = hal.GoSpawner{}
	}
	if h.DAC == nil && h.TimedDAC != nil {
		h.DAC = h.TimedDAC
	}
}

// backendKind returns the backend selected by the configuration
func (c *Config) backendKind() backend.Kind {
	switch {
	case c.Loop:
		return backend.KindCircular
	case c.Pulse:
		return backend.KindPulse
	default:
		return backend.KindConverter
	}
}
