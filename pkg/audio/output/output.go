// ABOUTME: Audio output interface definition
// ABOUTME: Common interface for host sinks plus a name-based factory
package output

import (
	"fmt"
	"strings"
)

// Output represents an audio output device
type Output interface {
	// Open initializes the output device
	Open(sampleRate, channels int) error

	// Write outputs 24-bit audio samples
	Write(samples []int32) error

	// Close releases output resources
	Close() error
}

// Names lists the sinks accepted by New
var Names = []string{"none", "oto", "malgo", "portaudio"}

// New creates a sink by name. An empty name selects the discard sink.
func New(name string) (Output, error) {
	switch strings.ToLower(name) {
	case "", "none", "discard":
		return NewDiscard(), nil
	case "oto":
		return NewOto(), nil
	case "malgo":
		return NewMalgo(), nil
	case "portaudio":
		return NewPortAudio(), nil
	default:
		return nil, fmt.Errorf("unknown output %q (available: %s)", name, strings.Join(Names, ", "))
	}
}
