// ABOUTME: Host audio sinks for simulated peripherals
// ABOUTME: Provides the Output interface with oto, malgo, PortAudio and discard backends
// Package output provides host audio sinks.
//
// Simulated converters forward every code they receive to an Output so the
// engine can be heard on a development machine. Samples are 24-bit values in
// an int32 container.
//
// Example:
//
//	out, err := output.New("oto")
//	err = out.Open(16000, 1)
//	err = out.Write(samples)
package output
