// ABOUTME: Sample rate conversion for host audio sinks
// ABOUTME: Adapts 24-bit integer streams to the go-audio-resampler engine
// Package resample provides sample rate conversion for host audio sinks.
//
// Low-rate embedded streams (8kHz, 16kHz) are often rejected by desktop
// audio devices, so sinks can be opened at a device rate and fed through a
// Resampler. Filter state carries across chunks; Flush drains the tail at
// the end of a stream.
//
// Example:
//
//	r, err := resample.New(8000, 48000, 1)
//	if err != nil {
//	    return err
//	}
//	out, err := r.Resample(in)
package resample
