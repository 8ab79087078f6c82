// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines Format, sample widths, the volume table and FormatError
// Package audio provides the fundamental types shared by the playback engine.
//
// This package defines:
//   - Format: Describes a mono PCM stream (sample rate, bit depth, channels)
//   - Volumes: The fixed 13-step attenuation table used by the streaming engine
//   - FormatError: Returned when a source is not a supported PCM container
//
// Only two sample layouts are supported: 8-bit unsigned and 16-bit signed
// little-endian, both mono.
//
// Example:
//
//	format := audio.Format{
//	    SampleRate: 8000,
//	    BitDepth:   audio.Width8,
//	    Channels:   1,
//	}
//
//	divisor := audio.Divisor(audio.DefaultVolume) // 3
package audio
