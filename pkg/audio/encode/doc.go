// ABOUTME: Audio encoder package for producing PCM fixtures
// ABOUTME: Provides Encoder interface, the 8/16-bit PCM encoder and a WAV writer
// Package encode provides PCM encoding and WAV container writing.
//
// Supports: 8-bit unsigned and 16-bit signed little-endian mono PCM.
//
// The WAV writer is used to produce playable fixtures (see the tone
// command) in exactly the layout the WAV source accepts.
//
// Example:
//
//	encoder, err := encode.NewPCM(format)
//	data, err := encoder.Encode(samples)
//	err = encode.WriteWAVFile("tone.wav", format, samples)
package encode
