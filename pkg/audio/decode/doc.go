// ABOUTME: Raw PCM decoder package
// ABOUTME: Provides Decoder interface and the 8/16-bit PCM implementation
// Package decode provides the raw PCM decoder used by the streaming engine.
//
// Supports: 8-bit unsigned and 16-bit signed little-endian mono PCM.
//
// 8-bit samples keep their unsigned value (0-255) and 16-bit samples keep
// their signed value; scaling to an output range is left to the backend.
//
// Example:
//
//	decoder, err := decode.NewPCM(format)
//	samples, err := decoder.Decode(chunk)
package decode
