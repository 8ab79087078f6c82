// ABOUTME: Output backends driven by the streaming engine
// ABOUTME: Direct converter, modulated pulse and circular transfer variants
// Package backend maps decoded samples onto hardware output values.
//
// A Sampler takes one value per sample period. DirectConverter writes DAC
// codes and ModulatedPulse writes PWM compare values. CircularTransfer hands
// a whole pre-converted buffer to a timer-driven DAC for looped playback.
//
// Each backend exposes a Range describing how a sample becomes a value:
//
//	r := backend.PulseRange()
//	r.Value(-32768, audio.Width16, 3) // 128 + floor(-32768/384) = 42
package backend
