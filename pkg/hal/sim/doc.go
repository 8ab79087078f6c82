// ABOUTME: Simulated peripherals for running the player on a host
// ABOUTME: DAC, PWM and circular DMA converter that record and optionally sound
// Package sim implements the hal interfaces in software.
//
// Every peripheral records the codes written to it, which is what the player
// tests assert against. Attaching a Sink (any host output from
// pkg/audio/output) turns the codes back into 24-bit samples so playback can
// be heard on the development machine. The package itself only depends on
// the Sink interface, so it builds without host audio libraries.
package sim
