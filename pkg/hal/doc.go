// ABOUTME: Hardware capability interfaces consumed by the player
// ABOUTME: DAC, PWM, timed DAC, microsecond delay and background execution
// Package hal defines the hardware capabilities the playback engine needs.
//
// Boards provide a DAC or a PWM timer channel, a microsecond delay and a way
// to run work in the background. The engine only sees these interfaces, so
// the same player runs against real registers or the simulated peripherals
// in package sim.
package hal
