// ABOUTME: Streaming playback controller for mono PCM files
// ABOUTME: Paces samples from a source to a DAC or PWM backend
// Package player streams a mono PCM WAV file to an output backend.
//
// The player reads the file in fixed-size chunks, applies the current volume
// divisor once per chunk, converts each sample to an output value and paces
// writes with a per-sample microsecond delay derived from the sample rate.
// Loop mode instead converts the whole file up front and hands it to a
// circular DMA transfer.
//
// Example:
//
//	p, err := player.New(player.Config{Path: "chime.wav"}, player.Hardware{DAC: dac})
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := p.Begin(); err != nil {
//		log.Fatal(err)
//	}
//	err = p.Play() // blocks until the file ends or Stop is called
package player
