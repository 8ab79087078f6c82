// ABOUTME: Oto-based audio output implementation
// ABOUTME: Streams 16-bit PCM to the host device through a pipe-fed oto player
package output

import (
	"encoding/binary"
	"fmt"
	"io"
	"log"

	"github.com/ebitengine/oto/v3"

	"github.com/Resonate-Protocol/pcmstream/pkg/audio"
)

// Oto output implementation using oto library
type Oto struct {
	otoCtx     *oto.Context
	player     *oto.Player
	pipeReader *io.PipeReader
	pipeWriter *io.PipeWriter
	sampleRate int
	channels   int
	buf        []byte
	ready      bool
}

// NewOto creates a new Oto output
func NewOto() Output {
	return &Oto{}
}

// Open initializes the output device
func (o *Oto) Open(sampleRate, channels int) error {
	// oto allows one context per process
	if o.otoCtx != nil {
		if o.sampleRate != sampleRate || o.channels != channels {
			log.Printf("Warning: oto cannot reinitialize (%dHz -> %dHz), keeping existing context",
				o.sampleRate, sampleRate)
		}
		if err := o.otoCtx.Resume(); err != nil {
			return fmt.Errorf("failed to resume oto context: %w", err)
		}
		return o.startPlayer()
	}

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return fmt.Errorf("failed to create oto context: %w", err)
	}
	<-readyChan

	o.otoCtx = ctx
	o.sampleRate = sampleRate
	o.channels = channels

	log.Printf("Audio output initialized: %dHz, %d channels (oto)", sampleRate, channels)

	return o.startPlayer()
}

// startPlayer attaches a persistent player to a fresh pipe
func (o *Oto) startPlayer() error {
	if o.ready {
		return nil
	}
	o.pipeReader, o.pipeWriter = io.Pipe()
	o.player = o.otoCtx.NewPlayer(o.pipeReader)
	o.player.Play()
	o.ready = true
	return nil
}

// Write converts samples to 16-bit and blocks until the pipe accepts them
func (o *Oto) Write(samples []int32) error {
	if !o.ready {
		return fmt.Errorf("output not initialized")
	}

	need := len(samples) * 2
	if cap(o.buf) < need {
		o.buf = make([]byte, need)
	}
	out := o.buf[:need]
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(audio.SampleToInt16(s)))
	}

	if _, err := o.pipeWriter.Write(out); err != nil {
		return fmt.Errorf("pipe write failed: %w", err)
	}
	return nil
}

// Close stops the player; the oto context stays suspended for reuse
func (o *Oto) Close() error {
	if o.pipeWriter != nil {
		o.pipeWriter.Close()
		o.pipeWriter = nil
	}
	if o.player != nil {
		o.player.Close()
		o.player = nil
	}
	if o.pipeReader != nil {
		o.pipeReader.Close()
		o.pipeReader = nil
	}
	if o.otoCtx != nil && o.ready {
		if err := o.otoCtx.Suspend(); err != nil {
			log.Printf("Warning: oto suspend error: %v", err)
		}
	}
	o.ready = false
	return nil
}
