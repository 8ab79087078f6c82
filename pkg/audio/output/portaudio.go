//go:build portaudio

// ABOUTME: PortAudio output implementation
// ABOUTME: Blocking-write PortAudio stream for host playback
package output

import (
	"fmt"

	"github.com/gordonklaus/portaudio"

	"github.com/Resonate-Protocol/pcmstream/pkg/audio"
)

// frames per blocking write
const portAudioFrames = 256

// PortAudio output implementation
type PortAudio struct {
	stream  *portaudio.Stream
	buffer  []int16
	pending int
}

// NewPortAudio creates a new PortAudio output
func NewPortAudio() Output {
	return &PortAudio{}
}

// Open initializes PortAudio with a blocking output stream
func (p *PortAudio) Open(sampleRate, channels int) error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize portaudio: %w", err)
	}

	p.buffer = make([]int16, portAudioFrames*channels)
	stream, err := portaudio.OpenDefaultStream(0, channels, float64(sampleRate), portAudioFrames, &p.buffer)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("failed to open stream: %w", err)
	}

	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("failed to start stream: %w", err)
	}

	p.stream = stream
	return nil
}

// Write batches samples into stream-sized blocks
func (p *PortAudio) Write(samples []int32) error {
	if p.stream == nil {
		return fmt.Errorf("output not opened")
	}

	for _, s := range samples {
		p.buffer[p.pending] = audio.SampleToInt16(s)
		p.pending++
		if p.pending == len(p.buffer) {
			p.pending = 0
			if err := p.stream.Write(); err != nil {
				return fmt.Errorf("stream write failed: %w", err)
			}
		}
	}
	return nil
}

// Close releases resources
func (p *PortAudio) Close() error {
	if p.stream != nil {
		if err := p.stream.Stop(); err != nil {
			return err
		}
		if err := p.stream.Close(); err != nil {
			return err
		}
		p.stream = nil
	}
	return portaudio.Terminate()
}
