// ABOUTME: Malgo-based audio output implementation
// ABOUTME: Feeds a miniaudio playback device from a ring buffer via its data callback
package output

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gen2brain/malgo"

	"github.com/Resonate-Protocol/pcmstream/pkg/audio"
)

// ring capacity in milliseconds of audio
const malgoBufferMillis = 250

// Malgo output implementation using malgo/miniaudio library
type Malgo struct {
	malgoCtx   *malgo.AllocatedContext
	device     *malgo.Device
	sampleRate int
	channels   int
	ready      bool
	scratch    []int32

	ringBuffer *RingBuffer
	mu         sync.Mutex
}

// NewMalgo creates a new Malgo output
func NewMalgo() Output {
	return &Malgo{}
}

// Open initializes a 24-bit playback device
func (m *Malgo) Open(sampleRate, channels int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.device != nil && m.sampleRate == sampleRate && m.channels == channels {
		return nil
	}

	if m.device != nil {
		log.Printf("Format change detected (%dHz/%dch -> %dHz/%dch), reinitializing device",
			m.sampleRate, m.channels, sampleRate, channels)
		m.closeDevice()
	}

	if m.malgoCtx == nil {
		ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
		if err != nil {
			return fmt.Errorf("failed to initialize malgo context: %w", err)
		}
		m.malgoCtx = ctx
	}

	m.ringBuffer = NewRingBuffer(sampleRate * channels * malgoBufferMillis / 1000)

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Playback)
	deviceConfig.Playback.Format = malgo.FormatS24
	deviceConfig.Playback.Channels = uint32(channels)
	deviceConfig.SampleRate = uint32(sampleRate)
	deviceConfig.Alsa.NoMMap = 1

	callbacks := malgo.DeviceCallbacks{
		Data: func(pOutput, _ []byte, frameCount uint32) {
			m.dataCallback(pOutput, frameCount)
		},
	}

	device, err := malgo.InitDevice(m.malgoCtx.Context, deviceConfig, callbacks)
	if err != nil {
		return fmt.Errorf("failed to initialize playback device: %w", err)
	}

	if err := device.Start(); err != nil {
		device.Uninit()
		return fmt.Errorf("failed to start device: %w", err)
	}

	m.device = device
	m.sampleRate = sampleRate
	m.channels = channels
	m.ready = true

	log.Printf("Audio output initialized: %dHz, %d channels, 24-bit (malgo)", sampleRate, channels)

	return nil
}

// Write queues samples, waiting for the device to drain a full ring
func (m *Malgo) Write(samples []int32) error {
	if !m.ready {
		return fmt.Errorf("output not initialized")
	}

	written := 0
	for written < len(samples) {
		n := m.ringBuffer.Write(samples[written:])
		written += n
		if n == 0 {
			time.Sleep(time.Millisecond)
		}
	}
	return nil
}

// dataCallback is called by malgo to fill the audio output buffer
func (m *Malgo) dataCallback(pOutput []byte, frameCount uint32) {
	total := int(frameCount) * m.channels
	if cap(m.scratch) < total {
		m.scratch = make([]int32, total)
	}
	samples := m.scratch[:total]

	m.ringBuffer.Read(samples)
	pack24(pOutput, samples)
}

// pack24 writes little-endian 3-byte samples
func pack24(output []byte, samples []int32) {
	for i, sample := range samples {
		if sample > audio.Max24Bit {
			sample = audio.Max24Bit
		} else if sample < audio.Min24Bit {
			sample = audio.Min24Bit
		}
		output[i*3] = byte(sample)
		output[i*3+1] = byte(sample >> 8)
		output[i*3+2] = byte(sample >> 16)
	}
}

// Close releases output resources
func (m *Malgo) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closeDevice()

	if m.malgoCtx != nil {
		if err := m.malgoCtx.Uninit(); err != nil {
			log.Printf("Warning: malgo context uninit error: %v", err)
		}
		m.malgoCtx.Free()
		m.malgoCtx = nil
	}
	return nil
}

// closeDevice stops and uninitializes the device (must hold m.mu)
func (m *Malgo) closeDevice() {
	if m.device != nil {
		if err := m.device.Stop(); err != nil {
			log.Printf("Warning: device stop error: %v", err)
		}
		m.device.Uninit()
		m.device = nil
		m.ready = false
	}
}
