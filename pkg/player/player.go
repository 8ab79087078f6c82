// ABOUTME: Playback controller
// ABOUTME: Owns the source, backend and session lifecycle behind a small API
package player

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/Resonate-Protocol/pcmstream/pkg/audio"
	"github.com/Resonate-Protocol/pcmstream/pkg/audio/decode"
	"github.com/Resonate-Protocol/pcmstream/pkg/audio/source"
	"github.com/Resonate-Protocol/pcmstream/pkg/backend"
)

// Player streams one file to one backend
type Player struct {
	config Config
	hw     Hardware
	kind   backend.Kind

	mu       sync.Mutex
	state    State
	src      source.Source
	dec      decode.Decoder
	stream   StreamConfig
	sampler  backend.Sampler
	circular *backend.CircularTransfer
	session  string
	active   bool
	done     chan struct{}
	last     Result
	lastErr  error

	volume atomic.Int32
	stop   atomic.Bool
	played atomic.Int64
}

// New validates the configuration and creates an unopened player
func New(config Config, hw Hardware) (*Player, error) {
	if config.Loop && config.Pulse {
		return nil, ErrLoopRequiresConverter
	}

	config.applyDefaults()
	hw.applyDefaults()

	kind := config.backendKind()
	switch kind {
	case backend.KindCircular:
		if hw.TimedDAC == nil {
			return nil, &backend.HardwareInitError{Backend: kind.String(), Reason: "loop mode needs a timed DAC"}
		}
	case backend.KindPulse:
		if hw.PWM == nil {
			return nil, &backend.HardwareInitError{Backend: kind.String(), Reason: "no PWM channel"}
		}
	default:
		if hw.DAC == nil {
			return nil, &backend.HardwareInitError{Backend: kind.String(), Reason: "no DAC channel"}
		}
	}

	p := &Player{
		config: config,
		hw:     hw,
		kind:   kind,
		state:  StateUnopened,
	}
	p.volume.Store(int32(*config.Volume))

	return p, nil
}

// Begin opens the source and configures the backend
func (p *Player) Begin() error {
	if err := p.begin(); err != nil {
		return err
	}
	p.notifyStateChange()
	return nil
}

func (p *Player) begin() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != StateUnopened {
		return ErrAlreadyOpen
	}

	src, err := p.config.OpenSource(p.config.Path)
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}

	format := src.Format()
	width := audio.Width16
	if format.BytesPerSample() <= 1 {
		width = audio.Width8
	}

	dec, err := decode.NewPCM(format)
	if err != nil {
		src.Close()
		return audio.NewFormatError(p.config.Path, "no decoder for sample layout", err)
	}

	switch p.kind {
	case backend.KindCircular:
		p.circular, err = backend.NewCircularTransfer(p.hw.TimedDAC, width)
	case backend.KindPulse:
		p.sampler, err = backend.NewModulatedPulse(p.hw.PWM, p.config.SysClockHz, p.config.CarrierHz)
	default:
		p.sampler, err = backend.NewDirectConverter(p.hw.DAC, width)
	}
	if err != nil {
		dec.Close()
		src.Close()
		return err
	}

	p.src = src
	p.dec = dec
	p.stream = StreamConfig{
		SampleWidthBits: width,
		SampleRateHz:    format.SampleRate,
		TotalFrames:     src.TotalFrames(),
		BufferSize:      p.config.BufferSize,
	}
	p.state = StateReady

	log.Printf("Player ready: %s, %d frames, %s backend, chunk %d",
		format, p.stream.TotalFrames, p.kind, p.stream.BufferSize)

	return nil
}

// Play starts a session. In synchronous mode it returns when the session
// ends; in background mode it returns once the session is running.
func (p *Player) Play() error {
	p.mu.Lock()

	if p.state == StateUnopened {
		p.mu.Unlock()
		return ErrNotReady
	}
	if p.active {
		p.mu.Unlock()
		return ErrAlreadyPlaying
	}

	p.stop.Store(false)
	p.played.Store(0)
	p.session = uuid.New().String()
	p.last = Result{}
	p.lastErr = nil

	if p.kind == backend.KindCircular {
		err := p.startLoop()
		p.mu.Unlock()
		if err != nil {
			p.notifyError(err)
			return err
		}
		p.notifyStateChange()
		return nil
	}

	if err := p.src.Seek(0); err != nil {
		p.mu.Unlock()
		return fmt.Errorf("failed to rewind source: %w", err)
	}

	eng := &engine{
		src:         p.src,
		dec:         p.dec,
		out:         p.sampler,
		delay:       p.hw.Delay,
		stream:      p.stream,
		dropPartial: p.config.DropPartialChunk,
		debug:       p.config.Debug,
		volume:      &p.volume,
		stop:        &p.stop,
		played:      &p.played,
	}

	session := p.session
	done := make(chan struct{})
	p.done = done
	p.active = true
	p.state = StatePlaying
	p.mu.Unlock()

	log.Printf("Playback started (session %s)", shortID(session))
	p.notifyStateChange()

	run := func() {
		res, err := eng.run(session)
		p.finish(res, err, done)
	}

	if p.config.Background {
		p.hw.Spawner.Go(run)
		return nil
	}

	run()

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

// startLoop converts the whole file and starts the circular transfer.
// Must hold p.mu.
func (p *Player) startLoop() error {
	if p.stream.TotalFrames == 0 {
		return fmt.Errorf("cannot loop an empty file")
	}
	if err := p.src.Seek(0); err != nil {
		return fmt.Errorf("failed to rewind source: %w", err)
	}

	width := p.stream.SampleWidthBits
	divisor := audio.Divisor(int(p.volume.Load()))
	rng := p.circular.Range()
	codes := make([]uint16, 0, p.stream.TotalFrames)

	for {
		chunk, err := p.src.ReadChunk(p.stream.BufferSize)
		if err != nil {
			return fmt.Errorf("failed to load loop buffer: %w", err)
		}
		if len(chunk) == 0 {
			break
		}
		samples, err := p.dec.Decode(chunk)
		if err != nil {
			return fmt.Errorf("failed to decode loop buffer: %w", err)
		}
		for _, s := range samples {
			codes = append(codes, uint16(rng.Value(s, width, divisor)))
		}
	}

	if err := p.circular.Start(codes, p.stream.SampleRateHz); err != nil {
		return err
	}

	p.active = true
	p.state = StatePlaying
	p.played.Store(int64(len(codes)))
	p.last = Result{Outcome: OutcomeLooping, Frames: len(codes), Chunks: 1}

	log.Printf("Loop started (session %s): %d frames at divisor %d", shortID(p.session), len(codes), divisor)
	return nil
}

// finish records a session result and wakes waiters
func (p *Player) finish(res Result, err error, done chan struct{}) {
	p.mu.Lock()
	p.last = res
	p.lastErr = err
	p.active = false
	p.state = StateStopped
	session := p.session
	p.mu.Unlock()

	close(done)

	log.Printf("Playback %s (session %s): %d frames in %d chunks", res.Outcome, shortID(session), res.Frames, res.Chunks)

	if err != nil {
		p.notifyError(err)
	}
	p.notifyStateChange()
}

// Stop requests the session to end. Streaming sessions stop at the next
// chunk boundary; loop sessions stop immediately.
func (p *Player) Stop() error {
	p.mu.Lock()

	if p.state == StateUnopened {
		p.mu.Unlock()
		return ErrNotReady
	}

	p.stop.Store(true)

	if p.circular != nil && p.circular.Active() {
		err := p.circular.Stop()
		p.active = false
		p.state = StateStopped
		p.last.Outcome = OutcomeStopped
		p.lastErr = err
		p.mu.Unlock()

		if err != nil {
			p.notifyError(err)
		}
		p.notifyStateChange()
		return err
	}

	p.mu.Unlock()
	return nil
}

// Wait blocks until the current background session ends and returns its error
func (p *Player) Wait() error {
	p.mu.Lock()
	done := p.done
	p.mu.Unlock()

	if done == nil {
		return nil
	}
	<-done

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

// VolumeUp raises the volume one level, saturating at the maximum
func (p *Player) VolumeUp() int {
	return p.stepVolume(1)
}

// VolumeDown lowers the volume one level, saturating at the minimum
func (p *Player) VolumeDown() int {
	return p.stepVolume(-1)
}

func (p *Player) stepVolume(delta int32) int {
	for {
		cur := p.volume.Load()
		next := cur + delta
		if next < audio.MinVolume || next > audio.MaxVolume {
			return int(cur)
		}
		if p.volume.CompareAndSwap(cur, next) {
			p.notifyStateChange()
			return int(next)
		}
	}
}

// SetVolume sets the level. Out-of-range levels are ignored.
func (p *Player) SetVolume(level int) {
	if !audio.ValidVolume(level) {
		return
	}
	if int(p.volume.Swap(int32(level))) != level {
		p.notifyStateChange()
	}
}

// Volume returns the current level
func (p *Player) Volume() int {
	return int(p.volume.Load())
}

// State returns the lifecycle state
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Status returns a snapshot of the player
func (p *Player) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()

	return Status{
		State:   p.state,
		Volume:  int(p.volume.Load()),
		Backend: p.kind.String(),
		Stream:  p.stream,
		Session: p.session,
		Frames:  int(p.played.Load()),
		Last:    p.last,
		Err:     p.lastErr,
	}
}

// Close stops playback and releases the source. The player returns to
// the unopened state and may be opened again with Begin.
func (p *Player) Close() error {
	if p.State() == StateUnopened {
		return nil
	}

	if err := p.Stop(); err != nil {
		log.Printf("Stop during close failed: %v", err)
	}
	if err := p.Wait(); err != nil {
		log.Printf("Playback ended with error during close: %v", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	var err error
	if p.dec != nil {
		p.dec.Close()
		p.dec = nil
	}
	if p.src != nil {
		err = p.src.Close()
		p.src = nil
	}
	p.sampler = nil
	p.circular = nil
	p.done = nil
	p.state = StateUnopened
	return err
}

func (p *Player) notifyStateChange() {
	if p.config.OnStateChange != nil {
		p.config.OnStateChange(p.Status())
	}
}

func (p *Player) notifyError(err error) {
	log.Printf("Playback error: %v", err)
	if p.config.OnError != nil {
		p.config.OnError(err)
	}
}
