// ABOUTME: Application wiring for the pcmstream CLI
// ABOUTME: Builds simulated hardware, host sink, player and remote control from config
package app

import (
	"fmt"
	"log"
	"sync"

	"github.com/Resonate-Protocol/pcmstream/internal/config"
	"github.com/Resonate-Protocol/pcmstream/internal/discovery"
	"github.com/Resonate-Protocol/pcmstream/internal/remote"
	"github.com/Resonate-Protocol/pcmstream/internal/version"
	"github.com/Resonate-Protocol/pcmstream/pkg/audio/output"
	"github.com/Resonate-Protocol/pcmstream/pkg/audio/source"
	"github.com/Resonate-Protocol/pcmstream/pkg/hal"
	"github.com/Resonate-Protocol/pcmstream/pkg/hal/sim"
	"github.com/Resonate-Protocol/pcmstream/pkg/player"
)

// Hooks receives player events
type Hooks struct {
	OnStateChange func(player.Status)
	OnError       func(error)
}

// App owns one player and the infrastructure around it
type App struct {
	config config.Config
	hooks  Hooks

	player *player.Player
	dac    *sim.DAC
	pwm    *sim.PWM
	sink   output.Output

	mu        sync.Mutex
	attached  bool
	remote    *remote.Server
	discovery *discovery.Manager
}

// New builds the application from configuration
func New(cfg config.Config, hooks Hooks) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	sink, err := output.New(cfg.Sink)
	if err != nil {
		return nil, err
	}
	if cfg.SinkRate > 0 {
		sink = output.NewResampled(sink, cfg.SinkRate)
	}

	a := &App{
		config: cfg,
		hooks:  hooks,
		sink:   sink,
	}

	hw := player.Hardware{Delay: pacing(cfg.Pacing)}
	if cfg.Output == config.OutputPulse {
		a.pwm = sim.NewPWM(sim.Options{})
		hw.PWM = a.pwm
	} else {
		a.dac = sim.NewDAC(sim.Options{})
		hw.DAC = a.dac
		hw.TimedDAC = a.dac
	}

	p, err := player.New(player.Config{
		Path:             cfg.File,
		Pulse:            cfg.Output == config.OutputPulse,
		Loop:             cfg.Loop,
		Background:       cfg.Background,
		BufferSize:       cfg.BufferSize,
		Volume:           player.Level(cfg.Volume),
		SysClockHz:       cfg.SysClockHz,
		CarrierHz:        cfg.CarrierHz,
		DropPartialChunk: cfg.DropPartialChunk,
		Debug:            cfg.Debug,
		OpenSource:       a.openSource,
		OnStateChange:    a.stateChanged,
		OnError:          a.errored,
	}, hw)
	if err != nil {
		return nil, err
	}

	a.player = p

	return a, nil
}

func pacing(mode string) hal.Delayer {
	switch mode {
	case config.PacingSleep:
		return hal.SleepDelay{}
	case config.PacingNone:
		return hal.NoDelay{}
	default:
		return hal.SpinDelay{}
	}
}

// Player returns the controlled player
func (a *App) Player() *player.Player {
	return a.player
}

// Writes returns the number of values written to the simulated peripheral
func (a *App) Writes() int {
	if a.pwm != nil {
		return a.pwm.Writes()
	}
	return a.dac.Writes()
}

// openSource opens the WAV file and routes the peripheral to the host sink
// at the file's sample rate
func (a *App) openSource(path string) (source.Source, error) {
	src, err := source.OpenWAV(path)
	if err != nil {
		return nil, err
	}

	if err := a.attachSink(src.Format().SampleRate); err != nil {
		log.Printf("Audio sink unavailable, continuing silently: %v", err)
	}
	return src, nil
}

func (a *App) attachSink(sampleRate int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.attached {
		return nil
	}

	var err error
	if a.pwm != nil {
		err = a.pwm.Attach(a.sink, sampleRate)
	} else {
		err = a.dac.Attach(a.sink, sampleRate)
	}
	if err != nil {
		return err
	}
	a.attached = true
	return nil
}

func (a *App) stateChanged(st player.Status) {
	a.mu.Lock()
	srv := a.remote
	a.mu.Unlock()

	if srv != nil {
		srv.Broadcast(st)
	}
	if a.hooks.OnStateChange != nil {
		a.hooks.OnStateChange(st)
	}
}

func (a *App) errored(err error) {
	if a.hooks.OnError != nil {
		a.hooks.OnError(err)
	}
}

// Begin opens the configured file
func (a *App) Begin() error {
	if err := a.player.Begin(); err != nil {
		return err
	}
	st := a.player.Status()
	log.Printf("Loaded %s: %dHz %d-bit, %d frames",
		a.config.File, st.Stream.SampleRateHz, st.Stream.SampleWidthBits, st.Stream.TotalFrames)
	return nil
}

// StartRemote serves the websocket control endpoint and, if configured,
// advertises it over mDNS
func (a *App) StartRemote() error {
	name := a.config.Remote.Name
	if name == "" {
		name = version.Product
	}

	srv := remote.NewServer(remote.Config{
		Addr:  a.config.Remote.Addr,
		Path:  a.config.Remote.Path,
		Name:  name,
		Debug: a.config.Debug,
	}, a.player)
	if err := srv.Start(); err != nil {
		return err
	}

	a.mu.Lock()
	a.remote = srv
	a.mu.Unlock()

	if a.config.Remote.Advertise {
		disc := discovery.NewManager(discovery.Config{
			ServiceName: name,
			Port:        srv.Port(),
			Path:        a.config.Remote.Path,
			Version:     version.Version,
		})
		if err := disc.Advertise(); err != nil {
			log.Printf("mDNS advertisement failed: %v", err)
		} else {
			a.mu.Lock()
			a.discovery = disc
			a.mu.Unlock()
		}
	}
	return nil
}

// Remote returns the control server, if started
func (a *App) Remote() *remote.Server {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.remote
}

// Close shuts everything down
func (a *App) Close() error {
	a.mu.Lock()
	srv, disc := a.remote, a.discovery
	a.remote, a.discovery = nil, nil
	a.mu.Unlock()

	if disc != nil {
		disc.Stop()
	}
	if srv != nil {
		if err := srv.Stop(); err != nil {
			log.Printf("Error stopping control server: %v", err)
		}
	}

	err := a.player.Close()

	if a.pwm != nil {
		a.pwm.Detach()
	}
	if a.dac != nil {
		a.dac.Detach()
	}
	return err
}
