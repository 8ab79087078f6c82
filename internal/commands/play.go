// ABOUTME: Play command
// ABOUTME: Plays one WAV file, with or without the TUI
package commands

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Resonate-Protocol/pcmstream/internal/app"
	"github.com/Resonate-Protocol/pcmstream/internal/config"
	"github.com/Resonate-Protocol/pcmstream/internal/ui"
	"github.com/Resonate-Protocol/pcmstream/pkg/player"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a WAV file",
	Long: `Play a mono 8 or 16-bit PCM WAV file.

Without the TUI, playback runs once and the command exits when the file
ends. Loop mode plays until interrupted.`,
	RunE: runPlay,
}

func init() {
	addPlaybackFlags(playCmd)
	playCmd.Flags().Bool("no-tui", false, "Disable TUI, use streaming logs instead")
	rootCmd.AddCommand(playCmd)
}

// addPlaybackFlags registers the flags shared by play and serve
func addPlaybackFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("file", "f", "", "WAV file to play")
	cmd.Flags().String("output", config.OutputConverter, "Output backend: converter or pulse")
	cmd.Flags().Bool("loop", false, "Repeat the file through a circular DAC transfer")
	cmd.Flags().Int("volume", 10, "Volume level 0-12")
	cmd.Flags().String("sink", "none", "Host audio sink: none, oto, malgo, portaudio")
	cmd.Flags().Int("sink-rate", 0, "Resample the sink to this device rate (0: file rate)")
	cmd.Flags().String("pacing", config.PacingSpin, "Sample pacing: spin, sleep or none")
	cmd.Flags().Bool("background", false, "Run playback on a worker")
	cmd.Flags().Bool("drop-partial", false, "Skip the trailing partial chunk")
	cmd.Flags().Int("buffer-size", 0, "Frames per chunk (default from config)")
}

// applyPlaybackFlags overlays explicitly set flags on cfg
func applyPlaybackFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("file") {
		cfg.File, _ = f.GetString("file")
	}
	if f.Changed("output") {
		cfg.Output, _ = f.GetString("output")
	}
	if f.Changed("loop") {
		cfg.Loop, _ = f.GetBool("loop")
	}
	if f.Changed("volume") {
		cfg.Volume, _ = f.GetInt("volume")
	}
	if f.Changed("sink") {
		cfg.Sink, _ = f.GetString("sink")
	}
	if f.Changed("sink-rate") {
		cfg.SinkRate, _ = f.GetInt("sink-rate")
	}
	if f.Changed("pacing") {
		cfg.Pacing, _ = f.GetString("pacing")
	}
	if f.Changed("background") {
		cfg.Background, _ = f.GetBool("background")
	}
	if f.Changed("drop-partial") {
		cfg.DropPartialChunk, _ = f.GetBool("drop-partial")
	}
	if f.Changed("buffer-size") {
		cfg.BufferSize, _ = f.GetInt("buffer-size")
	}
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	applyPlaybackFlags(cmd, cfg)
	if cfg.File == "" && len(args) > 0 {
		cfg.File = args[0]
	}
	if cfg.File == "" {
		return fmt.Errorf("input file is required, use -f flag")
	}

	noTUI, _ := cmd.Flags().GetBool("no-tui")
	useTUI := !noTUI

	// The TUI needs its own goroutine, so playback must not block it
	if useTUI {
		cfg.Background = true
	}

	closer, err := setupLogging(cfg.LogFile, useTUI)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	if useTUI {
		return runWithTUI(cfg, false)
	}
	return runHeadless(cfg)
}

// runHeadless plays once, or until a signal in loop and background modes
func runHeadless(cfg *config.Config) error {
	a, err := app.New(*cfg, app.Hooks{
		OnError: func(err error) { log.Printf("Player error: %v", err) },
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Printf("Error closing player: %v", err)
		}
	}()

	if err := a.Begin(); err != nil {
		return err
	}

	p := a.Player()
	if err := p.Play(); err != nil {
		return err
	}

	if !cfg.Loop && !cfg.Background {
		logResult(p.Status())
		return nil
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	if cfg.Loop {
		<-sigChan
		log.Printf("Shutdown signal received")
		return p.Stop()
	}

	done := make(chan error, 1)
	go func() { done <- p.Wait() }()

	select {
	case err := <-done:
		logResult(p.Status())
		return err
	case <-sigChan:
		log.Printf("Shutdown signal received")
		_ = p.Stop()
		return <-done
	}
}

// runWithTUI drives the player from the TUI until the user quits
func runWithTUI(cfg *config.Config, withRemote bool) error {
	ctrl := ui.NewControls()
	prog := ui.Run(cfg.File, ctrl)

	// Send blocks until the program loop runs, so start it before any
	// player callbacks fire
	var progErr error
	progDone := make(chan struct{})
	go func() {
		_, progErr = prog.Run()
		close(progDone)
	}()
	defer func() {
		prog.Quit()
		<-progDone
	}()

	a, err := app.New(*cfg, app.Hooks{
		OnStateChange: func(st player.Status) {
			prog.Send(ui.StatusMsg{Status: st})
		},
		OnError: func(err error) {
			log.Printf("Player error: %v", err)
		},
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Printf("Error closing player: %v", err)
		}
	}()

	if withRemote {
		if err := a.StartRemote(); err != nil {
			return err
		}
	}
	if err := a.Begin(); err != nil {
		return err
	}

	p := a.Player()
	go func() {
		if err := p.Play(); err != nil {
			log.Printf("Play failed: %v", err)
		}
	}()
	stop := make(chan struct{})
	defer close(stop)
	go handleControls(p, ctrl, stop)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	prog.Send(ui.StatusMsg{Status: p.Status()})

	select {
	case <-ctrl.Quit:
		log.Printf("Received quit signal from TUI")
	case <-sigChan:
		log.Printf("Shutdown signal received")
	case <-progDone:
		if progErr != nil && !errors.Is(progErr, tea.ErrProgramKilled) {
			return fmt.Errorf("TUI failed: %w", progErr)
		}
	}

	return p.Stop()
}

// handleControls applies TUI actions to the player
func handleControls(p *player.Player, ctrl *ui.Controls, stop <-chan struct{}) {
	for {
		select {
		case action := <-ctrl.Actions:
			switch action {
			case ui.ActionPlay:
				if err := p.Play(); err != nil && !errors.Is(err, player.ErrAlreadyPlaying) {
					log.Printf("Play failed: %v", err)
				}
			case ui.ActionStop:
				_ = p.Stop()
			case ui.ActionVolumeUp:
				p.VolumeUp()
			case ui.ActionVolumeDown:
				p.VolumeDown()
			}
		case <-stop:
			return
		}
	}
}

func logResult(st player.Status) {
	log.Printf("Playback %s after %d frames in %d chunks",
		st.Last.Outcome, st.Last.Frames, st.Last.Chunks)
}
