// ABOUTME: Serve command
// ABOUTME: Runs a player behind the websocket control endpoint
package commands

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Resonate-Protocol/pcmstream/internal/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a remotely controlled player",
	Long: `Open a WAV file and accept play, stop and volume commands over a
websocket endpoint. Playback always runs on a worker so commands stay
responsive.`,
	RunE: runServe,
}

func init() {
	addPlaybackFlags(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address (default from config, :8930)")
	serveCmd.Flags().String("name", "", "Player name advertised over mDNS")
	serveCmd.Flags().Bool("advertise", false, "Advertise the endpoint over mDNS")
	serveCmd.Flags().Bool("tui", false, "Show the TUI while serving")
	serveCmd.Flags().Bool("autoplay", false, "Start playback immediately")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	applyPlaybackFlags(cmd, cfg)
	if cfg.File == "" && len(args) > 0 {
		cfg.File = args[0]
	}
	cfg.Background = true

	f := cmd.Flags()
	if f.Changed("addr") {
		cfg.Remote.Addr, _ = f.GetString("addr")
	}
	if f.Changed("name") {
		cfg.Remote.Name, _ = f.GetString("name")
	}
	if f.Changed("advertise") {
		cfg.Remote.Advertise, _ = f.GetBool("advertise")
	}
	useTUI, _ := f.GetBool("tui")
	autoplay, _ := f.GetBool("autoplay")

	closer, err := setupLogging(cfg.LogFile, useTUI)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	if useTUI {
		return runWithTUI(cfg, true)
	}

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

	if err := a.StartRemote(); err != nil {
		return err
	}
	if err := a.Begin(); err != nil {
		return err
	}
	log.Printf("Control endpoint listening on %s%s", a.Remote().Addr(), cfg.Remote.Path)

	if autoplay {
		if err := a.Player().Play(); err != nil {
			return err
		}
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	<-sigChan
	log.Printf("Shutdown signal received")
	return nil
}
