// ABOUTME: Root command for the pcmstream CLI
// ABOUTME: Global flags, configuration loading and log setup
package commands

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/Resonate-Protocol/pcmstream/internal/config"
)

var (
	cfgFile  string
	envFiles []string
	logFile  string
	debug    bool
)

var rootCmd = &cobra.Command{
	Use:   "pcmstream",
	Short: "Stream PCM WAV files to a DAC or PWM output",
	Long: `pcmstream plays mono PCM WAV files sample by sample through a
digital-to-analog converter or a PWM pin, on simulated hardware with an
optional host audio sink.

Examples:
  pcmstream play -f chime.wav
  pcmstream play -f chime.wav --output pulse --volume 8
  pcmstream serve -f loop.wav --loop --advertise
  pcmstream tone -o beep.wav --rate 8000 --bits 8`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "dotenv files to load (default: .env if present)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file path (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Per-chunk debug logging")
}

// loadConfig loads the configuration and applies global flag overrides
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgFile, envFiles...)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("log-file") {
		cfg.LogFile = logFile
	}
	if cmd.Flags().Changed("debug") {
		cfg.Debug = debug
	}
	return cfg, nil
}

// setupLogging sends logs to the log file, and also to stdout when the
// TUI is not drawing on the terminal. The returned closer closes the file.
func setupLogging(path string, useTUI bool) (io.Closer, error) {
	if path == "" {
		if useTUI {
			log.SetOutput(io.Discard)
		}
		return io.NopCloser(nil), nil
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("error opening log file: %w", err)
	}

	if useTUI {
		log.SetOutput(f)
	} else {
		log.SetOutput(io.MultiWriter(os.Stdout, f))
	}
	return f, nil
}
