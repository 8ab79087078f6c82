// ABOUTME: Tone command
// ABOUTME: Writes a mono sine WAV for testing outputs
package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Resonate-Protocol/pcmstream/pkg/audio"
	"github.com/Resonate-Protocol/pcmstream/pkg/audio/encode"
	"github.com/Resonate-Protocol/pcmstream/pkg/audio/source"
)

var toneCmd = &cobra.Command{
	Use:   "tone",
	Short: "Write a sine test tone WAV file",
	RunE:  runTone,
}

func init() {
	toneCmd.Flags().StringP("output", "o", "tone.wav", "Output WAV path")
	toneCmd.Flags().Int("rate", 16000, "Sample rate in Hz")
	toneCmd.Flags().Int("bits", 16, "Sample width: 8 or 16")
	toneCmd.Flags().Float64("freq", source.DefaultToneHz, "Tone frequency in Hz")
	toneCmd.Flags().Duration("duration", time.Second, "Tone length")
	rootCmd.AddCommand(toneCmd)
}

func runTone(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()
	path, _ := f.GetString("output")
	rate, _ := f.GetInt("rate")
	bits, _ := f.GetInt("bits")
	freq, _ := f.GetFloat64("freq")
	dur, _ := f.GetDuration("duration")

	format := audio.Format{SampleRate: rate, BitDepth: bits, Channels: 1}
	if err := format.Validate(); err != nil {
		return err
	}
	if dur <= 0 {
		return fmt.Errorf("duration must be positive")
	}

	frames := int(dur.Seconds() * float64(rate))
	if err := encode.WriteWAVFile(path, format, source.ToneSamples(format, freq, frames)); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s: %d frames, %dHz %d-bit, %.0fHz tone\n", path, frames, rate, bits, freq)
	return nil
}
