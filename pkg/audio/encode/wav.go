// ABOUTME: WAV container writer
// ABOUTME: Writes mono PCM samples as a RIFF/WAVE file using go-audio/wav
package encode

import (
	"fmt"
	"io"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/Resonate-Protocol/pcmstream/pkg/audio"
)

// wavFormatPCM is the WAVE_FORMAT_PCM tag
const wavFormatPCM = 1

// WriteWAV writes samples to w as a mono PCM WAV container
func WriteWAV(w io.WriteSeeker, format audio.Format, samples []int32) error {
	if err := format.Validate(); err != nil {
		return fmt.Errorf("invalid wav format: %w", err)
	}

	data := make([]int, len(samples))
	for i, s := range samples {
		if format.BitDepth == audio.Width8 {
			data[i] = int(clip(s, 0, 255))
		} else {
			data[i] = int(clip(s, -32768, 32767))
		}
	}

	enc := wav.NewEncoder(w, format.SampleRate, format.BitDepth, format.Channels, wavFormatPCM)
	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: format.Channels,
			SampleRate:  format.SampleRate,
		},
		Data:           data,
		SourceBitDepth: format.BitDepth,
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("failed to write wav samples: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finalize wav header: %w", err)
	}
	return nil
}

// WriteWAVFile creates path and writes samples into it
func WriteWAVFile(path string, format audio.Format, samples []int32) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create wav file: %w", err)
	}

	if err := WriteWAV(f, format, samples); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
