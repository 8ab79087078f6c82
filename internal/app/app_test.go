// ABOUTME: Tests for application wiring
// ABOUTME: Plays generated WAV files through the simulated hardware
package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Resonate-Protocol/pcmstream/internal/config"
	"github.com/Resonate-Protocol/pcmstream/internal/remote"
	"github.com/Resonate-Protocol/pcmstream/pkg/audio"
	"github.com/Resonate-Protocol/pcmstream/pkg/audio/encode"
	"github.com/Resonate-Protocol/pcmstream/pkg/audio/output"
	"github.com/Resonate-Protocol/pcmstream/pkg/audio/source"
	"github.com/Resonate-Protocol/pcmstream/pkg/player"
)

func writeTone(t *testing.T, bits, frames int) string {
	t.Helper()
	format := audio.Format{SampleRate: 8000, BitDepth: bits, Channels: 1}
	path := filepath.Join(t.TempDir(), "tone.wav")
	if err := encode.WriteWAVFile(path, format, source.ToneSamples(format, 440, frames)); err != nil {
		t.Fatalf("failed to write tone: %v", err)
	}
	return path
}

func testConfig(path string) config.Config {
	cfg := config.Default()
	cfg.File = path
	cfg.BufferSize = 128
	cfg.Pacing = config.PacingNone
	cfg.Remote.Addr = "127.0.0.1:0"
	return cfg
}

func TestPlayConverter(t *testing.T) {
	var states []player.State
	a, err := New(testConfig(writeTone(t, 16, 1000)), Hooks{
		OnStateChange: func(st player.Status) { states = append(states, st.State) },
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer a.Close()

	if err := a.Begin(); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if err := a.Player().Play(); err != nil {
		t.Fatalf("Play failed: %v", err)
	}

	if a.Writes() != 1000 {
		t.Errorf("expected 1000 writes, got %d", a.Writes())
	}
	if len(states) == 0 || states[len(states)-1] != player.StateStopped {
		t.Errorf("expected final state stopped, got %v", states)
	}
}

func TestPlayPulse(t *testing.T) {
	cfg := testConfig(writeTone(t, 8, 300))
	cfg.Output = config.OutputPulse
	cfg.DropPartialChunk = true

	a, err := New(cfg, Hooks{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer a.Close()

	if err := a.Begin(); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if err := a.Player().Play(); err != nil {
		t.Fatalf("Play failed: %v", err)
	}

	// 300 frames in 128-frame chunks, tail dropped
	if a.Writes() != 256 {
		t.Errorf("expected 256 writes, got %d", a.Writes())
	}
}

func TestVolumeZeroFromConfig(t *testing.T) {
	cfg := testConfig(writeTone(t, 16, 10))
	cfg.Volume = 0

	a, err := New(cfg, Hooks{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer a.Close()

	if a.Player().Volume() != 0 {
		t.Errorf("expected volume 0, got %d", a.Player().Volume())
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig("x.wav")
	cfg.Sink = "jack"
	if _, err := New(cfg, Hooks{}); err == nil {
		t.Error("expected error for unknown sink")
	}
}

func TestSinkRateWrapsSink(t *testing.T) {
	cfg := testConfig(writeTone(t, 16, 100))
	cfg.SinkRate = 48000

	a, err := New(cfg, Hooks{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer a.Close()

	if _, ok := a.sink.(*output.Resampled); !ok {
		t.Fatalf("expected resampled sink, got %T", a.sink)
	}
	if err := a.Begin(); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if err := a.Player().Play(); err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	if a.Writes() != 100 {
		t.Errorf("expected 100 writes, got %d", a.Writes())
	}
}

func TestBeginMissingFile(t *testing.T) {
	a, err := New(testConfig(filepath.Join(t.TempDir(), "missing.wav")), Hooks{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer a.Close()

	if err := a.Begin(); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}

func TestRemoteControl(t *testing.T) {
	cfg := testConfig(writeTone(t, 16, 100))
	cfg.Background = true

	a, err := New(cfg, Hooks{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer a.Close()

	if err := a.Begin(); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if err := a.StartRemote(); err != nil {
		t.Fatalf("StartRemote failed: %v", err)
	}

	c, err := remote.Dial("ws://"+a.Remote().Addr().String()+"/control", 2*time.Second)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer c.Close()

	st, err := c.Do(remote.TypeSetVolume, remote.SetVolume{Level: 4})
	if err != nil {
		t.Fatalf("set_volume failed: %v", err)
	}
	if st.Volume != 4 || st.State != "ready" {
		t.Errorf("unexpected status %+v", st)
	}
	if a.Player().Volume() != 4 {
		t.Errorf("expected player volume 4, got %d", a.Player().Volume())
	}
}
