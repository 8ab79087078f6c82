// ABOUTME: Application configuration
// ABOUTME: YAML file, .env file and PCMSTREAM_* environment overrides
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"

	"github.com/Resonate-Protocol/pcmstream/pkg/audio"
	"github.com/Resonate-Protocol/pcmstream/pkg/audio/output"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "PCMSTREAM_"

// Output backends
const (
	OutputConverter = "converter"
	OutputPulse     = "pulse"
)

// Pacing modes
const (
	PacingSpin  = "spin"
	PacingSleep = "sleep"
	PacingNone  = "none"
)

// Config is the application configuration
type Config struct {
	File             string `yaml:"file"`
	Output           string `yaml:"output"`
	Loop             bool   `yaml:"loop"`
	Background       bool   `yaml:"background"`
	Volume           int    `yaml:"volume"`
	BufferSize       int    `yaml:"buffer_size"`
	SysClockHz       int    `yaml:"sys_clock_hz"`
	CarrierHz        int    `yaml:"carrier_hz"`
	DropPartialChunk bool   `yaml:"drop_partial_chunk"`
	Sink             string `yaml:"sink"`
	SinkRate         int    `yaml:"sink_rate"`
	Pacing           string `yaml:"pacing"`
	LogFile          string `yaml:"log_file"`
	Debug            bool   `yaml:"debug"`

	Remote RemoteConfig `yaml:"remote"`
}

// RemoteConfig configures the websocket control endpoint
type RemoteConfig struct {
	Addr      string `yaml:"addr"`
	Path      string `yaml:"path"`
	Name      string `yaml:"name"`
	Advertise bool   `yaml:"advertise"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Output:     OutputConverter,
		Volume:     audio.DefaultVolume,
		BufferSize: 2048,
		SysClockHz: 84_000_000,
		CarrierHz:  120_000,
		Sink:       "none",
		Pacing:     PacingSpin,
		LogFile:    "pcmstream.log",
		Remote: RemoteConfig{
			Addr: ":8930",
			Path: "/control",
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path (if
// non-empty), dotenv files and the process environment, in that order of
// increasing precedence.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if err := loadDotenv(envFiles); err != nil {
		return nil, err
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadDotenv loads existing dotenv files without overriding set variables
func loadDotenv(files []string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}

	if err := godotenv.Load(present...); err != nil {
		return fmt.Errorf("load env: %w", err)
	}
	return nil
}

// ApplyEnv overrides fields from PCMSTREAM_* variables
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	var errs []error

	str := func(key string, dst *string) {
		if v, ok := lookup(EnvPrefix + key); ok {
			*dst = v
		}
	}
	num := func(key string, dst *int) {
		if v, ok := lookup(EnvPrefix + key); ok {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = n
		}
	}
	flag := func(key string, dst *bool) {
		if v, ok := lookup(EnvPrefix + key); ok {
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = b
		}
	}

	str("FILE", &c.File)
	str("OUTPUT", &c.Output)
	flag("LOOP", &c.Loop)
	flag("BACKGROUND", &c.Background)
	num("VOLUME", &c.Volume)
	num("BUFFER_SIZE", &c.BufferSize)
	num("SYS_CLOCK_HZ", &c.SysClockHz)
	num("CARRIER_HZ", &c.CarrierHz)
	flag("DROP_PARTIAL_CHUNK", &c.DropPartialChunk)
	str("SINK", &c.Sink)
	num("SINK_RATE", &c.SinkRate)
	str("PACING", &c.Pacing)
	str("LOG_FILE", &c.LogFile)
	flag("DEBUG", &c.Debug)
	str("REMOTE_ADDR", &c.Remote.Addr)
	str("REMOTE_PATH", &c.Remote.Path)
	str("REMOTE_NAME", &c.Remote.Name)
	flag("REMOTE_ADVERTISE", &c.Remote.Advertise)

	return errors.Join(errs...)
}

// Validate checks option values
func (c *Config) Validate() error {
	switch c.Output {
	case OutputConverter, OutputPulse:
	default:
		return fmt.Errorf("invalid output %q (want %s or %s)", c.Output, OutputConverter, OutputPulse)
	}
	if c.Loop && c.Output == OutputPulse {
		return fmt.Errorf("loop mode requires the %s output", OutputConverter)
	}
	if !audio.ValidVolume(c.Volume) {
		return fmt.Errorf("volume %d outside %d..%d", c.Volume, audio.MinVolume, audio.MaxVolume)
	}
	if c.BufferSize < 0 {
		return fmt.Errorf("invalid buffer size %d", c.BufferSize)
	}
	if c.SysClockHz < 0 || c.CarrierHz < 0 {
		return fmt.Errorf("invalid clock settings %d/%d", c.SysClockHz, c.CarrierHz)
	}
	if c.Sink != "" && !slices.Contains(output.Names, strings.ToLower(c.Sink)) {
		return fmt.Errorf("invalid sink %q (available: %s)", c.Sink, strings.Join(output.Names, ", "))
	}
	if c.SinkRate < 0 {
		return fmt.Errorf("invalid sink rate %d", c.SinkRate)
	}
	switch c.Pacing {
	case PacingSpin, PacingSleep, PacingNone:
	default:
		return fmt.Errorf("invalid pacing %q", c.Pacing)
	}
	return nil
}

// Save writes the configuration as YAML
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
