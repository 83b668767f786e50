package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// SourceType identifies where a channel's samples come from
type SourceType string

const (
	// SourceSim is a software button toggled from the TUI
	SourceSim SourceType = "sim"
	// SourceNote gates on a note held on an external MIDI input
	SourceNote SourceType = "note"
	// SourceDemo is a synthetic knock sensor firing on a fixed period
	SourceDemo SourceType = "demo"
)

// SourceConfig defines a channel's sample source
type SourceConfig struct {
	Type      SourceType `json:"type"`
	PortName  string     `json:"portName,omitempty"`  // note: input port to listen on
	Note      int        `json:"note,omitempty"`      // note: gate note number
	Period    string     `json:"period,omitempty"`    // demo: knock period (duration)
	Threshold int        `json:"threshold,omitempty"` // demo/analog: ADC threshold, default 500
}

// ChannelConfig defines one input channel and the voice it plays
type ChannelConfig struct {
	Name        string       `json:"name"`
	Note        int          `json:"note"`
	Channel     int          `json:"channel"` // MIDI channel 1-16
	OnVelocity  int          `json:"onVelocity,omitempty"`
	OffVelocity int          `json:"offVelocity,omitempty"`
	Program     *int         `json:"program,omitempty"` // instrument, sent once at startup
	Source      SourceConfig `json:"source"`
}

// OutputConfig selects the event sinks
type OutputConfig struct {
	PortName   string `json:"portName,omitempty"`   // MIDI output port (rtmidi)
	SerialPath string `json:"serialPath,omitempty"` // raw serial device, e.g. /dev/midi1
}

// UIConfig stores UI preferences
type UIConfig struct {
	Palette string `json:"palette,omitempty"` // path to a .gpl palette
}

// Config is the main configuration structure
type Config struct {
	PollInterval string          `json:"pollInterval,omitempty"` // e.g. "20ms"
	Output       OutputConfig    `json:"output,omitempty"`
	Channels     []ChannelConfig `json:"channels"`
	UI           UIConfig        `json:"ui,omitempty"`
}

// DefaultConfig returns a config with two software buttons: a middle C on
// channel 1 and a bass drum on the percussion channel.
func DefaultConfig() *Config {
	return &Config{
		PollInterval: "20ms",
		Channels: []ChannelConfig{
			{
				Name:    "button-a",
				Note:    60,
				Channel: 1,
				Source:  SourceConfig{Type: SourceSim},
			},
			{
				Name:    "button-b",
				Note:    35, // acoustic bass drum
				Channel: 10,
				Source:  SourceConfig{Type: SourceSim},
			},
		},
	}
}

// Interval parses the poll interval, falling back to 20ms.
func (c *Config) Interval() time.Duration {
	if c.PollInterval != "" {
		if d, err := time.ParseDuration(c.PollInterval); err == nil && d > 0 {
			return d
		}
	}
	return 20 * time.Millisecond
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-trigger"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from the default location, or returns defaults if
// not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads a config file, or returns defaults if it doesn't exist
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the config to the default location
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to a specific path
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// FindChannel finds a channel config by name
func (c *Config) FindChannel(name string) *ChannelConfig {
	for i := range c.Channels {
		if c.Channels[i].Name == name {
			return &c.Channels[i]
		}
	}
	return nil
}
