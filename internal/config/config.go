package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Serial SerialConfig `yaml:"serial"`
	UI     UIConfig     `yaml:"ui"`
	Export ExportConfig `yaml:"export"`
}

type SerialConfig struct {
	BaudRate         int           `yaml:"baud_rate"`
	HandshakeTimeout time.Duration `yaml:"handshake_timeout"`
	SettleDelay      time.Duration `yaml:"settle_delay"`
	ReadTimeout      time.Duration `yaml:"read_timeout"`
}

type UIConfig struct {
	RefreshRate       int `yaml:"refresh_rate"`
	MinWindowSize     int `yaml:"min_window_size"`
	StreamingLookback int `yaml:"streaming_lookback"`
}

type ExportConfig struct {
	Filename string `yaml:"filename"`
}

// Default returns the built-in configuration, matching the filter
// device's firmware settings.
func Default() *Config {
	return &Config{
		Serial: SerialConfig{
			BaudRate:         115200,
			HandshakeTimeout: 3 * time.Second,
			SettleDelay:      250 * time.Millisecond,
			ReadTimeout:      100 * time.Millisecond,
		},
		UI: UIConfig{
			RefreshRate:       60,
			MinWindowSize:     32,
			StreamingLookback: 384,
		},
		Export: ExportConfig{
			Filename: "filtered.json",
		},
	}
}

// Load reads a yaml config file over the defaults. A missing file is not
// an error; the defaults are returned unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Serial.BaudRate <= 0 {
		return fmt.Errorf("serial.baud_rate must be positive, got %d", c.Serial.BaudRate)
	}
	if c.Serial.ReadTimeout <= 0 {
		return fmt.Errorf("serial.read_timeout must be positive, got %v", c.Serial.ReadTimeout)
	}
	if c.UI.RefreshRate <= 0 {
		return fmt.Errorf("ui.refresh_rate must be positive, got %d", c.UI.RefreshRate)
	}
	if c.UI.MinWindowSize < 2 {
		return fmt.Errorf("ui.min_window_size must be at least 2, got %d", c.UI.MinWindowSize)
	}
	if c.UI.StreamingLookback < c.UI.MinWindowSize {
		return fmt.Errorf("ui.streaming_lookback must be at least min_window_size, got %d", c.UI.StreamingLookback)
	}
	if c.Export.Filename == "" {
		return fmt.Errorf("export.filename must not be empty")
	}
	return nil
}

// RefreshInterval converts the refresh rate to the tick period used by
// the streaming view.
func (c *Config) RefreshInterval() time.Duration {
	return time.Second / time.Duration(c.UI.RefreshRate)
}
