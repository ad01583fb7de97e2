// Package config loads the switchd YAML configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sweeney/switchd/button"
	"github.com/sweeney/switchd/internal/gpio"
	"github.com/sweeney/switchd/ticks"
)

const (
	defaultBroker    = "tcp://localhost:1883"
	defaultClientID  = "switchd"
	defaultHTTP      = ":8080"
	defaultPoll      = time.Millisecond
	defaultHeartbeat = 15 * time.Minute
)

// Input kinds.
const (
	KindButton     = "button"
	KindToggle     = "toggle"
	KindUnbuffered = "unbuffered"
)

// Input describes one switch wired to a GPIO pin.
type Input struct {
	Name            string        `yaml:"name"`
	Pin             int           `yaml:"pin"`
	Kind            string        `yaml:"kind"`
	Pull            string        `yaml:"pull"`
	Inverted        *bool         `yaml:"inverted"`
	SampleRate      int           `yaml:"sampleRate"`
	LongPress       time.Duration `yaml:"longPress"`
	RepeatClick     time.Duration `yaml:"repeatClick"`
	ToggleOnRelease bool          `yaml:"toggleOnRelease"`
	Suppress        []string      `yaml:"suppress"`
}

// Config is the daemon configuration.
type Config struct {
	Broker   string `yaml:"broker"`
	ClientID string `yaml:"clientId"`
	HTTP     string `yaml:"http"`
	// Poll is the interval between device updates. It must be well below
	// every input's sample period.
	Poll time.Duration `yaml:"poll"`
	// Heartbeat is the interval between heartbeat events; negative disables.
	Heartbeat time.Duration `yaml:"heartbeat"`
	TickBits  uint          `yaml:"tickBits"`
	Backend   string        `yaml:"backend"`
	Chip      string        `yaml:"chip"`
	Inputs    []Input       `yaml:"inputs"`
}

// Load reads and parses the file at path.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(content)
}

// Parse decodes content, fills defaults and validates the result.
func Parse(content []byte) (*Config, error) {
	c := &Config{}
	if err := yaml.Unmarshal(content, c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if c.Broker == "" {
		c.Broker = defaultBroker
	}
	if c.ClientID == "" {
		c.ClientID = defaultClientID
	}
	if c.HTTP == "" {
		c.HTTP = defaultHTTP
	}
	if c.Poll <= 0 {
		c.Poll = defaultPoll
	}
	if c.Heartbeat == 0 {
		c.Heartbeat = defaultHeartbeat
	}
	if c.Heartbeat < 0 {
		c.Heartbeat = 0
	}
	if c.TickBits == 0 {
		c.TickBits = ticks.DefaultBits
	}
	if c.TickBits > ticks.MaxBits {
		return nil, fmt.Errorf("tickBits must be at most %d, got %d", ticks.MaxBits, c.TickBits)
	}
	switch c.Backend {
	case "":
		c.Backend = gpio.BackendGPIOCDev
	case gpio.BackendGPIOCDev, gpio.BackendPeriph:
	default:
		return nil, fmt.Errorf("unknown backend %q", c.Backend)
	}

	if len(c.Inputs) == 0 {
		return nil, fmt.Errorf("at least one input must be configured")
	}
	seen := make(map[string]bool)
	for i := range c.Inputs {
		in := &c.Inputs[i]
		if in.Name == "" {
			return nil, fmt.Errorf("name of input must be specified for entry %d", i)
		}
		if seen[in.Name] {
			return nil, fmt.Errorf("duplicate input name %q", in.Name)
		}
		seen[in.Name] = true
		if in.Pin < 0 {
			return nil, fmt.Errorf("pin of input %q must not be negative", in.Name)
		}
		switch in.Kind {
		case "":
			in.Kind = KindButton
		case KindButton, KindToggle, KindUnbuffered:
		default:
			return nil, fmt.Errorf("unknown kind %q for input %q", in.Kind, in.Name)
		}
		if in.SampleRate < 0 {
			return nil, fmt.Errorf("sampleRate of input %q must be positive", in.Name)
		}
		if in.SampleRate == 0 {
			in.SampleRate = button.DefaultSampleRate
		}
		if in.LongPress <= 0 {
			in.LongPress = ticks.ToDuration(button.DefaultLongPress)
		}
		if in.RepeatClick <= 0 {
			in.RepeatClick = ticks.ToDuration(button.DefaultRepeatClick)
		}
		span := ticks.MaxSpan(c.TickBits)
		if in.LongPress > span {
			return nil, fmt.Errorf("longPress of input %q must be at most %v, got %v", in.Name, span, in.LongPress)
		}
		if in.RepeatClick > span {
			return nil, fmt.Errorf("repeatClick of input %q must be at most %v, got %v", in.Name, span, in.RepeatClick)
		}
		if _, err := in.ButtonConfig(); err != nil {
			return nil, fmt.Errorf("input %q: %w", in.Name, err)
		}
	}

	return c, nil
}

// ButtonConfig converts the input into device construction parameters.
func (in Input) ButtonConfig() (button.Config, error) {
	pull, err := button.ParsePull(in.Pull)
	if err != nil {
		return button.Config{}, err
	}
	suppress, err := button.ParseFlags(in.Suppress)
	if err != nil {
		return button.Config{}, err
	}
	return button.Config{
		SampleRate:      in.SampleRate,
		Pull:            pull,
		Inverted:        in.Inverted,
		LongPress:       ticks.Micros(in.LongPress),
		RepeatClick:     ticks.Micros(in.RepeatClick),
		ToggleOnRelease: in.ToggleOnRelease,
		Suppress:        suppress,
	}, nil
}
