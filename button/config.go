package button

import (
	"fmt"
	"strings"

	"github.com/sweeney/switchd/ticks"
)

// Pull is the bias applied to an input pin.
type Pull uint8

// Pull modes. PullUp is the zero value.
const (
	PullUp Pull = iota
	PullDown
	PullNone
)

// String returns the config name of the pull mode.
func (p Pull) String() string {
	switch p {
	case PullUp:
		return "up"
	case PullDown:
		return "down"
	case PullNone:
		return "none"
	}
	return fmt.Sprintf("Pull(%d)", uint8(p))
}

// ParsePull parses "up", "down" or "none" (also "float").
func ParsePull(s string) (Pull, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "up":
		return PullUp, nil
	case "down":
		return PullDown, nil
	case "none", "float":
		return PullNone, nil
	}
	return PullUp, fmt.Errorf("unknown pull mode %q", s)
}

// Defaults used by DefaultConfig.
const (
	DefaultSampleRate  = 200
	DefaultLongPress   = ticks.Duration(550_000)
	DefaultRepeatClick = ticks.Duration(400_000)
)

// Config holds construction parameters shared by all devices. Start from
// DefaultConfig; the zero value is rejected because its sample rate is zero.
type Config struct {
	// SampleRate is how often, in Hz, the raw pin is shifted into the filter.
	SampleRate int
	// Pull is the pin bias. It also decides the inversion when Inverted is nil:
	// a pulled-up switch reads low when pressed.
	Pull     Pull
	Inverted *bool
	// LongPress and RepeatClick only apply to Button.
	LongPress   ticks.Duration
	RepeatClick ticks.Duration
	// ToggleOnRelease only applies to Toggle.
	ToggleOnRelease bool
	// Suppress is the initial suppression mask.
	Suppress Flags
}

// DefaultConfig returns a 200 Hz pulled-up configuration with the standard
// long-press and repeat-click thresholds.
func DefaultConfig() Config {
	return Config{
		SampleRate:  DefaultSampleRate,
		Pull:        PullUp,
		LongPress:   DefaultLongPress,
		RepeatClick: DefaultRepeatClick,
	}
}

// IsInverted resolves the effective inversion.
func (c Config) IsInverted() bool {
	if c.Inverted != nil {
		return *c.Inverted
	}
	return c.Pull == PullUp
}

// ConfigurationError rejects construction of a device.
type ConfigurationError struct {
	Field  string
	Value  any
	Reason string
}

// Error implements error.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("button: invalid %s (%v): %s", e.Field, e.Value, e.Reason)
}

// sampleInterval converts the sample rate to a rounded tick count and checks
// that it and the classifier thresholds fit the clock's range.
func (c Config) sampleInterval(clk *ticks.Clock) (ticks.Duration, error) {
	if c.SampleRate <= 0 {
		return 0, &ConfigurationError{Field: "sample rate", Value: c.SampleRate, Reason: "must be positive"}
	}
	interval := (ticks.PerSecond + c.SampleRate/2) / c.SampleRate
	if interval == 0 {
		return 0, &ConfigurationError{Field: "sample rate", Value: c.SampleRate, Reason: "exceeds tick frequency"}
	}
	half := uint64(clk.Max()) / 2
	if uint64(interval) > half {
		return 0, &ConfigurationError{Field: "sample rate", Value: c.SampleRate, Reason: "interval exceeds half the tick range"}
	}
	if uint64(c.LongPress) > half {
		return 0, &ConfigurationError{Field: "long press", Value: c.LongPress, Reason: "exceeds half the tick range"}
	}
	if uint64(c.RepeatClick) > half {
		return 0, &ConfigurationError{Field: "repeat click", Value: c.RepeatClick, Reason: "exceeds half the tick range"}
	}
	return ticks.Duration(interval), nil
}
