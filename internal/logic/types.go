// Package logic contains the daemon's event bookkeeping.
// This package has NO external dependencies (no GPIO, MQTT, OS, or time.Sleep).
// Wall time is always injectable via time.Time parameters.
package logic

import (
	"time"

	"github.com/sweeney/switchd/button"
)

// Event is a classified switch event to be published.
type Event struct {
	Timestamp time.Time
	Input     string
	Flags     button.Flags
	// State is the device's logical state after the event.
	State bool
}

// Counts tracks how often each flag was emitted since startup.
type Counts struct {
	Pressed       int
	Released      int
	Toggled       int
	LongPressed   int
	Clicked       int
	RepeatClicked int
}

func (c *Counts) add(f button.Flags) {
	if f.Has(button.Pressed) {
		c.Pressed++
	}
	if f.Has(button.Released) {
		c.Released++
	}
	if f.Has(button.Toggled) {
		c.Toggled++
	}
	if f.Has(button.LongPressed) {
		c.LongPressed++
	}
	if f.Has(button.Clicked) {
		c.Clicked++
	}
	if f.Has(button.RepeatClicked) {
		c.RepeatClicked++
	}
}

// InputState is a snapshot of one monitored input.
type InputState struct {
	Name   string
	Kind   string
	State  bool
	Counts Counts
}

// HeartbeatData contains information for a heartbeat event.
type HeartbeatData struct {
	Timestamp time.Time
	Uptime    time.Duration
	Inputs    []InputState
}
