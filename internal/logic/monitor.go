package logic

import (
	"fmt"
	"time"

	"github.com/sweeney/switchd/button"
)

type input struct {
	name   string
	kind   string
	dev    button.Device
	counts Counts
}

// Monitor drives a set of independent named devices from one polling loop.
type Monitor struct {
	inputs        []*input
	byName        map[string]*input
	startTime     time.Time
	lastHeartbeat time.Time
}

// NewMonitor creates an empty monitor.
// The startTime is used for calculating uptime in heartbeat events.
func NewMonitor(startTime time.Time) *Monitor {
	return &Monitor{
		byName:        make(map[string]*input),
		startTime:     startTime,
		lastHeartbeat: startTime,
	}
}

// Add registers a device under a unique name.
func (m *Monitor) Add(name, kind string, dev button.Device) error {
	if _, ok := m.byName[name]; ok {
		return fmt.Errorf("input %q already registered", name)
	}
	in := &input{name: name, kind: kind, dev: dev}
	m.inputs = append(m.inputs, in)
	m.byName[name] = in
	return nil
}

// Len returns the number of devices.
func (m *Monitor) Len() int {
	return len(m.inputs)
}

// Poll updates every device once, in registration order, and returns the
// active events. Most polls return nil.
func (m *Monitor) Poll(now time.Time) []Event {
	var events []Event
	for _, in := range m.inputs {
		ev := in.dev.Update()
		if !ev.Active() {
			continue
		}
		in.counts.add(ev.Flags)
		events = append(events, Event{
			Timestamp: now,
			Input:     in.name,
			Flags:     ev.Flags,
			State:     ev.State,
		})
	}
	return events
}

// States returns a snapshot of every input.
func (m *Monitor) States() []InputState {
	out := make([]InputState, len(m.inputs))
	for i, in := range m.inputs {
		out[i] = InputState{
			Name:   in.name,
			Kind:   in.kind,
			State:  in.dev.State(),
			Counts: in.counts,
		}
	}
	return out
}

// Suppress changes the suppression mask of a named input.
func (m *Monitor) Suppress(name string, flags button.Flags) error {
	in, ok := m.byName[name]
	if !ok {
		return fmt.Errorf("unknown input %q", name)
	}
	in.dev.Suppress(flags)
	return nil
}

// CheckHeartbeat returns heartbeat data if the interval has elapsed since the
// last heartbeat (or startup). Returns nil if the interval has not elapsed,
// or if interval is <= 0 (disabled).
func (m *Monitor) CheckHeartbeat(now time.Time, interval time.Duration) *HeartbeatData {
	if interval <= 0 {
		return nil
	}

	if now.Sub(m.lastHeartbeat) < interval {
		return nil
	}

	m.lastHeartbeat = now
	return &HeartbeatData{
		Timestamp: now,
		Uptime:    now.Sub(m.startTime),
		Inputs:    m.States(),
	}
}
