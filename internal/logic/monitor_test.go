package logic

import (
	"testing"
	"time"

	"github.com/sweeney/switchd/button"
	"github.com/sweeney/switchd/ticks"
)

// scriptedDevice returns one scripted event per Update, then inactive ones.
type scriptedDevice struct {
	events     []button.Event
	state      bool
	suppressed button.Flags
}

func (d *scriptedDevice) Update() button.Event {
	if len(d.events) == 0 {
		return button.Event{State: d.state}
	}
	ev := d.events[0]
	d.events = d.events[1:]
	d.state = ev.State
	ev.Flags &^= d.suppressed
	return ev
}

func (d *scriptedDevice) UpdateAt(ticks.Tick) button.Event { return d.Update() }
func (d *scriptedDevice) State() bool                     { return d.state }
func (d *scriptedDevice) Suppress(f button.Flags)         { d.suppressed = f }

var start = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func TestMonitorAddDuplicate(t *testing.T) {
	m := NewMonitor(start)
	if err := m.Add("a", "button", &scriptedDevice{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.Add("a", "toggle", &scriptedDevice{}); err == nil {
		t.Error("expected duplicate name to be rejected")
	}
	if m.Len() != 1 {
		t.Errorf("expected 1 input, got %d", m.Len())
	}
}

func TestMonitorPoll(t *testing.T) {
	m := NewMonitor(start)
	door := &scriptedDevice{events: []button.Event{
		{State: true, Flags: button.Pressed},
		{State: true},
		{State: false, Flags: button.Released | button.Clicked},
	}}
	lamp := &scriptedDevice{events: []button.Event{
		{State: true, Flags: button.Pressed | button.Toggled},
	}}
	m.Add("door", "button", door)
	m.Add("lamp", "toggle", lamp)

	now := start.Add(time.Second)
	events := m.Poll(now)
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Input != "door" || events[0].Flags != button.Pressed || !events[0].State {
		t.Errorf("unexpected first event: %+v", events[0])
	}
	if events[1].Input != "lamp" || events[1].Flags != button.Pressed|button.Toggled {
		t.Errorf("unexpected second event: %+v", events[1])
	}
	if !events[0].Timestamp.Equal(now) {
		t.Errorf("expected timestamp %v, got %v", now, events[0].Timestamp)
	}

	if events := m.Poll(now); events != nil {
		t.Errorf("expected no events, got %v", events)
	}

	events = m.Poll(now)
	if len(events) != 1 || events[0].Flags != button.Released|button.Clicked {
		t.Fatalf("expected release+click, got %v", events)
	}

	states := m.States()
	if len(states) != 2 {
		t.Fatalf("expected 2 states, got %d", len(states))
	}
	want := Counts{Pressed: 1, Released: 1, Clicked: 1}
	if states[0].Counts != want {
		t.Errorf("door counts: expected %+v, got %+v", want, states[0].Counts)
	}
	if states[0].State {
		t.Error("door should be released")
	}
	if !states[1].State || states[1].Counts.Toggled != 1 || states[1].Kind != "toggle" {
		t.Errorf("unexpected lamp state: %+v", states[1])
	}
}

func TestMonitorSuppress(t *testing.T) {
	m := NewMonitor(start)
	d := &scriptedDevice{events: []button.Event{{State: true, Flags: button.Pressed}}}
	m.Add("a", "button", d)

	if err := m.Suppress("a", button.Pressed); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if events := m.Poll(start); len(events) != 0 {
		t.Errorf("expected suppressed event, got %v", events)
	}
	if err := m.Suppress("b", button.None); err == nil {
		t.Error("expected error for unknown input")
	}
}

func TestCheckHeartbeat(t *testing.T) {
	m := NewMonitor(start)
	m.Add("a", "button", &scriptedDevice{})

	if hb := m.CheckHeartbeat(start.Add(time.Minute), 0); hb != nil {
		t.Error("expected nil when disabled")
	}
	if hb := m.CheckHeartbeat(start.Add(14*time.Minute), 15*time.Minute); hb != nil {
		t.Error("expected nil before interval")
	}

	hb := m.CheckHeartbeat(start.Add(15*time.Minute), 15*time.Minute)
	if hb == nil {
		t.Fatal("expected heartbeat")
	}
	if hb.Uptime != 15*time.Minute {
		t.Errorf("expected uptime 15m, got %v", hb.Uptime)
	}
	if len(hb.Inputs) != 1 || hb.Inputs[0].Name != "a" {
		t.Errorf("unexpected inputs: %+v", hb.Inputs)
	}

	if hb := m.CheckHeartbeat(start.Add(20*time.Minute), 15*time.Minute); hb != nil {
		t.Error("expected interval to restart from last heartbeat")
	}
}
