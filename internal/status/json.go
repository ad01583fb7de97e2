package status

import (
	"encoding/json"
	"time"

	"github.com/sweeney/switchd/internal/logic"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string      `json:"event,omitempty"`
	Reason        string      `json:"reason,omitempty"`
	Inputs        []InputJSON `json:"inputs"`
	UptimeSeconds int64       `json:"uptime_seconds"`
	StartTime     string      `json:"start_time"`
	Timestamp     string      `json:"timestamp"`
	MQTT          MQTTStatus  `json:"mqtt"`
	Config        ConfigJSON  `json:"config"`
}

// InputJSON is the JSON representation of one input.
type InputJSON struct {
	Name   string     `json:"name"`
	Kind   string     `json:"kind"`
	State  string     `json:"state"`
	Counts CountsJSON `json:"event_counts"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
	ClientID  string `json:"client_id"`
}

// CountsJSON is the JSON representation of event counts.
type CountsJSON struct {
	Pressed       int `json:"pressed"`
	Released      int `json:"released"`
	Toggled       int `json:"toggled"`
	LongPressed   int `json:"long_pressed"`
	Clicked       int `json:"clicked"`
	RepeatClicked int `json:"repeat_clicked"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	PollMs      int64  `json:"poll_ms"`
	HeartbeatMs int64  `json:"heartbeat_ms"`
	TickBits    uint   `json:"tick_bits"`
	Backend     string `json:"backend"`
	HTTPAddr    string `json:"http_addr"`
}

func stateString(on bool) string {
	if on {
		return "ON"
	}
	return "OFF"
}

func countsJSON(c logic.Counts) CountsJSON {
	return CountsJSON{
		Pressed:       c.Pressed,
		Released:      c.Released,
		Toggled:       c.Toggled,
		LongPressed:   c.LongPressed,
		Clicked:       c.Clicked,
		RepeatClicked: c.RepeatClicked,
	}
}

func buildInner(snap Snapshot) StatusInner {
	inputs := make([]InputJSON, len(snap.Inputs))
	for i, in := range snap.Inputs {
		inputs[i] = InputJSON{
			Name:   in.Name,
			Kind:   in.Kind,
			State:  stateString(in.State),
			Counts: countsJSON(in.Counts),
		}
	}

	return StatusInner{
		Inputs:        inputs,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT: MQTTStatus{
			Connected: snap.MQTTConnected,
			Broker:    snap.Config.Broker,
			ClientID:  snap.Config.ClientID,
		},
		Config: ConfigJSON{
			PollMs:      snap.Config.PollMs,
			HeartbeatMs: snap.Config.HeartbeatMs,
			TickBits:    snap.Config.TickBits,
			Backend:     snap.Config.Backend,
			HTTPAddr:    snap.Config.HTTPAddr,
		},
	}
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
