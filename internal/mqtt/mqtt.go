// Package mqtt provides MQTT publishing with abstraction for testing.
package mqtt

import (
	"encoding/json"
	"time"

	"github.com/sweeney/switchd/internal/logic"
)

// TopicPrefix is the root of every switchd topic.
const TopicPrefix = "switchd"

// EventsTopic is the topic switch events for a client are published on.
func EventsTopic(clientID string) string {
	return TopicPrefix + "/" + clientID + "/events"
}

// SystemTopic is the topic for lifecycle events of a client.
func SystemTopic(clientID string) string {
	return TopicPrefix + "/" + clientID + "/system"
}

// Publisher publishes events to MQTT.
type Publisher interface {
	// Publish sends a switch event to the broker.
	// Returns error if publishing fails (should not crash the process).
	Publish(event logic.Event) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// SystemEvent represents a system lifecycle event (e.g., startup, shutdown, heartbeat).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "SHUTDOWN", "HEARTBEAT"
	Reason     string // e.g., "SIGTERM", "SIGINT" (shutdown only)
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// Payload represents the MQTT message payload structure.
type Payload struct {
	Switch SwitchPayload `json:"switch"`
}

// SwitchPayload contains the switch event details.
type SwitchPayload struct {
	Timestamp string   `json:"timestamp"`
	Input     string   `json:"input"`
	State     string   `json:"state"`
	Events    []string `json:"events"`
}

// StateString renders a logical state.
func StateString(on bool) string {
	if on {
		return "ON"
	}
	return "OFF"
}

// FormatPayload creates the JSON payload for a switch event.
func FormatPayload(event logic.Event) ([]byte, error) {
	payload := Payload{
		Switch: SwitchPayload{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339Nano),
			Input:     event.Input,
			State:     StateString(event.State),
			Events:    event.Flags.Names(),
		},
	}
	return json.Marshal(payload)
}

// SystemPayload represents the MQTT message payload for system events.
// Used for simple events (LWT, RECONNECTED) that don't carry a full status snapshot.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full status snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}
