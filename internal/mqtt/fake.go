package mqtt

import (
	"errors"

	"github.com/sweeney/switchd/button"
	"github.com/sweeney/switchd/internal/logic"
)

// ErrClosed is returned by FakePublisher after Close.
var ErrClosed = errors.New("mqtt: publisher closed")

// FakePublisher records what would have been sent to the broker. Payloads
// are formatted exactly as RealPublisher formats them.
type FakePublisher struct {
	Events   []logic.Event
	Payloads [][]byte

	SystemEvents   []SystemEvent
	SystemPayloads [][]byte

	// byInput holds the flags published for each input, in order.
	byInput map[string][]button.Flags

	// PublishError and PublishSystemError fail the matching call without
	// recording anything.
	PublishError       error
	PublishSystemError error

	Closed    bool
	Connected bool
}

// NewFakePublisher returns a connected FakePublisher.
func NewFakePublisher() *FakePublisher {
	return &FakePublisher{
		Connected: true,
		byInput:   make(map[string][]button.Flags),
	}
}

// Publish formats and records a switch event.
func (f *FakePublisher) Publish(event logic.Event) error {
	if f.Closed {
		return ErrClosed
	}
	if f.PublishError != nil {
		return f.PublishError
	}
	payload, err := FormatPayload(event)
	if err != nil {
		return err
	}
	f.Events = append(f.Events, event)
	f.Payloads = append(f.Payloads, payload)
	f.byInput[event.Input] = append(f.byInput[event.Input], event.Flags)
	return nil
}

// PublishSystem formats and records a lifecycle event.
func (f *FakePublisher) PublishSystem(event SystemEvent) error {
	if f.Closed {
		return ErrClosed
	}
	if f.PublishSystemError != nil {
		return f.PublishSystemError
	}
	payload, err := FormatSystemPayload(event)
	if err != nil {
		return err
	}
	f.SystemEvents = append(f.SystemEvents, event)
	f.SystemPayloads = append(f.SystemPayloads, payload)
	return nil
}

// Flags returns the flags published for input, oldest first.
func (f *FakePublisher) Flags(input string) []button.Flags {
	return f.byInput[input]
}

// Lifecycle returns the names of the published system events, oldest first.
func (f *FakePublisher) Lifecycle() []string {
	names := make([]string, len(f.SystemEvents))
	for i, e := range f.SystemEvents {
		names[i] = e.Event
	}
	return names
}

// Close marks the publisher closed; later publishes fail with ErrClosed.
func (f *FakePublisher) Close() error {
	f.Closed = true
	return nil
}

// IsConnected returns Connected.
func (f *FakePublisher) IsConnected() bool {
	return f.Connected
}
