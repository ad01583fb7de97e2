package gpio

import (
	"fmt"
	"strconv"

	pgpio "periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/sweeney/switchd/button"
)

// Periph opens pins through the periph.io host drivers.
type Periph struct{}

// NewPeriph initializes the periph.io host drivers.
func NewPeriph() (*Periph, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init periph host: %w", err)
	}
	return &Periph{}, nil
}

// Open looks the pin up by GPIO number and configures it as an input.
func (p *Periph) Open(pin int, pull button.Pull) (Pin, error) {
	name := strconv.Itoa(pin)
	io := gpioreg.ByName(name)
	if io == nil {
		return nil, fmt.Errorf("no such gpio %s", name)
	}
	if err := io.In(periphPull(pull), pgpio.NoEdge); err != nil {
		return nil, fmt.Errorf("configure %s: %w", io, err)
	}
	return &periphPin{io: io}, nil
}

// Close is a no-op; periph drivers stay loaded for the process lifetime.
func (p *Periph) Close() error {
	return nil
}

func periphPull(p button.Pull) pgpio.Pull {
	switch p {
	case button.PullUp:
		return pgpio.PullUp
	case button.PullDown:
		return pgpio.PullDown
	}
	return pgpio.Float
}

type periphPin struct {
	io pgpio.PinIO
}

func (p *periphPin) Read() bool {
	return p.io.Read() == pgpio.High
}

func (p *periphPin) Close() error {
	return p.io.Halt()
}
