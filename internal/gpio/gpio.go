// Package gpio provides digital input pins with hardware abstraction.
// Real pins use the Linux GPIO character device or periph.io.
// The fake implementation allows testing without hardware.
package gpio

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/sweeney/switchd/button"
)

// Pin is an input line. It satisfies button.Pin.
type Pin interface {
	// Read returns the raw electrical level (true = high).
	// Read failures are logged and the last good level is returned.
	Read() bool

	// Close releases the line.
	Close() error
}

// Opener hands out input pins by BCM number.
type Opener interface {
	Open(pin int, pull button.Pull) (Pin, error)
	Close() error
}

// Backend names accepted by NewOpener.
const (
	BackendGPIOCDev = "gpiocdev"
	BackendPeriph   = "periph"
)

// DefaultChip is the gpiocdev chip on a Raspberry Pi.
const DefaultChip = "gpiochip0"

// NewOpener returns the backend with the given name.
func NewOpener(backend, chip string) (Opener, error) {
	switch backend {
	case "", BackendGPIOCDev:
		if chip == "" {
			chip = DefaultChip
		}
		c, err := NewChip(chip)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendPeriph:
		p, err := NewPeriph()
		if err != nil {
			return nil, err
		}
		return p, nil
	}
	return nil, fmt.Errorf("unknown gpio backend %q", backend)
}

// latch turns a fallible hardware read into the infallible level a
// debouncer expects: errors keep the last good level and are logged once
// per failure streak.
type latch struct {
	name    string
	last    bool
	failing bool
}

func (l *latch) update(level bool, err error) bool {
	if err != nil {
		if !l.failing {
			log.WithError(err).WithField("pin", l.name).Warn("gpio read failed, holding last level")
			l.failing = true
		}
		return l.last
	}
	if l.failing {
		log.WithField("pin", l.name).Info("gpio read recovered")
		l.failing = false
	}
	l.last = level
	return level
}
