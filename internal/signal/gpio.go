package signal

import (
	"fmt"
	"log"

	"periph.io/x/periph/conn/gpio"
	"periph.io/x/periph/conn/gpio/gpioreg"
	"periph.io/x/periph/host"
)

// GPIO keys a digital output pin
type GPIO struct {
	pin       gpio.PinOut
	activeLow bool
	logger    *log.Logger
}

// NewGPIO wraps an already opened pin and drives it to the off level
func NewGPIO(pin gpio.PinOut, activeLow bool, logger *log.Logger) *GPIO {
	g := &GPIO{pin: pin, activeLow: activeLow, logger: logger}
	g.Off()
	return g
}

// OpenGPIO initializes the host drivers and looks up the pin by name (e.g. "GPIO17")
func OpenGPIO(name string, activeLow bool, logger *log.Logger) (*GPIO, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("gpio host init: %w", err)
	}
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, fmt.Errorf("gpio pin %q not found", name)
	}
	return NewGPIO(pin, activeLow, logger), nil
}

func (g *GPIO) On()  { g.out(!g.activeLow) }
func (g *GPIO) Off() { g.out(g.activeLow) }

func (g *GPIO) out(high bool) {
	level := gpio.Low
	if high {
		level = gpio.High
	}
	if err := g.pin.Out(level); err != nil && g.logger != nil {
		g.logger.Printf("GPIO %s: %v", g.pin, err)
	}
}
