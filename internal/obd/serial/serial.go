// Package serial provides an elm.Dialer backed by a classic serial port,
// which is how ELM327 dongles (USB, Bluetooth rfcomm) usually show up.
package serial

import (
	"fmt"
	"time"

	"gobd2/internal/obd/elm"

	"github.com/tarm/serial"
)

// readTimeout keeps port reads short so the engine's own per-attempt
// deadline stays in charge.
const readTimeout = 100 * time.Millisecond

// Dialer opens a serial device as an elm.Transport.
type Dialer struct {
	// Port is the device path, e.g. /dev/ttyUSB0 or COM3.
	Port string
	// Baud is the line speed; ELM327 clones default to 38400.
	Baud int
}

func (d Dialer) Dial() (elm.Transport, error) {
	cfg := &serial.Config{
		Name:        d.Port,
		Baud:        d.Baud,
		ReadTimeout: readTimeout,
		Size:        8,
		Parity:      serial.ParityNone,
		StopBits:    serial.Stop1,
	}

	port, err := serial.OpenPort(cfg)
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", d.Port, err)
	}

	// Give the interpreter a moment after the port asserts DTR.
	time.Sleep(100 * time.Millisecond)

	return &transport{port: port}, nil
}

type transport struct {
	port *serial.Port
}

func (t *transport) Read(p []byte) (int, error) {
	return t.port.Read(p)
}

func (t *transport) Write(p []byte) (int, error) {
	return t.port.Write(p)
}

func (t *transport) Flush() error {
	return t.port.Flush()
}

func (t *transport) Close() error {
	return t.port.Close()
}
