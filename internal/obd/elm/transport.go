package elm

import (
	"io"
)

//go:generate mockgen -source=transport.go -destination=mock_transport.go -package=elm

// Transport is an established, half-duplex byte stream to an ELM327-class
// interpreter.
//
// A Transport is assumed to be already connected and ready for use. Reads are
// expected to return quickly when no data is pending (a short driver-level
// read timeout), so the engine can enforce its own per-attempt deadline.
// Typical implementations are serial ports, FTDI USB handles, or in-memory
// fakes used for testing.
type Transport interface {
	io.ReadWriteCloser

	// Flush discards any buffered, unread input so a fresh exchange does not
	// pick up leftovers of a previous one.
	Flush() error
}

// Dialer opens a Transport to an interpreter.
//
// It abstracts how the connection is created (serial port path, USB device,
// test double) and is used during construction only. Once a Transport is
// obtained, the Dialer is no longer needed.
type Dialer interface {
	Dial() (Transport, error)
}
