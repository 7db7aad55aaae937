package cmd

import "runtime"

// defaultPort returns the usual serial device for an ELM327 dongle on the
// current platform. It is only a flag default, not device discovery.
func defaultPort() string {
	switch runtime.GOOS {
	case "windows":
		return "COM3"
	case "darwin":
		return "/dev/tty.usbserial"
	default:
		return "/dev/ttyUSB0"
	}
}
