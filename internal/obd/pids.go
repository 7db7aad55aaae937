package obd

import (
	"fmt"
	"strings"
)

// PID identifies a data item within an OBD-II service, with the payload width
// a positive response must carry. Width 0 means variable length.
type PID struct {
	Mode  byte
	Code  byte
	Desc  string
	Width int
}

// The standard set used by the typed getters.
var (
	PIDMonitorStatus    = PID{Mode: 0x01, Code: 0x01, Desc: "Monitor status since DTCs cleared", Width: 4}
	PIDEngineLoad       = PID{Mode: 0x01, Code: 0x04, Desc: "Calculated engine load", Width: 1}
	PIDCoolantTemp      = PID{Mode: 0x01, Code: 0x05, Desc: "Engine coolant temperature", Width: 1}
	PIDFuelPressure     = PID{Mode: 0x01, Code: 0x0A, Desc: "Fuel pressure", Width: 1}
	PIDManifoldPressure = PID{Mode: 0x01, Code: 0x0B, Desc: "Intake manifold absolute pressure", Width: 1}
	PIDEngineRPM        = PID{Mode: 0x01, Code: 0x0C, Desc: "Engine RPM", Width: 2}
	PIDVehicleSpeed     = PID{Mode: 0x01, Code: 0x0D, Desc: "Vehicle speed", Width: 1}
	PIDVIN              = PID{Mode: 0x09, Code: 0x02, Desc: "Vehicle identification number", Width: 0}
)

func (p PID) Request() Request {
	return NewRequest(p.Mode, p.Code)
}

func (p PID) String() string {
	return fmt.Sprintf("%02X%02X", p.Mode, p.Code)
}

// payload returns the response data after checking it against the PID's
// expected width.
func (p PID) payload(resp *Response) ([]byte, error) {
	if p.Width > 0 && len(resp.Data) != p.Width {
		return nil, &CodecError{Kind: IncompleteData, Mode: p.Mode, PID: p.Code,
			Detail: fmt.Sprintf("expected %d data bytes, got %d", p.Width, len(resp.Data))}
	}
	return resp.Data, nil
}

// Scalings below are the documented linear conversions for each PID.

// decodeRPM: ((A*256)+B) / 4, in increments of 0.25 rpm.
func decodeRPM(data []byte) float64 {
	return float64(uint16(data[0])<<8|uint16(data[1])) / 4
}

// decodeTemperature: A - 40, in degrees Celsius.
func decodeTemperature(data []byte) float64 {
	return float64(data[0]) - 40
}

// decodeSpeed: A, in km/h.
func decodeSpeed(data []byte) int {
	return int(data[0])
}

// decodeLoad: A * 100 / 255, in percent.
func decodeLoad(data []byte) float64 {
	return float64(data[0]) * 100 / 255
}

// decodeFuelPressure: A * 3, in kPa (gauge).
func decodeFuelPressure(data []byte) float64 {
	return float64(data[0]) * 3
}

// decodeManifoldPressure: A, in kPa (absolute).
func decodeManifoldPressure(data []byte) float64 {
	return float64(data[0])
}

// decodeVIN interprets the payload of every frame, in arrival order, as
// ASCII. Sequence counters and padding are not printable, so dropping the
// non-printable bytes leaves exactly the 17 VIN characters.
func decodeVIN(data []byte) string {
	var sb strings.Builder
	for _, b := range data {
		if b >= 0x21 && b <= 0x7E {
			sb.WriteByte(b)
		}
	}
	return sb.String()
}
