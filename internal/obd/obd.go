package obd

import (
	"errors"
	"fmt"

	"gobd2/internal/models"
	"gobd2/internal/obd/elm"
)

// DeviceState tracks whether OBD-II requests may be issued. It is owned by
// the facade and changes only through initialization and error paths.
type DeviceState int

const (
	Uninitialized DeviceState = iota
	Configuring
	Ready
	Faulted
)

func (s DeviceState) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Configuring:
		return "configuring"
	case Ready:
		return "ready"
	case Faulted:
		return "faulted"
	default:
		return "unknown"
	}
}

var (
	// ErrNotReady is returned by getters while the device is not in the
	// Ready state. The transport is never touched in that case.
	ErrNotReady = errors.New("device not ready")

	// ErrNoData is returned when the vehicle replied NO DATA: the request
	// was understood but there is nothing to report.
	ErrNoData = errors.New("no data for request")
)

// InterpreterError reports that the interpreter rejected a request instead of
// relaying it to the vehicle, e.g. with "?" or UNABLE TO CONNECT.
type InterpreterError struct {
	Request string
	Kind    elm.ErrorKind
}

func (e *InterpreterError) Error() string {
	return fmt.Sprintf("request %s: interpreter error: %s", e.Request, e.Kind)
}

// Provider abstracts access to vehicle data, so the real device and the mock
// are interchangeable at the call sites.
type Provider interface {
	GetVIN() (string, error)
	GetRPM() (float64, error)
	GetCoolantTemp() (float64, error)
	GetSpeed() (int, error)
	GetEngineLoad() (float64, error)
	GetFuelPressure() (float64, error)
	GetManifoldPressure() (float64, error)
	GetDTCs() ([]models.DTCEntry, error)
	Close() error
}

// Obd2 composes the AT engine and the codec into typed getters. It owns the
// engine (and through it the transport) exclusively.
type Obd2 struct {
	engine *elm.Engine
	state  DeviceState
}

var _ Provider = (*Obd2)(nil)

// New dials the transport, builds the engine and runs the initialization
// sequence once. Construction fails if the device ends up faulted.
func New(dialer elm.Dialer, cfg elm.Config) (*Obd2, error) {
	transport, err := dialer.Dial()
	if err != nil {
		return nil, fmt.Errorf("dial transport: %w", err)
	}
	return NewFromEngine(elm.NewEngine(transport, cfg))
}

// NewFromEngine runs the initialization sequence against an existing engine
// and returns a ready facade. On failure the engine's transport is released.
func NewFromEngine(engine *elm.Engine) (*Obd2, error) {
	o := &Obd2{engine: engine, state: Configuring}
	if err := elm.Initialize(engine); err != nil {
		o.state = Faulted
		engine.Close()
		return nil, err
	}
	o.state = Ready
	return o, nil
}

// State reports the current device state.
func (o *Obd2) State() DeviceState {
	return o.state
}

// Close releases the underlying transport.
func (o *Obd2) Close() error {
	if o.engine == nil {
		return nil
	}
	return o.engine.Close()
}

// GetVIN retrieves the vehicle identification number (mode 09 PID 02),
// reassembled across however many frames the vehicle needs.
func (o *Obd2) GetVIN() (string, error) {
	resp, err := o.query(PIDVIN.Request())
	if err != nil {
		return "", err
	}
	return decodeVIN(resp.Data), nil
}

// GetRPM retrieves the engine speed in rpm.
func (o *Obd2) GetRPM() (float64, error) {
	data, err := o.queryPID(PIDEngineRPM)
	if err != nil {
		return 0, err
	}
	return decodeRPM(data), nil
}

// GetCoolantTemp retrieves the engine coolant temperature in degrees Celsius.
func (o *Obd2) GetCoolantTemp() (float64, error) {
	data, err := o.queryPID(PIDCoolantTemp)
	if err != nil {
		return 0, err
	}
	return decodeTemperature(data), nil
}

// GetSpeed retrieves the vehicle speed in km/h.
func (o *Obd2) GetSpeed() (int, error) {
	data, err := o.queryPID(PIDVehicleSpeed)
	if err != nil {
		return 0, err
	}
	return decodeSpeed(data), nil
}

// GetEngineLoad retrieves the calculated engine load in percent.
func (o *Obd2) GetEngineLoad() (float64, error) {
	data, err := o.queryPID(PIDEngineLoad)
	if err != nil {
		return 0, err
	}
	return decodeLoad(data), nil
}

// GetFuelPressure retrieves the fuel pressure in kPa (gauge).
func (o *Obd2) GetFuelPressure() (float64, error) {
	data, err := o.queryPID(PIDFuelPressure)
	if err != nil {
		return 0, err
	}
	return decodeFuelPressure(data), nil
}

// GetManifoldPressure retrieves the intake manifold absolute pressure in kPa.
func (o *Obd2) GetManifoldPressure() (float64, error) {
	data, err := o.queryPID(PIDManifoldPressure)
	if err != nil {
		return 0, err
	}
	return decodeManifoldPressure(data), nil
}

// GetDTCInfo retrieves the trouble-code summary for the primary ECU.
func (o *Obd2) GetDTCInfo() (DTCInfo, error) {
	data, err := o.queryPID(PIDMonitorStatus)
	if err != nil {
		return DTCInfo{}, err
	}
	return decodeDTCInfo(data), nil
}

// GetDTCs retrieves the stored diagnostic trouble codes (mode 03). A NO DATA
// reply means no codes are stored and yields an empty list.
func (o *Obd2) GetDTCs() ([]models.DTCEntry, error) {
	resp, err := o.query(ModeRequest(0x03))
	if err != nil {
		if errors.Is(err, ErrNoData) {
			return nil, nil
		}
		return nil, err
	}
	return decodeDTCs(resp), nil
}

// ClearDTCs clears stored trouble codes and the malfunction indicator
// (mode 04). Use with care: it also resets readiness monitors. Adapters
// acknowledge the clear with either a 44 echo or a bare OK.
func (o *Obd2) ClearDTCs() error {
	req := ModeRequest(0x04)
	resp, err := o.send(req)
	if err != nil {
		return err
	}
	if len(resp.Lines) == 0 {
		return nil
	}
	_, err = Decode(req, resp.Lines)
	return err
}

// send runs one encode-send cycle and maps interpreter-level replies onto the
// error taxonomy. It requires the Ready state and marks the device faulted
// when the transport fails underneath.
func (o *Obd2) send(req Request) (elm.Response, error) {
	if o.state != Ready {
		return elm.Response{}, ErrNotReady
	}

	resp, err := o.engine.Send(elm.Raw(req.Encode()))
	if err != nil {
		var ee *elm.EngineError
		if errors.As(err, &ee) && ee.Kind == elm.TransportFailure {
			o.state = Faulted
		}
		return elm.Response{}, fmt.Errorf("request %s: %w", req.Encode(), err)
	}

	switch resp.Kind {
	case elm.KindNoData:
		return elm.Response{}, fmt.Errorf("request %s: %w", req.Encode(), ErrNoData)
	case elm.KindError:
		return elm.Response{}, &InterpreterError{Request: req.Encode(), Kind: resp.Err}
	}

	return resp, nil
}

// query is send plus payload decoding.
func (o *Obd2) query(req Request) (*Response, error) {
	resp, err := o.send(req)
	if err != nil {
		return nil, err
	}
	return Decode(req, resp.Lines)
}

// queryPID is query plus the PID's width validation.
func (o *Obd2) queryPID(p PID) ([]byte, error) {
	resp, err := o.query(p.Request())
	if err != nil {
		return nil, err
	}
	return p.payload(resp)
}
