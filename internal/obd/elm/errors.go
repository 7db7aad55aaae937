package elm

import (
	"fmt"
)

// FailureKind classifies what went wrong during a send.
type FailureKind int

const (
	// Timeout means the prompt was never observed within the retry budget.
	Timeout FailureKind = iota
	// TransportFailure means the underlying channel returned an error.
	TransportFailure
	// GarbledResponse means bytes arrived but could not be framed into lines.
	GarbledResponse
)

func (k FailureKind) String() string {
	switch k {
	case Timeout:
		return "timeout"
	case TransportFailure:
		return "transport failure"
	case GarbledResponse:
		return "garbled response"
	default:
		return "unknown"
	}
}

// EngineError is returned by Engine.Send when an exchange could not be
// completed. Cmd names the command whose exchange failed.
type EngineError struct {
	Kind FailureKind
	Cmd  string
	Err  error
}

func (e *EngineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s sending %q: %v", e.Kind, e.Cmd, e.Err)
	}
	return fmt.Sprintf("%s sending %q", e.Kind, e.Cmd)
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

// Step identifies a stage of the initialization sequence.
type Step int

const (
	StepReset Step = iota
	StepEchoOff
	StepHeaders
	StepProtocol
)

func (s Step) String() string {
	switch s {
	case StepReset:
		return "reset"
	case StepEchoOff:
		return "echo off"
	case StepHeaders:
		return "headers"
	case StepProtocol:
		return "protocol select"
	default:
		return "unknown"
	}
}

// InitError reports which initialization step failed and why. The device is
// left in a faulted state and must be re-initialized before use.
type InitError struct {
	Step  Step
	Cause error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("initialization failed at %s step: %v", e.Step, e.Cause)
}

func (e *InitError) Unwrap() error {
	return e.Cause
}
