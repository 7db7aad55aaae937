package elm

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Initialize drives the engine through the fixed configuration sequence that
// brings an interpreter with unknown state to a known-good one:
//
//	reset -> echo off -> headers/linefeeds -> automatic protocol
//
// The first engine error or unrecognized reply aborts the sequence with an
// InitError naming the step that failed.
func Initialize(e *Engine) error {
	if err := reset(e); err != nil {
		return &InitError{Step: StepReset, Cause: err}
	}

	// The echo setting is what makes the rest of the framing predictable, so
	// a single unexpected reply here gets one more chance before faulting.
	if err := expectOK(e, CmdEchoOff); err != nil {
		if err = expectOK(e, CmdEchoOff); err != nil {
			return &InitError{Step: StepEchoOff, Cause: err}
		}
	}

	headers := CmdHeadersOff
	if e.cfg.Headers {
		headers = CmdHeadersOn
	}
	if err := expectOK(e, headers); err != nil {
		return &InitError{Step: StepHeaders, Cause: err}
	}
	if err := expectOK(e, CmdLinefeedsOff); err != nil {
		return &InitError{Step: StepHeaders, Cause: err}
	}

	if err := expectOK(e, CmdProtocolAuto); err != nil {
		return &InitError{Step: StepProtocol, Cause: err}
	}

	e.log.Info("interpreter ready",
		zap.Bool("headers", e.cfg.Headers),
	)
	return nil
}

// reset issues ATZ and verifies the identification banner. The interpreter
// needs a moment after a reset before it accepts the next command.
func reset(e *Engine) error {
	resp, err := e.Send(CmdReset)
	if err != nil {
		return err
	}

	banner := strings.Join(resp.Lines, " ")
	if resp.Kind != KindOK || !strings.Contains(banner, "ELM") {
		return fmt.Errorf("no identification banner, got %q", banner)
	}
	e.log.Debug("identification banner", zap.String("banner", banner))

	time.Sleep(e.cfg.SettleDelay)
	return nil
}

// expectOK sends a configuration command that must be acknowledged with a
// bare OK and nothing else.
func expectOK(e *Engine, cmd Command) error {
	resp, err := e.Send(cmd)
	if err != nil {
		return err
	}
	if resp.Kind != KindOK || len(resp.Lines) != 0 {
		return fmt.Errorf("unexpected reply to %s: %s %v", cmd, resp.Kind, resp.Lines)
	}
	return nil
}
