package elm_test

import (
	"errors"
	"reflect"
	"testing"

	"gobd2/internal/obd/elm"
)

func stubHappyInit(tr *elm.TestTransport) {
	tr.Stub("ATZ", "ATZ\r\nELM327 v1.5\r\n\r\n>")
	tr.Stub("ATE0", "ATE0\r\nOK\r\n\r\n>")
	tr.Stub("ATH0", "OK\r\n\r\n>")
	tr.Stub("ATH1", "OK\r\n\r\n>")
	tr.Stub("ATL0", "OK\r\n\r\n>")
	tr.Stub("ATSP0", "OK\r\n\r\n>")
}

func TestInitializeReachesReady(t *testing.T) {
	tr := elm.NewTestTransport()
	stubHappyInit(tr)

	engine := elm.NewEngine(tr, testConfig())
	if err := elm.Initialize(engine); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"ATZ", "ATE0", "ATH0", "ATL0", "ATSP0"}
	if got := tr.Writes(); !reflect.DeepEqual(got, want) {
		t.Errorf("command sequence = %v, want %v", got, want)
	}
}

func TestInitializeHeadersOn(t *testing.T) {
	tr := elm.NewTestTransport()
	stubHappyInit(tr)

	cfg := testConfig()
	cfg.Headers = true
	engine := elm.NewEngine(tr, cfg)
	if err := elm.Initialize(engine); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"ATZ", "ATE0", "ATH1", "ATL0", "ATSP0"}
	if got := tr.Writes(); !reflect.DeepEqual(got, want) {
		t.Errorf("command sequence = %v, want %v", got, want)
	}
}

func TestInitializeEchoOffFailure(t *testing.T) {
	tr := elm.NewTestTransport()
	tr.Stub("ATZ", "ATZ\r\nELM327 v1.5\r\n\r\n>")
	// ATE0 falls through to the "?" fallback, on the retry too.

	engine := elm.NewEngine(tr, testConfig())
	err := elm.Initialize(engine)
	if err == nil {
		t.Fatal("expected initialization to fail")
	}

	var ie *elm.InitError
	if !errors.As(err, &ie) {
		t.Fatalf("error %T is not an InitError", err)
	}
	if ie.Step != elm.StepEchoOff {
		t.Errorf("failing step = %v, want %v", ie.Step, elm.StepEchoOff)
	}

	// The echo-off step gets exactly one retry before faulting.
	want := []string{"ATZ", "ATE0", "ATE0"}
	if got := tr.Writes(); !reflect.DeepEqual(got, want) {
		t.Errorf("command sequence = %v, want %v", got, want)
	}
}

func TestInitializeMissingBanner(t *testing.T) {
	tr := elm.NewTestTransport()
	tr.Stub("ATZ", "GARBAGE v0.0\r\n\r\n>")

	engine := elm.NewEngine(tr, testConfig())
	err := elm.Initialize(engine)

	var ie *elm.InitError
	if !errors.As(err, &ie) {
		t.Fatalf("error %T is not an InitError", err)
	}
	if ie.Step != elm.StepReset {
		t.Errorf("failing step = %v, want %v", ie.Step, elm.StepReset)
	}
}

func TestInitializeProtocolFailure(t *testing.T) {
	tr := elm.NewTestTransport()
	tr.Stub("ATZ", "ATZ\r\nELM327 v1.5\r\n\r\n>")
	tr.Stub("ATE0", "ATE0\r\nOK\r\n\r\n>")
	tr.Stub("ATH0", "OK\r\n\r\n>")
	tr.Stub("ATL0", "OK\r\n\r\n>")
	tr.Stub("ATSP0", "UNABLE TO CONNECT\r\n\r\n>")

	engine := elm.NewEngine(tr, testConfig())
	err := elm.Initialize(engine)

	var ie *elm.InitError
	if !errors.As(err, &ie) {
		t.Fatalf("error %T is not an InitError", err)
	}
	if ie.Step != elm.StepProtocol {
		t.Errorf("failing step = %v, want %v", ie.Step, elm.StepProtocol)
	}
}
