package elm

import (
	"errors"
	"io"
	"sync"
	"time"

	"github.com/avast/retry-go"
	"go.uber.org/zap"
)

// pollInterval is how long the read loop idles when the transport has no
// pending bytes. Real serial drivers block for their own read timeout, so
// this only matters for fakes that return immediately.
const pollInterval = 5 * time.Millisecond

// Engine drives the request-response cycle with the interpreter. It owns the
// Transport exclusively: no other code may write to the channel, and a mutex
// guarantees a single outstanding command at a time, which the half-duplex
// interpreter requires.
type Engine struct {
	mu        sync.Mutex
	transport Transport
	cfg       Config
	log       *zap.Logger
}

// NewEngine wraps an established transport. The engine takes ownership of it;
// callers must not read from or write to the transport afterwards.
func NewEngine(transport Transport, cfg Config) *Engine {
	cfg.setDefaults()
	return &Engine{
		transport: transport,
		cfg:       cfg,
		log:       cfg.Logger,
	}
}

// Send writes the command followed by a carriage return and reads lines until
// the interpreter's prompt is observed. Timeouts and garbled exchanges are
// retried up to the configured attempt budget; transport failures are
// surfaced immediately.
func (e *Engine) Send(cmd Command) (Response, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var resp Response
	err := retry.Do(
		func() error {
			r, err := e.exchange(cmd.String())
			if err != nil {
				return err
			}
			resp = r
			return nil
		},
		retry.Attempts(e.cfg.Attempts),
		retry.Delay(e.cfg.RetryDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			var ee *EngineError
			return errors.As(err, &ee) && ee.Kind != TransportFailure
		}),
	)
	if err != nil {
		return Response{}, err
	}
	return resp, nil
}

// Close releases the underlying transport.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.transport.Close()
}

// exchange performs a single attempt: discard stale input, write the wire
// line, accumulate response lines until the prompt.
func (e *Engine) exchange(wire string) (Response, error) {
	if err := e.transport.Flush(); err != nil {
		return Response{}, &EngineError{Kind: TransportFailure, Cmd: wire, Err: err}
	}

	e.log.Debug("write", zap.String("cmd", wire))
	if _, err := e.transport.Write([]byte(wire + "\r")); err != nil {
		return Response{}, &EngineError{Kind: TransportFailure, Cmd: wire, Err: err}
	}

	var lines []string
	for cycle := uint(0); ; cycle++ {
		raw, err := e.readUntilPrompt()
		if err != nil {
			var ee *EngineError
			if !errors.As(err, &ee) {
				return Response{}, &EngineError{Kind: TransportFailure, Cmd: wire, Err: err}
			}
			ee.Cmd = wire
			if ee.Kind == Timeout && hasGarbage(raw) {
				ee.Kind = GarbledResponse
			}
			return Response{}, ee
		}

		got := splitLines(raw)
		got = stripEcho(got, wire)
		got, searching := dropSearching(got)
		if garbledLines(got) {
			return Response{}, &EngineError{Kind: GarbledResponse, Cmd: wire}
		}
		lines = append(lines, got...)

		// The interpreter prints SEARCHING... while probing the bus and the
		// actual data arrives in a later window. Grant bounded extra cycles.
		if searching && len(lines) == 0 && cycle < e.cfg.Attempts {
			continue
		}
		break
	}

	resp := classify(lines)
	e.log.Debug("read",
		zap.String("cmd", wire),
		zap.Stringer("kind", resp.Kind),
		zap.Strings("lines", resp.Lines),
	)
	return resp, nil
}

// readUntilPrompt accumulates bytes until the prompt character or the
// per-attempt deadline. The deadline is extended whenever bytes arrive, so a
// slow but live exchange is not cut off mid-line.
func (e *Engine) readUntilPrompt() ([]byte, error) {
	var acc []byte
	buf := make([]byte, 64)

	deadline := time.Now().Add(e.cfg.ReadTimeout)
	for time.Now().Before(deadline) {
		n, err := e.transport.Read(buf)
		if err != nil && !isReadTimeout(err) {
			return acc, &EngineError{Kind: TransportFailure, Err: err}
		}
		if n == 0 {
			time.Sleep(pollInterval)
			continue
		}

		for _, b := range buf[:n] {
			if b == Prompt {
				return acc, nil
			}
			acc = append(acc, b)
		}
		deadline = time.Now().Add(e.cfg.ReadTimeout)
	}

	return acc, &EngineError{Kind: Timeout}
}

// isReadTimeout reports whether a read error just means "no data yet".
// tarm/serial surfaces its ReadTimeout as io.EOF.
func isReadTimeout(err error) bool {
	return errors.Is(err, io.EOF)
}

// hasGarbage reports whether raw bytes contain anything that cannot belong to
// a textual interpreter response. Typical cause is a baud rate mismatch.
func hasGarbage(raw []byte) bool {
	for _, b := range raw {
		if b == '\r' || b == '\n' || b == 0 {
			continue
		}
		if b < 0x20 || b > 0x7E {
			return true
		}
	}
	return false
}

func garbledLines(lines []string) bool {
	for _, l := range lines {
		for _, r := range l {
			if r < 0x20 || r > 0x7E {
				return true
			}
		}
	}
	return false
}
