package elm

import (
	"bytes"
	"io"
	"strings"
	"sync"
)

// TestTransport is an in-memory Transport scripted with canned interpreter
// replies. A Write looks up the reply for the command that was written and
// queues its bytes for subsequent Reads; an empty queue reads as io.EOF, the
// way a serial port read timeout surfaces.
//
// Exported so facade-level tests can drive a full device without hardware.
type TestTransport struct {
	mu       sync.Mutex
	replies  map[string][]string
	fallback string
	pending  bytes.Buffer
	writes   []string
	writeErr error
	closed   bool
}

func NewTestTransport() *TestTransport {
	return &TestTransport{
		replies:  make(map[string][]string),
		fallback: "?\r\n\r\n>",
	}
}

// Stub registers replies for a command, consumed in order. The last reply is
// repeated once the queue is exhausted, so a single Stub covers retries.
func (t *TestTransport) Stub(cmd string, replies ...string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.replies[cmd] = append(t.replies[cmd], replies...)
}

// SetFallback replaces the reply used for commands without a stub. An empty
// fallback makes the transport stay silent, never producing a prompt.
func (t *TestTransport) SetFallback(raw string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fallback = raw
}

// SetWriteError makes every subsequent Write fail with err, before anything
// is recorded, the way a yanked cable does.
func (t *TestTransport) SetWriteError(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.writeErr = err
}

// Writes returns every command line written so far, CR stripped.
func (t *TestTransport) Writes() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.writes...)
}

func (t *TestTransport) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.writeErr != nil {
		return 0, t.writeErr
	}

	cmd := strings.TrimSuffix(string(p), "\r")
	t.writes = append(t.writes, cmd)

	reply := t.fallback
	if queue, ok := t.replies[cmd]; ok && len(queue) > 0 {
		reply = queue[0]
		if len(queue) > 1 {
			t.replies[cmd] = queue[1:]
		}
	}
	t.pending.WriteString(reply)
	return len(p), nil
}

func (t *TestTransport) Read(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.pending.Len() == 0 {
		return 0, io.EOF
	}
	return t.pending.Read(p)
}

func (t *TestTransport) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending.Reset()
	return nil
}

func (t *TestTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (t *TestTransport) Closed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}

// TestDialer hands out a prepared TestTransport.
type TestDialer struct {
	Transport *TestTransport
}

func (d TestDialer) Dial() (Transport, error) {
	return d.Transport, nil
}
