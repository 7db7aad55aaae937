package elm

import (
	"reflect"
	"testing"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "CR terminated lines",
			input:    "41 0C 1A F8\r\r",
			expected: []string{"41 0C 1A F8"},
		},
		{
			name:     "CRLF terminated lines",
			input:    "ATZ\r\nELM327 v1.5\r\n",
			expected: []string{"ATZ", "ELM327 v1.5"},
		},
		{
			name:     "empty lines dropped",
			input:    "\r\n\r\nOK\r\n\r\n",
			expected: []string{"OK"},
		},
		{
			name:     "NUL bytes dropped",
			input:    "O\x00K\r",
			expected: []string{"OK"},
		},
		{
			name:     "surrounding spaces trimmed",
			input:    "  SEARCHING...  \r41 00 BE 1F\r",
			expected: []string{"SEARCHING...", "41 00 BE 1F"},
		},
		{
			name:     "no data at all",
			input:    "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitLines([]byte(tt.input))
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("splitLines(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		kind     ResponseKind
		errKind  ErrorKind
		payload  []string
	}{
		{
			name:  "bare OK",
			lines: []string{"OK"},
			kind:  KindOK,
		},
		{
			name:  "no data",
			lines: []string{"NO DATA"},
			kind:  KindNoData,
		},
		{
			name:    "unknown command",
			lines:   []string{"?"},
			kind:    KindError,
			errKind: ErrorUnknownCommand,
		},
		{
			name:    "unable to connect",
			lines:   []string{"UNABLE TO CONNECT"},
			kind:    KindError,
			errKind: ErrorUnableToConnect,
		},
		{
			name:    "payload lines returned verbatim",
			lines:   []string{"41 0C 1A F8"},
			kind:    KindOK,
			payload: []string{"41 0C 1A F8"},
		},
		{
			name:    "payload with trailing OK marker",
			lines:   []string{"ELM327 v1.5", "OK"},
			kind:    KindOK,
			payload: []string{"ELM327 v1.5"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := classify(tt.lines)
			if resp.Kind != tt.kind {
				t.Errorf("kind = %v, want %v", resp.Kind, tt.kind)
			}
			if tt.kind == KindError && resp.Err != tt.errKind {
				t.Errorf("error kind = %v, want %v", resp.Err, tt.errKind)
			}
			if !reflect.DeepEqual(resp.Lines, tt.payload) {
				t.Errorf("payload = %v, want %v", resp.Lines, tt.payload)
			}
		})
	}
}

func TestStripEcho(t *testing.T) {
	lines := []string{"ATE0", "OK"}
	got := stripEcho(lines, "ATE0")
	if !reflect.DeepEqual(got, []string{"OK"}) {
		t.Errorf("stripEcho = %v, want [OK]", got)
	}

	// no echo present, lines untouched
	got = stripEcho([]string{"OK"}, "ATE0")
	if !reflect.DeepEqual(got, []string{"OK"}) {
		t.Errorf("stripEcho without echo = %v, want [OK]", got)
	}
}

func TestDropSearching(t *testing.T) {
	lines, seen := dropSearching([]string{"SEARCHING...", "41 00 BE 1F"})
	if !seen {
		t.Error("expected SEARCHING... to be detected")
	}
	if !reflect.DeepEqual(lines, []string{"41 00 BE 1F"}) {
		t.Errorf("lines = %v, want [41 00 BE 1F]", lines)
	}

	lines, seen = dropSearching([]string{"OK"})
	if seen {
		t.Error("did not expect SEARCHING... detection")
	}
	if !reflect.DeepEqual(lines, []string{"OK"}) {
		t.Errorf("lines = %v, want [OK]", lines)
	}
}
