package elm

import (
	"strings"
)

// Prompt is the character the interpreter prints when it is ready for the
// next command. It terminates every exchange.
const Prompt = '>'

// Sentinel payloads the interpreter can emit instead of vehicle data.
const (
	sentinelOK              = "OK"
	sentinelNoData          = "NO DATA"
	sentinelUnknown         = "?"
	sentinelUnableToConnect = "UNABLE TO CONNECT"
	sentinelSearching       = "SEARCHING..."
)

// ResponseKind tags a Response. Exactly one interpretation applies.
type ResponseKind int

const (
	// KindOK means the command was accepted; Lines holds any payload.
	KindOK ResponseKind = iota
	// KindNoData means the vehicle had nothing to say for this request.
	// This is a valid empty result, not a failure.
	KindNoData
	// KindError means the interpreter rejected the exchange; see ErrorKind.
	KindError
)

func (k ResponseKind) String() string {
	switch k {
	case KindOK:
		return "OK"
	case KindNoData:
		return "NO DATA"
	case KindError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ErrorKind distinguishes the interpreter's rejection sentinels.
type ErrorKind int

const (
	// ErrorUnknownCommand corresponds to the "?" reply.
	ErrorUnknownCommand ErrorKind = iota
	// ErrorUnableToConnect means the interpreter could not reach the vehicle.
	ErrorUnableToConnect
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorUnknownCommand:
		return "unknown command"
	case ErrorUnableToConnect:
		return "unable to connect"
	default:
		return "unknown"
	}
}

// Response is the framed reply to a single command.
type Response struct {
	Kind ResponseKind
	// Err is meaningful only when Kind is KindError.
	Err ErrorKind
	// Lines holds the payload lines, in arrival order, for KindOK.
	Lines []string
}

// classify maps a set of framed lines onto a Response. SEARCHING... lines are
// assumed to have been dropped already by the read loop.
func classify(lines []string) Response {
	var payload []string
	for _, l := range lines {
		switch {
		case l == sentinelNoData:
			return Response{Kind: KindNoData}
		case l == sentinelUnknown:
			return Response{Kind: KindError, Err: ErrorUnknownCommand}
		case l == sentinelUnableToConnect:
			return Response{Kind: KindError, Err: ErrorUnableToConnect}
		case l == sentinelOK:
			// acceptance marker, not payload
		default:
			payload = append(payload, l)
		}
	}
	return Response{Kind: KindOK, Lines: payload}
}

// splitLines breaks the accumulated bytes of one exchange into trimmed,
// non-empty lines. The interpreter terminates lines with CR and, depending on
// the ATL setting, LF; NUL bytes show up on baud mismatches and are dropped.
func splitLines(raw []byte) []string {
	clean := make([]byte, 0, len(raw))
	for _, b := range raw {
		if b == 0 {
			continue
		}
		clean = append(clean, b)
	}

	var lines []string
	for _, l := range strings.FieldsFunc(string(clean), func(r rune) bool {
		return r == '\r' || r == '\n'
	}) {
		l = strings.TrimSpace(l)
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// stripEcho removes the leading line when it repeats the sent command, which
// is what the interpreter does until echo is disabled.
func stripEcho(lines []string, sent string) []string {
	if len(lines) > 0 && strings.EqualFold(lines[0], sent) {
		return lines[1:]
	}
	return lines
}

// dropSearching filters the transient SEARCHING... notice out of a line set
// and reports whether it was present.
func dropSearching(lines []string) ([]string, bool) {
	var out []string
	seen := false
	for _, l := range lines {
		if l == sentinelSearching {
			seen = true
			continue
		}
		out = append(out, l)
	}
	return out, seen
}
