package obd

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// Request is a single OBD-II service request: a mode, usually a PID, and
// optional extra bytes for pass-through use.
type Request struct {
	Mode     byte
	PID      byte
	Extra    []byte
	ModeOnly bool
}

// NewRequest builds a mode/PID request.
func NewRequest(mode, pid byte) Request {
	return Request{Mode: mode, PID: pid}
}

// ModeRequest builds a request that carries only a mode, like mode 03
// (stored trouble codes) or mode 04 (clear trouble codes).
func ModeRequest(mode byte) Request {
	return Request{Mode: mode, ModeOnly: true}
}

// Encode renders the ASCII hex wire form: uppercase, two digits per byte,
// no separators (e.g. "0902" for the VIN request).
func (r Request) Encode() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%02X", r.Mode)
	if !r.ModeOnly {
		fmt.Fprintf(&sb, "%02X", r.PID)
	}
	for _, b := range r.Extra {
		fmt.Fprintf(&sb, "%02X", b)
	}
	return sb.String()
}

// Response holds the decoded data bytes of a positive reply, after the
// mode/PID echo has been validated and stripped.
type Response struct {
	// Frames are the per-frame payloads in arrival order. One entry per
	// response line, or a single entry for a reassembled ISO-TP reply.
	Frames [][]byte
	// Data is the concatenation of all frame payloads, in arrival order.
	Data []byte
}

// CodecErrorKind classifies decoding failures.
type CodecErrorKind int

const (
	// UnexpectedResponse means the leading byte was not mode+0x40.
	UnexpectedResponse CodecErrorKind = iota
	// PidMismatch means the echoed PID differs from the requested one.
	PidMismatch
	// NegativeResponse is the vehicle's 7F rejection; see Reason.
	NegativeResponse
	// MalformedHex means a line did not parse as hex byte pairs.
	MalformedHex
	// IncompleteData means the payload is shorter than the PID requires.
	IncompleteData
)

func (k CodecErrorKind) String() string {
	switch k {
	case UnexpectedResponse:
		return "unexpected response"
	case PidMismatch:
		return "PID mismatch"
	case NegativeResponse:
		return "negative response"
	case MalformedHex:
		return "malformed hex"
	case IncompleteData:
		return "incomplete data"
	default:
		return "unknown"
	}
}

// CodecError reports why a response could not be decoded. Mode and PID are
// the requested ones; Reason carries the vehicle's code for NegativeResponse.
type CodecError struct {
	Kind   CodecErrorKind
	Mode   byte
	PID    byte
	Reason byte
	Detail string
}

func (e *CodecError) Error() string {
	msg := fmt.Sprintf("%s decoding reply to mode %02X", e.Kind, e.Mode)
	if e.Kind == NegativeResponse {
		msg = fmt.Sprintf("%s: mode %02X rejected with reason %02X", e.Kind, e.Mode, e.Reason)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Decode validates a set of raw response lines against the request and
// extracts the data payload. Lines are processed strictly in arrival order;
// the engine's ordering is authoritative.
func Decode(req Request, lines []string) (*Response, error) {
	frames, err := reassemble(req, lines)
	if err != nil {
		return nil, err
	}

	resp := &Response{}
	for _, frame := range frames {
		payload, err := stripAck(req, frame)
		if err != nil {
			return nil, err
		}
		resp.Frames = append(resp.Frames, payload)
		resp.Data = append(resp.Data, payload...)
	}
	return resp, nil
}

// reassemble converts response lines into binary frames. Replies spanning
// multiple CAN frames arrive with hex line indices ("0:", "1:", ...) and a
// leading byte-count line; those are folded into a single logical frame.
// Plain replies yield one frame per line.
func reassemble(req Request, lines []string) ([][]byte, error) {
	indexed := false
	for _, l := range lines {
		if strings.Contains(l, ":") {
			indexed = true
			break
		}
	}

	if !indexed {
		var frames [][]byte
		for _, l := range lines {
			b, err := parseHexLine(req, l)
			if err != nil {
				return nil, err
			}
			if len(b) > 0 {
				frames = append(frames, b)
			}
		}
		if len(frames) == 0 {
			return nil, &CodecError{Kind: IncompleteData, Mode: req.Mode, PID: req.PID,
				Detail: "no response data"}
		}
		return frames, nil
	}

	var (
		data []byte
		next uint64
	)
	for _, l := range lines {
		idx, rest, ok := strings.Cut(l, ":")
		if !ok {
			// byte-count line preceding the indexed frames
			continue
		}
		n, err := strconv.ParseUint(strings.TrimSpace(idx), 16, 8)
		if err != nil {
			return nil, &CodecError{Kind: MalformedHex, Mode: req.Mode, PID: req.PID,
				Detail: fmt.Sprintf("bad frame index %q", idx)}
		}
		if n != next {
			return nil, &CodecError{Kind: UnexpectedResponse, Mode: req.Mode, PID: req.PID,
				Detail: fmt.Sprintf("frame index %X, expected %X", n, next)}
		}
		next = (next + 1) % 0x10

		b, err := parseHexLine(req, rest)
		if err != nil {
			return nil, err
		}
		data = append(data, b...)
	}
	if len(data) == 0 {
		return nil, &CodecError{Kind: IncompleteData, Mode: req.Mode, PID: req.PID,
			Detail: "no response data"}
	}
	return [][]byte{data}, nil
}

// parseHexLine strips all whitespace from a line and parses the remaining
// characters as hex byte pairs.
func parseHexLine(req Request, line string) ([]byte, error) {
	s := strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' {
			return -1
		}
		return r
	}, line)

	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, &CodecError{Kind: MalformedHex, Mode: req.Mode, PID: req.PID,
			Detail: fmt.Sprintf("line %q", line)}
	}
	return b, nil
}

// stripAck validates the positive-response echo on a frame and returns the
// payload behind it.
func stripAck(req Request, frame []byte) ([]byte, error) {
	if len(frame) == 0 {
		return nil, &CodecError{Kind: IncompleteData, Mode: req.Mode, PID: req.PID,
			Detail: "empty frame"}
	}

	if frame[0] == 0x7F {
		ce := &CodecError{Kind: NegativeResponse, Mode: req.Mode, PID: req.PID}
		if len(frame) >= 3 {
			ce.Mode = frame[1]
			ce.Reason = frame[2]
		}
		return nil, ce
	}

	if frame[0] != req.Mode|0x40 {
		return nil, &CodecError{Kind: UnexpectedResponse, Mode: req.Mode, PID: req.PID,
			Detail: fmt.Sprintf("leading byte %02X, expected %02X", frame[0], req.Mode|0x40)}
	}
	if req.ModeOnly {
		return frame[1:], nil
	}

	if len(frame) < 2 {
		return nil, &CodecError{Kind: IncompleteData, Mode: req.Mode, PID: req.PID,
			Detail: "frame ends before PID echo"}
	}
	if frame[1] != req.PID {
		return nil, &CodecError{Kind: PidMismatch, Mode: req.Mode, PID: req.PID,
			Detail: fmt.Sprintf("response PID %02X", frame[1])}
	}
	return frame[2:], nil
}
