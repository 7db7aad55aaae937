package obd

import (
	"errors"
	"reflect"
	"testing"
)

func TestRequestEncode(t *testing.T) {
	tests := []struct {
		name     string
		req      Request
		expected string
	}{
		{
			name:     "mode and PID",
			req:      NewRequest(0x09, 0x02),
			expected: "0902",
		},
		{
			name:     "mode only",
			req:      ModeRequest(0x03),
			expected: "03",
		},
		{
			name:     "lowercase would be wrong",
			req:      NewRequest(0x01, 0x0C),
			expected: "010C",
		},
		{
			name:     "extra bytes appended",
			req:      Request{Mode: 0x22, PID: 0xF1, Extra: []byte{0x90}},
			expected: "22F190",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.req.Encode(); got != tt.expected {
				t.Errorf("Encode() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDecodeSingleFrame(t *testing.T) {
	resp, err := Decode(NewRequest(0x01, 0x0C), []string{"41 0C 1A F8"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(resp.Data, []byte{0x1A, 0xF8}) {
		t.Errorf("data = % X, want 1A F8", resp.Data)
	}
}

func TestDecodeRPMFixture(t *testing.T) {
	resp, err := Decode(NewRequest(0x01, 0x0C), []string{"41 0C 1A F8"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := decodeRPM(resp.Data); got != 1726.0 {
		t.Errorf("RPM = %v, want 1726.0", got)
	}
}

func TestDecodeCoolantFixture(t *testing.T) {
	resp, err := Decode(NewRequest(0x01, 0x05), []string{"41 05 7B"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := decodeTemperature(resp.Data); got != 83.0 {
		t.Errorf("coolant = %v, want 83.0", got)
	}
}

func TestDecodeMultiLineOrder(t *testing.T) {
	// Frames concatenate in arrival order, never reordered.
	resp, err := Decode(NewRequest(0x09, 0x02), []string{
		"49 02 31 47 31",
		"49 02 4A 43 35",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := decodeVIN(resp.Data); got != "1G1JC5" {
		t.Errorf("VIN fragment = %q, want \"1G1JC5\"", got)
	}
}

func TestDecodeIsoTpIndexedFrames(t *testing.T) {
	resp, err := Decode(NewRequest(0x09, 0x02), []string{
		"014",
		"0: 49 02 01 31 47 31",
		"1: 4A 43 35 41 34 31 52",
		"2: 37 32 35 32 33 36 37",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := decodeVIN(resp.Data); got != "1G1JC5A41R7252367" {
		t.Errorf("VIN = %q, want \"1G1JC5A41R7252367\"", got)
	}
}

func TestDecodeIsoTpOutOfOrder(t *testing.T) {
	_, err := Decode(NewRequest(0x09, 0x02), []string{
		"014",
		"1: 4A 43 35 41 34 31 52",
		"0: 49 02 01 31 47 31",
	})
	assertCodecError(t, err, UnexpectedResponse)
}

func TestDecodeModeMismatch(t *testing.T) {
	_, err := Decode(NewRequest(0x01, 0x0C), []string{"42 0C 1A F8"})
	assertCodecError(t, err, UnexpectedResponse)
}

func TestDecodePidMismatch(t *testing.T) {
	_, err := Decode(NewRequest(0x01, 0x0C), []string{"41 05 7B"})
	assertCodecError(t, err, PidMismatch)
}

func TestDecodeNegativeResponse(t *testing.T) {
	_, err := Decode(NewRequest(0x01, 0x0C), []string{"7F 01 12"})

	var ce *CodecError
	if !errors.As(err, &ce) {
		t.Fatalf("error %T is not a CodecError", err)
	}
	if ce.Kind != NegativeResponse {
		t.Fatalf("kind = %v, want negative response", ce.Kind)
	}
	if ce.Mode != 0x01 {
		t.Errorf("mode = %02X, want 01", ce.Mode)
	}
	if ce.Reason != 0x12 {
		t.Errorf("reason = %02X, want 12", ce.Reason)
	}
}

func TestDecodeMalformedHex(t *testing.T) {
	_, err := Decode(NewRequest(0x01, 0x0C), []string{"41 0C ZZ"})
	assertCodecError(t, err, MalformedHex)
}

func TestDecodeEmpty(t *testing.T) {
	_, err := Decode(NewRequest(0x01, 0x0C), nil)
	assertCodecError(t, err, IncompleteData)
}

func TestPIDWidthValidation(t *testing.T) {
	resp, err := Decode(NewRequest(0x01, 0x0C), []string{"41 0C 1A"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = PIDEngineRPM.payload(resp)
	assertCodecError(t, err, IncompleteData)
}

func TestDecodeVINPadding(t *testing.T) {
	data := []byte{0x01, '1', 'G', '1', 0x00, 0x00}
	if got := decodeVIN(data); got != "1G1" {
		t.Errorf("VIN = %q, want \"1G1\"", got)
	}
}

func TestDecodeDTCs(t *testing.T) {
	resp, err := Decode(ModeRequest(0x03), []string{"43 02 01 33 81 34"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries := decodeDTCs(resp)
	codes := make([]string, 0, len(entries))
	for _, e := range entries {
		codes = append(codes, e.Code)
	}
	if !reflect.DeepEqual(codes, []string{"P0133", "B0134"}) {
		t.Errorf("codes = %v, want [P0133 B0134]", codes)
	}
}

func TestDecodeDTCsPadding(t *testing.T) {
	resp, err := Decode(ModeRequest(0x03), []string{"43 01 33 00 00 00 00"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries := decodeDTCs(resp)
	if len(entries) != 1 || entries[0].Code != "P0133" {
		t.Errorf("entries = %v, want single P0133", entries)
	}
}

func TestDTCCodeLetters(t *testing.T) {
	tests := []struct {
		a, b     byte
		expected string
	}{
		{0x01, 0x33, "P0133"},
		{0x41, 0x33, "C0133"},
		{0x81, 0x34, "B0134"},
		{0xC1, 0x00, "U0100"},
	}

	for _, tt := range tests {
		if got := dtcCode(tt.a, tt.b); got != tt.expected {
			t.Errorf("dtcCode(%02X, %02X) = %q, want %q", tt.a, tt.b, got, tt.expected)
		}
	}
}

func TestDecodeDTCInfo(t *testing.T) {
	info := decodeDTCInfo([]byte{0x82, 0x08, 0x00, 0x00})
	if !info.MILOn {
		t.Error("expected MIL on")
	}
	if info.Count != 2 {
		t.Errorf("count = %d, want 2", info.Count)
	}
	if !info.IsCompressionEngine {
		t.Error("expected compression engine flag")
	}
}

func assertCodecError(t *testing.T, err error, kind CodecErrorKind) {
	t.Helper()
	var ce *CodecError
	if !errors.As(err, &ce) {
		t.Fatalf("error %T is not a CodecError", err)
	}
	if ce.Kind != kind {
		t.Errorf("kind = %v, want %v", ce.Kind, kind)
	}
}
