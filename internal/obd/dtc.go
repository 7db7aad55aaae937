package obd

import (
	"fmt"

	"gobd2/internal/models"
)

// DTCInfo is the mode 01 PID 01 summary: whether the malfunction indicator
// is lit and how many trouble codes each ECU stores.
type DTCInfo struct {
	MILOn               bool
	Count               byte
	IsCompressionEngine bool
}

func decodeDTCInfo(data []byte) DTCInfo {
	return DTCInfo{
		MILOn:               data[0]&0x80 == 0x80,
		Count:               data[0] & 0x7F,
		IsCompressionEngine: data[1]&0x08 == 0x08,
	}
}

// decodeDTCs interprets a mode 03 payload as SAE J2012 trouble codes, two
// bytes each. CAN replies carry a leading count byte, which makes the frame
// odd-length; legacy replies go straight into code pairs. Zero pairs are
// padding.
func decodeDTCs(resp *Response) []models.DTCEntry {
	var out []models.DTCEntry
	for _, frame := range resp.Frames {
		data := frame
		if len(data)%2 == 1 {
			data = data[1:]
		}
		for i := 0; i+1 < len(data); i += 2 {
			a, b := data[i], data[i+1]
			if a == 0 && b == 0 {
				continue
			}
			code := dtcCode(a, b)
			out = append(out, models.DTCEntry{
				Code:        code,
				Description: models.Describe(code),
			})
		}
	}
	return out
}

// dtcCode renders a two-byte trouble code: the top two bits select the
// system letter, the remaining nibbles are the four digits.
func dtcCode(a, b byte) string {
	letters := [...]byte{'P', 'C', 'B', 'U'}
	return fmt.Sprintf("%c%X%X%X%X", letters[a>>6], (a&0x30)>>4, a&0x0F, (b&0xF0)>>4, b&0x0F)
}
