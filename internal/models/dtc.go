package models

// DTCEntry represents a diagnostic trouble code with description.
type DTCEntry struct {
	Code        string
	Description string
}

// Describe returns a human-readable description for common generic trouble
// codes. Manufacturer-specific codes fall back to a category hint.
func Describe(code string) string {
	if desc, ok := descriptions[code]; ok {
		return desc
	}

	if len(code) > 0 {
		switch code[0] {
		case 'P':
			return "Powertrain code"
		case 'C':
			return "Chassis code"
		case 'B':
			return "Body code"
		case 'U':
			return "Network code"
		}
	}
	return "Unknown DTC"
}

var descriptions = map[string]string{
	"P0100": "Mass Air Flow Circuit Malfunction",
	"P0101": "Mass Air Flow Circuit Range/Performance",
	"P0102": "Mass Air Flow Circuit Low Input",
	"P0103": "Mass Air Flow Circuit High Input",
	"P0133": "O2 Sensor Circuit Slow Response (Bank 1, Sensor 1)",
	"P0171": "System Too Lean (Bank 1)",
	"P0172": "System Too Rich (Bank 1)",
	"P0174": "System Too Lean (Bank 2)",
	"P0175": "System Too Rich (Bank 2)",
	"P0300": "Random/Multiple Cylinder Misfire Detected",
	"P0301": "Cylinder 1 Misfire Detected",
	"P0302": "Cylinder 2 Misfire Detected",
	"P0303": "Cylinder 3 Misfire Detected",
	"P0304": "Cylinder 4 Misfire Detected",
	"P0401": "Exhaust Gas Recirculation Flow Insufficient",
	"P0420": "Catalyst System Efficiency Below Threshold",
	"P0440": "Evaporative Emission Control System Malfunction",
	"P0455": "Evaporative Emission Control System Leak Detected (Large)",
	"P0500": "Vehicle Speed Sensor Malfunction",
	"P0505": "Idle Control System Malfunction",
	"U0100": "Lost Communication With ECM/PCM",
	"U0121": "Lost Communication With ABS Module",
	"U0155": "Lost Communication With Instrument Cluster",
}
