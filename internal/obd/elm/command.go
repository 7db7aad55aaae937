package elm

// Command is a single line sent to the interpreter: an identifier plus an
// optional argument. AT commands configure the interpreter itself; anything
// else (raw hex) is forwarded to the vehicle bus.
type Command struct {
	Name string
	Arg  string
}

// Raw wraps an already-encoded OBD-II hex string so it can travel through the
// same send path as AT commands.
func Raw(hex string) Command {
	return Command{Name: hex}
}

func (c Command) String() string {
	return c.Name + c.Arg
}

// Interpreter commands used by the initialization sequence.
var (
	CmdReset        = Command{Name: "ATZ"}
	CmdEchoOff      = Command{Name: "ATE0"}
	CmdLinefeedsOff = Command{Name: "ATL0"}
	CmdHeadersOff   = Command{Name: "ATH", Arg: "0"}
	CmdHeadersOn    = Command{Name: "ATH", Arg: "1"}
	CmdProtocolAuto = Command{Name: "ATSP", Arg: "0"}
)
