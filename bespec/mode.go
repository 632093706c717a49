package bespec

// Mode names the value domain held by the registers of a class or produced
// by a node. The spellings are the IR's mode identifiers, since generated
// code refers to them verbatim.
type Mode string

const (
	ModeInvalid Mode = ""
	ModeIu      Mode = "mode_Iu" // unsigned 32-bit integer
	ModeIs      Mode = "mode_Is" // signed 32-bit integer
	ModeLu      Mode = "mode_Lu" // unsigned 64-bit integer
	ModeLs      Mode = "mode_Ls" // signed 64-bit integer
	ModeF       Mode = "mode_F"  // single-precision floating point
	ModeD       Mode = "mode_D"  // double-precision floating point
	ModeBu      Mode = "mode_Bu" // unsigned byte, used for condition flags
	ModeB       Mode = "mode_b"  // internal boolean
	ModeX       Mode = "mode_X"  // control flow
	ModeM       Mode = "mode_M"  // memory
	ModeT       Mode = "mode_T"  // tuple
	ModeP       Mode = "mode_P"  // pointer
)

var knownModes = map[Mode]struct{}{
	ModeIu: {}, ModeIs: {}, ModeLu: {}, ModeLs: {},
	ModeF: {}, ModeD: {},
	ModeBu: {}, ModeB: {},
	ModeX: {}, ModeM: {}, ModeT: {}, ModeP: {},
}

func (m Mode) Valid() bool {
	_, ok := knownModes[m]
	return ok
}

func (m Mode) String() string {
	if m == ModeInvalid {
		return "mode_invalid"
	}
	return string(m)
}

// ParseMode returns ModeInvalid for anything that isn't a known mode name.
func ParseMode(s string) Mode {
	m := Mode(s)
	if !m.Valid() {
		return ModeInvalid
	}
	return m
}
