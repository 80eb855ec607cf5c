package engine

// Status is the result of a RunFrame or ResumeFrame step. Any value
// outside the named set is treated as unknown and fatal.
type Status uint8

const (
	// StatusCompleted indicates the frame has finished rendering.
	StatusCompleted Status = iota
	// StatusUnrecognisedOpcode indicates the core hit an opcode it cannot
	// execute. Fatal.
	StatusUnrecognisedOpcode
	// StatusTapeLoadTrapHit indicates PC reached the tape-load trap
	// address. The control layer must service the trap and resume.
	StatusTapeLoadTrapHit
)

func (s Status) String() string {
	switch s {
	case StatusCompleted:
		return "Completed"
	case StatusUnrecognisedOpcode:
		return "UnrecognisedOpcode"
	case StatusTapeLoadTrapHit:
		return "TapeLoadTrapHit"
	default:
		return "Unknown"
	}
}

// Fatal reports whether the status permanently stops the control layer.
// Unknown status codes are fatal.
func (s Status) Fatal() bool {
	switch s {
	case StatusCompleted, StatusTapeLoadTrapHit:
		return false
	default:
		return true
	}
}
