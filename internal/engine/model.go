package engine

import "strings"

type Model int // The machine Model used in emulation.

const (
	Unset       Model = iota // Unset - model hasn't been set - behaves as Spectrum48K
	Spectrum48K              // Spectrum48K - the original 48K machine
	Spectrum128              // Spectrum128 - 128K machine with memory paging
	Pentagon                 // Pentagon - Pentagon 128 clone timing
)

var ModelNames = map[Model]string{
	Unset:       "Unset",
	Spectrum48K: "48K",
	Spectrum128: "128K",
	Pentagon:    "PENTAGON",
}

// StringToModel converts a string to a Model.
func StringToModel(s string) Model {
	for m, n := range ModelNames {
		if n == strings.ToUpper(s) {
			return m
		}
	}
	return Unset
}

func (m Model) String() string {
	return ModelNames[m]
}

// Is48K reports whether the model has no memory paging hardware.
func (m Model) Is48K() bool {
	return m == Spectrum48K || m == Unset
}

// FrameTStates returns the number of T states in one video frame for the
// model.
func (m Model) FrameTStates() uint64 {
	switch m {
	case Spectrum128:
		return 70908
	case Pentagon:
		return 71680
	default:
		return 69888
	}
}
