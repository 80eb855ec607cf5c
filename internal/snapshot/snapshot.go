// Package snapshot provides the machine-state value object applied by the
// snapshot loader, and readers for the .SNA and .Z80 container formats
// that produce it.
package snapshot

import (
	"github.com/oleworth/go-spectrum/internal/engine"
)

// Snapshot is a complete point-in-time description of machine state. It is
// immutable once built and consumed exactly once by the loader; it does not
// validate itself, a malformed snapshot is the producer's error.
type Snapshot struct {
	// Model is the machine the snapshot was taken on.
	Model engine.Model
	// Pages maps RAM bank numbers to page contents of engine.PageSize
	// bytes.
	Pages map[int][]byte
	// Registers holds register pair values keyed by name ("AF", "BC",
	// "DE", "HL", "AF_", "BC_", "DE_", "HL_", "IX", "IY", "SP", "IR",
	// "PC").
	Registers map[string]uint16
	// IFF1 and IFF2 are the interrupt flip-flops; IM is the interrupt
	// mode.
	IFF1, IFF2 bool
	IM         uint8
	// Halted reports whether the CPU was in the HALT state.
	Halted bool
	// Border is the border colour (0-7) and Paging the last value written
	// to the 128K paging port. Paging is meaningless on 48K models.
	Border byte
	Paging byte
	// TStates is the elapsed T-state count within the current frame.
	TStates uint64
}
