package snapshot

import (
	"fmt"

	"github.com/oleworth/go-spectrum/internal/engine"
)

// snaLength is the size of a 48K .SNA file: a 27 byte header followed by
// the 48K RAM dump.
const snaLength = 27 + 3*engine.PageSize

// ReadSNA builds a Snapshot from 48K .SNA container bytes. The format
// stores PC pushed onto the stack, so the value is popped from the RAM dump
// and SP adjusted upwards by two.
func ReadSNA(data []byte) (*Snapshot, error) {
	if len(data) != snaLength {
		return nil, fmt.Errorf("sna: expected %d bytes, got %d", snaLength, len(data))
	}

	word := func(off int) uint16 {
		return uint16(data[off]) | uint16(data[off+1])<<8
	}

	s := &Snapshot{
		Model: engine.Spectrum48K,
		Pages: map[int][]byte{},
		Registers: map[string]uint16{
			"HL_": word(1),
			"DE_": word(3),
			"BC_": word(5),
			"AF_": word(7),
			"HL":  word(9),
			"DE":  word(11),
			"BC":  word(13),
			"IY":  word(15),
			"IX":  word(17),
			"AF":  word(21),
			"IR":  uint16(data[0])<<8 | uint16(data[20]),
		},
		IFF1:    data[19]&0x04 != 0,
		IFF2:    data[19]&0x04 != 0,
		IM:      data[25] & 0x03,
		Border:  data[26] & 0x07,
		TStates: 0,
	}

	ram := data[27:]
	for i, bank := range []int{5, 2, 0} {
		page := make([]byte, engine.PageSize)
		copy(page, ram[i*engine.PageSize:])
		s.Pages[bank] = page
	}

	sp := word(23)
	if sp < 0x4000 {
		return nil, fmt.Errorf("sna: stack pointer %04X points into ROM", sp)
	}
	if sp == 0xFFFF {
		// the PC high byte would wrap around into ROM
		return nil, fmt.Errorf("sna: stack pointer %04X wraps the stacked PC past the top of memory", sp)
	}
	s.Registers["PC"] = uint16(ram[sp-0x4000]) | uint16(ram[sp+1-0x4000])<<8
	s.Registers["SP"] = sp + 2

	return s, nil
}
