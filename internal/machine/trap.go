package machine

import "github.com/oleworth/go-spectrum/internal/engine"

// tapeLoadTrap performs in one step what the ROM LD-BYTES routine would
// have done over many frames of reading pulses from tape.
//
// On entry the emulated program has set up the LD-BYTES register contract:
// A' holds the expected block type, bit 0 of F' selects load (1) or verify
// (0), IX is the destination address and DE the requested byte count. The
// outcome is reported back through the carry flag, which the ROM inspects
// immediately after the routine returns.
//
// With no tape attached, or the tape exhausted, the trap does nothing at
// all: PC is left on the trap address and the core will hit it again on
// the next resume.
func (m *Machine) tapeLoadTrap() {
	if m.tape == nil {
		return
	}
	block, ok := m.tape.NextBlock()
	if !ok {
		return
	}

	regs := m.engine.Registers()
	shadowAF := regs[engine.RegAF_]
	expectedType := byte(shadowAF >> 8)
	load := shadowAF&engine.FlagC != 0
	dest := regs[engine.RegIX]
	count := regs[engine.RegDE]

	success := false
	actualType := block[0]
	if actualType == expectedType {
		if load {
			success = m.loadBlock(block, dest, count)
		} else {
			// verify mode: byte-for-byte comparison against memory was
			// never implemented, every verify reports success
			success = true
		}
	}

	af := regs[engine.RegAF]
	if success {
		af |= engine.FlagC
	} else {
		af &^= engine.FlagC
	}
	regs[engine.RegAF] = af

	m.engine.SetPC(engine.TapeTrapReturnPC)
}

// loadBlock copies count payload bytes from the block into memory starting
// at dest, wrapping at the top of the address space, and checks the
// running XOR checksum against the block's trailing checksum byte. Bytes
// already copied stay in memory even when the checksum fails.
func (m *Machine) loadBlock(block []byte, dest, count uint16) bool {
	checksum := block[0]
	i := 1
	for n := uint16(0); n < count; n++ {
		if i >= len(block) {
			return false // block ran out before the requested count
		}
		b := block[i]
		m.engine.Poke(dest, b)
		checksum ^= b
		dest++
		i++
	}
	return i < len(block) && block[i] == checksum
}
