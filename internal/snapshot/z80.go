package snapshot

import (
	"fmt"

	"github.com/oleworth/go-spectrum/internal/engine"
)

// ReadZ80 builds a Snapshot from .Z80 container bytes, handling versions 1
// to 3 of the format and its ED ED run-length compression.
func ReadZ80(data []byte) (*Snapshot, error) {
	if len(data) < 30 {
		return nil, fmt.Errorf("z80: header truncated (%d bytes)", len(data))
	}

	word := func(off int) uint16 {
		return uint16(data[off]) | uint16(data[off+1])<<8
	}

	flags1 := data[12]
	if flags1 == 0xFF {
		flags1 = 0x01 // historical quirk of the format
	}

	r := uint16(data[11]&0x7F) | uint16(flags1&0x01)<<7

	s := &Snapshot{
		Pages: map[int][]byte{},
		Registers: map[string]uint16{
			"AF":  uint16(data[0])<<8 | uint16(data[1]),
			"BC":  word(2),
			"HL":  word(4),
			"SP":  word(8),
			"DE":  word(13),
			"BC_": word(15),
			"DE_": word(17),
			"HL_": word(19),
			"AF_": uint16(data[21])<<8 | uint16(data[22]),
			"IY":  word(23),
			"IX":  word(25),
			"IR":  uint16(data[10])<<8 | r,
		},
		IFF1:   data[27] != 0,
		IFF2:   data[28] != 0,
		IM:     data[29] & 0x03,
		Border: flags1 >> 1 & 0x07,
	}

	pc := word(6)
	if pc != 0 {
		// version 1: a single 48K memory image follows the header
		s.Model = engine.Spectrum48K
		s.Registers["PC"] = pc
		image := data[30:]
		if flags1&0x20 != 0 {
			image = decompressV1(image)
		}
		if len(image) < 3*engine.PageSize {
			return nil, fmt.Errorf("z80: v1 memory image truncated (%d bytes)", len(image))
		}
		for i, bank := range []int{5, 2, 0} {
			page := make([]byte, engine.PageSize)
			copy(page, image[i*engine.PageSize:])
			s.Pages[bank] = page
		}
		return s, nil
	}

	// version 2 or 3: an extended header follows, then compressed pages
	if len(data) < 32 {
		return nil, fmt.Errorf("z80: extended header truncated")
	}
	extLen := int(word(30))
	ext := 32
	if len(data) < ext+extLen {
		return nil, fmt.Errorf("z80: extended header truncated")
	}

	s.Registers["PC"] = word(ext)
	hardware := data[ext+2]
	s.Model = z80Model(extLen, hardware)
	s.Paging = data[ext+3]
	if extLen >= 26 {
		s.TStates = z80TStates(s.Model, word(ext+23), data[ext+25])
	}

	for pos := ext + extLen; pos < len(data); {
		if pos+3 > len(data) {
			return nil, fmt.Errorf("z80: page header truncated at offset %d", pos)
		}
		length := int(word(pos))
		number := int(data[pos+2])
		pos += 3

		var page []byte
		if length == 0xFFFF {
			// stored uncompressed
			if pos+engine.PageSize > len(data) {
				return nil, fmt.Errorf("z80: page %d truncated", number)
			}
			page = make([]byte, engine.PageSize)
			copy(page, data[pos:])
			pos += engine.PageSize
		} else {
			if pos+length > len(data) {
				return nil, fmt.Errorf("z80: page %d truncated", number)
			}
			page = decompress(data[pos:pos+length], engine.PageSize)
			pos += length
		}

		if bank, ok := z80Bank(s.Model, number); ok {
			s.Pages[bank] = page
		}
	}

	return s, nil
}

// z80Model maps the hardware mode byte to a machine model. The meaning of
// the byte shifted between versions 2 and 3 of the format.
func z80Model(extLen int, hardware byte) engine.Model {
	v3 := extLen > 23
	switch {
	case hardware == 9 && v3:
		return engine.Pentagon
	case !v3 && hardware >= 3:
		return engine.Spectrum128
	case v3 && hardware >= 4:
		return engine.Spectrum128
	default:
		return engine.Spectrum48K
	}
}

// z80Bank maps a stored page number to a RAM bank. In 48K mode the format
// numbers the three RAM pages 4, 5 and 8; in 128K mode pages 3-10 are
// banks 0-7. ROM pages report ok=false and are skipped.
func z80Bank(m engine.Model, number int) (int, bool) {
	if m.Is48K() {
		switch number {
		case 4:
			return 2, true
		case 5:
			return 0, true
		case 8:
			return 5, true
		}
		return 0, false
	}
	if number >= 3 && number <= 10 {
		return number - 3, true
	}
	return 0, false
}

// z80TStates reconstructs the elapsed T-state counter from the low/high
// counter fields, which count down within quarter-frame windows.
func z80TStates(m engine.Model, low uint16, high byte) uint64 {
	quarter := m.FrameTStates() / 4
	return uint64((high+1)%4)*quarter + (quarter - 1 - uint64(low)%quarter)
}

// decompress expands the ED ED <count> <value> run-length encoding into a
// buffer of the given size.
func decompress(data []byte, size int) []byte {
	out := make([]byte, 0, size)
	for i := 0; i < len(data); {
		if i+3 < len(data) && data[i] == 0xED && data[i+1] == 0xED {
			count := int(data[i+2])
			value := data[i+3]
			for j := 0; j < count; j++ {
				out = append(out, value)
			}
			i += 4
		} else {
			out = append(out, data[i])
			i++
		}
	}
	if len(out) > size {
		out = out[:size]
	}
	for len(out) < size {
		out = append(out, 0)
	}
	return out
}

// decompressV1 expands a version 1 compressed image, which is terminated
// by the sequence 00 ED ED 00.
func decompressV1(data []byte) []byte {
	if len(data) >= 4 {
		end := len(data) - 4
		if data[end] == 0x00 && data[end+1] == 0xED && data[end+2] == 0xED && data[end+3] == 0x00 {
			data = data[:end]
		}
	}
	return decompress(data, 3*engine.PageSize)
}
