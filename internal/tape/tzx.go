package tape

import (
	"bytes"
	"fmt"
)

var tzxSignature = []byte("ZXTape!\x1a")

// TZX reads the .TZX container. Only the block types that carry loadable
// data (standard speed 0x10, turbo speed 0x11 and pure data 0x14) yield
// blocks; timing, metadata and archive blocks are skipped.
type TZX struct {
	data []byte
	pos  int
}

// NewTZX returns a source over the given .TZX container bytes. The
// container signature and version header are checked before any blocks are
// read.
func NewTZX(data []byte) (*TZX, error) {
	if len(data) < 10 || !bytes.Equal(data[:8], tzxSignature) {
		return nil, fmt.Errorf("tzx: missing container signature")
	}
	if data[8] != 1 {
		return nil, fmt.Errorf("tzx: unsupported major version %d", data[8])
	}
	return &TZX{data: data, pos: 10}, nil
}

func (t *TZX) NextBlock() ([]byte, bool) {
	for t.pos < len(t.data) {
		id := t.data[t.pos]
		t.pos++

		var skip, dataLen, dataOff int
		switch id {
		case 0x10: // standard speed data
			dataOff, dataLen = 4, t.u16(2)
		case 0x11: // turbo speed data
			dataOff, dataLen = 0x12, t.u24(0x0F)
		case 0x12: // pure tone
			skip = 4
		case 0x13: // pulse sequence
			skip = 1 + 2*t.u8(0)
		case 0x14: // pure data
			dataOff, dataLen = 0x0A, t.u24(0x07)
		case 0x20: // pause / stop the tape
			skip = 2
		case 0x21: // group start
			skip = 1 + t.u8(0)
		case 0x22, 0x25: // group end, loop end
			skip = 0
		case 0x23, 0x24: // jump, loop start
			skip = 2
		case 0x26: // call sequence
			skip = 2 + 2*t.u16(0)
		case 0x27: // return from sequence
			skip = 0
		case 0x28: // select block
			skip = 2 + t.u16(0)
		case 0x2A: // stop the tape if in 48K mode
			skip = 4 + t.u32(0)
		case 0x2B: // set signal level
			skip = 4 + t.u32(0)
		case 0x30: // text description
			skip = 1 + t.u8(0)
		case 0x31: // message
			skip = 2 + t.u8(1)
		case 0x32: // archive info
			skip = 2 + t.u16(0)
		case 0x33: // hardware type
			skip = 1 + 3*t.u8(0)
		case 0x35: // custom info
			skip = 0x14 + t.u32(0x10)
		case 0x5A: // glue block
			skip = 9
		default:
			// unknown block id, cannot know its length
			t.pos = len(t.data)
			return nil, false
		}

		if dataLen > 0 || dataOff > 0 {
			start := t.pos + dataOff
			end := start + dataLen
			if end > len(t.data) {
				t.pos = len(t.data)
				return nil, false
			}
			t.pos = end
			if dataLen == 0 {
				continue
			}
			return t.data[start:end], true
		}

		t.pos += skip
		if t.pos > len(t.data) {
			t.pos = len(t.data)
			return nil, false
		}
	}
	return nil, false
}

// Little-endian field readers relative to the current position. Truncated
// reads return 0, which the caller turns into end-of-tape on the bounds
// check.

func (t *TZX) u8(off int) int {
	if t.pos+off >= len(t.data) {
		return 0
	}
	return int(t.data[t.pos+off])
}

func (t *TZX) u16(off int) int {
	return t.u8(off) | t.u8(off+1)<<8
}

func (t *TZX) u24(off int) int {
	return t.u8(off) | t.u8(off+1)<<8 | t.u8(off+2)<<16
}

func (t *TZX) u32(off int) int {
	return t.u16(off) | t.u16(off+2)<<16
}
