package tape

import "fmt"

// TAP reads the .TAP container: a bare concatenation of blocks, each
// prefixed with a 16-bit little-endian length.
type TAP struct {
	data []byte
	pos  int
}

// NewTAP returns a source over the given .TAP container bytes.
func NewTAP(data []byte) (*TAP, error) {
	if len(data) < 2 {
		return nil, fmt.Errorf("tap: container too short (%d bytes)", len(data))
	}
	return &TAP{data: data}, nil
}

func (t *TAP) NextBlock() ([]byte, bool) {
	for {
		if t.pos+2 > len(t.data) {
			return nil, false
		}
		length := int(t.data[t.pos]) | int(t.data[t.pos+1])<<8
		t.pos += 2
		if t.pos+length > len(t.data) {
			// truncated container, treat as end of tape
			t.pos = len(t.data)
			return nil, false
		}
		block := t.data[t.pos : t.pos+length]
		t.pos += length
		if length == 0 {
			continue // empty blocks carry nothing loadable
		}
		return block, true
	}
}
