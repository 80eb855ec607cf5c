package engine

// Null is an Engine with no CPU behind it. It owns a real memory image,
// register file and keyboard matrix, honours paging writes to PortPaging,
// and completes every frame immediately without executing anything. It
// exists so the worker and transport can run without a core linked in, and
// so tests have a state container with faithful memory semantics.
type Null struct {
	image  []byte
	regs   [RegisterCount]uint16
	audioL []float32
	audioR []float32

	model   Model
	pc      uint16
	iff1    bool
	iff2    bool
	im      uint8
	halted  bool
	tstates uint64

	border byte
	paging byte
	keys   [8]byte
}

// NewNull returns a Null engine with a freshly allocated memory image.
func NewNull() *Null {
	return &Null{
		image:  make([]byte, MachineMemorySize+FrameBufferSize),
		audioL: make([]float32, AudioFrameSamples),
		audioR: make([]float32, AudioFrameSamples),
	}
}

func (n *Null) MachineMemory() []byte { return n.image[:MachineMemorySize] }
func (n *Null) FrameBuffer() []byte   { return n.image[MachineMemorySize:] }

func (n *Null) AudioBuffers() (left, right []float32) { return n.audioL, n.audioR }

func (n *Null) Registers() []uint16 { return n.regs[:] }

func (n *Null) RunFrame() Status    { return StatusCompleted }
func (n *Null) ResumeFrame() Status { return StatusCompleted }

// bank returns the RAM bank mapped at the given quarter of the address
// space. The fixed 48K arrangement is ROM/5/2/0; on paged models the top
// quarter follows bits 0-2 of the paging port.
func (n *Null) bank(addr uint16) int {
	switch addr >> 14 {
	case 1:
		return 5
	case 2:
		return 2
	default:
		if n.model.Is48K() {
			return 0
		}
		return int(n.paging & 0x07)
	}
}

func (n *Null) Peek(addr uint16) byte {
	if addr < 0x4000 {
		return 0xFF // ROM contents are the core's business
	}
	return n.image[n.bank(addr)*PageSize+int(addr&0x3FFF)]
}

func (n *Null) Poke(addr uint16, v byte) {
	if addr < 0x4000 {
		return
	}
	n.image[n.bank(addr)*PageSize+int(addr&0x3FFF)] = v
}

func (n *Null) WritePort(port uint16, v byte) {
	switch port {
	case PortULA:
		n.border = v & 0x07
	case PortPaging:
		n.paging = v
	}
}

func (n *Null) KeyDown(row, mask byte) {
	if row < 8 {
		n.keys[row] |= mask
	}
}

func (n *Null) KeyUp(row, mask byte) {
	if row < 8 {
		n.keys[row] &^= mask
	}
}

func (n *Null) SetModel(m Model)    { n.model = m }
func (n *Null) SetPC(pc uint16)     { n.pc = pc }
func (n *Null) SetIFF1(v bool)      { n.iff1 = v }
func (n *Null) SetIFF2(v bool)      { n.iff2 = v }
func (n *Null) SetIM(mode uint8)    { n.im = mode }
func (n *Null) SetHalted(v bool)    { n.halted = v }
func (n *Null) SetTStates(t uint64) { n.tstates = t }

func (n *Null) Reset() {
	for i := range n.regs {
		n.regs[i] = 0
	}
	n.pc = 0
	n.iff1, n.iff2 = false, false
	n.im = 0
	n.halted = false
	n.tstates = 0
	n.border = 0
	n.paging = 0
	n.keys = [8]byte{}
	for i := range n.image {
		n.image[i] = 0
	}
}

// The read side of the setter surface. The Engine interface has no use for
// these; they exist so state restored from a snapshot can be inspected.

func (n *Null) PC() uint16      { return n.pc }
func (n *Null) IFF1() bool      { return n.iff1 }
func (n *Null) IFF2() bool      { return n.iff2 }
func (n *Null) IM() uint8       { return n.im }
func (n *Null) Halted() bool    { return n.halted }
func (n *Null) TStates() uint64 { return n.tstates }
func (n *Null) Model() Model    { return n.model }

// Border returns the last border colour written through PortULA.
func (n *Null) Border() byte { return n.border }

// Paging returns the last value written through PortPaging.
func (n *Null) Paging() byte { return n.paging }
