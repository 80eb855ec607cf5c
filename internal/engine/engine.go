// Package engine defines the boundary between the control layer and the
// emulation core. The core is an opaque component: it executes Z80
// instructions, generates video and audio, and shares a flat memory image
// and a register file with this layer. Everything the control layer may do
// to the core goes through the Engine interface.
package engine

const (
	// PageSize is the size of one machine memory page.
	PageSize = 0x4000
	// NumPages is the number of RAM pages held in machine memory. A 48K
	// machine only uses banks 0, 2 and 5; the 128K machines use all eight.
	NumPages = 8
	// MachineMemorySize is the total size of the machine memory region.
	MachineMemorySize = NumPages * PageSize

	// FrameWidth and FrameHeight are the dimensions of the rendered frame,
	// including the border area.
	FrameWidth  = 320
	FrameHeight = 240
	// FrameBufferSize is the size of the frame output region in bytes
	// (RGBA, 4 bytes per pixel).
	FrameBufferSize = FrameWidth * FrameHeight * 4

	// AudioFrameSamples is the number of audio samples generated per
	// channel per frame (44100Hz at 50 frames per second).
	AudioFrameSamples = 882
)

const (
	// TapeTrapPC is the address of the ROM LD-BYTES routine at which the
	// core reports StatusTapeLoadTrapHit instead of executing real code.
	TapeTrapPC = 0x056B
	// TapeTrapReturnPC is the address immediately after the LD-BYTES exit
	// point. The tape loader forces PC here before execution resumes.
	TapeTrapReturnPC = 0x05E2
)

const (
	// PortULA is the I/O port controlling the border colour (and, on real
	// hardware, the speaker and MIC lines).
	PortULA = 0x00FE
	// PortPaging is the 128K memory paging port.
	PortPaging = 0x7FFD
)

// Register slot indices into the register file shared with the core. Each
// slot holds one 16-bit register pair. PC is not part of the file; it is
// set through Engine.SetPC.
const (
	RegAF = iota
	RegBC
	RegDE
	RegHL
	RegAF_
	RegBC_
	RegDE_
	RegHL_
	RegIX
	RegIY
	RegSP
	RegIR
	// RegisterCount is the number of register slots.
	RegisterCount
)

// FlagC is the carry bit of the F register (low byte of AF).
const FlagC = 0x0001

// Engine is the contract the emulation core exposes to the control layer.
//
// The memory image and register file returned by the view methods are owned
// by the core and never reallocated; callers hold read/write views into
// them and must not retain the views beyond the core's lifetime.
type Engine interface {
	// MachineMemory returns a view of the machine memory region, organized
	// as NumPages pages of PageSize bytes each.
	MachineMemory() []byte
	// FrameBuffer returns a view of the frame output region. Its contents
	// are valid after a frame has completed.
	FrameBuffer() []byte
	// AudioBuffers returns views of the left and right audio sample
	// regions for the most recently completed frame.
	AudioBuffers() (left, right []float32)
	// Registers returns a view of the register file. Slots are indexed by
	// the Reg* constants.
	Registers() []uint16

	// RunFrame executes from the current machine state until the frame
	// completes or a trap fires.
	RunFrame() Status
	// ResumeFrame continues execution of the current frame after a trap.
	ResumeFrame() Status

	// Peek reads a byte from the Z80 address space through the current
	// paging arrangement.
	Peek(addr uint16) byte
	// Poke writes a byte to the Z80 address space through the current
	// paging arrangement. Writes to ROM addresses are ignored.
	Poke(addr uint16, v byte)
	// WritePort performs an OUT to the given I/O port.
	WritePort(port uint16, v byte)

	// KeyDown and KeyUp update the keyboard matrix. The row index selects
	// one of the eight half-rows; the mask selects keys within it.
	KeyDown(row, mask byte)
	KeyUp(row, mask byte)

	SetModel(m Model)
	SetPC(pc uint16)
	SetIFF1(v bool)
	SetIFF2(v bool)
	SetIM(mode uint8)
	SetHalted(v bool)
	SetTStates(t uint64)

	// Reset returns the machine to its power-on state for the current
	// model.
	Reset()
}
