// Package machine implements the control layer that sits around the
// emulation core: it drives the core one video frame at a time, services
// the ROM tape-load trap, applies snapshots and routes keyboard input.
package machine

import (
	"github.com/oleworth/go-spectrum/internal/engine"
	"github.com/oleworth/go-spectrum/internal/tape"
	"github.com/oleworth/go-spectrum/pkg/log"
)

// MaxDiskImage is the size of the fixed disk image buffer. Attached images
// larger than this are truncated.
const MaxDiskImage = 1 << 20

// FrameRequest carries the destination buffers for one frame of output.
// Ownership of the buffers passes to the machine for the duration of
// RunFrame and returns to the caller, populated, when it completes; the
// caller must not touch them while the frame is in flight.
type FrameRequest struct {
	// Video receives the frame output region. It should be
	// engine.FrameBufferSize bytes.
	Video []byte
	// AudioLeft and AudioRight, when non-nil, receive the frame's audio
	// samples.
	AudioLeft  []float32
	AudioRight []float32
}

// Machine drives an emulation core through whole video frames. All methods
// must be called from a single goroutine; a Machine never runs more than
// one frame at a time.
type Machine struct {
	engine engine.Engine
	tape   tape.Source

	disk     [MaxDiskImage]byte
	diskSize int

	// stopped latches when the core reports a fatal status. There is no
	// way back; a stopped machine drops every further frame request.
	stopped bool

	log.Logger
}

// Opt is a function that modifies a Machine instance.
type Opt func(m *Machine)

// WithLogger sets the logger used for fatal status reporting.
func WithLogger(l log.Logger) Opt {
	return func(m *Machine) {
		m.Logger = l
	}
}

// WithTape attaches a tape source at construction time.
func WithTape(s tape.Source) Opt {
	return func(m *Machine) {
		m.tape = s
	}
}

// AsModel sets the machine model at construction time.
func AsModel(model engine.Model) Opt {
	return func(m *Machine) {
		m.engine.SetModel(model)
	}
}

// New returns a Machine driving the given core.
func New(e engine.Engine, opts ...Opt) *Machine {
	m := &Machine{
		engine: e,
		Logger: log.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RunFrame executes one video frame, servicing however many tape-load
// traps fire along the way, and copies the frame output into the request
// buffers. It reports false, without touching the buffers, if the machine
// is stopped; a fatal status from the core stops the machine permanently.
func (m *Machine) RunFrame(req FrameRequest) bool {
	if m.stopped {
		return false
	}

	status := m.engine.RunFrame()
	for {
		switch status {
		case engine.StatusCompleted:
			copy(req.Video, m.engine.FrameBuffer())
			if req.AudioLeft != nil || req.AudioRight != nil {
				left, right := m.engine.AudioBuffers()
				copy(req.AudioLeft, left)
				copy(req.AudioRight, right)
			}
			return true
		case engine.StatusTapeLoadTrapHit:
			m.tapeLoadTrap()
		default:
			m.Errorf("emulation stopped: core reported %s", status)
			m.stopped = true
			return false
		}
		status = m.engine.ResumeFrame()
	}
}

// Stopped reports whether a fatal core status has permanently stopped the
// machine.
func (m *Machine) Stopped() bool {
	return m.stopped
}

// AttachTape replaces the current tape source.
func (m *Machine) AttachTape(s tape.Source) {
	m.tape = s
}

// AttachDisk copies a disk image into the fixed disk buffer, truncating it
// if it exceeds MaxDiskImage bytes.
func (m *Machine) AttachDisk(data []byte) {
	if len(data) > MaxDiskImage {
		m.Infof("disk image truncated from %d to %d bytes", len(data), MaxDiskImage)
		data = data[:MaxDiskImage]
	}
	m.diskSize = copy(m.disk[:], data)
}

// KeyDown presses the keys selected by mask on the given keyboard
// half-row.
func (m *Machine) KeyDown(row, mask byte) {
	m.engine.KeyDown(row, mask)
}

// KeyUp releases the keys selected by mask on the given keyboard half-row.
func (m *Machine) KeyUp(row, mask byte) {
	m.engine.KeyUp(row, mask)
}

// SetModel switches the machine model.
func (m *Machine) SetModel(model engine.Model) {
	m.engine.SetModel(model)
}

// Reset returns the core to its power-on state.
func (m *Machine) Reset() {
	m.engine.Reset()
}
