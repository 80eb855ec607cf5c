package machine

import (
	"testing"

	"github.com/oleworth/go-spectrum/internal/engine"
)

// scriptedEngine wraps the Null engine with a scripted sequence of frame
// statuses and a record of poke calls, so dispatcher and trap behaviour
// can be tested without a real core.
type scriptedEngine struct {
	*engine.Null
	script  []engine.Status
	step    int
	runs    int
	resumes int
	pokes   []uint16
}

func newScriptedEngine(script ...engine.Status) *scriptedEngine {
	return &scriptedEngine{
		Null:   engine.NewNull(),
		script: script,
	}
}

func (e *scriptedEngine) next() engine.Status {
	if e.step >= len(e.script) {
		return engine.StatusCompleted
	}
	s := e.script[e.step]
	e.step++
	return s
}

func (e *scriptedEngine) RunFrame() engine.Status {
	e.runs++
	return e.next()
}

func (e *scriptedEngine) ResumeFrame() engine.Status {
	e.resumes++
	return e.next()
}

func (e *scriptedEngine) Poke(addr uint16, v byte) {
	e.pokes = append(e.pokes, addr)
	e.Null.Poke(addr, v)
}

// stubTape yields a fixed list of blocks.
type stubTape struct {
	blocks [][]byte
	pos    int
}

func (s *stubTape) NextBlock() ([]byte, bool) {
	if s.pos >= len(s.blocks) {
		return nil, false
	}
	b := s.blocks[s.pos]
	s.pos++
	return b, true
}

func TestRunFrameCopiesVideo(t *testing.T) {
	e := newScriptedEngine(engine.StatusCompleted)
	fb := e.FrameBuffer()
	for i := range fb {
		fb[i] = byte(i)
	}

	m := New(e)
	video := make([]byte, engine.FrameBufferSize)
	if !m.RunFrame(FrameRequest{Video: video}) {
		t.Fatal("frame did not complete")
	}

	for i := range video {
		if video[i] != byte(i) {
			t.Fatalf("video[%d] = %02X, want %02X", i, video[i], byte(i))
		}
	}
	if e.runs != 1 || e.resumes != 0 {
		t.Errorf("runs = %d, resumes = %d, want 1, 0", e.runs, e.resumes)
	}
}

func TestRunFrameCopiesAudio(t *testing.T) {
	e := newScriptedEngine(engine.StatusCompleted)
	left, right := e.AudioBuffers()
	for i := range left {
		left[i] = float32(i)
		right[i] = -float32(i)
	}

	m := New(e)
	req := FrameRequest{
		Video:      make([]byte, engine.FrameBufferSize),
		AudioLeft:  make([]float32, engine.AudioFrameSamples),
		AudioRight: make([]float32, engine.AudioFrameSamples),
	}
	if !m.RunFrame(req) {
		t.Fatal("frame did not complete")
	}

	for i := range req.AudioLeft {
		if req.AudioLeft[i] != float32(i) || req.AudioRight[i] != -float32(i) {
			t.Fatalf("audio sample %d = %v/%v", i, req.AudioLeft[i], req.AudioRight[i])
		}
	}
}

func TestRunFrameServicesMultipleTraps(t *testing.T) {
	e := newScriptedEngine(
		engine.StatusTapeLoadTrapHit,
		engine.StatusTapeLoadTrapHit,
		engine.StatusCompleted,
	)
	src := &stubTape{blocks: [][]byte{
		{0x00, 0x00},
		{0x00, 0x00},
	}}

	m := New(e, WithTape(src))
	if !m.RunFrame(FrameRequest{Video: make([]byte, engine.FrameBufferSize)}) {
		t.Fatal("frame did not complete")
	}

	if e.resumes != 2 {
		t.Errorf("resumes = %d, want 2", e.resumes)
	}
	if src.pos != 2 {
		t.Errorf("blocks consumed = %d, want 2", src.pos)
	}
}

func TestFatalStatusStopsPermanently(t *testing.T) {
	e := newScriptedEngine(engine.StatusUnrecognisedOpcode)
	m := New(e)

	video := make([]byte, engine.FrameBufferSize)
	if m.RunFrame(FrameRequest{Video: video}) {
		t.Fatal("frame completed after fatal status")
	}
	if !m.Stopped() {
		t.Fatal("machine not stopped after fatal status")
	}

	// further requests are silent no-ops that never reach the core
	runs := e.runs
	for i := 0; i < 3; i++ {
		if m.RunFrame(FrameRequest{Video: video}) {
			t.Fatal("stopped machine completed a frame")
		}
	}
	if e.runs != runs {
		t.Errorf("stopped machine invoked the core %d more times", e.runs-runs)
	}
}

func TestUnknownStatusIsFatal(t *testing.T) {
	e := newScriptedEngine(engine.Status(0x7F))
	m := New(e)

	if m.RunFrame(FrameRequest{Video: make([]byte, engine.FrameBufferSize)}) {
		t.Fatal("frame completed after unknown status")
	}
	if !m.Stopped() {
		t.Fatal("machine not stopped after unknown status")
	}
}

func TestAttachDiskTruncatesOversizedImages(t *testing.T) {
	m := New(engine.NewNull())

	image := make([]byte, MaxDiskImage+512)
	for i := range image {
		image[i] = byte(i)
	}
	m.AttachDisk(image)
	if m.diskSize != MaxDiskImage {
		t.Errorf("diskSize = %d, want %d", m.diskSize, MaxDiskImage)
	}

	m.AttachDisk([]byte{1, 2, 3})
	if m.diskSize != 3 {
		t.Errorf("diskSize = %d, want 3", m.diskSize)
	}
}
