// Package worker runs the control layer's message loop: requests are
// processed strictly in arrival order on a single goroutine, one at a
// time, and responses come back in the same order. The only asynchrony is
// the channels at the boundary.
package worker

import (
	"github.com/oleworth/go-spectrum/internal/engine"
	"github.com/oleworth/go-spectrum/internal/machine"
	"github.com/oleworth/go-spectrum/internal/snapshot"
	"github.com/oleworth/go-spectrum/internal/tape"
	"github.com/oleworth/go-spectrum/pkg/log"
)

// Request is a command packet sent to the worker. Only the fields relevant
// to the command are read. Buffers carried by a run-frame request belong
// to the worker until the matching response hands them back.
type Request struct {
	Command Command

	// CommandRunFrame
	Video      []byte
	AudioLeft  []float32
	AudioRight []float32

	// CommandKeyDown / CommandKeyUp
	Row, Mask byte

	// CommandSetMachineType
	Model engine.Model

	// CommandLoadMemoryPage
	Page int

	// CommandLoadMemoryPage / CommandAttachTAP / CommandAttachTZX /
	// CommandAttachDisk payload
	Data []byte

	// CommandLoadSnapshot
	Snapshot *snapshot.Snapshot
}

// Response is a packet emitted by the worker: the readiness notification,
// or a completed frame carrying the request's buffers back.
type Response struct {
	Command    Command
	Video      []byte
	AudioLeft  []float32
	AudioRight []float32
}

// Worker owns a Machine and processes requests against it.
type Worker struct {
	machine   *machine.Machine
	requests  chan Request
	responses chan Response

	log.Logger
}

// Opt is a function that modifies a Worker instance.
type Opt func(w *Worker)

// WithLogger sets the logger used for request handling errors.
func WithLogger(l log.Logger) Opt {
	return func(w *Worker) {
		w.Logger = l
	}
}

// New returns a Worker around the given machine. Request and response
// channels are buffered; a caller that stops draining responses will
// eventually stall the loop rather than reorder or drop anything.
func New(m *machine.Machine, opts ...Opt) *Worker {
	w := &Worker{
		machine:   m,
		requests:  make(chan Request, 64),
		responses: make(chan Response, 64),
		Logger:    log.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Requests returns the channel requests are submitted on. Closing it ends
// the loop.
func (w *Worker) Requests() chan<- Request {
	return w.requests
}

// Responses returns the channel the readiness notification and frame
// completions are delivered on.
func (w *Worker) Responses() <-chan Response {
	return w.responses
}

// Run emits the single readiness notification and then serves requests
// until the request channel closes. It never runs two frames at once and
// never reorders: each request is handled to completion before the next
// is looked at.
func (w *Worker) Run() {
	w.responses <- Response{Command: CommandReady}

	for req := range w.requests {
		w.handle(req)
	}
	close(w.responses)
}

func (w *Worker) handle(req Request) {
	switch req.Command {
	case CommandRunFrame:
		ok := w.machine.RunFrame(machine.FrameRequest{
			Video:      req.Video,
			AudioLeft:  req.AudioLeft,
			AudioRight: req.AudioRight,
		})
		if !ok {
			// stopped machines drop frame requests silently; the missing
			// response is the caller's stop signal
			return
		}
		w.responses <- Response{
			Command:    CommandRunFrame,
			Video:      req.Video,
			AudioLeft:  req.AudioLeft,
			AudioRight: req.AudioRight,
		}
	case CommandKeyDown:
		w.machine.KeyDown(req.Row, req.Mask)
	case CommandKeyUp:
		w.machine.KeyUp(req.Row, req.Mask)
	case CommandSetMachineType:
		w.machine.SetModel(req.Model)
	case CommandReset:
		w.machine.Reset()
	case CommandLoadMemoryPage:
		w.machine.LoadMemoryPage(req.Page, req.Data)
	case CommandLoadSnapshot:
		if req.Snapshot != nil {
			w.machine.LoadSnapshot(req.Snapshot)
		}
	case CommandAttachTAP:
		src, err := tape.NewTAP(req.Data)
		if err != nil {
			w.Errorf("attach tape: %v", err)
			return
		}
		w.machine.AttachTape(src)
	case CommandAttachTZX:
		src, err := tape.NewTZX(req.Data)
		if err != nil {
			w.Errorf("attach tape: %v", err)
			return
		}
		w.machine.AttachTape(src)
	case CommandAttachDisk:
		w.machine.AttachDisk(req.Data)
	default:
		w.Errorf("unknown command %d", req.Command)
	}
}
