package web

import (
	"fmt"
	"testing"
	"time"

	"github.com/oleworth/go-spectrum/internal/engine"
	"github.com/oleworth/go-spectrum/internal/machine"
	"github.com/oleworth/go-spectrum/internal/worker"
)

// recordingLogger captures error output so tests can assert on it.
type recordingLogger struct {
	errors []string
}

func (l *recordingLogger) Infof(format string, args ...interface{})  {}
func (l *recordingLogger) Debugf(format string, args ...interface{}) {}
func (l *recordingLogger) Errorf(format string, args ...interface{}) {
	l.errors = append(l.errors, fmt.Sprintf(format, args...))
}

func TestFramePumpWaitsForReady(t *testing.T) {
	w := worker.New(machine.New(engine.NewNull()))
	h := NewHub(w, WithCompression(false), WithFrameCaching(false))

	go h.framePump()

	// the worker has not emitted its readiness notification yet, so the
	// pump must not submit anything however many ticks pass
	time.Sleep(5 * frameInterval)
	if n := len(w.Requests()); n != 0 {
		t.Fatalf("%d requests submitted before readiness", n)
	}

	go w.Run()

	select {
	case msg := <-h.broadcast:
		if msg[0] != MessageReady {
			t.Fatalf("first broadcast = %d, want MessageReady", msg[0])
		}
	case <-time.After(time.Second):
		t.Fatal("no readiness broadcast")
	}

	select {
	case msg := <-h.broadcast:
		if msg[0] != MessageFrame {
			t.Fatalf("broadcast after readiness = %d, want MessageFrame", msg[0])
		}
	case <-time.After(time.Second):
		t.Fatal("no frame broadcast after readiness")
	}
}

func TestClientRunFrameRequestIsNoOp(t *testing.T) {
	w := worker.New(machine.New(engine.NewNull()))
	rl := &recordingLogger{}
	h := NewHub(w, WithLogger(rl))
	c := &Client{hub: h, Send: make(chan []byte, 1)}

	// the hub paces frames; a client-sent run-frame neither errors nor
	// reaches the worker
	c.handle(RequestRunFrame, nil)
	if len(rl.errors) != 0 {
		t.Fatalf("run-frame request logged errors: %v", rl.errors)
	}
	if n := len(w.Requests()); n != 0 {
		t.Fatalf("run-frame request submitted %d worker requests", n)
	}

	// genuinely unknown identifiers are still reported
	c.handle(0xEE, nil)
	if len(rl.errors) != 1 {
		t.Fatalf("unknown request not logged: %v", rl.errors)
	}
}
