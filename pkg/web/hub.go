// Package web is the asynchronous message channel at the system boundary:
// a websocket hub that feeds client requests to the worker and streams
// completed frames back out, with optional brotli compression and a frame
// cache to suppress duplicates.
package web

import (
	"encoding/binary"
	"net/http"
	"sync"
	"time"

	"github.com/cespare/xxhash"
	"github.com/google/brotli/go/cbrotli"
	"github.com/gorilla/websocket"

	"github.com/oleworth/go-spectrum/internal/engine"
	"github.com/oleworth/go-spectrum/internal/worker"
	"github.com/oleworth/go-spectrum/pkg/log"
)

// frameInterval paces frame requests at the PAL rate.
const frameInterval = time.Second / 50

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024 * 16,
	WriteBufferSize: 1024 * 16,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub serves websocket clients and owns the pacing of the worker. At most
// one frame request is in flight at any moment; a worker that has stopped
// responding (fatal core status) simply stops being asked.
type Hub struct {
	worker *worker.Worker

	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	compression  bool
	frameCaching bool
	frameCache   *cache

	currentID uint8
	ready     bool

	mu sync.Mutex

	log.Logger
}

// Opt is a function that modifies a Hub instance.
type Opt func(h *Hub)

// WithCompression toggles brotli compression of outgoing frames.
func WithCompression(enabled bool) Opt {
	return func(h *Hub) {
		h.compression = enabled
	}
}

// WithFrameCaching toggles the duplicate-frame cache.
func WithFrameCaching(enabled bool) Opt {
	return func(h *Hub) {
		h.frameCaching = enabled
	}
}

// WithLogger sets the hub logger.
func WithLogger(l log.Logger) Opt {
	return func(h *Hub) {
		h.Logger = l
	}
}

// NewHub returns a Hub around the given worker.
func NewHub(w *worker.Worker, opts ...Opt) *Hub {
	h := &Hub{
		worker:       w,
		clients:      map[*Client]bool{},
		register:     make(chan *Client),
		unregister:   make(chan *Client),
		broadcast:    make(chan []byte, 64),
		compression:  true,
		frameCaching: true,
		frameCache:   newCache(64),
		Logger:       log.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run serves websocket connections on addr and pumps frames until the
// worker's response channel closes. It blocks.
func (h *Hub) Run(addr string) error {
	http.HandleFunc("/", func(wr http.ResponseWriter, r *http.Request) {
		wr.Header().Set("Access-Control-Allow-Origin", "*")

		conn, err := upgrader.Upgrade(wr, r, nil)
		if err != nil {
			h.Errorf("upgrade: %v", err)
			return
		}

		c := h.newClient(conn, r)

		go c.ReadPump()
		go c.WritePump()

		c.Send <- []byte{MessageInfo, h.info()}
	})

	errc := make(chan error, 1)
	go func() {
		errc <- http.ListenAndServe(addr, nil)
	}()

	go h.framePump()

	for {
		select {
		case err := <-errc:
			return err
		case c := <-h.register:
			h.clients[c] = true
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.Send)
			}
		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.Send <- msg:
				default:
					close(c.Send)
					delete(h.clients, c)
				}
			}
		}
	}
}

// framePump requests frames from the worker at the PAL rate and encodes
// the responses for broadcast. The worker hands the video buffer back with
// each response, so one buffer shuttles between the two ends and is never
// shared.
func (h *Hub) framePump() {
	video := make([]byte, engine.FrameBufferSize)
	inFlight := false
	ready := false

	t := time.NewTicker(frameInterval)
	defer t.Stop()

	responses := h.worker.Responses()
	for {
		select {
		case <-t.C:
			if !ready {
				// no request goes out before the readiness notification
				continue
			}
			if inFlight {
				// previous frame still in flight, or the machine has
				// stopped and will never answer again
				continue
			}
			h.worker.Requests() <- worker.Request{
				Command: worker.CommandRunFrame,
				Video:   video,
			}
			video = nil
			inFlight = true
		case resp, ok := <-responses:
			if !ok {
				return
			}
			switch resp.Command {
			case worker.CommandReady:
				ready = true
				h.mu.Lock()
				h.ready = true
				h.mu.Unlock()
				h.broadcast <- []byte{MessageReady}
			case worker.CommandRunFrame:
				video = resp.Video
				inFlight = false
				h.sendFrame(video)
			}
		}
	}
}

// sendFrame encodes one frame for the clients: optional compression, then
// a cache lookup so repeated frames go out as a 2-byte index.
func (h *Hub) sendFrame(frame []byte) {
	h.mu.Lock()
	compression, caching := h.compression, h.frameCaching
	h.mu.Unlock()

	payload := frame
	if compression {
		out, err := cbrotli.Encode(frame, cbrotli.WriterOptions{Quality: 7})
		if err != nil {
			h.Errorf("frame compression: %v", err)
			return
		}
		payload = out
	} else {
		// the cache holds frames after broadcast, so an uncompressed
		// frame must be copied out of the shuttle buffer
		payload = append([]byte(nil), frame...)
	}

	idxBuf := make([]byte, 2)

	if caching {
		hash := xxhash.Sum64(payload)
		h.frameCache.Lock()
		if idx := h.frameCache.index(hash); idx != -1 {
			binary.LittleEndian.PutUint16(idxBuf, uint16(idx))
			h.frameCache.Unlock()
			h.broadcast <- append([]byte{MessageFrameCache}, idxBuf...)
			return
		}
		binary.LittleEndian.PutUint16(idxBuf, uint16(h.frameCache.add(hash, payload)))
		h.frameCache.Unlock()
	}

	h.broadcast <- append(append([]byte{MessageFrame}, idxBuf...), payload...)
}

// info packs the hub settings into one byte:
//
//	Bit 0: machine ready
//	Bit 1: compression enabled
//	Bit 2: frame caching enabled
func (h *Hub) info() byte {
	h.mu.Lock()
	defer h.mu.Unlock()

	var info byte
	if h.ready {
		info |= 0x01
	}
	if h.compression {
		info |= 0x02
	}
	if h.frameCaching {
		info |= 0x04
	}
	return info
}

// newClient creates a new client and registers it with the hub.
func (h *Hub) newClient(conn *websocket.Conn, r *http.Request) *Client {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.currentID++

	c := &Client{
		hub:        h,
		conn:       conn,
		Send:       make(chan []byte, 256),
		ID:         h.currentID,
		RemoteAddr: r.RemoteAddr,
	}
	h.register <- c
	return c
}
