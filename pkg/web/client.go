package web

import (
	"github.com/gorilla/websocket"

	"github.com/oleworth/go-spectrum/internal/engine"
	"github.com/oleworth/go-spectrum/internal/snapshot"
	"github.com/oleworth/go-spectrum/internal/worker"
)

// Client is one websocket connection. Its read pump translates incoming
// binary messages into worker requests; its write pump drains the Send
// channel onto the wire.
type Client struct {
	hub        *Hub
	conn       *websocket.Conn
	Send       chan []byte
	ID         uint8
	RemoteAddr string
}

func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			return // connection closed
		}
		if len(message) == 0 {
			continue
		}
		c.handle(message[0], message[1:])
	}
}

func (c *Client) handle(req Request, payload []byte) {
	switch req {
	case RequestRunFrame:
		// the hub paces frames itself; a client asking for one is not an
		// error, it just changes nothing
	case RequestKeyDown:
		if len(payload) >= 2 {
			c.submit(worker.Request{Command: worker.CommandKeyDown, Row: payload[0], Mask: payload[1]})
		}
	case RequestKeyUp:
		if len(payload) >= 2 {
			c.submit(worker.Request{Command: worker.CommandKeyUp, Row: payload[0], Mask: payload[1]})
		}
	case RequestSetMachineType:
		if len(payload) >= 1 {
			c.submit(worker.Request{Command: worker.CommandSetMachineType, Model: engine.Model(payload[0])})
		}
	case RequestReset:
		c.submit(worker.Request{Command: worker.CommandReset})
	case RequestLoadMemoryPage:
		if len(payload) >= 1 {
			c.submit(worker.Request{
				Command: worker.CommandLoadMemoryPage,
				Page:    int(payload[0]),
				Data:    append([]byte(nil), payload[1:]...),
			})
		}
	case RequestLoadSnapshot:
		if len(payload) < 1 {
			return
		}
		var (
			s   *snapshot.Snapshot
			err error
		)
		switch payload[0] {
		case SnapshotSNA:
			s, err = snapshot.ReadSNA(payload[1:])
		case SnapshotZ80:
			s, err = snapshot.ReadZ80(payload[1:])
		default:
			c.hub.Errorf("client %d: unknown snapshot format %d", c.ID, payload[0])
			return
		}
		if err != nil {
			c.hub.Errorf("client %d: %v", c.ID, err)
			return
		}
		c.submit(worker.Request{Command: worker.CommandLoadSnapshot, Snapshot: s})
	case RequestAttachTAP:
		c.submit(worker.Request{Command: worker.CommandAttachTAP, Data: append([]byte(nil), payload...)})
	case RequestAttachTZX:
		c.submit(worker.Request{Command: worker.CommandAttachTZX, Data: append([]byte(nil), payload...)})
	case RequestAttachDisk:
		c.submit(worker.Request{Command: worker.CommandAttachDisk, Data: append([]byte(nil), payload...)})
	case RequestSettings:
		if len(payload) < 2 {
			return
		}
		c.hub.mu.Lock()
		switch payload[0] {
		case SettingCompression:
			c.hub.compression = payload[1] == 1
		case SettingFrameCaching:
			c.hub.frameCaching = payload[1] == 1
		}
		c.hub.mu.Unlock()
	default:
		c.hub.Errorf("client %d: unknown request %d", c.ID, req)
	}
}

func (c *Client) submit(req worker.Request) {
	c.hub.worker.Requests() <- req
}

func (c *Client) WritePump() {
	defer func() {
		c.conn.WriteMessage(websocket.CloseMessage, []byte{})
		c.conn.Close()
	}()

	for message := range c.Send {
		if err := c.conn.WriteMessage(websocket.BinaryMessage, message); err != nil {
			return
		}
	}
}
