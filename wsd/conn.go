package wsd

import (
	"errors"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// The error returned when a write is attempted on a closed connection.
var ErrConnClosed = errors.New("connection closed")

// The error returned when the outbound buffer is full and a frame is
// dropped.
var ErrBufferFull = errors.New("send buffer full")

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	maxMessageSize = 2048
)

// Conn wraps a websocket connection to one browser client. Outbound frames
// go through a buffered channel drained by a single write pump, so any
// goroutine may Write concurrently. One Write is one text frame.
type Conn struct {
	ws   *websocket.Conn
	room string

	out       chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func newConn(ws *websocket.Conn, room string, sendBuffer int, pingInterval time.Duration) *Conn {
	c := &Conn{
		ws:   ws,
		room: room,
		out:  make(chan []byte, sendBuffer),
		done: make(chan struct{}),
	}
	go c.writePump(pingInterval)
	return c
}

// Room returns the room name taken from the connection URL.
func (c *Conn) Room() string {
	return c.room
}

// RemoteAddr returns the remote network address.
func (c *Conn) RemoteAddr() net.Addr {
	return c.ws.RemoteAddr()
}

// ReadMessage blocks until one text frame arrives. Control frames are
// handled by the websocket library; binary frames are skipped.
func (c *Conn) ReadMessage() ([]byte, error) {
	for {
		typ, data, err := c.ws.ReadMessage()
		if err != nil {
			return nil, err
		}
		if typ == websocket.TextMessage {
			return data, nil
		}
	}
}

// Write queues one outbound frame. A closed connection or a full buffer
// drops the frame and returns an error, delivery is best-effort.
func (c *Conn) Write(p []byte) (int, error) {
	// The frame outlives the caller's buffer.
	data := make([]byte, len(p))
	copy(data, p)

	select {
	case <-c.done:
		return 0, ErrConnClosed
	default:
	}

	select {
	case c.out <- data:
		return len(p), nil
	default:
		return 0, ErrBufferFull
	}
}

// writePump drains the outbound buffer and sends periodic pings. It is the
// only goroutine writing to the socket.
func (c *Conn) writePump(pingInterval time.Duration) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case data := <-c.out:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			c.ws.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

// Close shuts the connection down, once.
func (c *Conn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		err = c.ws.Close()
	})
	return err
}
