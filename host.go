package wschat

import (
	"context"
	"errors"
	"io"
	"net"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"wschat/chat"
	"wschat/chat/message"
	"wschat/wsd"
)

// conn is what the host needs from one transport connection. wsd.Conn
// satisfies it; tests use scripted fakes.
type conn interface {
	io.Writer
	Room() string
	RemoteAddr() net.Addr
	ReadMessage() ([]byte, error)
	Close() error
}

// Host is the bridge between the wsd transport and the chat engine. It owns
// the room registry and the joke provider and runs one read loop per
// connection.
type Host struct {
	registry *chat.Registry
	jokes    chat.JokeProvider
	listener *wsd.Listener
}

// NewHost creates a Host on top of an existing listener.
func NewHost(listener *wsd.Listener, jokes chat.JokeProvider) *Host {
	return &Host{
		registry: chat.NewRegistry(),
		jokes:    jokes,
		listener: listener,
	}
}

// Serve accepts connections until the listener closes.
func (h *Host) Serve() {
	for c := range h.listener.ServeConns() {
		go h.handle(c)
	}
}

// handle runs one connection: build the session, feed it frames to
// completion one at a time, and tear it down when the transport goes away.
func (h *Host) handle(c conn) {
	connected := time.Now()
	room := h.registry.GetOrCreate(c.Room())
	session := chat.NewSession(uuid.NewString(), room, c, h.jokes)
	logger.Infof("[%s] connected to room %q", c.RemoteAddr(), room.Name())

	defer func() {
		session.Close()
		c.Close()
		logger.Infof("[%s] disconnected from room %q, was connected %s",
			c.RemoteAddr(), room.Name(), humanize.RelTime(connected, time.Now(), "", ""))
	}()

	ctx := context.Background()
	for {
		data, err := c.ReadMessage()
		if err != nil {
			logger.Debugf("[%s] read ended: %v", c.RemoteAddr(), err)
			return
		}
		if err := session.HandleMessage(ctx, data); err != nil {
			if errors.Is(err, message.ErrUnknownType) {
				// Fatal to the message, not to the connection.
				logger.Warningf("[%s] %v", c.RemoteAddr(), err)
				continue
			}
			// Malformed frame, the client is not speaking our protocol.
			logger.Warningf("[%s] closing: %v", c.RemoteAddr(), err)
			return
		}
	}
}
