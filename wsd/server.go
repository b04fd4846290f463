// Package wsd is the websocket transport daemon: it accepts browser
// connections, upgrades them and yields them to the host, the way a chat
// backend would receive terminals from an SSH daemon.
package wsd

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

// Options configures transport behavior shared by all connections.
type Options struct {
	// StaticDir serves the browser client at /. Empty disables it.
	StaticDir string
	// PingInterval between keepalive pings on each connection.
	PingInterval time.Duration
	// SendBuffer is the per-connection outbound frame buffer.
	SendBuffer int
}

// Listener accepts websocket chat connections on top of an HTTP socket.
type Listener struct {
	net.Listener
	opts     Options
	upgrader websocket.Upgrader
	conns    chan *Conn
}

// Listen opens a TCP socket for the chat transport.
func Listen(laddr string, opts Options) (*Listener, error) {
	socket, err := net.Listen("tcp", laddr)
	if err != nil {
		return nil, err
	}
	if opts.PingInterval == 0 {
		opts.PingInterval = (pongWait * 9) / 10
	}
	if opts.SendBuffer == 0 {
		opts.SendBuffer = 256
	}
	l := Listener{
		Listener: socket,
		opts:     opts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The chat is open to any page that can reach it, there is no
			// origin-bound auth to protect.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		conns: make(chan *Conn),
	}
	return &l, nil
}

// ServeConns starts serving HTTP on the socket and yields each upgraded
// chat connection. The channel closes when the listener does.
func (l *Listener) ServeConns() <-chan *Conn {
	mux := http.NewServeMux()
	mux.HandleFunc("/chat/", l.handleChat)
	if l.opts.StaticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(l.opts.StaticDir)))
	}

	go func() {
		defer close(l.conns)
		err := http.Serve(l.Listener, mux)
		logger.Printf("http server stopped: %v", err)
	}()

	return l.conns
}

// handleChat upgrades one request. Room identity is the last path segment
// of the connection URL.
func (l *Listener) handleChat(w http.ResponseWriter, r *http.Request) {
	room := roomFromPath(r.URL.Path)
	if room == "" {
		http.Error(w, "room name required", http.StatusBadRequest)
		return
	}

	ws, err := l.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Printf("upgrade failed for %s: %v", r.RemoteAddr, err)
		return
	}
	ws.SetReadLimit(maxMessageSize)
	ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	l.conns <- newConn(ws, room, l.opts.SendBuffer, l.opts.PingInterval)
}

// roomFromPath extracts the room name from a /chat/... URL path.
func roomFromPath(path string) string {
	path = strings.TrimSuffix(path, "/")
	i := strings.LastIndex(path, "/")
	room := path[i+1:]
	if room == "chat" {
		// Bare /chat or /chat/ has no room segment.
		return ""
	}
	return room
}
