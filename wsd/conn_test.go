package wsd

import (
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListenerRoundTrip(t *testing.T) {
	l, err := Listen("127.0.0.1:0", Options{})
	require.NoError(t, err)
	defer l.Close()
	conns := l.ServeConns()

	url := "ws://" + l.Addr().String() + "/chat/lobby"
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer client.Close()

	var conn *Conn
	select {
	case conn = <-conns:
	case <-time.After(3 * time.Second):
		t.Fatal("no connection yielded")
	}
	defer conn.Close()
	assert.Equal(t, "lobby", conn.Room())

	// Server to client, one Write is one text frame.
	_, err = conn.Write([]byte(`{"type":"note","text":"hi"}`))
	require.NoError(t, err)
	typ, data, err := client.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, websocket.TextMessage, typ)
	assert.JSONEq(t, `{"type":"note","text":"hi"}`, string(data))

	// Client to server.
	require.NoError(t, client.WriteMessage(websocket.TextMessage, []byte(`{"type":"joke"}`)))
	data, err = conn.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"joke"}`, string(data))
}

func TestListenerRejectsBareChatPath(t *testing.T) {
	l, err := Listen("127.0.0.1:0", Options{})
	require.NoError(t, err)
	defer l.Close()
	l.ServeConns()

	_, resp, err := websocket.DefaultDialer.Dial("ws://"+l.Addr().String()+"/chat/", nil)
	assert.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestConnWriteAfterClose(t *testing.T) {
	l, err := Listen("127.0.0.1:0", Options{})
	require.NoError(t, err)
	defer l.Close()
	conns := l.ServeConns()

	client, _, err := websocket.DefaultDialer.Dial("ws://"+l.Addr().String()+"/chat/lobby", nil)
	require.NoError(t, err)
	defer client.Close()

	conn := <-conns
	require.NoError(t, conn.Close())

	// Best-effort send: the frame is dropped, the caller just gets told.
	_, err = conn.Write([]byte("late"))
	assert.ErrorIs(t, err, ErrConnClosed)
}
