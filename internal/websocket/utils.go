package websocket

import (
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait = 10 * time.Second
	// DefaultPongWait bounds how long a viewer may go without answering a ping.
	DefaultPongWait = 60 * time.Second
	// DefaultPingPeriod must stay below the pong wait.
	DefaultPingPeriod = (DefaultPongWait * 9) / 10
)

// WriteTyped sends a strongly-typed response payload over the WebSocket.
func WriteTyped(conn *websocket.Conn, v interface{}) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(v)
}

// ReadJSON reads and decodes a message into the provided structure.
// The read deadline is owned by KeepAlive.
func ReadJSON(conn *websocket.Conn, v interface{}) error {
	return conn.ReadJSON(v)
}

// KeepAlive pings conn every pingPeriod and pushes the read deadline out by
// pongWait on every pong, so a silent but healthy viewer is never timed out.
// The returned func stops the pinger; call it before closing conn.
func KeepAlive(conn *websocket.Conn, pongWait, pingPeriod time.Duration) (stop func()) {
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				// WriteControl is safe alongside the hub's writers.
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
					return
				}
			}
		}
	}()

	return func() { close(done) }
}
