package ws

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096

	// How long a connection may stay unauthenticated before it is dropped
	authWait = 30 * time.Second
)

// AuthFunc verifies a client-supplied token and returns the user ID
type AuthFunc func(token string) (string, error)

// authMessage is the first frame a client must send after connecting
type authMessage struct {
	Type  string `json:"type"`
	Token string `json:"token"`
}

// Client represents a single WebSocket connection. The connection starts
// unauthenticated; the first frame must be an "authenticate" message, after
// which the client is registered in the hub under its user ID.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	auth   AuthFunc
	userID string
}

// NewClient creates a new WebSocket client
func NewClient(hub *Hub, conn *websocket.Conn, auth AuthFunc) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 256),
		auth: auth,
	}
}

// ReadPump reads messages from the WebSocket. It handles the authenticate
// handshake, then ignores further client frames (server-push only).
func (c *Client) ReadPump() {
	registered := false
	defer func() {
		if registered {
			c.hub.unregister <- c
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(authWait)) //nolint:errcheck
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait)) //nolint:errcheck
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		if registered {
			continue
		}

		var msg authMessage
		if err := json.Unmarshal(data, &msg); err != nil || msg.Type != "authenticate" {
			continue
		}

		userID, err := c.auth(msg.Token)
		if err != nil {
			c.writeEvent(&Event{Type: "error", Payload: "authentication failed"})
			return
		}

		c.userID = userID
		c.hub.Register(c)
		registered = true
		c.conn.SetReadDeadline(time.Now().Add(pongWait)) //nolint:errcheck
		c.writeEvent(&Event{Type: "authenticated"})
	}
}

// writeEvent sends a single event outside the send channel; used only
// during the handshake before WritePump owns the connection writes.
func (c *Client) writeEvent(event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

// WritePump sends messages to the WebSocket
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{}) //nolint:errcheck
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message) //nolint:errcheck
			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
