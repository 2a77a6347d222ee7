package server

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Client wraps a WebSocket connection. Writes are serialized so
// concurrent responses never interleave on the wire.
type Client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

// NewClient creates a Client from an upgraded connection.
func NewClient(conn *websocket.Conn) *Client {
	return &Client{conn: conn}
}

// ReadJSON reads the next request message (blocking).
func (c *Client) ReadJSON(v any) error {
	return c.conn.ReadJSON(v)
}

// WriteJSON writes a response message.
func (c *Client) WriteJSON(v any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(v)
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// RemoteAddr returns the remote address as a string.
func (c *Client) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}
