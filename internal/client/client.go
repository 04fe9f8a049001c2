package client

import (
	"sync"
	"time"
)

// Connection is an interface that abstracts the websocket connection.
type Connection interface {
	WriteMessage(messageType int, data []byte) error
	ReadMessage() (int, []byte, error)
	Close() error
}

// Client is a browser tab attached to the session.
type Client struct {
	ID          string
	Conn        Connection
	ConnectedAt time.Time

	// gorilla/websocket allows one concurrent writer per connection.
	writeMu sync.Mutex
}

// NewClient wraps a connection.
func NewClient(id string, conn Connection) *Client {
	return &Client{
		ID:          id,
		Conn:        conn,
		ConnectedAt: time.Now(),
	}
}

// Write sends one message, serializing concurrent writers.
func (c *Client) Write(messageType int, data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.Conn.WriteMessage(messageType, data)
}
