package network

import (
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// ErrSendBufferFull is returned when a client stops reading its messages
var ErrSendBufferFull = errors.New("send buffer full")

// Connection wraps the WebSocket connection with an outgoing queue
type Connection struct {
	ws        *websocket.Conn
	send      chan []byte
	logger *slog.Logger
	mutex  sync.Mutex
	closed bool
}

// NewConnection creates a new connection wrapper
func NewConnection(ws *websocket.Conn, logger *slog.Logger) *Connection {
	return &Connection{
		ws:     ws,
		send:   make(chan []byte, 256),
		logger: logger.With("remote", ws.RemoteAddr().String()),
	}
}

// ReadPump reads messages until the peer goes away. It closes the outgoing
// queue on return, which stops WritePump.
func (c *Connection) ReadPump(h MessageHandler) {
	defer c.closeSend()

	c.ws.SetReadLimit(maxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn("Error reading message", "error", err)
			}
			return
		}
		h.HandleMessage(c, message)
	}
}

// WritePump writes queued messages and keeps the connection alive with pings
func (c *Connection) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, message); err != nil {
				c.logger.Debug("Error writing message", "error", err)
				return
			}
		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// SendMessage queues a message for the client
func (c *Connection) SendMessage(msg interface{}) error {
	messageBytes, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.closed {
		return websocket.ErrCloseSent
	}

	select {
	case c.send <- messageBytes:
		return nil
	default:
		c.logger.Warn("Dropping slow client")
		c.ws.Close()
		return ErrSendBufferFull
	}
}

func (c *Connection) closeSend() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// MessageHandler interface for handling messages
type MessageHandler interface {
	HandleMessage(conn *Connection, message []byte)
}
