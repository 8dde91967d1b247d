package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"typerace/internal/domain"
	"typerace/internal/game"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4096

	// Size of the send channel buffer
	sendBufferSize = 256
)

// Client represents a WebSocket client connection
type Client struct {
	conn     *websocket.Conn
	hub      *game.Hub
	gateway  *Gateway
	connID   string
	username string
	send     chan []byte
	done     chan struct{}
	logger   zerolog.Logger
	mu       sync.Mutex
	closed   bool
}

// NewClient creates a new WebSocket client
func NewClient(conn *websocket.Conn, hub *game.Hub, gateway *Gateway, connID, username string, logger zerolog.Logger) *Client {
	return &Client{
		conn:     conn,
		hub:      hub,
		gateway:  gateway,
		connID:   connID,
		username: username,
		send:     make(chan []byte, sendBufferSize),
		done:     make(chan struct{}),
		logger:   logger,
	}
}

// Send queues an event for delivery. Non-blocking: a full buffer drops
// the message rather than stalling the caller.
func (c *Client) Send(message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	select {
	case c.send <- data:
		return nil
	default:
		c.logger.Warn().Str("conn", c.connID).Msg("send buffer full, message dropped")
		return nil
	}
}

// Close terminates the connection
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	c.closed = true
	close(c.done)
	return c.conn.Close()
}

// Reject writes a single event synchronously and closes the connection.
// Used when the handshake fails before the pumps start.
func (c *Client) Reject(event *domain.Event) {
	data, err := json.Marshal(event)
	if err == nil {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		c.conn.WriteMessage(websocket.TextMessage, data)
	}
	c.Close()
}

// Run starts the client's read and write pumps
func (c *Client) Run() {
	go c.writePump()
	c.readPump()
}

// readPump pumps messages from the WebSocket connection
func (c *Client) readPump() {
	defer func() {
		c.gateway.Remove(c.connID)
		c.hub.Disconnect(c.connID)
		c.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Debug().Err(err).Str("conn", c.connID).Msg("websocket read error")
			}
			break
		}

		c.handleMessage(message)
	}
}

// writePump pumps messages from the send channel to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			return
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current websocket message
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage processes an incoming message from the client
func (c *Client) handleMessage(data []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		c.logger.Debug().Err(err).Str("conn", c.connID).Msg("invalid message")
		return
	}

	switch msg.Type {
	case MsgCreateRoom:
		var p RoomPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil || p.Name == "" {
			return
		}
		c.hub.CreateRoom(c.connID, p.Name)
	case MsgJoinRoom:
		var p RoomPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil || p.Name == "" {
			return
		}
		c.hub.JoinRoom(c.connID, p.Name)
	case MsgQuitRoom:
		c.hub.QuitRoom(c.connID)
	case MsgSetReady:
		var p ReadyPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return
		}
		c.hub.SetReady(c.connID, p.Ready)
	case MsgProgress:
		var p ProgressPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return
		}
		c.hub.ReportProgress(c.connID, p.Progress)
	case MsgPing:
		c.Send(domain.NewEvent(domain.EventPong, nil))
	default:
		c.logger.Debug().Str("type", string(msg.Type)).Msg("unknown message type")
	}
}
