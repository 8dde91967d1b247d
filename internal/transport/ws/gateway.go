package ws

import (
	"sync"

	"github.com/rs/zerolog"

	"typerace/internal/domain"
)

// Gateway implements game.Broadcaster over live WebSocket clients. It
// tracks which connections are subscribed to which room so the core can
// address a whole room without knowing about sockets.
type Gateway struct {
	mu      sync.RWMutex
	clients map[string]*Client            // conn ID -> client
	rooms   map[string]map[string]*Client // room name -> conn ID -> client
	logger  zerolog.Logger
}

// NewGateway creates an empty gateway
func NewGateway(logger zerolog.Logger) *Gateway {
	return &Gateway{
		clients: make(map[string]*Client),
		rooms:   make(map[string]map[string]*Client),
		logger:  logger,
	}
}

// Add registers a client connection
func (g *Gateway) Add(c *Client) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.clients[c.connID] = c
}

// Remove unregisters a client connection and drops any room subscription
func (g *Gateway) Remove(connID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.clients, connID)
	for name, members := range g.rooms {
		delete(members, connID)
		if len(members) == 0 {
			delete(g.rooms, name)
		}
	}
}

// Subscribe adds a connection to a room's broadcast set
func (g *Gateway) Subscribe(connID, room string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	c, ok := g.clients[connID]
	if !ok {
		return
	}
	members, ok := g.rooms[room]
	if !ok {
		members = make(map[string]*Client)
		g.rooms[room] = members
	}
	members[connID] = c
}

// Unsubscribe removes a connection from a room's broadcast set
func (g *Gateway) Unsubscribe(connID, room string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	members, ok := g.rooms[room]
	if !ok {
		return
	}
	delete(members, connID)
	if len(members) == 0 {
		delete(g.rooms, room)
	}
}

// ToConn sends an event to a single connection
func (g *Gateway) ToConn(connID string, event *domain.Event) {
	g.mu.RLock()
	c, ok := g.clients[connID]
	g.mu.RUnlock()

	if !ok {
		return
	}
	if err := c.Send(event); err != nil {
		g.logger.Debug().Err(err).Str("conn", connID).Msg("failed to send to client")
	}
}

// ToRoom sends an event to every connection subscribed to a room
func (g *Gateway) ToRoom(room string, event *domain.Event) {
	g.mu.RLock()
	members := make([]*Client, 0, len(g.rooms[room]))
	for _, c := range g.rooms[room] {
		members = append(members, c)
	}
	g.mu.RUnlock()

	for _, c := range members {
		if err := c.Send(event); err != nil {
			g.logger.Debug().Err(err).Str("conn", c.connID).Msg("failed to send to client")
		}
	}
}

// ToAll sends an event to every live connection
func (g *Gateway) ToAll(event *domain.Event) {
	g.mu.RLock()
	all := make([]*Client, 0, len(g.clients))
	for _, c := range g.clients {
		all = append(all, c)
	}
	g.mu.RUnlock()

	for _, c := range all {
		if err := c.Send(event); err != nil {
			g.logger.Debug().Err(err).Str("conn", c.connID).Msg("failed to send to client")
		}
	}
}

// CloseAll closes every client connection, for shutdown
func (g *Gateway) CloseAll() {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, c := range g.clients {
		c.Close()
	}
	g.clients = make(map[string]*Client)
	g.rooms = make(map[string]map[string]*Client)
}
