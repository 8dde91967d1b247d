package game

import "typerace/internal/domain"

// Broadcaster is the gateway the core uses to notify connections: one
// connection, every connection in a room, or every connection globally.
// Subscribe and Unsubscribe keep the gateway's room membership aligned
// with the room registry; the hub calls them as part of join/leave.
type Broadcaster interface {
	ToConn(connID string, event *domain.Event)
	ToRoom(room string, event *domain.Event)
	ToAll(event *domain.Event)
	Subscribe(connID, room string)
	Unsubscribe(connID, room string)
}

// TextPicker selects a race text reference uniformly at random from a
// non-empty content set. Retrieval of the text itself happens outside
// the core.
type TextPicker interface {
	Pick() int
}
