package ws

import "encoding/json"

// MessageType represents the type of an inbound WebSocket message
type MessageType string

// Client → Server message types
const (
	MsgCreateRoom MessageType = "create_room"
	MsgJoinRoom   MessageType = "join_room"
	MsgQuitRoom   MessageType = "quit_room"
	MsgSetReady   MessageType = "set_ready"
	MsgProgress   MessageType = "progress"
	MsgPing       MessageType = "ping"
)

// ClientMessage represents a message from client to server. Server →
// client traffic is domain.Event marshalled directly.
type ClientMessage struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// RoomPayload is the payload for create_room and join_room
type RoomPayload struct {
	Name string `json:"name"`
}

// ReadyPayload is the payload for set_ready
type ReadyPayload struct {
	Ready bool `json:"ready"`
}

// ProgressPayload is the payload for progress reports, 0-100
type ProgressPayload struct {
	Progress int `json:"progress"`
}
