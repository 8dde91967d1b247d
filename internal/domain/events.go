package domain

import "time"

// EventType represents the type of server event sent to clients
type EventType string

const (
	EventRoomList          EventType = "ROOM_LIST"
	EventRoomCreated       EventType = "ROOM_CREATED"
	EventRoomAdded         EventType = "ROOM_ADDED"
	EventRoomUpdated       EventType = "ROOM_UPDATED"
	EventRoomDeleted       EventType = "ROOM_DELETED"
	EventRoomJoined        EventType = "ROOM_JOINED"
	EventUserJoined        EventType = "USER_JOINED"
	EventUserLeft          EventType = "USER_LEFT"
	EventUserStatusChanged EventType = "USER_STATUS_CHANGED"
	EventCountdownStarted  EventType = "COUNTDOWN_STARTED"
	EventRaceStarted       EventType = "RACE_STARTED"
	EventRaceTimeExpired   EventType = "RACE_TIME_EXPIRED"
	EventRaceResults       EventType = "RACE_RESULTS"
	EventProgressUpdated   EventType = "PROGRESS_UPDATED"
	EventNameTaken         EventType = "NAME_TAKEN"
	EventMessage           EventType = "MESSAGE"
	EventPong              EventType = "PONG"
)

// Event is a notification produced by the core and fanned out by the
// broadcast gateway
type Event struct {
	Type      EventType   `json:"type"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewEvent creates a new event with the current timestamp
func NewEvent(eventType EventType, payload interface{}) *Event {
	return &Event{
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now(),
	}
}

// Payload types for different events

// RoomListPayload is the room listing snapshot sent on connect
type RoomListPayload struct {
	Rooms []RoomInfo `json:"rooms"`
}

// RoomCreatedPayload confirms room creation to the requesting connection
type RoomCreatedPayload struct {
	Name string `json:"name"`
}

// RoomDeletedPayload is sent to everyone when a room empties out
type RoomDeletedPayload struct {
	Name string `json:"name"`
}

// RoomJoinedPayload is sent to a connection that joined a room, carrying
// the current occupant list
type RoomJoinedPayload struct {
	Name  string            `json:"name"`
	Users []ParticipantInfo `json:"users"`
}

// UserJoinedPayload is sent to a room when a new occupant arrives
type UserJoinedPayload struct {
	Username string `json:"username"`
}

// UserLeftPayload is sent to a room when an occupant leaves
type UserLeftPayload struct {
	Username string `json:"username"`
}

// UserStatusPayload is sent to a room when an occupant's readiness changes
type UserStatusPayload struct {
	Username string `json:"username"`
	Ready    bool   `json:"ready"`
}

// CountdownStartedPayload announces the countdown with the text to fetch
type CountdownStartedPayload struct {
	Seconds int `json:"seconds"`
	TextID  int `json:"textId"`
}

// RaceStartedPayload announces the race with its duration
type RaceStartedPayload struct {
	Seconds int `json:"seconds"`
}

// RaceResultsPayload carries the ordered finisher list. The order may be
// incomplete when the race ended by timeout.
type RaceResultsPayload struct {
	FinishOrder []string `json:"finishOrder"`
}

// ProgressUpdatedPayload relays one participant's reported progress
type ProgressUpdatedPayload struct {
	Username string `json:"username"`
	Progress int    `json:"progress"`
}

// MessagePayload is a user-visible message for the receiving connection
type MessagePayload struct {
	Text string `json:"text"`
}
