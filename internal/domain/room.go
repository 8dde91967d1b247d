package domain

import "github.com/jonboulle/clockwork"

// Room is a named, capacity-bounded group of connections sharing one race
// instance. The room registry owns every Room record; the race machine
// mutates Phase, FinishOrder and the timer handles through it.
type Room struct {
	Name     string
	Capacity int
	Phase    Phase

	// Conns holds the connection IDs currently joined to this room.
	// len(Conns) is the authoritative occupant count.
	Conns map[string]struct{}

	// FinishOrder lists display names in arrival order of race
	// completions. No duplicates.
	FinishOrder []string

	// CountdownTimer and RaceTimer are the pending one-shot timers for
	// the countdown-elapsed and race-duration-expired transitions.
	// Cancellation is explicit: stop the timer and nil the field.
	CountdownTimer clockwork.Timer
	RaceTimer      clockwork.Timer
}

// NewRoom creates an empty room in the waiting phase
func NewRoom(name string, capacity int) *Room {
	return &Room{
		Name:     name,
		Capacity: capacity,
		Phase:    PhaseWaiting,
		Conns:    make(map[string]struct{}),
	}
}

// OccupantCount returns the number of connections joined to the room
func (r *Room) OccupantCount() int {
	return len(r.Conns)
}

// Started reports whether a race lifecycle is underway (countdown or racing)
func (r *Room) Started() bool {
	return r.Phase != PhaseWaiting
}

// Hidden reports whether the room is hidden from room listings: a room at
// capacity is hidden, and a started room stays hidden regardless of
// occupancy until it resets.
func (r *Room) Hidden() bool {
	return r.Started() || len(r.Conns) == r.Capacity
}

// AddFinisher appends a display name to the finish order. Returns false if
// the name is already present, so duplicate completion reports are ignored.
func (r *Room) AddFinisher(name string) bool {
	for _, n := range r.FinishOrder {
		if n == name {
			return false
		}
	}
	r.FinishOrder = append(r.FinishOrder, name)
	return true
}

// RemoveFinisher drops a display name from the finish order, if present
func (r *Room) RemoveFinisher(name string) {
	for i, n := range r.FinishOrder {
		if n == name {
			r.FinishOrder = append(r.FinishOrder[:i], r.FinishOrder[i+1:]...)
			return
		}
	}
}

// ToInfo converts a Room to the listing view sent to clients
func (r *Room) ToInfo() RoomInfo {
	return RoomInfo{
		Name:      r.Name,
		Occupants: len(r.Conns),
		Hidden:    r.Hidden(),
	}
}

// RoomInfo is the view of a room used in listings and occupancy updates
type RoomInfo struct {
	Name      string `json:"name"`
	Occupants int    `json:"occupants"`
	Hidden    bool   `json:"hidden"`
}
