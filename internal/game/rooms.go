package game

import "typerace/internal/domain"

// RoomRegistry owns the set of rooms and the connection -> room index.
// A connection belongs to at most one room at a time; a room is deleted
// the instant its occupant count drops to zero.
//
// Like the identity registry, it relies on the hub's event mutex for
// serialization.
type RoomRegistry struct {
	rooms    map[string]*domain.Room
	order    []string          // room names in creation order, for listings
	current  map[string]string // conn ID -> room name
	capacity int
}

// NewRoomRegistry creates an empty registry with a per-room capacity
func NewRoomRegistry(capacity int) *RoomRegistry {
	return &RoomRegistry{
		rooms:    make(map[string]*domain.Room),
		current:  make(map[string]string),
		capacity: capacity,
	}
}

// List returns a snapshot of every room in creation order
func (r *RoomRegistry) List() []domain.RoomInfo {
	infos := make([]domain.RoomInfo, 0, len(r.order))
	for _, name := range r.order {
		infos = append(infos, r.rooms[name].ToInfo())
	}
	return infos
}

// Get returns the room with the given name
func (r *RoomRegistry) Get(name string) (*domain.Room, bool) {
	room, ok := r.rooms[name]
	return room, ok
}

// Create adds a new empty room. Fails with ErrRoomNameTaken if a room
// with that name exists.
func (r *RoomRegistry) Create(name string) (*domain.Room, error) {
	if _, exists := r.rooms[name]; exists {
		return nil, domain.ErrRoomNameTaken
	}

	room := domain.NewRoom(name, r.capacity)
	r.rooms[name] = room
	r.order = append(r.order, name)
	return room, nil
}

// Current returns the room a connection is currently joined to
func (r *RoomRegistry) Current(connID string) (*domain.Room, bool) {
	name, ok := r.current[connID]
	if !ok {
		return nil, false
	}
	return r.rooms[name], true
}

// Join adds a connection to a room. The caller must have left any prior
// room first. Fails with ErrRoomNotFound if the room does not exist and
// ErrRoomFull if it is at capacity; the occupant count never exceeds the
// configured maximum.
func (r *RoomRegistry) Join(connID, name string) (*domain.Room, error) {
	room, ok := r.rooms[name]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	if len(room.Conns) >= room.Capacity {
		return nil, domain.ErrRoomFull
	}

	room.Conns[connID] = struct{}{}
	r.current[connID] = name
	return room, nil
}

// Leave removes a connection from its current room. When the occupant
// count drops to zero the room is deleted entirely and deleted is true.
// Returns ok=false if the connection is in no room.
func (r *RoomRegistry) Leave(connID string) (room *domain.Room, deleted, ok bool) {
	name, ok := r.current[connID]
	if !ok {
		return nil, false, false
	}

	room = r.rooms[name]
	delete(room.Conns, connID)
	delete(r.current, connID)

	if len(room.Conns) == 0 {
		delete(r.rooms, name)
		for i, n := range r.order {
			if n == name {
				r.order = append(r.order[:i], r.order[i+1:]...)
				break
			}
		}
		return room, true, true
	}
	return room, false, true
}

// Count returns the number of live rooms
func (r *RoomRegistry) Count() int {
	return len(r.rooms)
}
