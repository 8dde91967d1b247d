package game

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"typerace/internal/domain"
)

// Options configures the race hub
type Options struct {
	// Capacity is the maximum number of occupants per room
	Capacity int
	// Countdown is the fixed phase between all-ready and race start
	Countdown time.Duration
	// RaceDuration is how long a race runs before it expires
	RaceDuration time.Duration
}

// Hub is the single entry point for connection events: join, ready,
// progress, disconnect and timer expiry all funnel through it. One mutex
// serializes every event, so each handler runs to completion before the
// next one starts and the registries need no locking of their own.
type Hub struct {
	mu       sync.Mutex
	identity *IdentityRegistry
	rooms    *RoomRegistry
	gateway  Broadcaster
	texts    TextPicker
	clock    clockwork.Clock
	opts     Options
	logger   zerolog.Logger
}

// NewHub creates a hub with the given collaborators. Pass a real clock in
// production; tests inject a fake one to drive the timer transitions.
func NewHub(opts Options, gateway Broadcaster, texts TextPicker, clock clockwork.Clock, logger zerolog.Logger) *Hub {
	return &Hub{
		identity: NewIdentityRegistry(),
		rooms:    NewRoomRegistry(opts.Capacity),
		gateway:  gateway,
		texts:    texts,
		clock:    clock,
		opts:     opts,
		logger:   logger,
	}
}

// SeedRooms pre-creates empty rooms at startup. Optional; the default
// deployment starts with no rooms.
func (h *Hub) SeedRooms(names []string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, name := range names {
		if name == "" {
			continue
		}
		if _, err := h.rooms.Create(name); err != nil {
			h.logger.Warn().Str("room", name).Msg("seed room already exists")
		}
	}
}

// Connect registers a participant identity for a connection and sends it
// the current room listing. Returns ErrNameTaken when the display name is
// held by a live participant; the caller is expected to notify the
// connection and terminate it.
func (h *Hub) Connect(connID, username string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, err := h.identity.Register(connID, username); err != nil {
		h.logger.Info().Str("username", username).Msg("username taken")
		return err
	}

	h.gateway.ToConn(connID, domain.NewEvent(domain.EventRoomList, domain.RoomListPayload{
		Rooms: h.rooms.List(),
	}))

	h.logger.Info().Str("username", username).Str("conn", connID).Msg("participant connected")
	return nil
}

// Disconnect runs the room leave protocol for the connection and removes
// its identity. Idempotent.
func (h *Hub) Disconnect(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	p, ok := h.identity.Get(connID)
	if !ok {
		return
	}

	h.leaveCurrentRoom(connID, p)
	h.identity.Unregister(connID)
	h.logger.Info().Str("username", p.Name).Msg("participant disconnected")
}

// CreateRoom creates a new room and announces it to everyone. A duplicate
// name is surfaced to the requesting connection as a user-visible message.
func (h *Hub) CreateRoom(connID, name string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.identity.Get(connID); !ok {
		return
	}

	room, err := h.rooms.Create(name)
	if err != nil {
		h.gateway.ToConn(connID, domain.NewEvent(domain.EventMessage, domain.MessagePayload{
			Text: fmt.Sprintf("Room %q already exists", name),
		}))
		return
	}

	h.gateway.ToConn(connID, domain.NewEvent(domain.EventRoomCreated, domain.RoomCreatedPayload{Name: name}))
	h.gateway.ToAll(domain.NewEvent(domain.EventRoomAdded, room.ToInfo()))
	h.logger.Info().Str("room", name).Msg("room created")
}

// JoinRoom moves the connection into the named room, leaving any prior
// room first. Joining the room it is already in is a no-op. A full or
// missing room is rejected silently.
func (h *Hub) JoinRoom(connID, name string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	p, ok := h.identity.Get(connID)
	if !ok {
		return
	}
	if cur, ok := h.rooms.Current(connID); ok && cur.Name == name {
		return
	}

	h.leaveCurrentRoom(connID, p)

	room, err := h.rooms.Join(connID, name)
	if err != nil {
		// Admission control: reject without broadcasting.
		h.logger.Debug().Err(err).Str("room", name).Str("username", p.Name).Msg("join rejected")
		return
	}

	// Per-race state never follows a participant between rooms: every
	// join starts not-ready, unfinished, at zero progress.
	p.ResetForNextRace()

	// Notify existing occupants before subscribing the joiner, so the
	// arrival notice reaches only the others.
	h.gateway.ToRoom(name, domain.NewEvent(domain.EventUserJoined, domain.UserJoinedPayload{Username: p.Name}))
	h.gateway.Subscribe(connID, name)
	h.gateway.ToConn(connID, domain.NewEvent(domain.EventRoomJoined, domain.RoomJoinedPayload{
		Name:  name,
		Users: h.roomUsers(room),
	}))
	h.gateway.ToAll(domain.NewEvent(domain.EventRoomUpdated, room.ToInfo()))

	h.logger.Info().Str("room", name).Str("username", p.Name).Msg("joined room")
	h.evaluateStart(room)
}

// QuitRoom runs the leave protocol for the connection's current room.
// No-op if the connection is in no room.
func (h *Hub) QuitRoom(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	p, ok := h.identity.Get(connID)
	if !ok {
		return
	}
	h.leaveCurrentRoom(connID, p)
}

// SetReady mutates the participant's readiness and re-evaluates whether
// its room can start a countdown. Readiness only matters in the waiting
// phase: a toggle during a countdown or race is dropped entirely, so
// clients never see a ready badge mid-race.
func (h *Hub) SetReady(connID string, ready bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	p, ok := h.identity.Get(connID)
	if !ok {
		return
	}

	room, inRoom := h.rooms.Current(connID)
	if inRoom && room.Started() {
		return
	}

	h.identity.SetReady(connID, ready)
	if !inRoom {
		return
	}

	h.gateway.ToRoom(room.Name, domain.NewEvent(domain.EventUserStatusChanged, domain.UserStatusPayload{
		Username: p.Name,
		Ready:    ready,
	}))
	h.evaluateStart(room)
}

// ReportProgress relays a participant's race progress to its room and, at
// 100 while racing, records the finish and checks for race completion.
func (h *Hub) ReportProgress(connID string, progress int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	p, ok := h.identity.Get(connID)
	if !ok {
		return
	}
	room, ok := h.rooms.Current(connID)
	if !ok {
		h.logger.Debug().Str("username", p.Name).Msg("progress outside a room ignored")
		return
	}

	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	p.Progress = progress

	h.gateway.ToRoom(room.Name, domain.NewEvent(domain.EventProgressUpdated, domain.ProgressUpdatedPayload{
		Username: p.Name,
		Progress: progress,
	}))

	if progress == 100 && room.Phase == domain.PhaseRacing {
		if room.AddFinisher(p.Name) {
			p.Finished = true
			h.maybeFinishRace(room)
		}
	}
}

// RoomCount returns the number of live rooms
func (h *Hub) RoomCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.rooms.Count()
}

// ParticipantCount returns the number of live participants
func (h *Hub) ParticipantCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.identity.Count()
}

// leaveCurrentRoom runs the full leave protocol: membership update,
// notifications, room deletion at zero occupancy, and the mid-race
// reconciliation described in the race machine. Caller must hold the lock.
func (h *Hub) leaveCurrentRoom(connID string, p *domain.Participant) {
	room, deleted, ok := h.rooms.Leave(connID)
	if !ok {
		return
	}

	h.gateway.Unsubscribe(connID, room.Name)

	if deleted {
		h.cancelTimers(room)
		h.gateway.ToAll(domain.NewEvent(domain.EventRoomDeleted, domain.RoomDeletedPayload{Name: room.Name}))
		h.logger.Info().Str("room", room.Name).Msg("room deleted")
		return
	}

	h.gateway.ToRoom(room.Name, domain.NewEvent(domain.EventUserLeft, domain.UserLeftPayload{Username: p.Name}))
	h.gateway.ToAll(domain.NewEvent(domain.EventRoomUpdated, room.ToInfo()))

	if room.Started() {
		// A departure never re-triggers the start, but it can complete
		// the race for the remaining occupants.
		room.RemoveFinisher(p.Name)
		h.maybeFinishRace(room)
	} else {
		h.evaluateStart(room)
	}
}

// roomUsers returns the occupant list of a room, sorted by name for a
// stable wire representation. Caller must hold the lock.
func (h *Hub) roomUsers(room *domain.Room) []domain.ParticipantInfo {
	users := make([]domain.ParticipantInfo, 0, len(room.Conns))
	for connID := range room.Conns {
		if p, ok := h.identity.Get(connID); ok {
			users = append(users, p.ToInfo())
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users
}
