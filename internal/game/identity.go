package game

import "typerace/internal/domain"

// IdentityRegistry tracks connection -> participant identity and enforces
// display name uniqueness across all live participants.
//
// The registry carries no lock of its own: the hub's event mutex
// serializes all access.
type IdentityRegistry struct {
	participants map[string]*domain.Participant // conn ID -> participant
	names        map[string]string              // display name -> conn ID
}

// NewIdentityRegistry creates an empty identity registry
func NewIdentityRegistry() *IdentityRegistry {
	return &IdentityRegistry{
		participants: make(map[string]*domain.Participant),
		names:        make(map[string]string),
	}
}

// Register binds a participant identity to a connection. Fails with
// ErrNameTaken if any live participant already holds the requested name
// (case-sensitive exact match); no state is mutated on failure.
func (r *IdentityRegistry) Register(connID, name string) (*domain.Participant, error) {
	if _, taken := r.names[name]; taken {
		return nil, domain.ErrNameTaken
	}

	p := domain.NewParticipant(name)
	r.participants[connID] = p
	r.names[name] = connID
	return p, nil
}

// Unregister removes the participant bound to a connection. Idempotent.
func (r *IdentityRegistry) Unregister(connID string) {
	p, ok := r.participants[connID]
	if !ok {
		return
	}
	delete(r.names, p.Name)
	delete(r.participants, connID)
}

// Get returns the participant bound to a connection
func (r *IdentityRegistry) Get(connID string) (*domain.Participant, bool) {
	p, ok := r.participants[connID]
	return p, ok
}

// SetReady mutates the participant's readiness. No-op if the connection
// is unknown.
func (r *IdentityRegistry) SetReady(connID string, ready bool) {
	if p, ok := r.participants[connID]; ok {
		p.Ready = ready
	}
}

// Count returns the number of live participants
func (r *IdentityRegistry) Count() int {
	return len(r.participants)
}
