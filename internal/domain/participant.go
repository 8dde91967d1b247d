package domain

// Participant is the server-side identity bound to one connection for the
// lifetime of that connection. The display name is unique across all
// currently-connected participants (case-sensitive exact match).
type Participant struct {
	Name     string `json:"username"`
	Ready    bool   `json:"ready"`
	Finished bool   `json:"finished"`
	Progress int    `json:"progress"`
}

// NewParticipant creates a participant with the given display name
func NewParticipant(name string) *Participant {
	return &Participant{
		Name:     name,
		Ready:    false,
		Finished: false,
		Progress: 0,
	}
}

// ResetForNextRace clears per-race state when a room returns to waiting
func (p *Participant) ResetForNextRace() {
	p.Ready = false
	p.Finished = false
	p.Progress = 0
}

// ParticipantInfo is the view of a participant sent to room members
type ParticipantInfo struct {
	Username string `json:"username"`
	Ready    bool   `json:"ready"`
	Progress int    `json:"progress"`
}

// ToInfo converts a Participant to ParticipantInfo
func (p *Participant) ToInfo() ParticipantInfo {
	return ParticipantInfo{
		Username: p.Name,
		Ready:    p.Ready,
		Progress: p.Progress,
	}
}
