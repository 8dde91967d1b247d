package domain

// Phase represents where a room is in its race lifecycle
type Phase string

const (
	PhaseWaiting   Phase = "WAITING"   // Waiting for every occupant to be ready
	PhaseCountdown Phase = "COUNTDOWN" // Fixed countdown between all-ready and race start
	PhaseRacing    Phase = "RACING"    // Race in progress, progress reports accepted
)

// String returns the string representation of the phase
func (p Phase) String() string {
	return string(p)
}
