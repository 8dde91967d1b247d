package game

import "typerace/internal/domain"

// The race state machine: waiting -> countdown -> racing -> waiting.
// Transitions into countdown are readiness-driven; the two timer
// transitions re-check room state at fire time because cancellation can
// race with firing.

// evaluateStart fires the waiting -> countdown transition when the room
// has at least one occupant and every occupant is ready. Caller must hold
// the lock.
func (h *Hub) evaluateStart(room *domain.Room) {
	if room.Started() || room.OccupantCount() == 0 {
		return
	}
	for connID := range room.Conns {
		p, ok := h.identity.Get(connID)
		if !ok || !p.Ready {
			return
		}
	}
	h.startCountdown(room)
}

// startCountdown enters the countdown phase: the room goes hidden, a race
// text is drawn uniformly at random, and a one-shot timer arms the
// transition into racing. Caller must hold the lock.
func (h *Hub) startCountdown(room *domain.Room) {
	room.Phase = domain.PhaseCountdown
	textID := h.texts.Pick()

	h.gateway.ToAll(domain.NewEvent(domain.EventRoomUpdated, room.ToInfo()))
	h.gateway.ToRoom(room.Name, domain.NewEvent(domain.EventCountdownStarted, domain.CountdownStartedPayload{
		Seconds: int(h.opts.Countdown.Seconds()),
		TextID:  textID,
	}))

	name := room.Name
	room.CountdownTimer = h.clock.AfterFunc(h.opts.Countdown, func() {
		h.onCountdownElapsed(name)
	})

	h.logger.Info().Str("room", name).Int("text_id", textID).Msg("countdown started")
}

// onCountdownElapsed is the countdown timer callback. The room may have
// emptied and been deleted while the timer was pending, so existence and
// phase are checked here, not at schedule time.
func (h *Hub) onCountdownElapsed(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms.Get(name)
	if !ok || room.Phase != domain.PhaseCountdown {
		h.logger.Debug().Str("room", name).Msg("stale countdown timer ignored")
		return
	}
	h.startRace(room)
}

// startRace enters the racing phase and arms the race-duration timer.
// Caller must hold the lock.
func (h *Hub) startRace(room *domain.Room) {
	room.Phase = domain.PhaseRacing
	room.CountdownTimer = nil

	h.gateway.ToRoom(room.Name, domain.NewEvent(domain.EventRaceStarted, domain.RaceStartedPayload{
		Seconds: int(h.opts.RaceDuration.Seconds()),
	}))

	name := room.Name
	room.RaceTimer = h.clock.AfterFunc(h.opts.RaceDuration, func() {
		h.onRaceExpired(name)
	})

	h.logger.Info().Str("room", name).Msg("race started")
}

// onRaceExpired is the race timer callback. A timer that fires after the
// room finished early, reset, or disappeared is stale and must be ignored
// so results are broadcast at most once per race.
func (h *Hub) onRaceExpired(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms.Get(name)
	if !ok || room.Phase != domain.PhaseRacing || h.allFinished(room) {
		h.logger.Debug().Str("room", name).Msg("stale race timer ignored")
		return
	}

	room.RaceTimer = nil
	h.gateway.ToRoom(name, domain.NewEvent(domain.EventRaceTimeExpired, nil))
	h.broadcastResults(room)
	h.resetRoom(room)
	h.logger.Info().Str("room", name).Msg("race time expired")
}

// maybeFinishRace runs the completion path: once every current occupant
// has finished, the race timer is cancelled, results go out, and the room
// resets. Caller must hold the lock.
func (h *Hub) maybeFinishRace(room *domain.Room) {
	if room.Phase != domain.PhaseRacing || !h.allFinished(room) {
		return
	}

	if room.RaceTimer != nil {
		room.RaceTimer.Stop()
		room.RaceTimer = nil
	}

	h.broadcastResults(room)
	h.resetRoom(room)
	h.logger.Info().Str("room", room.Name).Msg("race finished")
}

// allFinished reports whether every current occupant has finished the
// race. False for an empty room. Caller must hold the lock.
func (h *Hub) allFinished(room *domain.Room) bool {
	if room.OccupantCount() == 0 {
		return false
	}
	for connID := range room.Conns {
		p, ok := h.identity.Get(connID)
		if !ok || !p.Finished {
			return false
		}
	}
	return true
}

// broadcastResults sends the ordered finisher list to the room. Caller
// must hold the lock.
func (h *Hub) broadcastResults(room *domain.Room) {
	order := make([]string, len(room.FinishOrder))
	copy(order, room.FinishOrder)
	h.gateway.ToRoom(room.Name, domain.NewEvent(domain.EventRaceResults, domain.RaceResultsPayload{
		FinishOrder: order,
	}))
}

// resetRoom returns a room to the waiting phase: timers cancelled, finish
// order cleared, every occupant back to not-ready with zero progress, and
// each occupant's state broadcast individually so clients converge.
// Caller must hold the lock.
func (h *Hub) resetRoom(room *domain.Room) {
	h.cancelTimers(room)
	room.FinishOrder = nil
	room.Phase = domain.PhaseWaiting

	for connID := range room.Conns {
		p, ok := h.identity.Get(connID)
		if !ok {
			continue
		}
		p.ResetForNextRace()
		h.gateway.ToRoom(room.Name, domain.NewEvent(domain.EventUserStatusChanged, domain.UserStatusPayload{
			Username: p.Name,
			Ready:    false,
		}))
		h.gateway.ToRoom(room.Name, domain.NewEvent(domain.EventProgressUpdated, domain.ProgressUpdatedPayload{
			Username: p.Name,
			Progress: 0,
		}))
	}

	h.gateway.ToAll(domain.NewEvent(domain.EventRoomUpdated, room.ToInfo()))
}

// cancelTimers stops any pending countdown or race timer for the room.
// Caller must hold the lock.
func (h *Hub) cancelTimers(room *domain.Room) {
	if room.CountdownTimer != nil {
		room.CountdownTimer.Stop()
		room.CountdownTimer = nil
	}
	if room.RaceTimer != nil {
		room.RaceTimer.Stop()
		room.RaceTimer = nil
	}
}
