package http

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// TextResponse is the response for a race text lookup
type TextResponse struct {
	Text string `json:"text"`
}

// HealthResponse is the response for health check
type HealthResponse struct {
	Status string `json:"status"`
}

// StatsResponse is the response for the stats endpoint
type StatsResponse struct {
	Rooms        int `json:"rooms"`
	Participants int `json:"participants"`
}

// handleText handles GET /game/texts/{id}
func (s *Server) handleText(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	text, ok := s.texts.Get(id)
	if !ok {
		http.NotFound(w, r)
		return
	}

	s.sendJSON(w, &TextResponse{Text: text})
}

// handleHealth handles GET /api/health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.sendJSON(w, &HealthResponse{Status: "ok"})
}

// handleStats handles GET /api/stats
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.sendJSON(w, &StatsResponse{
		Rooms:        s.hub.RoomCount(),
		Participants: s.hub.ParticipantCount(),
	})
}

// sendJSON writes a JSON response
func (s *Server) sendJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}
