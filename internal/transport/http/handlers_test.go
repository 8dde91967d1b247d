package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typerace/internal/config"
	"typerace/internal/game"
	"typerace/internal/texts"
	httpTransport "typerace/internal/transport/http"
	"typerace/internal/transport/ws"
)

func newTestServer(t *testing.T) (*httpTransport.Server, *game.Hub) {
	t.Helper()

	cfg := config.Load()
	gateway := ws.NewGateway(zerolog.Nop())
	provider := texts.NewProviderWith([]string{"alpha text", "bravo text"})

	hub := game.NewHub(game.Options{
		Capacity:     cfg.Game.MaxUsersPerRoom,
		Countdown:    cfg.Game.Countdown(),
		RaceDuration: cfg.Game.RaceDuration(),
	}, gateway, provider, clockwork.NewFakeClock(), zerolog.Nop())

	return httpTransport.NewServer(cfg, hub, gateway, provider, zerolog.Nop()), hub
}

func get(t *testing.T, s *httpTransport.Server, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleText(t *testing.T) {
	s, _ := newTestServer(t)

	rec := get(t, s, "/game/texts/1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp httpTransport.TextResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "bravo text", resp.Text)
}

func TestHandleText_UnknownID(t *testing.T) {
	s, _ := newTestServer(t)

	for _, path := range []string{"/game/texts/99", "/game/texts/-1", "/game/texts/abc"} {
		rec := get(t, s, path)
		assert.Equal(t, http.StatusNotFound, rec.Code, "path %s", path)
	}
}

func TestHandleHealth(t *testing.T) {
	s, _ := newTestServer(t)

	rec := get(t, s, "/api/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp httpTransport.HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestHandleStats(t *testing.T) {
	s, hub := newTestServer(t)

	require.NoError(t, hub.Connect("c1", "alice"))
	hub.CreateRoom("c1", "lobby")

	rec := get(t, s, "/api/stats")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp httpTransport.StatsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 1, resp.Rooms)
	assert.Equal(t, 1, resp.Participants)
}

func TestWebSocketRequiresUsername(t *testing.T) {
	s, _ := newTestServer(t)

	rec := get(t, s, "/ws")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
