package ws

import (
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typerace/internal/domain"
)

// newTestClient builds a client without a live socket. Send only touches
// the buffered channel, so routing can be tested without a connection.
func newTestClient(connID string) *Client {
	return NewClient(nil, nil, nil, connID, connID, zerolog.Nop())
}

// drain reads every queued event type from a client's send buffer
func drain(t *testing.T, c *Client) []domain.EventType {
	t.Helper()

	var types []domain.EventType
	for {
		select {
		case data := <-c.send:
			var e domain.Event
			require.NoError(t, json.Unmarshal(data, &e))
			types = append(types, e.Type)
		default:
			return types
		}
	}
}

func TestGateway_ToConn(t *testing.T) {
	g := NewGateway(zerolog.Nop())
	c1 := newTestClient("c1")
	c2 := newTestClient("c2")
	g.Add(c1)
	g.Add(c2)

	g.ToConn("c1", domain.NewEvent(domain.EventMessage, nil))
	g.ToConn("ghost", domain.NewEvent(domain.EventMessage, nil))

	assert.Equal(t, []domain.EventType{domain.EventMessage}, drain(t, c1))
	assert.Empty(t, drain(t, c2))
}

func TestGateway_ToRoomRouting(t *testing.T) {
	g := NewGateway(zerolog.Nop())
	c1 := newTestClient("c1")
	c2 := newTestClient("c2")
	c3 := newTestClient("c3")
	for _, c := range []*Client{c1, c2, c3} {
		g.Add(c)
	}

	g.Subscribe("c1", "lobby")
	g.Subscribe("c2", "lobby")
	g.Subscribe("c3", "other")

	g.ToRoom("lobby", domain.NewEvent(domain.EventUserJoined, nil))

	assert.Len(t, drain(t, c1), 1)
	assert.Len(t, drain(t, c2), 1)
	assert.Empty(t, drain(t, c3), "subscribers of other rooms must not receive it")

	g.Unsubscribe("c2", "lobby")
	g.ToRoom("lobby", domain.NewEvent(domain.EventUserLeft, nil))

	assert.Len(t, drain(t, c1), 1)
	assert.Empty(t, drain(t, c2))
}

func TestGateway_ToAll(t *testing.T) {
	g := NewGateway(zerolog.Nop())
	c1 := newTestClient("c1")
	c2 := newTestClient("c2")
	g.Add(c1)
	g.Add(c2)

	g.ToAll(domain.NewEvent(domain.EventRoomAdded, nil))

	assert.Len(t, drain(t, c1), 1)
	assert.Len(t, drain(t, c2), 1)
}

func TestGateway_RemoveStripsSubscriptions(t *testing.T) {
	g := NewGateway(zerolog.Nop())
	c1 := newTestClient("c1")
	g.Add(c1)
	g.Subscribe("c1", "lobby")

	g.Remove("c1")

	g.ToRoom("lobby", domain.NewEvent(domain.EventUserJoined, nil))
	g.ToAll(domain.NewEvent(domain.EventRoomAdded, nil))
	assert.Empty(t, drain(t, c1))

	// Re-adding under the same ID starts with no subscriptions
	g.Add(c1)
	g.ToRoom("lobby", domain.NewEvent(domain.EventUserJoined, nil))
	assert.Empty(t, drain(t, c1))
}

func TestGateway_SubscribeUnknownConn(t *testing.T) {
	g := NewGateway(zerolog.Nop())

	g.Subscribe("ghost", "lobby")
	g.ToRoom("lobby", domain.NewEvent(domain.EventUserJoined, nil))
	// Nothing to assert beyond the absence of a panic; the room set must
	// stay empty for unknown connections.
	assert.Empty(t, g.rooms)
}

func TestClient_SendDropsWhenBufferFull(t *testing.T) {
	c := newTestClient("c1")

	for i := 0; i < sendBufferSize+10; i++ {
		require.NoError(t, c.Send(domain.NewEvent(domain.EventMessage, nil)))
	}
	assert.Len(t, c.send, sendBufferSize)
}
