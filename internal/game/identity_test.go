package game_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typerace/internal/domain"
	"typerace/internal/game"
)

func TestIdentityRegistry_Register(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(r *game.IdentityRegistry)
		connID   string
		username string
		wantErr  error
	}{
		{
			name:     "first registration succeeds",
			setup:    func(r *game.IdentityRegistry) {},
			connID:   "c1",
			username: "alice",
		},
		{
			name: "duplicate name rejected",
			setup: func(r *game.IdentityRegistry) {
				_, err := r.Register("c1", "alice")
				require.NoError(t, err)
			},
			connID:   "c2",
			username: "alice",
			wantErr:  domain.ErrNameTaken,
		},
		{
			name: "name comparison is case-sensitive",
			setup: func(r *game.IdentityRegistry) {
				_, err := r.Register("c1", "alice")
				require.NoError(t, err)
			},
			connID:   "c2",
			username: "Alice",
		},
		{
			name: "name freed after unregister",
			setup: func(r *game.IdentityRegistry) {
				_, err := r.Register("c1", "alice")
				require.NoError(t, err)
				r.Unregister("c1")
			},
			connID:   "c2",
			username: "alice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := game.NewIdentityRegistry()
			tt.setup(r)

			p, err := r.Register(tt.connID, tt.username)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				_, ok := r.Get(tt.connID)
				assert.False(t, ok, "failed registration must not mutate state")
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.username, p.Name)
			assert.False(t, p.Ready)
			assert.False(t, p.Finished)
			assert.Zero(t, p.Progress)
		})
	}
}

func TestIdentityRegistry_Unregister(t *testing.T) {
	r := game.NewIdentityRegistry()
	_, err := r.Register("c1", "alice")
	require.NoError(t, err)

	r.Unregister("c1")
	_, ok := r.Get("c1")
	assert.False(t, ok)
	assert.Zero(t, r.Count())

	// Idempotent
	r.Unregister("c1")
	assert.Zero(t, r.Count())
}

func TestIdentityRegistry_SetReady(t *testing.T) {
	r := game.NewIdentityRegistry()
	p, err := r.Register("c1", "alice")
	require.NoError(t, err)

	r.SetReady("c1", true)
	assert.True(t, p.Ready)

	r.SetReady("c1", false)
	assert.False(t, p.Ready)

	// Unknown connection is a no-op
	r.SetReady("ghost", true)
	assert.Equal(t, 1, r.Count())
}
