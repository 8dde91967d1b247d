package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"typerace/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := config.Load()

	assert.Equal(t, "3001", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "0.0.0.0:3001", cfg.GetAddr())

	assert.Equal(t, 5, cfg.Game.MaxUsersPerRoom)
	assert.Equal(t, 10*time.Second, cfg.Game.Countdown())
	assert.Equal(t, 60*time.Second, cfg.Game.RaceDuration())
	assert.Empty(t, cfg.Game.SeedRooms)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("ENV", "production")
	t.Setenv("MAX_USERS_PER_ROOM", "3")
	t.Setenv("COUNTDOWN_SECONDS", "5")
	t.Setenv("RACE_SECONDS", "120")
	t.Setenv("LOG_FORMAT", "json")

	cfg := config.Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, 3, cfg.Game.MaxUsersPerRoom)
	assert.Equal(t, 5*time.Second, cfg.Game.Countdown())
	assert.Equal(t, 120*time.Second, cfg.Game.RaceDuration())
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("MAX_USERS_PER_ROOM", "lots")

	cfg := config.Load()
	assert.Equal(t, 5, cfg.Game.MaxUsersPerRoom)
}

func TestLoad_SeedRooms(t *testing.T) {
	t.Setenv("SEED_ROOMS", "lobby, game , ,practice")

	cfg := config.Load()
	assert.Equal(t, []string{"lobby", "game", "practice"}, cfg.Game.SeedRooms)
}
