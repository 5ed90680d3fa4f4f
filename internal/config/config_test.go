package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"STORE_BACKEND", "SAVE_DIR", "REPLAY_DELAY_MS", "AI_DIFFICULTY",
		"EXIT_ON_GAME_OVER", "COLOR", "CLEAR_SCREEN", "LOG_LEVEL", "SAVE_TTL_HOURS",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	assert.Equal(t, BackendFile, cfg.StoreBackend)
	assert.Equal(t, ".", cfg.SaveDir)
	assert.Equal(t, 500*time.Millisecond, cfg.ReplayDelay)
	assert.Equal(t, "medium", cfg.AIDifficulty)
	assert.True(t, cfg.ExitOnGameOver)
	assert.False(t, cfg.ClearScreen)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Zero(t, cfg.SaveTTL)
	assert.Same(t, cfg, AppConfig)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("STORE_BACKEND", "Redis")
	t.Setenv("REPLAY_DELAY_MS", "20")
	t.Setenv("EXIT_ON_GAME_OVER", "false")
	t.Setenv("SAVE_TTL_HOURS", "48")
	t.Setenv("NO_COLOR", "1")

	cfg := LoadConfig()
	assert.Equal(t, BackendRedis, cfg.StoreBackend)
	assert.Equal(t, 20*time.Millisecond, cfg.ReplayDelay)
	assert.False(t, cfg.ExitOnGameOver)
	assert.Equal(t, 48*time.Hour, cfg.SaveTTL)
	assert.False(t, cfg.Color)
}

func TestUnknownBackendFallsBackToFile(t *testing.T) {
	t.Setenv("STORE_BACKEND", "mongo")
	assert.Equal(t, BackendFile, LoadConfig().StoreBackend)
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("C4_INT", "not-a-number")
	t.Setenv("C4_BOOL", "maybe")
	t.Setenv("C4_STR", "value")

	assert.Equal(t, 7, GetEnvAsInt("C4_INT", 7))
	assert.True(t, GetEnvAsBool("C4_BOOL", true))
	assert.Equal(t, "value", GetEnv("C4_STR", "x"))
	assert.Equal(t, "x", GetEnv("C4_MISSING", "x"))
}
