package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"SERVER_PORT", "GIN_MODE", "LOG_LEVEL", "LOG_FORMAT", "TIMEZONE",
		"SUBMIT_RATE_LIMIT", "NOTIFICATION_DURATION_MS", "EVENT_BUFFER", "ALLOWED_ORIGINS",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "auto", cfg.LogFormat)
	assert.Equal(t, 60, cfg.SubmitRateLimit)
	assert.Equal(t, 3*time.Second, cfg.NotificationDuration)
	assert.Equal(t, 64, cfg.EventBuffer)
	assert.Nil(t, cfg.AllowedOrigins)
	assert.NotNil(t, cfg.Location)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("SUBMIT_RATE_LIMIT", "5")
	t.Setenv("NOTIFICATION_DURATION_MS", "1500")
	t.Setenv("ALLOWED_ORIGINS", " http://a.test , ,http://b.test")

	cfg := Load()

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.Equal(t, 5, cfg.SubmitRateLimit)
	assert.Equal(t, 1500*time.Millisecond, cfg.NotificationDuration)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
}

func TestLoadRejectsBadNumbers(t *testing.T) {
	t.Setenv("SUBMIT_RATE_LIMIT", "banyak")
	t.Setenv("EVENT_BUFFER", "-3")
	t.Setenv("TIMEZONE", "Mars/Olympus")

	cfg := Load()

	assert.Equal(t, 60, cfg.SubmitRateLimit)
	assert.Equal(t, 64, cfg.EventBuffer)
	assert.Equal(t, time.UTC, cfg.Location)
}
