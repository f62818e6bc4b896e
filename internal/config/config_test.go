package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_TTL", "")
	t.Setenv("BOOKING_CODE_PREFIX", "")
	t.Setenv("LOG_PRETTY", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "studiodesk.db", cfg.DatabaseURL)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, "HOW", cfg.BookingCodePrefix)
	assert.True(t, cfg.LogPretty)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("JWT_SECRET", "real-secret")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("BOOKING_CODE_PREFIX", "STU")
	t.Setenv("LOG_PRETTY", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.AppEnv)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.Equal(t, "STU", cfg.BookingCodePrefix)
	assert.False(t, cfg.LogPretty)
}

func TestLoad_ProdRequiresRealSecret(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_TTL", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RejectsBadTTL(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("JWT_TTL", "soon")

	_, err := Load()
	assert.Error(t, err)
}
