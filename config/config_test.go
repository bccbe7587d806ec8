package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	// A directory with no config.yaml falls back to defaults and env.
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
	assert.Equal(t, "greenscape", cfg.Mongo.DBName)
	assert.Equal(t, "24h", cfg.JWT.Expiration)
	assert.False(t, cfg.Delivery.AllowUnpaidAssignments)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("SERVER_PORT", "5001")
	t.Setenv("ALLOW_UNPAID_ASSIGNMENTS", "true")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "5001", cfg.Server.Port)
	assert.True(t, cfg.Delivery.AllowUnpaidAssignments)
}
