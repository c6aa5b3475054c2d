package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 6, c.MaxAttempts)
	assert.Equal(t, 150*time.Millisecond, c.RevealDelay)
	assert.True(t, c.DistinctTargets)
	assert.True(t, c.ShareFeedback)
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wardle.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "8080"
log_level: debug
max_attempts: 8
reveal_delay: 0s
share_feedback: false
`), 0o644))

	t.Setenv("MAX_ATTEMPTS", "7")
	t.Setenv("WARDLE_SEED", "42")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, ":8080", c.Addr())
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, 7, c.MaxAttempts, "environment wins over the file")
	assert.Zero(t, c.RevealDelay)
	assert.False(t, c.ShareFeedback)
	assert.Equal(t, uint64(42), c.Seed)
}

func TestLoad_BadEnv(t *testing.T) {
	t.Setenv("REVEAL_DELAY", "soon")
	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REVEAL_DELAY")
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("LOG_LEVEL", "chatty")
	_, err := Load("")
	assert.ErrorContains(t, err, "invalid config")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{"PORT": "9000", "DISTINCT_TARGETS": "false", "RATE_BURST": "x"}
	c := Default()
	err := c.applyEnv(func(k string) (string, bool) { v, ok := env[k]; return v, ok })
	assert.ErrorContains(t, err, "RATE_BURST")
	assert.Equal(t, "9000", c.Port)
	assert.False(t, c.DistinctTargets)
}

func TestLoad_IdleTTLTooShort(t *testing.T) {
	t.Setenv("IDLE_TTL", "3ns")
	_, err := Load("")
	assert.ErrorContains(t, err, "IdleTTL")

	t.Setenv("IDLE_TTL", "1s")
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, time.Second, c.IdleTTL)
}

func TestApplyEnv_TrustProxy(t *testing.T) {
	c := Default()
	assert.False(t, c.TrustProxy)
	require.NoError(t, c.applyEnv(func(k string) (string, bool) { return "true", k == "TRUST_PROXY" }))
	assert.True(t, c.TrustProxy)
}
