package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadTimeouts_Defaults(t *testing.T) {
	tm := LoadTimeouts()

	assert.Equal(t, 15*time.Minute, tm.Provision)
	assert.Equal(t, 5*time.Minute, tm.Rollout)
	assert.Equal(t, 3*time.Minute, tm.ExternalIP)
	assert.Equal(t, 10*time.Second, tm.ExternalIPInterval)
	assert.Equal(t, 10, tm.RoleAssignAttempts)
	assert.Equal(t, 10*time.Second, tm.RoleAssignInterval)
}

func TestLoadTimeouts_EnvOverride(t *testing.T) {
	t.Setenv("AKSLAB_TIMEOUT_ROLLOUT", "90s")
	t.Setenv("AKSLAB_ROLE_ASSIGN_ATTEMPTS", "3")

	tm := LoadTimeouts()
	assert.Equal(t, 90*time.Second, tm.Rollout)
	assert.Equal(t, 3, tm.RoleAssignAttempts)
}

func TestLoadTimeouts_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("AKSLAB_TIMEOUT_ROLLOUT", "soon")
	t.Setenv("AKSLAB_ROLE_ASSIGN_ATTEMPTS", "many")

	tm := LoadTimeouts()
	assert.Equal(t, 5*time.Minute, tm.Rollout)
	assert.Equal(t, 10, tm.RoleAssignAttempts)
}
