package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds all configurable timeout and retry values.
// These values can be customized via environment variables.
type Timeouts struct {
	Provision          time.Duration // Timeout for long-running resource creation (AKS, storage)
	Rollout            time.Duration // Timeout for deployment rollout; exceeding it is fatal
	ExternalIP         time.Duration // Timeout for LoadBalancer IP assignment; exceeding it is a warning
	ExternalIPInterval time.Duration // Polling interval for the external IP wait
	RolloutInterval    time.Duration // Polling interval for the rollout wait
	RoleAssignAttempts int           // Attempts for role assignment while the directory propagates
	RoleAssignInterval time.Duration // Fixed interval between role assignment attempts
	PollFrequency      time.Duration // Frequency for ARM long-running operation polling
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - AKSLAB_TIMEOUT_PROVISION (default: 15m)
//   - AKSLAB_TIMEOUT_ROLLOUT (default: 5m)
//   - AKSLAB_TIMEOUT_EXTERNAL_IP (default: 3m)
//   - AKSLAB_EXTERNAL_IP_INTERVAL (default: 10s)
//   - AKSLAB_ROLLOUT_INTERVAL (default: 5s)
//   - AKSLAB_ROLE_ASSIGN_ATTEMPTS (default: 10)
//   - AKSLAB_ROLE_ASSIGN_INTERVAL (default: 10s)
//   - AKSLAB_POLL_FREQUENCY (default: 10s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		Provision:          parseDuration("AKSLAB_TIMEOUT_PROVISION", 15*time.Minute),
		Rollout:            parseDuration("AKSLAB_TIMEOUT_ROLLOUT", 5*time.Minute),
		ExternalIP:         parseDuration("AKSLAB_TIMEOUT_EXTERNAL_IP", 3*time.Minute),
		ExternalIPInterval: parseDuration("AKSLAB_EXTERNAL_IP_INTERVAL", 10*time.Second),
		RolloutInterval:    parseDuration("AKSLAB_ROLLOUT_INTERVAL", 5*time.Second),
		RoleAssignAttempts: parseInt("AKSLAB_ROLE_ASSIGN_ATTEMPTS", 10),
		RoleAssignInterval: parseDuration("AKSLAB_ROLE_ASSIGN_INTERVAL", 10*time.Second),
		PollFrequency:      parseDuration("AKSLAB_POLL_FREQUENCY", 10*time.Second),
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}

	return d
}

// parseInt parses an integer from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return i
}
