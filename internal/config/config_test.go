package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := &Config{}
	cfg.Database.Password = "secret"
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.AccessExpiration = "1h"
	cfg.JWT.RefreshExpiration = "168h"
	cfg.App.LogLevel = "info"
	cfg.Attendance.ExpectedCheckIn = "09:00:00"
	return cfg
}

func TestValidate_OK(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidate_BadExpectedCheckIn(t *testing.T) {
	cfg := validConfig()
	cfg.Attendance.ExpectedCheckIn = "9am"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ATTENDANCE_EXPECTED_CHECK_IN")
}

func TestValidate_BadLogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.App.LogLevel = "verbose"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_LEVEL")
}

func TestValidate_MissingSecrets(t *testing.T) {
	cfg := validConfig()
	cfg.JWT.Secret = ""
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Database.Password = ""
	assert.Error(t, cfg.Validate())
}
