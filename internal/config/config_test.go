package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		setEnv       bool
		envValue     string
		expected     string
	}{
		{
			name:         "env variable set",
			key:          "TEST_KEY",
			defaultValue: "default",
			setEnv:       true,
			envValue:     "custom",
			expected:     "custom",
		},
		{
			name:         "env variable not set",
			key:          "TEST_KEY_NOT_SET",
			defaultValue: "default",
			setEnv:       false,
			expected:     "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setEnv {
				t.Setenv(tt.key, tt.envValue)
			}

			result := getEnv(tt.key, tt.defaultValue)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestConfig_DSN(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "testuser",
			Password: "testpass",
			Name:     "testdb",
			SSLMode:  "disable",
		},
	}

	dsn := cfg.DSN()
	expected := "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=disable"
	assert.Equal(t, expected, dsn)
}

// clearEnv unsets every key read by Load for the duration of the test
func clearEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"BOT_TOKEN", "DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD", "DB_SSLMODE",
		"TIMEZONE", "STORE_TIMEOUT", "SESSION_RETENTION_DAYS",
	}
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_WithDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOT_TOKEN", "test_token")
	t.Setenv("DB_PASSWORD", "test_db_password")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "test_token", cfg.BotToken)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "blocus", cfg.Database.Name)
	assert.Equal(t, "blocus", cfg.Database.User)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "Europe/Brussels", cfg.Timezone)
	assert.Equal(t, 10*time.Second, cfg.StoreTimeout)
	assert.Equal(t, 365, cfg.SessionRetentionDays)
	assert.Equal(t, "Europe/Brussels", cfg.Location().String())
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOT_TOKEN", "test_token")
	t.Setenv("DB_PASSWORD", "test_db_password")
	t.Setenv("STORE_TIMEOUT", "3s")
	t.Setenv("SESSION_RETENTION_DAYS", "30")
	t.Setenv("TIMEZONE", "UTC")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, cfg.StoreTimeout)
	assert.Equal(t, 30, cfg.SessionRetentionDays)
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		expectedKey string
	}{
		{
			name:        "missing bot token",
			env:         map[string]string{"DB_PASSWORD": "x"},
			expectedKey: "BOT_TOKEN",
		},
		{
			name:        "missing db password",
			env:         map[string]string{"BOT_TOKEN": "x"},
			expectedKey: "DB_PASSWORD",
		},
		{
			name:        "bad timeout",
			env:         map[string]string{"BOT_TOKEN": "x", "DB_PASSWORD": "x", "STORE_TIMEOUT": "soon"},
			expectedKey: "STORE_TIMEOUT",
		},
		{
			name:        "negative timeout",
			env:         map[string]string{"BOT_TOKEN": "x", "DB_PASSWORD": "x", "STORE_TIMEOUT": "-1s"},
			expectedKey: "STORE_TIMEOUT",
		},
		{
			name:        "bad retention",
			env:         map[string]string{"BOT_TOKEN": "x", "DB_PASSWORD": "x", "SESSION_RETENTION_DAYS": "0"},
			expectedKey: "SESSION_RETENTION_DAYS",
		},
		{
			name:        "unknown timezone",
			env:         map[string]string{"BOT_TOKEN": "x", "DB_PASSWORD": "x", "TIMEZONE": "Mars/Olympus"},
			expectedKey: "TIMEZONE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			assert.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.expectedKey)
		})
	}
}
