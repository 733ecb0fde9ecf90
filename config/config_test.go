package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTestConfig() *Config {
	return &Config{
		ServerPort: "8080",
		ServerHost: "0.0.0.0",
		DBHost:     "localhost",
		DBPort:     "5432",
		DBUser:     "mealforge",
		DBPassword: "secret",
		DBName:     "mealforge",
		DBSSLMode:  "disable",
		RedisHost:  "localhost",
		RedisPort:  "6379",
		JWTSecret:  "0123456789abcdef0123456789abcdef",
	}
}

func TestValidateConfig(t *testing.T) {
	assert.NoError(t, ValidateConfig(validTestConfig()))
}

func TestValidateConfigMissingRequired(t *testing.T) {
	cfg := validTestConfig()
	cfg.DBPassword = ""
	assert.Error(t, ValidateConfig(cfg))

	cfg = validTestConfig()
	cfg.JWTSecret = ""
	assert.Error(t, ValidateConfig(cfg))
}

func TestValidateConfigShortJWTSecret(t *testing.T) {
	cfg := validTestConfig()
	cfg.JWTSecret = "too-short"
	err := ValidateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestValidateConfigBadPort(t *testing.T) {
	cfg := validTestConfig()
	cfg.ServerPort = "not-a-port"
	assert.Error(t, ValidateConfig(cfg))

	cfg = validTestConfig()
	cfg.DBPort = "70000"
	assert.Error(t, ValidateConfig(cfg))
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("DB_USER", "mealforge")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "mealforge")
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("REDIS_DB", "2")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "mealforge", cfg.DBUser)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, "disable", cfg.DBSSLMode)
}
