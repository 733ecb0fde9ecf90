package config

import (
	"fmt"
	"strconv"
)

// ValidateConfig checks that every required setting is present and sane.
func ValidateConfig(cfg *Config) error {
	required := map[string]string{
		"DB_USER":     cfg.DBUser,
		"DB_PASSWORD": cfg.DBPassword,
		"DB_NAME":     cfg.DBName,
		"JWT_SECRET":  cfg.JWTSecret,
	}
	for name, value := range required {
		if value == "" {
			return fmt.Errorf("%s is required", name)
		}
	}

	if len(cfg.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters")
	}

	for name, value := range map[string]string{
		"SERVER_PORT": cfg.ServerPort,
		"DB_PORT":     cfg.DBPort,
		"REDIS_PORT":  cfg.RedisPort,
	} {
		port, err := strconv.Atoi(value)
		if err != nil || port < 1 || port > 65535 {
			return fmt.Errorf("%s must be a valid port number, got %q", name, value)
		}
	}

	return nil
}
