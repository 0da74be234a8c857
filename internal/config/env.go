// Package config provides shared configuration utilities.
package config

import (
	"fmt"
	"os"
	"time"
)

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// GetEnvDuration parses the variable named by key as a time.Duration
// ("90s", "5m"). An unset or empty variable yields fallback.
func GetEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := GetEnv(key, "")
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback, fmt.Errorf("parse %s: %w", key, err)
	}
	if d < 0 {
		return fallback, fmt.Errorf("parse %s: negative duration %s", key, d)
	}
	return d, nil
}
