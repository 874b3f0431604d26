package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	DBSource       string
	Port           string
	Env            string
	SubmitInterval time.Duration
}

func Load() (*Config, error) {
	dbSource := os.Getenv("DB_SOURCE")
	if dbSource == "" {
		return nil, fmt.Errorf("DB_SOURCE environment variable is required")
	}

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	// Minimum spacing between accepted submissions.
	submitInterval := 2000 * time.Millisecond
	if raw := os.Getenv("SUBMIT_INTERVAL_MS"); raw != "" {
		ms, err := strconv.Atoi(raw)
		if err != nil || ms < 0 {
			return nil, fmt.Errorf("SUBMIT_INTERVAL_MS must be a non-negative integer, got %q", raw)
		}
		submitInterval = time.Duration(ms) * time.Millisecond
	}

	return &Config{
		DBSource:       dbSource,
		Port:           port,
		Env:            env,
		SubmitInterval: submitInterval,
	}, nil
}
