package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	envAPIURL        = "TASKBOARD_API_URL"
	envEncryptionKey = "TASKBOARD_ENCRYPTION_KEY"
	envDBPath        = "TASKBOARD_DB"
	envStaleTime     = "TASKBOARD_STALE_TIME"
	envLogLevel      = "TASKBOARD_LOG_LEVEL"
)

// parseEnv overlays cfg with TASKBOARD_* variables. Values from the dotenv
// file at path are used only where the process environment has none; a
// missing file is not an error.
func parseEnv(cfg *Config, path string) error {
	file, err := godotenv.Read(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := file[key]
		return v, ok
	}

	if v, ok := lookup(envAPIURL); ok {
		cfg.APIBaseURL = v
	}
	if v, ok := lookup(envEncryptionKey); ok {
		cfg.EncryptionKey = v
	}
	if v, ok := lookup(envDBPath); ok {
		cfg.DBPath = v
	}
	if v, ok := lookup(envLogLevel); ok {
		cfg.LogLevel = v
	}
	if v, ok := lookup(envStaleTime); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envStaleTime, err)
		}
		cfg.StaleTime = d
	}
	return nil
}
