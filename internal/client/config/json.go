package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/taskboard/internal/flagx"
	"github.com/dmitrijs2005/taskboard/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields tell "absent" from "empty", so a file only overrides what it sets.
type JsonConfig struct {
	APIBaseURL    *string         `json:"api_url"`
	EncryptionKey *string         `json:"encryption_key"`
	DBPath        *string         `json:"db_path"`
	StaleTime     *timex.Duration `json:"stale_time"`
	LogLevel      *string         `json:"log_level"`
}

// parseJSON overlays cfg with the JSON file named by -c/-config in args.
// Without such a flag nothing is loaded.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if jc.APIBaseURL != nil {
		cfg.APIBaseURL = *jc.APIBaseURL
	}
	if jc.EncryptionKey != nil {
		cfg.EncryptionKey = *jc.EncryptionKey
	}
	if jc.DBPath != nil {
		cfg.DBPath = *jc.DBPath
	}
	if jc.StaleTime != nil {
		cfg.StaleTime = jc.StaleTime.Duration
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	return nil
}
