package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds runtime settings for the taskboard client.
//
// Fields:
//   - APIBaseURL: base URL of the REST API, including the /api prefix.
//   - EncryptionKey: hex AES key shared with the server for user emails.
//     Empty disables decryption and emails are shown as received.
//   - DBPath: SQLite file holding the persisted session token.
//   - StaleTime: how long a cached query result counts as fresh.
//   - LogLevel: slog level name (debug, info, warn, error).
type Config struct {
	APIBaseURL    string
	EncryptionKey string
	DBPath        string
	StaleTime     time.Duration
	LogLevel      string
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:5000/api"
	c.EncryptionKey = ""
	c.DBPath = "taskboard.db"
	c.StaleTime = 30 * time.Second
	c.LogLevel = "warn"
}

// Load builds a Config from defaults, then the .env file and environment,
// then the JSON file named by -c/-config, then flags. args are the command
// line without the program name. Later sources take precedence.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg, ".env"); err != nil {
		return nil, err
	}
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig is Load over os.Args.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.APIBaseURL) == "" {
		return fmt.Errorf("api base url is required")
	}
	if c.StaleTime < 0 {
		return fmt.Errorf("stale time must not be negative, got %s", c.StaleTime)
	}
	return nil
}
