// Package config handles configuration for the stub backend: defaults,
// an optional config file, and STUB_-prefixed environment variables,
// layered with spf13/viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

const envPrefix = "STUB"

// Config holds runtime settings for the stub backend.
//
// Fields:
//   - Addr: HTTP bind address.
//   - SecretKey: HMAC secret for signing session JWTs (HS256).
//   - TokenValidityDuration: session token lifetime.
//   - EncryptionKey: hex AES key for user emails at rest; empty stores plaintext.
//   - BcryptCost: password hashing cost.
//   - LogLevel: logrus level name.
type Config struct {
	Addr                  string        `mapstructure:"addr"`
	SecretKey             string        `mapstructure:"secret_key"`
	TokenValidityDuration time.Duration `mapstructure:"token_validity_duration"`
	EncryptionKey         string        `mapstructure:"encryption_key"`
	BcryptCost            int           `mapstructure:"bcrypt_cost"`
	LogLevel              string        `mapstructure:"log_level"`
}

// LoadDefaults populates Config with development defaults.
// NOTE: the secret is insecure and must be overridden outside local runs.
func (c *Config) LoadDefaults() {
	c.Addr = ":5000"
	c.SecretKey = "secretKey"
	c.TokenValidityDuration = 24 * time.Hour
	c.EncryptionKey = ""
	c.BcryptCost = bcrypt.DefaultCost
	c.LogLevel = "info"
}

// Load builds a Config from defaults, then the optional file at configFile
// (JSON, YAML or TOML by extension), then the environment.
func Load(configFile string) (*Config, error) {
	var defaults Config
	defaults.LoadDefaults()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("addr", defaults.Addr)
	v.SetDefault("secret_key", defaults.SecretKey)
	v.SetDefault("token_validity_duration", defaults.TokenValidityDuration)
	v.SetDefault("encryption_key", defaults.EncryptionKey)
	v.SetDefault("bcrypt_cost", defaults.BcryptCost)
	v.SetDefault("log_level", defaults.LogLevel)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if strings.TrimSpace(cfg.SecretKey) == "" {
		return nil, fmt.Errorf("secret key is required")
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range", cfg.BcryptCost)
	}
	return cfg, nil
}
