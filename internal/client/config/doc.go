// Package config loads runtime configuration for the taskboard client.
//
// # Sources and precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. TASKBOARD_* environment variables, falling back to a .env file in the
//     working directory for variables the environment does not set.
//  3. Optional JSON file selected with -c or -config.
//  4. Command-line flags, which override everything else.
//
// # Environment
//
//	TASKBOARD_API_URL         API base URL
//	TASKBOARD_ENCRYPTION_KEY  hex field encryption key
//	TASKBOARD_DB              local SQLite file
//	TASKBOARD_STALE_TIME      query stale time ("30s")
//	TASKBOARD_LOG_LEVEL       log level
//
// # JSON schema
//
// stale_time uses timex.Duration, so it may be a string like "30s" or
// integer nanoseconds:
//
//	{
//	  "api_url": "http://localhost:5000/api",
//	  "encryption_key": "00112233445566778899aabbccddeeff",
//	  "db_path": "taskboard.db",
//	  "stale_time": "30s",
//	  "log_level": "info"
//	}
package config
