// Package config loads runtime configuration for the task tracker CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON or YAML file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string    base URL of the REST server
//	-d string    path of the local SQLite file holding the session token
//	-t duration  per-request timeout
//	-i duration  server health check interval
//	-l string    log level
//
// # File schema
//
// Durations may be strings like "10s" or integer nanoseconds:
//
//	{
//	  "server_base_url": "http://127.0.0.1:8080",
//	  "database_dsn": "tasks.db",
//	  "request_timeout": "10s",
//	  "online_check_interval": "5s"
//	}
package config
