// Package config loads runtime configuration for the task manager CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via -c / -config or the
//     TASKMANAGER_CLIENT_CONFIG environment variable.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the task manager API
//	-r int      request timeout (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so values can be either
// strings like "5s" or integer nanoseconds:
//
//	{
//	  "server_url": "http://localhost:3000",
//	  "request_timeout": "5s"
//	}
package config
