package config

import "time"

// ConfigEnvVar names the environment variable consulted for a JSON config
// path when neither -c nor -config is given.
const ConfigEnvVar = "TASKMANAGER_CLIENT_CONFIG"

// Config holds runtime settings for the task manager CLI.
//
// Fields:
//   - ServerURL: base URL of the task manager HTTP API.
//   - RequestTimeout: upper bound for a single API call.
type Config struct {
	ServerURL      string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:3000"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
