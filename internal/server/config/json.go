package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/amanda-parkwaylabs/task-manager/internal/flagx"
	"github.com/amanda-parkwaylabs/task-manager/internal/timex"
)

// JsonConfig is the on-disk shape of the server configuration. Durations use
// timex.Duration so both "1h" and integer nanoseconds are accepted.
type JsonConfig struct {
	HTTPAddr        string         `json:"http_addr"`
	GRPCAddr        string         `json:"grpc_addr"`
	DatabaseDSN     string         `json:"database_dsn"`
	SecretKey       string         `json:"secret_key"`
	TokenTTL        timex.Duration `json:"token_ttl"`
	BcryptCost      int            `json:"bcrypt_cost"`
	MutationPolicy  string         `json:"mutation_policy"`
	LogLevel        string         `json:"log_level"`
	ReadTimeout     timex.Duration `json:"read_timeout"`
	WriteTimeout    timex.Duration `json:"write_timeout"`
	IdleTimeout     timex.Duration `json:"idle_timeout"`
	ShutdownTimeout timex.Duration `json:"shutdown_timeout"`
}

// parseJson overlays values from the JSON file named by -c/-config (or the
// TASKMANAGER_CONFIG environment variable) onto config. Keys missing from the
// file leave the current values untouched. An unreadable or malformed file
// panics, as a misconfigured server must not start.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigFile(ConfigEnvVar)
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.GRPCAddr, c.GRPCAddr)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.MutationPolicy, c.MutationPolicy)
	setString(&config.LogLevel, c.LogLevel)
	setDuration(&config.TokenTTL, c.TokenTTL)
	setDuration(&config.ReadTimeout, c.ReadTimeout)
	setDuration(&config.WriteTimeout, c.WriteTimeout)
	setDuration(&config.IdleTimeout, c.IdleTimeout)
	setDuration(&config.ShutdownTimeout, c.ShutdownTimeout)
	if c.BcryptCost > 0 {
		config.BcryptCost = c.BcryptCost
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v timex.Duration) {
	if v.Duration > 0 {
		*dst = v.Duration
	}
}
