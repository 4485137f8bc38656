// Package config sources solver-wide defaults from the environment so
// deployments can tune them without touching the request body.
package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds solver-wide defaults read from ARRANGO_-prefixed
// environment variables.
type Config struct {
	LogLevel     string        // "debug" switches logging to debug level; any other value logs at info
	ForceDebug   bool          // forces debug mode regardless of request body
	SolveTimeout time.Duration // wall-clock ceiling for one whole solve, every Check() included
}

// Load reads configuration from the environment, applying defaults for
// anything unset. It never fails: missing or malformed values fall back to
// their default rather than aborting the process.
func Load() *Config {
	v := viper.New()
	v.SetEnvPrefix("ARRANGO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	return &Config{
		LogLevel:     v.GetString("log_level"),
		ForceDebug:   v.GetBool("force_debug"),
		SolveTimeout: parseDurationSeconds(v.GetString("solve_timeout_seconds"), 60*time.Second),
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("force_debug", false)
	v.SetDefault("solve_timeout_seconds", "60")
}

func parseDurationSeconds(raw string, fallback time.Duration) time.Duration {
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		return fallback
	}
	return time.Duration(seconds) * time.Second
}
