// Package logger sets up the process-wide zerolog logger. Every log line
// goes to stderr: stdout is reserved for the single JSON result object the
// JSON Boundary writes.
package logger

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup initialises the global logger. debug raises the level and switches
// to a human-readable console writer; otherwise output is compact JSON,
// suitable for piping into a log aggregator.
func Setup(debug bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if debug {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}

	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

// With returns the global logger for use in code that does not carry its
// own run-scoped logger.
func With() zerolog.Logger {
	return log.Logger
}

// Run returns a logger tagged with runID, so every line from one pipeline
// run can be grepped out of a multiplexed log stream.
func Run(runID string) zerolog.Logger {
	return log.Logger.With().Str("runId", runID).Logger()
}
