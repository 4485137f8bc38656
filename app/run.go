// Package app wires the JSON Boundary (spec.md §6): read one JSON request
// object from stdin, run it through the solver pipeline, and write one JSON
// result object to stdout. It is kept separate from cmd/arrango so the
// pipeline can be exercised directly in tests, without exec'ing a binary.
package app

import (
	"context"
	"encoding/json"
	"io"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/smeggmann99/arrango-scheduler/common/models/input"
	"github.com/smeggmann99/arrango-scheduler/common/models/output"
	apperrors "github.com/smeggmann99/arrango-scheduler/core/errors"
	"github.com/smeggmann99/arrango-scheduler/core/normalizer"
	"github.com/smeggmann99/arrango-scheduler/core/solver"
	"github.com/smeggmann99/arrango-scheduler/pkg/config"
)

// Options configures a single Run invocation.
type Options struct {
	// ForceDebug overrides any debug flag in the request body (flag/env
	// takes precedence over the input body, per spec.md §6).
	ForceDebug bool
	Config     *config.Config
	Logger     zerolog.Logger
}

// Exit codes: 0 only when the result object reports success, 1 for a
// well-formed structured failure and 1 for a crash. In every case the result
// object is written to out before Run returns.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitCrash   = 1
)

// Run reads one request from in, solves it, and writes one result object to
// out. It never panics out of this function: any panic from the pipeline is
// recovered and rendered as an InternalError result.
func Run(ctx context.Context, in io.Reader, out io.Writer, opts Options) (exitCode int) {
	runID := uuid.NewString()
	log := opts.Logger.With().Str("runId", runID).Logger()

	result := &output.Result{}
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("recovered from panic")
			writeError(result, apperrors.Internal(panicError{r}), true)
			result.Traceback = string(debug.Stack())
			exitCode = ExitCrash
		}
		if result.Meta == nil {
			result.Meta = &output.Meta{}
		}
		result.Meta.RunID = runID
		encodeResult(out, result, &log)
	}()

	started := time.Now()

	body, rerr := io.ReadAll(in)
	if rerr != nil {
		writeError(result, apperrors.Internal(rerr), true)
		return ExitCrash
	}

	if serr := normalizer.ValidateSchema(body); serr != nil {
		writeError(result, serr, opts.ForceDebug || opts.Config.ForceDebug)
		return ExitFailure
	}

	var req input.Request
	if derr := json.Unmarshal(body, &req); derr != nil {
		writeError(result, apperrors.InvalidInput("", "could not decode request body: %v", derr), true)
		return ExitFailure
	}

	if opts.ForceDebug || opts.Config.ForceDebug {
		req.Debug = true
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, opts.Config.SolveTimeout)
	defer cancel()

	s := solver.Solver{Logger: log}
	solved, serr := s.Solve(timeoutCtx, req)
	if serr != nil {
		debugOn := req.Debug || req.DebugMode || opts.ForceDebug || opts.Config.ForceDebug
		log.Error().Str("kind", string(serr.Kind)).Msg(serr.Message)
		writeError(result, serr, debugOn)
		return ExitFailure
	}

	*result = *solved
	log.Info().Dur("elapsed", time.Since(started)).Int("sessions", result.Meta.TotalSessions).Msg("solved")
	return ExitOK
}

// writeError renders a typed error into result, attaching debug details
// only when debugOn is set.
func writeError(result *output.Result, err *apperrors.Error, debugOn bool) {
	result.Success = false
	result.Error = err.Message
	result.ErrorType = string(err.Kind)
	if debugOn {
		result.Details = err.Details
		if err.Traceback != "" {
			result.Traceback = err.Traceback
		}
	}
}

func encodeResult(out io.Writer, result *output.Result, log *zerolog.Logger) {
	enc := json.NewEncoder(out)
	if err := enc.Encode(result); err != nil {
		log.Error().Err(err).Msg("failed to encode result")
	}
}

// panicError adapts an arbitrary recover() value to an error.
type panicError struct{ v any }

func (p panicError) Error() string {
	if err, ok := p.v.(error); ok {
		return err.Error()
	}
	return "panic: " + toString(p.v)
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return "non-string panic value"
}
