// Package solver orchestrates the full pipeline of spec.md §2: normalise,
// expand slots, build sessions, post the constraint model, solve it, and
// extract a concrete schedule. This replaces the teacher's population-based
// search with the deterministic constraint-satisfaction approach spec.md §9
// calls for; the package keeps the teacher's role as the single entrypoint
// the JSON Boundary calls into.
package solver

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/smeggmann99/arrango-scheduler/common/models/domain"
	"github.com/smeggmann99/arrango-scheduler/common/models/input"
	"github.com/smeggmann99/arrango-scheduler/common/models/output"
	apperrors "github.com/smeggmann99/arrango-scheduler/core/errors"
	"github.com/smeggmann99/arrango-scheduler/core/extractor"
	"github.com/smeggmann99/arrango-scheduler/core/model"
	"github.com/smeggmann99/arrango-scheduler/core/normalizer"
	"github.com/smeggmann99/arrango-scheduler/core/sessions"
	"github.com/smeggmann99/arrango-scheduler/core/slots"
)

// Solver runs the pipeline once per request.
type Solver struct {
	Logger zerolog.Logger
}

// Solve runs the full normalise -> expand -> build -> solve -> extract
// pipeline and returns a rendered Result, or a typed *apperrors.Error.
func (s Solver) Solve(ctx context.Context, req input.Request) (*output.Result, *apperrors.Error) {
	bundle, nerr := normalizer.Normalize(req)
	if nerr != nil {
		return nil, nerr
	}

	classrooms := bundle.Classrooms
	if len(classrooms) == 0 {
		// No room was named anywhere in the request: give every session one
		// shared placeholder room rather than an empty domain, matching
		// basic mode's defaulting convention (core/sessions.BuildBasic).
		classrooms = []string{"Room 1"}
	}
	roomIndex := sessions.NewIndex(classrooms)
	classIndex := sessions.NewIndex(nil)
	teacherIndex := sessions.NewIndex(nil)

	s.Logger.Debug().Str("mode", string(bundle.Mode)).Msg("normalised request")

	switch bundle.Mode {
	case normalizer.ModeStructured:
		return s.solveStructured(ctx, bundle, roomIndex, classIndex, teacherIndex)
	default:
		return s.solveBasic(ctx, bundle, roomIndex, classIndex, teacherIndex)
	}
}

func (s Solver) solveStructured(
	ctx context.Context,
	bundle *normalizer.Bundle,
	roomIndex, classIndex, teacherIndex *sessions.Index,
) (*output.Result, *apperrors.Error) {
	grid := slots.Expand(bundle.Term)

	built, berr := sessions.Build(bundle.LessonTemplates, grid, roomIndex, classIndex, teacherIndex, bundle.Constraints)
	if berr != nil {
		return nil, berr
	}

	var canonical []domain.Session
	for _, sess := range built {
		if sess.Week == 0 {
			canonical = append(canonical, sess)
		}
	}

	s.Logger.Debug().Int("sessions", len(canonical)).Msg("built canonical week")

	m := model.Build(normalizer.ModeStructured, canonical, grid.WeekSlots(0), grid.Days, bundle.Constraints)

	res, err := m.Engine.Check(ctx)
	if err != nil {
		return nil, apperrors.EngineErrorf("solve timed out: %v", err)
	}
	if !res.Satisfiable {
		ierr := apperrors.Infeasible("no schedule satisfies every hard constraint")
		if bundle.Debug {
			ierr = ierr.WithDetails(map[string]any{"unsatCore": res.UnsatCore, "nodesVisited": res.NodesVisited})
		}
		return nil, ierr
	}

	assignments, byDay := extractor.ExtractStructured(m, res, grid, roomIndex, bundle.Constraints)

	result := &output.Result{
		Success:       true,
		Assignments:   assignments,
		ScheduleByDay: byDay,
		Meta: &output.Meta{
			Term: output.TermMeta{
				Name:      bundle.Term.Name,
				StartDate: bundle.Term.StartDate.Format("2006-01-02"),
				Weeks:     bundle.Term.Weeks,
				Days:      dayNames(bundle.Term.Days),
			},
			Solver:        "arrango-csp",
			Status:        "solved",
			TotalSessions: len(assignments),
		},
	}
	return result, nil
}

func (s Solver) solveBasic(
	ctx context.Context,
	bundle *normalizer.Bundle,
	roomIndex, classIndex, teacherIndex *sessions.Index,
) (*output.Result, *apperrors.Error) {
	grid := sessions.ExpandBasic(bundle.Term, bundle.BasicTimeSlots)

	built, berr := sessions.BuildBasic(bundle.Classes, bundle.Teachers, bundle.Classrooms, bundle.Subjects, grid, roomIndex, classIndex, teacherIndex)
	if berr != nil {
		return nil, berr
	}

	m := model.Build(normalizer.ModeBasic, built, grid.Slots, nil, bundle.Constraints)

	if merr := m.MinimizeEarliestSlots(ctx); merr != nil {
		return nil, apperrors.EngineErrorf("solve timed out: %v", merr)
	}

	res, err := m.Engine.Check(ctx)
	if err != nil {
		return nil, apperrors.EngineErrorf("solve timed out: %v", err)
	}
	if !res.Satisfiable {
		ierr := apperrors.Infeasible("no assignment satisfies resource exclusivity")
		if bundle.Debug {
			ierr = ierr.WithDetails(map[string]any{"unsatCore": res.UnsatCore, "nodesVisited": res.NodesVisited})
		}
		return nil, ierr
	}

	assignments, byDay := extractor.ExtractBasic(m, res, grid, roomIndex, teacherIndex)

	result := &output.Result{
		Success:       true,
		Assignments:   assignments,
		ScheduleByDay: byDay,
		Meta: &output.Meta{
			Term: output.TermMeta{
				Name:      bundle.Term.Name,
				StartDate: bundle.Term.StartDate.Format("2006-01-02"),
				Weeks:     1,
				Days:      dayNames(bundle.Term.Days),
			},
			Solver:        "arrango-csp",
			Status:        "solved",
			TotalSessions: len(assignments),
		},
	}
	return result, nil
}

func dayNames(days []domain.Weekday) []string {
	out := make([]string, len(days))
	for i, d := range days {
		out[i] = d.String()
	}
	return out
}
