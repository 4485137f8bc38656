package normalizer

import (
	"strings"

	"github.com/smeggmann99/arrango-scheduler/common/models/domain"
	"github.com/smeggmann99/arrango-scheduler/common/models/input"
	apperrors "github.com/smeggmann99/arrango-scheduler/core/errors"
)

func normalizeConstraints(raw *input.RawConstraints, explicitDailySlots bool) (domain.Constraints, *apperrors.Error) {
	c := domain.DefaultConstraints()

	// spec.md §9 Open Question: when explicit daily slots are supplied and
	// neither earliest nor latest start was set by the user, no start-window
	// constraint is posted; otherwise the §4.1 defaults (08:00/10:00) apply.
	if !explicitDailySlots {
		earliest := 8 * 60
		latest := 10 * 60
		c.ClassEarliestStartMinutes = &earliest
		c.ClassLatestStartMinutes = &latest
	}

	if raw == nil {
		return c, nil
	}

	if raw.MaxClassSessionsPerDay != nil {
		if *raw.MaxClassSessionsPerDay <= 0 {
			return c, apperrors.InvalidInput("constraints.maxClassSessionsPerDay", "must be positive")
		}
		c.MaxClassSessionsPerDay = *raw.MaxClassSessionsPerDay
	}
	if raw.MaxTeacherSessionsPerDay != nil {
		if *raw.MaxTeacherSessionsPerDay <= 0 {
			return c, apperrors.InvalidInput("constraints.maxTeacherSessionsPerDay", "must be positive")
		}
		c.MaxTeacherSessionsPerDay = *raw.MaxTeacherSessionsPerDay
	}
	if raw.MaxClassIdleMinutes != nil {
		if *raw.MaxClassIdleMinutes < 0 {
			return c, apperrors.InvalidInput("constraints.maxClassIdleMinutes", "must be >= 0")
		}
		c.MaxClassIdleMinutes = *raw.MaxClassIdleMinutes
	}
	if raw.MaxTeacherIdleMinutes != nil {
		if *raw.MaxTeacherIdleMinutes < 0 {
			return c, apperrors.InvalidInput("constraints.maxTeacherIdleMinutes", "must be >= 0")
		}
		c.MaxTeacherIdleMinutes = *raw.MaxTeacherIdleMinutes
	}
	if raw.DisableSubjectSpread != nil {
		c.DisableSubjectSpread = *raw.DisableSubjectSpread
	}
	if raw.DisableTransitionBuffers != nil {
		c.DisableTransitionBuffers = *raw.DisableTransitionBuffers
	}
	if raw.PhysicalEducationBufferMinutes != nil {
		if *raw.PhysicalEducationBufferMinutes < 0 {
			return c, apperrors.InvalidInput("constraints.physicalEducationBufferMinutes", "must be >= 0")
		}
		c.PhysicalEducationBufferMinutes = *raw.PhysicalEducationBufferMinutes
	}
	if len(raw.PhysicalEducationSubjects) > 0 {
		keywords := make(map[string]bool, len(raw.PhysicalEducationSubjects))
		for _, s := range raw.PhysicalEducationSubjects {
			keywords[strings.ToLower(strings.TrimSpace(s))] = true
		}
		c.PhysicalEducationSubjects = keywords
	}
	if raw.ClassEarliestStartMinutes != nil {
		v := *raw.ClassEarliestStartMinutes
		if v < 0 {
			return c, apperrors.InvalidInput("constraints.classEarliestStartMinutes", "must be >= 0")
		}
		c.ClassEarliestStartMinutes = &v
	}
	if raw.ClassLatestStartMinutes != nil {
		v := *raw.ClassLatestStartMinutes
		if v < 0 {
			return c, apperrors.InvalidInput("constraints.classLatestStartMinutes", "must be >= 0")
		}
		c.ClassLatestStartMinutes = &v
	}
	if c.ClassEarliestStartMinutes != nil && c.ClassLatestStartMinutes != nil &&
		*c.ClassLatestStartMinutes < *c.ClassEarliestStartMinutes {
		return c, apperrors.InvalidInput("constraints.classLatestStartMinutes", "must be >= classEarliestStartMinutes")
	}

	if raw.LunchBreak != nil {
		lb := c.LunchBreak
		if raw.LunchBreak.Enabled != nil {
			lb.Enabled = *raw.LunchBreak.Enabled
		}
		if raw.LunchBreak.WindowStart != "" {
			start, serr := parseMinutes("constraints.lunchBreak.windowStart", raw.LunchBreak.WindowStart)
			if serr != nil {
				return c, serr
			}
			lb.WindowStart = start
		}
		if raw.LunchBreak.WindowEnd != "" {
			end, eerr := parseMinutes("constraints.lunchBreak.windowEnd", raw.LunchBreak.WindowEnd)
			if eerr != nil {
				return c, eerr
			}
			lb.WindowEnd = end
		}
		if raw.LunchBreak.Duration != nil {
			if *raw.LunchBreak.Duration <= 0 {
				return c, apperrors.InvalidInput("constraints.lunchBreak.duration", "must be positive")
			}
			lb.Duration = *raw.LunchBreak.Duration
		}
		if raw.LunchBreak.Granularity != nil {
			if *raw.LunchBreak.Granularity <= 0 {
				return c, apperrors.InvalidInput("constraints.lunchBreak.granularity", "must be positive")
			}
			lb.Granularity = *raw.LunchBreak.Granularity
		}
		if lb.WindowEnd-lb.Duration < lb.WindowStart {
			return c, apperrors.InvalidInput("constraints.lunchBreak", "window is too narrow for the configured duration")
		}
		c.LunchBreak = lb
	}

	return c, nil
}
