package model

import (
	"fmt"

	"github.com/smeggmann99/arrango-scheduler/common/models/domain"
	"github.com/smeggmann99/arrango-scheduler/core/engine"
)

// postClassStartWindow enforces spec.md's class-start window ("if both
// earliest and latest class-start are active: on any day a class has
// sessions, at least one of those sessions must start within [earliest,
// latest]"). It is a per-(class, day) property over the whole group of that
// class's sessions, not a per-session domain exclusion — a class may have
// several sessions on the same day and only one of them needs to land in
// the window — so it is posted as one Func constraint per class, in the
// same style as postDailyCaps/postIdleAndBuffer.
func (m *Model) postClassStartWindow(constraints domain.Constraints) {
	if constraints.ClassEarliestStartMinutes == nil || constraints.ClassLatestStartMinutes == nil {
		return
	}
	earliest := *constraints.ClassEarliestStartMinutes
	latest := *constraints.ClassLatestStartMinutes

	byClass := groupBy(m.Sessions, func(s domain.Session) int { return s.ClassIndex })
	for class, idxs := range byClass {
		vars := slotVarsOf(m.SlotVar, idxs)
		lookup := m.lookup
		m.Engine.Post(engine.Func(vars, func(values []int) bool {
			return dayHasWindowStart(values, lookup, earliest, latest)
		}), fmt.Sprintf("class-start-window/class[%d]", class))
	}
}

func dayHasWindowStart(values []int, lookup slotLookup, earliest, latest int) bool {
	scheduled := make(map[domain.Weekday]bool)
	inWindow := make(map[domain.Weekday]bool)
	for _, v := range values {
		d := lookup.weekday[v]
		scheduled[d] = true
		if lookup.start[v] >= earliest && lookup.start[v] <= latest {
			inWindow[d] = true
		}
	}
	for d := range scheduled {
		if !inWindow[d] {
			return false
		}
	}
	return true
}
