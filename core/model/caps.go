package model

import (
	"fmt"
	"sort"

	"github.com/smeggmann99/arrango-scheduler/common/models/domain"
	"github.com/smeggmann99/arrango-scheduler/core/engine"
)

// postDailyCaps bounds how many sessions a single class or teacher may have
// on any one day (spec.md §4.4 "Daily load caps"). Each (group, weekday)
// pair gets one AtMostK: an indicator for every (session, slot-index) pair
// whose slot falls on that weekday, counting how many of a session's slot
// variable actually lands there. Since a session's SlotVar takes exactly
// one value, at most one indicator per session can ever be true, so the
// count AtMostK enforces is exactly "sessions in this group assigned to
// this weekday" — the same property spec.md §4.4 describes, expressed with
// the engine's native counting primitive instead of a whole-group Func.
func (m *Model) postDailyCaps(constraints domain.Constraints) {
	weekdays := uniqueWeekdays(m.lookup.weekday)

	byClass := groupBy(m.Sessions, func(s domain.Session) int { return s.ClassIndex })
	for class, idxs := range byClass {
		postDailyCapAtMostK(m, idxs, weekdays, constraints.MaxClassSessionsPerDay, fmt.Sprintf("daily-cap/class[%d]", class))
	}

	byTeacher := groupBy(m.Sessions, func(s domain.Session) int { return s.TeacherIndex })
	for teacher, idxs := range byTeacher {
		postDailyCapAtMostK(m, idxs, weekdays, constraints.MaxTeacherSessionsPerDay, fmt.Sprintf("daily-cap/teacher[%d]", teacher))
	}
}

func postDailyCapAtMostK(m *Model, idxs []int, weekdays []domain.Weekday, limit int, labelPrefix string) {
	for _, day := range weekdays {
		var indicators []engine.Indicator
		for _, idx := range idxs {
			for v, wd := range m.lookup.weekday {
				if wd == day {
					indicators = append(indicators, engine.Indicator{Var: m.SlotVar[idx], Value: v})
				}
			}
		}
		m.Engine.Post(engine.AtMostK(limit, indicators), fmt.Sprintf("%s/%s", labelPrefix, day))
	}
}

func uniqueWeekdays(weekdayOf []domain.Weekday) []domain.Weekday {
	seen := make(map[domain.Weekday]bool)
	var out []domain.Weekday
	for _, d := range weekdayOf {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	return out
}

// postIdleAndBuffer bounds the idle gap between consecutive sessions of the
// same class/teacher on the same day, and — for classes only — enforces
// the physical-education transition buffer between the end of any session
// tagged RequiresBuffer and the start of the class's next session that day
// (spec.md §4.4 "Idle-gap bound", "Transition buffer").
func (m *Model) postIdleAndBuffer(constraints domain.Constraints) {
	byClass := groupBy(m.Sessions, func(s domain.Session) int { return s.ClassIndex })
	for class, idxs := range byClass {
		vars := slotVarsOf(m.SlotVar, idxs)
		lookup := m.lookup
		maxIdle := constraints.MaxClassIdleMinutes
		requireBuffer := !constraints.DisableTransitionBuffers
		requiresBuffer := buffersOf(m.Sessions, idxs)
		bufferMinutes := bufferMinutesOf(m.Sessions, idxs)
		m.Engine.Post(engine.Func(vars, func(values []int) bool {
			return idleWithinBounds(values, lookup, maxIdle, requireBuffer, requiresBuffer, bufferMinutes)
		}), fmt.Sprintf("idle-gap/class[%d]", class))
	}

	byTeacher := groupBy(m.Sessions, func(s domain.Session) int { return s.TeacherIndex })
	for teacher, idxs := range byTeacher {
		vars := slotVarsOf(m.SlotVar, idxs)
		lookup := m.lookup
		maxIdle := constraints.MaxTeacherIdleMinutes
		m.Engine.Post(engine.Func(vars, func(values []int) bool {
			return idleWithinBounds(values, lookup, maxIdle, false, nil, nil)
		}), fmt.Sprintf("idle-gap/teacher[%d]", teacher))
	}
}

func idleWithinBounds(
	values []int,
	lookup slotLookup,
	maxIdle int,
	checkBuffer bool,
	requiresBuffer []bool,
	bufferMinutes []int,
) bool {
	type occ struct {
		start, end int
		buffer     bool
		minutes    int
	}
	byDay := make(map[domain.Weekday][]occ)
	for i, v := range values {
		o := occ{start: lookup.start[v], end: lookup.end[v]}
		if checkBuffer {
			o.buffer = requiresBuffer[i]
			o.minutes = bufferMinutes[i]
		}
		d := lookup.weekday[v]
		byDay[d] = append(byDay[d], o)
	}

	for _, occs := range byDay {
		sort.Slice(occs, func(a, b int) bool { return occs[a].start < occs[b].start })
		for i := 1; i < len(occs); i++ {
			gap := occs[i].start - occs[i-1].end
			if gap < 0 {
				return false
			}
			if gap > maxIdle {
				return false
			}
			if checkBuffer && occs[i-1].buffer && gap < occs[i-1].minutes {
				return false
			}
		}
	}
	return true
}

func groupBy(sessions []domain.Session, key func(domain.Session) int) map[int][]int {
	out := make(map[int][]int)
	for i, s := range sessions {
		k := key(s)
		out[k] = append(out[k], i)
	}
	return out
}

func slotVarsOf(slotVar []engine.VarID, idxs []int) []engine.VarID {
	out := make([]engine.VarID, len(idxs))
	for i, idx := range idxs {
		out[i] = slotVar[idx]
	}
	return out
}

func buffersOf(sessions []domain.Session, idxs []int) []bool {
	out := make([]bool, len(idxs))
	for i, idx := range idxs {
		out[i] = sessions[idx].RequiresBuffer
	}
	return out
}

func bufferMinutesOf(sessions []domain.Session, idxs []int) []int {
	out := make([]int, len(idxs))
	for i, idx := range idxs {
		out[i] = sessions[idx].BufferMinutes
	}
	return out
}
