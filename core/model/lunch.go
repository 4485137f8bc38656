package model

import (
	"fmt"

	"github.com/smeggmann99/arrango-scheduler/common/models/domain"
	"github.com/smeggmann99/arrango-scheduler/core/engine"
)

// postLunch creates one lunch variable per (class, weekday) and constrains
// it to never overlap any session that class ends up with on that day
// (spec.md §4.4 "Lunch placement"). A lunch variable is posted for every
// day even if the class never ends up with a session that day; the
// Solution Extractor only emits the ones spec.md §3 calls "materialised":
// days where the class actually has at least one scheduled session.
func (m *Model) postLunch(days []domain.Weekday, lunch domain.LunchConfig) {
	candidates := lunchDomain(lunch)

	byClass := groupBy(m.Sessions, func(s domain.Session) int { return s.ClassIndex })
	for class, idxs := range byClass {
		classVars := slotVarsOf(m.SlotVar, idxs)
		for _, day := range days {
			lv := m.Engine.NewIntVar(candidates, fmt.Sprintf("lunch[class=%d,day=%s]", class, day))
			m.LunchVar[LunchKey{ClassIndex: class, Day: day}] = lv

			vars := append([]engine.VarID{lv}, classVars...)
			lookup := m.lookup
			duration := lunch.Duration
			targetDay := day
			m.Engine.Post(engine.Func(vars, func(values []int) bool {
				lunchStart := values[0]
				lunchEnd := lunchStart + duration
				for _, v := range values[1:] {
					if lookup.weekday[v] != targetDay {
						continue
					}
					if overlaps(lunchStart, lunchEnd, lookup.start[v], lookup.end[v]) {
						return false
					}
				}
				return true
			}), fmt.Sprintf("lunch/class[%d]/%s", class, day))
		}
	}
}

func lunchDomain(lb domain.LunchConfig) []int {
	maxStart := lb.WindowEnd - lb.Duration
	if maxStart < lb.WindowStart {
		return []int{lb.WindowStart}
	}
	var out []int
	for v := lb.WindowStart; v <= maxStart; v += lb.Granularity {
		out = append(out, v)
	}
	if len(out) == 0 {
		out = append(out, lb.WindowStart)
	}
	return out
}
