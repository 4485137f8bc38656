package model

import (
	"fmt"

	"github.com/smeggmann99/arrango-scheduler/core/engine"
)

// postSubjectSpread forbids two sessions of the same (class, subject) from
// landing on the same weekday, spreading a subject's weekly occurrences
// across distinct days (spec.md §4.4 "Subject spread").
func (m *Model) postSubjectSpread() {
	groups := make(map[string][]int)
	for i, s := range m.Sessions {
		key := fmt.Sprintf("%d|%s", s.ClassIndex, s.Subject)
		groups[key] = append(groups[key], i)
	}

	for _, idxs := range groups {
		for a := 0; a < len(idxs); a++ {
			for b := a + 1; b < len(idxs); b++ {
				i, j := idxs[a], idxs[b]
				lookup := m.lookup
				m.Engine.Post(engine.Func(
					[]engine.VarID{m.SlotVar[i], m.SlotVar[j]},
					func(values []int) bool {
						return lookup.weekday[values[0]] != lookup.weekday[values[1]]
					},
				), fmt.Sprintf("subject-spread[%d,%d]", i, j))
			}
		}
	}
}
