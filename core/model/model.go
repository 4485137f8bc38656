package model

import (
	"fmt"

	"github.com/smeggmann99/arrango-scheduler/common/models/domain"
	"github.com/smeggmann99/arrango-scheduler/core/engine"
	"github.com/smeggmann99/arrango-scheduler/core/normalizer"
)

// Model is the posted constraint-satisfaction model for one canonical week
// of sessions (spec.md §9: weekly-pattern replication means only week 0
// needs decision variables — every other week reproduces week 0's
// placements signature-for-signature, so constraints posted over week 0
// automatically hold for every week).
type Model struct {
	Engine     *engine.Engine
	Sessions   []domain.Session
	SlotVar    []engine.VarID // parallel to Sessions
	RoomVar    []engine.VarID // parallel to Sessions
	TeacherVar []engine.VarID // parallel to Sessions
	LunchVar   map[LunchKey]engine.VarID

	lookup slotLookup
}

// LunchKey identifies one (class, weekday) lunch variable.
type LunchKey struct {
	ClassIndex int
	Day        domain.Weekday
}

// Build constructs the full model for a canonical week's worth of sessions.
// slotTable is the index-stable slot list the sessions' SlotDomain indices
// refer to (grid.WeekSlots(0) in structured mode, the flat basic-mode slot
// list in basic mode).
func Build(
	mode normalizer.Mode,
	sessions []domain.Session,
	slotTable []domain.Slot,
	days []domain.Weekday,
	constraints domain.Constraints,
) *Model {
	m := &Model{
		Engine:     engine.New(),
		Sessions:   sessions,
		SlotVar:    make([]engine.VarID, len(sessions)),
		RoomVar:    make([]engine.VarID, len(sessions)),
		TeacherVar: make([]engine.VarID, len(sessions)),
		LunchVar:   make(map[LunchKey]engine.VarID),
		lookup:     newSlotLookup(slotTable),
	}

	for i, s := range sessions {
		m.SlotVar[i] = m.Engine.NewIntVar(s.SlotDomain, fmt.Sprintf("slot[%d:%s/%s]", i, s.Class, s.Subject))
		m.RoomVar[i] = m.Engine.NewIntVar(s.RoomDomain, fmt.Sprintf("room[%d:%s/%s]", i, s.Class, s.Subject))
		m.TeacherVar[i] = m.Engine.NewIntVar(s.TeacherDomain, fmt.Sprintf("teacher[%d:%s/%s]", i, s.Class, s.Subject))
	}

	m.postExclusivity()

	if mode == normalizer.ModeStructured {
		if !constraints.DisableSubjectSpread {
			m.postSubjectSpread()
		}
		m.postDailyCaps(constraints)
		m.postIdleAndBuffer(constraints)
		if constraints.LunchBreak.Enabled {
			m.postLunch(days, constraints.LunchBreak)
		}
		m.postClassStartWindow(constraints)
	}

	return m
}

// postExclusivity posts the resource-exclusivity constraints of spec.md
// §4.4: no two sessions may share a class, teacher, or (slot, room) pair.
// Class exclusivity is a plain pairwise VarNotEq, since ClassIndex is a
// build-time invariant in both modes. Teacher exclusivity is posted the
// same Implies-guarded way as room exclusivity instead of comparing a fixed
// TeacherIndex: structured mode's TeacherVar domain is a singleton (the
// lesson template's named teacher), so the Implies collapses to the same
// static check that used to be hardcoded, while basic mode's TeacherVar
// ranges over every candidate teacher and the guard only fires once the
// solver actually assigns two sessions the same one. Posted pairwise,
// since AtMostK over the whole session set cannot be checked until every
// session is assigned, while a pairwise VarNotEq/Implies prunes as soon as
// both of its two sessions are assigned.
func (m *Model) postExclusivity() {
	n := len(m.Sessions)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			si, sj := m.Sessions[i], m.Sessions[j]
			label := fmt.Sprintf("exclusivity[%d,%d]", i, j)

			if si.ClassIndex == sj.ClassIndex {
				m.Engine.Post(engine.VarNotEq(m.SlotVar[i], m.SlotVar[j]), label+"/class")
			}

			m.Engine.Post(engine.Implies(
				engine.VarEq(m.TeacherVar[i], m.TeacherVar[j]),
				engine.VarNotEq(m.SlotVar[i], m.SlotVar[j]),
			), label+"/teacher")

			m.Engine.Post(engine.Implies(
				engine.VarEq(m.SlotVar[i], m.SlotVar[j]),
				engine.VarNotEq(m.RoomVar[i], m.RoomVar[j]),
			), label+"/room")
		}
	}
}
