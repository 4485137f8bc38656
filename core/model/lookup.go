// Package model builds the Constraint Model (spec.md §4.4): decision
// variables and every hard constraint, posted through core/engine's
// polymorphic interface.
package model

import "github.com/smeggmann99/arrango-scheduler/common/models/domain"

// slotLookup lets constraint predicates turn a solved slot index back into
// the weekday/start/end/signature it denotes, without the engine itself
// needing to know what a "slot" is.
type slotLookup struct {
	weekday   []domain.Weekday
	start     []int
	end       []int
	signature []domain.Signature
}

func newSlotLookup(table []domain.Slot) slotLookup {
	l := slotLookup{
		weekday:   make([]domain.Weekday, len(table)),
		start:     make([]int, len(table)),
		end:       make([]int, len(table)),
		signature: make([]domain.Signature, len(table)),
	}
	for i, s := range table {
		l.weekday[i] = s.Weekday
		l.start[i] = s.Start
		l.end[i] = s.End
		l.signature[i] = s.Signature
	}
	return l
}

func overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}
