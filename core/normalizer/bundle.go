package normalizer

import (
	"github.com/smeggmann99/arrango-scheduler/common/models/domain"
)

// Mode distinguishes the two solver profiles of spec.md §2.
type Mode string

const (
	ModeBasic      Mode = "basic"
	ModeStructured Mode = "structured"
)

// RawBasicTimeSlot is a normalised basic-mode time slot, before it has been
// materialised into the week's slot grid.
type RawBasicTimeSlot struct {
	Weekday domain.Weekday
	Start   int
	End     int
}

// Bundle is the validated, canonicalised output of the Input Normaliser.
type Bundle struct {
	Mode            Mode
	Term            domain.Term
	LessonTemplates []domain.LessonTemplate
	Classes         []string
	Teachers        []string
	Classrooms      []string
	Subjects        []string
	BasicTimeSlots  []RawBasicTimeSlot
	Constraints     domain.Constraints
	Debug           bool
}
