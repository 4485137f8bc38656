package sessions

import (
	"time"

	"github.com/smeggmann99/arrango-scheduler/common/models/domain"
	apperrors "github.com/smeggmann99/arrango-scheduler/core/errors"
	"github.com/smeggmann99/arrango-scheduler/core/normalizer"
)

// BasicGrid materialises a basic-mode request's flat timeSlots list into a
// single week of domain.Slot records, reusing the same Slot shape the
// structured Constraint Model's resource-exclusivity code already knows how
// to read (spec.md §4.3: "the two profiles share... the exclusivity
// constraint code").
type BasicGrid struct {
	Slots []domain.Slot
}

// ExpandBasic builds a BasicGrid anchored on term.StartDate, one slot per
// normalised basic time slot, all in week 0.
func ExpandBasic(term domain.Term, raw []normalizer.RawBasicTimeSlot) BasicGrid {
	g := BasicGrid{Slots: make([]domain.Slot, 0, len(raw))}
	for _, r := range raw {
		offset := (int(r.Weekday) - int(weekdayOfStart(term.StartDate)) + 7) % 7
		date := term.StartDate.AddDate(0, 0, offset)
		sig := domain.Signature{Weekday: r.Weekday, Start: r.Start, End: r.End}
		g.Slots = append(g.Slots, domain.Slot{
			Week:      0,
			Weekday:   r.Weekday,
			Date:      date,
			Start:     r.Start,
			End:       r.End,
			Signature: sig,
		})
	}
	return g
}

func weekdayOfStart(t time.Time) domain.Weekday {
	switch t.Weekday() {
	case time.Monday:
		return domain.Monday
	case time.Tuesday:
		return domain.Tuesday
	case time.Wednesday:
		return domain.Wednesday
	case time.Thursday:
		return domain.Thursday
	case time.Friday:
		return domain.Friday
	case time.Saturday:
		return domain.Saturday
	default:
		return domain.Sunday
	}
}

// BuildBasic constructs one Session per (class, subject) pair: every class
// needs every subject taught once, somewhere in the given time slots, by
// some teacher, in some room, with no two sessions clashing on class,
// teacher, room or slot (spec.md §2 example: "3 subjects, 3 time slots, 1
// class, 1 teacher, 1 room -> 3 assignments one per slot"). Basic mode's
// teacher and classroom arrays are a resource pool, not a per-subject
// preference the way structured mode's lessonTemplates are, so every
// session gets the full candidate list as its domain and leaves slot, room,
// and teacher as the engine's actual decision variables — mirroring how
// `original_source/backend/solver/z3_schedule_solver.py`'s `_solve_basic`
// models `teacher_vars[i]` as a free `Int` exactly like `room_vars[i]`,
// rather than pre-deciding either one at build time.
func BuildBasic(
	classes, teachers, classrooms, subjects []string,
	grid BasicGrid,
	roomIndex, classIndex, teacherIndex *Index,
) ([]domain.Session, *apperrors.Error) {
	if len(classes) == 0 {
		classes = []string{"Class 1"}
	}
	if len(teachers) == 0 {
		teachers = []string{"Teacher 1"}
	}
	if len(classrooms) == 0 {
		classrooms = []string{"Room 1"}
	}
	if len(subjects) == 0 {
		return nil, apperrors.InvalidInput("subjects", "basic mode requires at least one subject")
	}

	slotDomain := make([]int, len(grid.Slots))
	for i := range grid.Slots {
		slotDomain[i] = i
	}
	if len(slotDomain) == 0 {
		return nil, apperrors.InfeasibleInput("basic mode requires at least one time slot")
	}

	roomDomain := make([]int, 0, len(classrooms))
	for _, r := range classrooms {
		roomDomain = append(roomDomain, roomIndex.Add(r))
	}

	teacherDomain := make([]int, 0, len(teachers))
	for _, t := range teachers {
		teacherDomain = append(teacherDomain, teacherIndex.Add(t))
	}

	var out []domain.Session
	templateIndex := 0
	for _, class := range classes {
		cIdx := classIndex.Add(class)
		for _, subject := range subjects {
			out = append(out, domain.Session{
				TemplateIndex: templateIndex,
				Occurrence:    0,
				Week:          0,
				Class:         class,
				Subject:       subject,
				ClassIndex:    cIdx,
				Duration:      0,
				SlotDomain:    slotDomain,
				RoomDomain:    roomDomain,
				TeacherDomain: teacherDomain,
				ColourIndex:   templateIndex,
			})
			templateIndex++
		}
	}

	return out, nil
}
