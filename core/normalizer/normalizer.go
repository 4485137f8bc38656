// Package normalizer implements the Input Normaliser (spec.md §4.1): it
// validates and canonicalises the raw decoded request into a Bundle, or
// raises a typed InvalidInput error.
package normalizer

import (
	"fmt"
	"time"

	"github.com/smeggmann99/arrango-scheduler/common/models/domain"
	"github.com/smeggmann99/arrango-scheduler/common/models/input"
	apperrors "github.com/smeggmann99/arrango-scheduler/core/errors"
)

// Normalize validates and canonicalises a decoded request.
func Normalize(req input.Request) (*Bundle, *apperrors.Error) {
	mode := ModeBasic
	if len(req.LessonTemplates) > 0 {
		mode = ModeStructured
	}

	if mode == ModeStructured && req.Term == nil {
		return nil, apperrors.InvalidInput("term", "is required in structured mode")
	}

	explicitDailySlots := req.Term != nil && len(req.Term.DailySlots) > 0

	term, terr := normalizeTerm(req.Term)
	if terr != nil {
		return nil, terr
	}

	templates, lerr := normalizeLessonTemplates(req.LessonTemplates)
	if lerr != nil {
		return nil, lerr
	}

	classes := namesOf(req.Classes)
	teachers := namesOf(req.Teachers)
	classrooms := namesOf(req.Classrooms)
	subjects := namesOf(req.Subjects)

	for _, t := range templates {
		classes = append(classes, t.Class)
		teachers = append(teachers, t.Teacher)
		subjects = append(subjects, t.Subject)
		classrooms = append(classrooms, t.AllowedRooms...)
	}
	classes = dedupeStrings(classes)
	teachers = dedupeStrings(teachers)
	classrooms = dedupeStrings(classrooms)
	subjects = dedupeStrings(subjects)

	var basicSlots []RawBasicTimeSlot
	if mode == ModeBasic {
		var serr *apperrors.Error
		basicSlots, serr = normalizeBasicTimeSlots(req.TimeSlots)
		if serr != nil {
			return nil, serr
		}
		if len(basicSlots) == 0 {
			return nil, apperrors.InvalidInput("timeSlots", "basic mode requires at least one time slot")
		}
	}

	constraints, cerr := normalizeConstraints(req.Constraints, explicitDailySlots)
	if cerr != nil {
		return nil, cerr
	}

	debug := req.Debug || req.DebugMode

	return &Bundle{
		Mode:            mode,
		Term:            term,
		LessonTemplates: templates,
		Classes:         classes,
		Teachers:        teachers,
		Classrooms:      classrooms,
		Subjects:        subjects,
		BasicTimeSlots:  basicSlots,
		Constraints:     constraints,
		Debug:           debug,
	}, nil
}

func namesOf(entities []input.RawNamedEntity) []string {
	out := make([]string, 0, len(entities))
	for _, e := range entities {
		if e.Name != "" {
			out = append(out, e.Name)
		}
	}
	return out
}

func normalizeTerm(raw *input.RawTerm) (domain.Term, *apperrors.Error) {
	term := domain.Term{
		Weeks: 2,
		Days:  domain.DefaultDays(),
	}

	if raw == nil {
		term.DailySlots = domain.DefaultDailySlots()
		term.StartDate = time.Now().UTC().Truncate(24 * time.Hour)
		return term, nil
	}

	term.Name = firstNonEmpty(raw.Name, raw.Label)

	if raw.StartDate != "" {
		parsed, err := time.Parse("2006-01-02", raw.StartDate)
		if err != nil {
			return domain.Term{}, apperrors.InvalidInput("term.startDate", "must be YYYY-MM-DD, got %q", raw.StartDate)
		}
		term.StartDate = parsed
	} else {
		term.StartDate = time.Now().UTC().Truncate(24 * time.Hour)
	}

	if raw.Weeks != nil {
		if *raw.Weeks < 1 {
			return domain.Term{}, apperrors.InvalidInput("term.weeks", "must be >= 1, got %d", *raw.Weeks)
		}
		term.Weeks = *raw.Weeks
	}

	if len(raw.Days) > 0 {
		days := make([]domain.Weekday, 0, len(raw.Days))
		seen := make(map[domain.Weekday]bool)
		for _, d := range raw.Days {
			wd, ok := domain.ParseWeekday(d)
			if !ok {
				return domain.Term{}, apperrors.InvalidInput("term.days", "unrecognised weekday %q", d)
			}
			if wd.IsWeekend() {
				return domain.Term{}, apperrors.InvalidInput("term.days", "weekend day %q is not allowed", d)
			}
			if seen[wd] {
				continue
			}
			seen[wd] = true
			days = append(days, wd)
		}
		term.Days = days
	}

	if len(raw.DailySlots) > 0 {
		slots := make([]domain.DailySlotTemplate, 0, len(raw.DailySlots))
		for i, s := range raw.DailySlots {
			start, serr := parseMinutes(fieldf("term.dailySlots[%d].start", i), s.Start)
			if serr != nil {
				return domain.Term{}, serr
			}
			end, eerr := parseMinutes(fieldf("term.dailySlots[%d].end", i), s.End)
			if eerr != nil {
				return domain.Term{}, eerr
			}
			if end <= start {
				return domain.Term{}, apperrors.InvalidInput(fieldf("term.dailySlots[%d]", i), "end must be after start")
			}
			slots = append(slots, domain.DailySlotTemplate{Start: start, End: end})
		}
		term.DailySlots = slots
	} else {
		term.DailySlots = domain.DefaultDailySlots()
	}

	return term, nil
}

func normalizeLessonTemplates(raw []input.RawLessonTemplate) ([]domain.LessonTemplate, *apperrors.Error) {
	out := make([]domain.LessonTemplate, 0, len(raw))
	for i, t := range raw {
		class := firstNonEmpty(t.Class, t.ClassName)
		if class == "" {
			return nil, apperrors.InvalidInput(fieldf("lessonTemplates[%d].class", i), "is required")
		}
		teacher := firstNonEmpty(t.Teacher, t.TeacherName)
		if teacher == "" {
			return nil, apperrors.InvalidInput(fieldf("lessonTemplates[%d].teacher", i), "is required")
		}
		subject := firstNonEmpty(t.Subject, t.SubjectName)
		if subject == "" {
			return nil, apperrors.InvalidInput(fieldf("lessonTemplates[%d].subject", i), "is required")
		}

		sessionsField := fieldf("lessonTemplates[%d].sessionsPerWeek", i)
		sessions, serr := requirePositiveInt(sessionsField, firstNonNilInt(t.SessionsPerWeek, t.LessonsPerWeek, t.WeeklyLessons, t.FrequencyPerWeek))
		if serr != nil {
			return nil, serr
		}

		durationField := fieldf("lessonTemplates[%d].durationMinutes", i)
		duration, derr := requirePositiveInt(durationField, firstNonNilInt(t.DurationMinutes, t.Duration, t.LengthMinutes))
		if derr != nil {
			return nil, derr
		}

		preferredRoom := firstNonEmpty(t.PreferredRoom, t.Room, t.Classroom)
		allowedRooms := t.AllowedRooms
		if len(allowedRooms) == 0 {
			allowedRooms = t.Rooms
		}
		if preferredRoom != "" {
			allowedRooms = prependUnique(preferredRoom, allowedRooms)
		}

		out = append(out, domain.LessonTemplate{
			Class:           class,
			Teacher:         teacher,
			Subject:         subject,
			SessionsPerWeek: sessions,
			Duration:        duration,
			PreferredRoom:   preferredRoom,
			AllowedRooms:    dedupeStrings(allowedRooms),
		})
	}
	return out, nil
}

func prependUnique(first string, rest []string) []string {
	out := make([]string, 0, len(rest)+1)
	out = append(out, first)
	out = append(out, rest...)
	return out
}

func normalizeBasicTimeSlots(raw []input.RawTimeSlot) ([]RawBasicTimeSlot, *apperrors.Error) {
	out := make([]RawBasicTimeSlot, 0, len(raw))
	for i, t := range raw {
		wd, ok := domain.ParseWeekday(t.Day)
		if !ok {
			return nil, apperrors.InvalidInput(fieldf("timeSlots[%d].day", i), "unrecognised weekday %q", t.Day)
		}
		if wd.IsWeekend() {
			return nil, apperrors.InvalidInput(fieldf("timeSlots[%d].day", i), "weekend day %q is not allowed", t.Day)
		}
		start, serr := parseMinutes(fieldf("timeSlots[%d].start", i), t.Start)
		if serr != nil {
			return nil, serr
		}
		end, eerr := parseMinutes(fieldf("timeSlots[%d].end", i), t.End)
		if eerr != nil {
			return nil, eerr
		}
		if end <= start {
			return nil, apperrors.InvalidInput(fieldf("timeSlots[%d]", i), "end must be after start")
		}
		out = append(out, RawBasicTimeSlot{Weekday: wd, Start: start, End: end})
	}
	return out, nil
}

func fieldf(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}
