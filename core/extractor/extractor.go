// Package extractor implements the Solution Extractor (spec.md §4.5): it
// reads back a solved Constraint Model and renders it into the output
// shapes the JSON Boundary writes to stdout.
package extractor

import (
	"fmt"
	"sort"

	"github.com/smeggmann99/arrango-scheduler/common/models/domain"
	"github.com/smeggmann99/arrango-scheduler/common/models/output"
	"github.com/smeggmann99/arrango-scheduler/core/engine"
	"github.com/smeggmann99/arrango-scheduler/core/model"
	"github.com/smeggmann99/arrango-scheduler/core/sessions"
	"github.com/smeggmann99/arrango-scheduler/core/slots"
)

// ExtractStructured replicates week-0's solved placements across every
// term week via signature lookup (spec.md §9 "weekly-pattern replication")
// and renders the full assignment list plus per-day grouping.
func ExtractStructured(
	m *model.Model,
	res engine.Result,
	grid slots.Grid,
	roomIndex *sessions.Index,
	constraints domain.Constraints,
) ([]output.Assignment, map[string][]output.DayEntry) {
	var assignments []output.Assignment
	byDay := make(map[string][]output.DayEntry)

	for i, s := range m.Sessions {
		slotIdx := res.Value(m.SlotVar[i])
		week0Slot := grid.WeekSlots(0)[slotIdx]
		roomName := roomIndex.Name(res.Value(m.RoomVar[i]))

		for week := 0; week < grid.Weeks; week++ {
			concrete, ok := grid.SlotBySignature(week0Slot.Signature, week)
			if !ok {
				continue
			}
			a := output.Assignment{
				Subject:   s.Subject,
				Class:     s.Class,
				Teacher:   s.Teacher,
				Classroom: roomName,
				Duration:  concrete.Duration(),
				TermWeek:  week + 1,
				TimeSlot:  renderTimeSlot(concrete, week),
			}
			assignments = append(assignments, a)
			dateKey := concrete.Date.Format("2006-01-02")
			byDay[dateKey] = append(byDay[dateKey], output.NewAssignmentEntry(a, concrete.Start))
		}
	}

	if constraints.LunchBreak.Enabled {
		appendLunchEntries(m, res, grid, constraints, byDay)
	}

	for date := range byDay {
		entries := byDay[date]
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].StartMinute() < entries[j].StartMinute() })
		byDay[date] = entries
	}

	sort.SliceStable(assignments, func(i, j int) bool {
		if assignments[i].TermWeek != assignments[j].TermWeek {
			return assignments[i].TermWeek < assignments[j].TermWeek
		}
		return assignments[i].TimeSlot.Start < assignments[j].TimeSlot.Start
	})

	return assignments, byDay
}

// ExtractBasic renders the single-week basic-mode solution directly, with
// no signature replication (basic mode has no notion of a recurring
// weekly pattern — spec.md §2's example is a one-shot assignment). Teacher
// is read back from the solved TeacherVar rather than a fixed Session
// field, since basic mode leaves teacher assignment to the engine.
func ExtractBasic(
	m *model.Model,
	res engine.Result,
	grid sessions.BasicGrid,
	roomIndex *sessions.Index,
	teacherIndex *sessions.Index,
) ([]output.Assignment, map[string][]output.DayEntry) {
	var assignments []output.Assignment
	byDay := make(map[string][]output.DayEntry)

	for i, s := range m.Sessions {
		slotIdx := res.Value(m.SlotVar[i])
		slot := grid.Slots[slotIdx]
		roomName := roomIndex.Name(res.Value(m.RoomVar[i]))
		teacherName := teacherIndex.Name(res.Value(m.TeacherVar[i]))

		a := output.Assignment{
			Subject:   s.Subject,
			Class:     s.Class,
			Teacher:   teacherName,
			Classroom: roomName,
			Duration:  slot.Duration(),
			TermWeek:  1,
			TimeSlot:  renderTimeSlot(slot, 0),
		}
		assignments = append(assignments, a)
		dateKey := slot.Date.Format("2006-01-02")
		byDay[dateKey] = append(byDay[dateKey], output.NewAssignmentEntry(a, slot.Start))
	}

	for date := range byDay {
		entries := byDay[date]
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].StartMinute() < entries[j].StartMinute() })
		byDay[date] = entries
	}

	sort.SliceStable(assignments, func(i, j int) bool { return assignments[i].TimeSlot.Start < assignments[j].TimeSlot.Start })

	return assignments, byDay
}

func appendLunchEntries(
	m *model.Model,
	res engine.Result,
	grid slots.Grid,
	constraints domain.Constraints,
	byDay map[string][]output.DayEntry,
) {
	classOccupiedDay := make(map[string]bool) // "classIndex|weekday" -> has a week-0 session that day
	for i, s := range m.Sessions {
		slotIdx := res.Value(m.SlotVar[i])
		wd := grid.WeekSlots(0)[slotIdx].Weekday
		classOccupiedDay[fmt.Sprintf("%d|%d", s.ClassIndex, wd)] = true
	}

	classNameOf := make(map[int]string)
	for _, s := range m.Sessions {
		classNameOf[s.ClassIndex] = s.Class
	}

	for key, lv := range m.LunchVar {
		if !classOccupiedDay[fmt.Sprintf("%d|%d", key.ClassIndex, key.Day)] {
			continue
		}
		start := res.Value(lv)
		end := start + constraints.LunchBreak.Duration

		for week := 0; week < grid.Weeks; week++ {
			date, ok := grid.DateFor(week, key.Day)
			if !ok {
				continue
			}
			entry := output.LunchEntry{
				Kind:     "lunch",
				Class:    classNameOf[key.ClassIndex],
				Start:    formatClock(start),
				End:      formatClock(end),
				TermWeek: week + 1,
			}
			dateKey := date.Format("2006-01-02")
			byDay[dateKey] = append(byDay[dateKey], output.NewLunchEntry(entry, start))
		}
	}
}

func renderTimeSlot(slot domain.Slot, week int) output.TimeSlot {
	return output.TimeSlot{
		Date:      slot.Date.Format("2006-01-02"),
		DayName:   slot.Weekday.String(),
		Start:     formatClock(slot.Start),
		End:       formatClock(slot.End),
		WeekIndex: week + 1,
	}
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
