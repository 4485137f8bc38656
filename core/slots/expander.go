// Package slots implements the Slot Expander (spec.md §4.2): it
// materialises the term's teaching grid into concrete Slot records.
package slots

import (
	"time"

	"github.com/smeggmann99/arrango-scheduler/common/models/domain"
)

// Grid is the term's materialised slot grid, indexed [week][weekday-position]
// in the order term.Days was given, each holding one Slot per daily slot
// template in term.DailySlots.
type Grid struct {
	Weeks      int
	Days       []domain.Weekday
	DailySlots []domain.DailySlotTemplate
	// Slots[week][dayPos] is the ordered list of Slot for that (week, day).
	Slots [][][]domain.Slot
	// BySignature indexes every slot by its cross-week-stable signature,
	// so the extractor can replicate a week-0 placement to any other week.
	BySignature map[domain.Signature]map[int]domain.Slot // signature -> week -> Slot
}

// Expand builds the Grid for a normalised term.
func Expand(term domain.Term) Grid {
	g := Grid{
		Weeks:      term.Weeks,
		Days:       term.Days,
		DailySlots: term.DailySlots,
		Slots:      make([][][]domain.Slot, term.Weeks),
		BySignature: make(map[domain.Signature]map[int]domain.Slot),
	}

	firstWeekDate := make(map[domain.Weekday]time.Time, len(term.Days))
	for _, wd := range term.Days {
		offset := (int(wd) - int(weekdayOf(term.StartDate)) + 7) % 7
		firstWeekDate[wd] = term.StartDate.AddDate(0, 0, offset)
	}

	for week := 0; week < term.Weeks; week++ {
		g.Slots[week] = make([][]domain.Slot, len(term.Days))
		for dayPos, wd := range term.Days {
			date := firstWeekDate[wd].AddDate(0, 0, 7*week)
			daySlots := make([]domain.Slot, 0, len(term.DailySlots))
			for _, dst := range term.DailySlots {
				sig := domain.Signature{Weekday: wd, Start: dst.Start, End: dst.End}
				slot := domain.Slot{
					Week:      week,
					Weekday:   wd,
					Date:      date,
					Start:     dst.Start,
					End:       dst.End,
					Signature: sig,
				}
				daySlots = append(daySlots, slot)
				if g.BySignature[sig] == nil {
					g.BySignature[sig] = make(map[int]domain.Slot)
				}
				g.BySignature[sig][week] = slot
			}
			g.Slots[week][dayPos] = daySlots
		}
	}

	return g
}

// weekdayOf maps a time.Time's stdlib Weekday onto our Monday-anchored one.
func weekdayOf(t time.Time) domain.Weekday {
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

// WeekSlots returns the flat, index-stable list of slots for one week across
// all days, in (dayPos, dailySlotPos) order — this is the indexing the
// Session Builder's slot-domain uses.
func (g Grid) WeekSlots(week int) []domain.Slot {
	var out []domain.Slot
	for _, daySlots := range g.Slots[week] {
		out = append(out, daySlots...)
	}
	return out
}

// SlotBySignature looks up the concrete Slot for a given week replicating a
// known signature, used by the extractor to replicate week-0 placements.
func (g Grid) SlotBySignature(sig domain.Signature, week int) (domain.Slot, bool) {
	byWeek, ok := g.BySignature[sig]
	if !ok {
		return domain.Slot{}, false
	}
	slot, ok := byWeek[week]
	return slot, ok
}

// DateFor returns the concrete date of weekday day within the given week,
// if that weekday is part of the term's teaching days.
func (g Grid) DateFor(week int, day domain.Weekday) (time.Time, bool) {
	for dayPos, wd := range g.Days {
		if wd != day {
			continue
		}
		if len(g.Slots[week][dayPos]) == 0 {
			return time.Time{}, false
		}
		return g.Slots[week][dayPos][0].Date, true
	}
	return time.Time{}, false
}
