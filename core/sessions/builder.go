// Package sessions implements the Session Builder (spec.md §4.3): it
// expands lesson templates into individual session obligations with
// pre-pruned slot- and room-domains.
package sessions

import (
	"strings"

	"github.com/smeggmann99/arrango-scheduler/common/models/domain"
	apperrors "github.com/smeggmann99/arrango-scheduler/core/errors"
	"github.com/smeggmann99/arrango-scheduler/core/slots"
)

// Index maps entity names to stable small integer indices, assigned in
// first-seen order.
type Index struct {
	order []string
	pos   map[string]int
}

// NewIndex builds an Index over values, preserving first-seen order and
// ignoring later duplicates.
func NewIndex(values []string) *Index {
	idx := &Index{pos: make(map[string]int, len(values))}
	for _, v := range values {
		idx.Add(v)
	}
	return idx
}

// Add registers v if not already present and returns its index.
func (i *Index) Add(v string) int {
	if p, ok := i.pos[v]; ok {
		return p
	}
	p := len(i.order)
	i.pos[v] = p
	i.order = append(i.order, v)
	return p
}

// IndexOf returns v's index, or -1 if unknown.
func (i *Index) IndexOf(v string) int {
	if p, ok := i.pos[v]; ok {
		return p
	}
	return -1
}

// Len reports how many distinct values are indexed.
func (i *Index) Len() int { return len(i.order) }

// Name returns the value at position p.
func (i *Index) Name(p int) string { return i.order[p] }

// Build expands every lesson template into (sessionsPerWeek × weeks)
// sessions, pruning each session's slot- and room-domain per spec.md §4.3.
func Build(
	templates []domain.LessonTemplate,
	grid slots.Grid,
	roomIndex *Index,
	classIndex *Index,
	teacherIndex *Index,
	constraints domain.Constraints,
) ([]domain.Session, *apperrors.Error) {
	var out []domain.Session

	for ti, tmpl := range templates {
		cIdx := classIndex.Add(tmpl.Class)
		tIdx := teacherIndex.Add(tmpl.Teacher)

		roomDomain := roomDomainFor(tmpl, roomIndex)
		buffer := constraints.IsPhysicalEducation(strings.TrimSpace(tmpl.Subject))

		for week := 0; week < grid.Weeks; week++ {
			slotDomain, serr := slotDomainFor(tmpl, grid, week, constraints)
			if serr != nil {
				return nil, serr
			}
			if len(slotDomain) == 0 {
				return nil, apperrors.InfeasibleInput(
					"lesson template %d (%s/%s/%s) has no eligible slot in week %d for duration %d",
					ti, tmpl.Class, tmpl.Subject, tmpl.Teacher, week+1, tmpl.Duration,
				)
			}
			if len(roomDomain) == 0 {
				return nil, apperrors.InfeasibleInput(
					"lesson template %d (%s/%s/%s) has no eligible room", ti, tmpl.Class, tmpl.Subject, tmpl.Teacher,
				)
			}

			for occ := 0; occ < tmpl.SessionsPerWeek; occ++ {
				out = append(out, domain.Session{
					TemplateIndex:  ti,
					Occurrence:     occ,
					Week:           week,
					Class:          tmpl.Class,
					Teacher:        tmpl.Teacher,
					Subject:        tmpl.Subject,
					ClassIndex:     cIdx,
					TeacherIndex:   tIdx,
					Duration:       tmpl.Duration,
					SlotDomain:     slotDomain,
					RoomDomain:     roomDomain,
					TeacherDomain:  []int{tIdx},
					RequiresBuffer: buffer,
					BufferMinutes:  constraints.PhysicalEducationBufferMinutes,
					ColourIndex:    ti,
				})
			}
		}
	}

	return out, nil
}

func roomDomainFor(tmpl domain.LessonTemplate, roomIndex *Index) []int {
	if len(tmpl.AllowedRooms) == 0 {
		out := make([]int, roomIndex.Len())
		for i := range out {
			out[i] = i
		}
		return out
	}
	out := make([]int, 0, len(tmpl.AllowedRooms))
	for _, r := range tmpl.AllowedRooms {
		out = append(out, roomIndex.Add(r))
	}
	return out
}

// slotDomainFor prunes by duration and by the class-earliest-start
// constraint only. The class-latest-start constraint is deliberately not
// applied here: spec.md's "class start window" rule only requires that
// *some* session of the class on a given day starts within the window, not
// that *every* session does, so it cannot be expressed as a per-session
// domain exclusion — it is posted as a per-(class, day) constraint instead
// (core/model/window.go, postClassStartWindow).
func slotDomainFor(tmpl domain.LessonTemplate, grid slots.Grid, week int, constraints domain.Constraints) ([]int, *apperrors.Error) {
	weekSlots := grid.WeekSlots(week)
	var out []int
	for i, s := range weekSlots {
		if s.Duration() < tmpl.Duration {
			continue
		}
		if constraints.ClassEarliestStartMinutes != nil && s.Start < *constraints.ClassEarliestStartMinutes {
			continue
		}
		out = append(out, i)
	}
	return out, nil
}
