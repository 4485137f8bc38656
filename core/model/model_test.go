package model_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smeggmann99/arrango-scheduler/common/models/domain"
	"github.com/smeggmann99/arrango-scheduler/core/model"
	"github.com/smeggmann99/arrango-scheduler/core/normalizer"
	"github.com/smeggmann99/arrango-scheduler/core/sessions"
	"github.com/smeggmann99/arrango-scheduler/core/slots"
)

func testTerm() domain.Term {
	return domain.Term{
		StartDate:  time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC),
		Weeks:      1,
		Days:       domain.DefaultDays(),
		DailySlots: domain.DefaultDailySlots(),
	}
}

func TestModelSolvesDisjointClasses(t *testing.T) {
	grid := slots.Expand(testTerm())
	templates := []domain.LessonTemplate{
		{Class: "9A", Teacher: "Ms Lin", Subject: "Maths", SessionsPerWeek: 2, Duration: 45},
		{Class: "9B", Teacher: "Mr Roth", Subject: "English", SessionsPerWeek: 2, Duration: 45},
	}
	roomIdx := sessions.NewIndex([]string{"Room 101"})
	classIdx := sessions.NewIndex(nil)
	teacherIdx := sessions.NewIndex(nil)
	constraints := domain.DefaultConstraints()

	built, berr := sessions.Build(templates, grid, roomIdx, classIdx, teacherIdx, constraints)
	require.Nil(t, berr)

	var week0 []domain.Session
	for _, s := range built {
		if s.Week == 0 {
			week0 = append(week0, s)
		}
	}

	m := model.Build(normalizer.ModeStructured, week0, grid.WeekSlots(0), grid.Days, constraints)
	res, err := m.Engine.Check(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Satisfiable)
}

func TestModelRejectsOverbookedSingleRoom(t *testing.T) {
	grid := slots.Expand(testTerm())
	// Two teachers, same class pool forced into the same single slot value
	// by collapsing each template's domain to one slot index, sharing the
	// one available room: must be unsatisfiable.
	roomIdx := sessions.NewIndex([]string{"Room 101"})
	classIdx := sessions.NewIndex(nil)
	teacherIdx := sessions.NewIndex(nil)
	_ = classIdx
	_ = teacherIdx

	slot0 := grid.WeekSlots(0)[0]
	mkSession := func(idx int, class, teacher string) domain.Session {
		return domain.Session{
			TemplateIndex: idx,
			Class:         class,
			Teacher:       teacher,
			Subject:       "Maths",
			ClassIndex:    idx,
			TeacherIndex:  idx,
			Duration:      slot0.Duration(),
			SlotDomain:    []int{0},
			RoomDomain:    []int{roomIdx.IndexOf("Room 101")},
			TeacherDomain: []int{idx},
		}
	}

	sessionsList := []domain.Session{
		mkSession(0, "9A", "Ms Lin"),
		mkSession(1, "9B", "Mr Roth"),
	}

	m := model.Build(normalizer.ModeStructured, sessionsList, grid.WeekSlots(0), grid.Days, domain.DefaultConstraints())
	res, err := m.Engine.Check(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Satisfiable)
}

func TestBasicModeOnlyPostsExclusivity(t *testing.T) {
	grid := sessions.ExpandBasic(testTerm(), []normalizer.RawBasicTimeSlot{
		{Weekday: domain.Monday, Start: 8 * 60, End: 8*60 + 45},
		{Weekday: domain.Monday, Start: 9 * 60, End: 9*60 + 45},
	})
	roomIdx := sessions.NewIndex(nil)
	classIdx := sessions.NewIndex(nil)
	teacherIdx := sessions.NewIndex(nil)

	built, berr := sessions.BuildBasic(
		[]string{"9A"}, []string{"Ms Lin"}, []string{"Room 1"},
		[]string{"Maths", "English"}, grid, roomIdx, classIdx, teacherIdx,
	)
	require.Nil(t, berr)

	m := model.Build(normalizer.ModeBasic, built, grid.Slots, nil, domain.DefaultConstraints())
	res, err := m.Engine.Check(context.Background())
	require.NoError(t, err)
	require.True(t, res.Satisfiable)
	assert.NotEqual(t, res.Value(m.SlotVar[0]), res.Value(m.SlotVar[1]))
}

func TestBasicModeTeacherIsAFreeDecisionVariable(t *testing.T) {
	// Two different classes, one subject each, a shared single teacher and a
	// single time slot: the only teacher must be assigned to both sessions,
	// and the only slot forces them onto the same value too. Two rooms are
	// available, so room exclusivity alone does not reject it; teacher
	// exclusivity must — proving the solver is actually choosing (and
	// constraining) the teacher, not reading a pre-decided one.
	grid := sessions.ExpandBasic(testTerm(), []normalizer.RawBasicTimeSlot{
		{Weekday: domain.Monday, Start: 8 * 60, End: 8*60 + 45},
	})
	roomIdx := sessions.NewIndex(nil)
	classIdx := sessions.NewIndex(nil)
	teacherIdx := sessions.NewIndex(nil)

	built, berr := sessions.BuildBasic(
		[]string{"9A", "9B"}, []string{"Ms Lin"}, []string{"Room 1", "Room 2"},
		[]string{"Maths"}, grid, roomIdx, classIdx, teacherIdx,
	)
	require.Nil(t, berr)

	m := model.Build(normalizer.ModeBasic, built, grid.Slots, nil, domain.DefaultConstraints())
	res, err := m.Engine.Check(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Satisfiable)
}

func TestBasicModeMultipleTeachersAllowsDistinctAssignments(t *testing.T) {
	// Same shape as above, but with two candidate teachers: the engine can
	// now pick different teachers for the two classes, so the single shared
	// slot is no longer a conflict.
	grid := sessions.ExpandBasic(testTerm(), []normalizer.RawBasicTimeSlot{
		{Weekday: domain.Monday, Start: 8 * 60, End: 8*60 + 45},
	})
	roomIdx := sessions.NewIndex(nil)
	classIdx := sessions.NewIndex(nil)
	teacherIdx := sessions.NewIndex(nil)

	built, berr := sessions.BuildBasic(
		[]string{"9A", "9B"}, []string{"Ms Lin", "Mr Roth"}, []string{"Room 1", "Room 2"},
		[]string{"Maths"}, grid, roomIdx, classIdx, teacherIdx,
	)
	require.Nil(t, berr)

	m := model.Build(normalizer.ModeBasic, built, grid.Slots, nil, domain.DefaultConstraints())
	res, err := m.Engine.Check(context.Background())
	require.NoError(t, err)
	require.True(t, res.Satisfiable)
	assert.NotEqual(t, res.Value(m.TeacherVar[0]), res.Value(m.TeacherVar[1]))
}
