package extractor_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smeggmann99/arrango-scheduler/common/models/domain"
	"github.com/smeggmann99/arrango-scheduler/core/extractor"
	"github.com/smeggmann99/arrango-scheduler/core/model"
	"github.com/smeggmann99/arrango-scheduler/core/normalizer"
	"github.com/smeggmann99/arrango-scheduler/core/sessions"
	"github.com/smeggmann99/arrango-scheduler/core/slots"
)

func testTerm(weeks int) domain.Term {
	return domain.Term{
		StartDate:  time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC),
		Weeks:      weeks,
		Days:       domain.DefaultDays(),
		DailySlots: domain.DefaultDailySlots(),
	}
}

func TestExtractStructuredReplicatesAcrossWeeks(t *testing.T) {
	grid := slots.Expand(testTerm(2))
	templates := []domain.LessonTemplate{
		{Class: "9A", Teacher: "Ms Lin", Subject: "Maths", SessionsPerWeek: 1, Duration: 45},
	}
	roomIdx := sessions.NewIndex([]string{"Room 101"})
	classIdx := sessions.NewIndex(nil)
	teacherIdx := sessions.NewIndex(nil)
	constraints := domain.DefaultConstraints()
	constraints.LunchBreak.Enabled = false

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
	require.True(t, res.Satisfiable)

	assignments, byDay := extractor.ExtractStructured(m, res, grid, roomIdx, constraints)
	require.Len(t, assignments, 2) // one per week
	assert.Equal(t, 1, assignments[0].TermWeek)
	assert.Equal(t, 2, assignments[1].TermWeek)
	assert.Equal(t, assignments[0].TimeSlot.Start, assignments[1].TimeSlot.Start)
	assert.NotEqual(t, assignments[0].TimeSlot.Date, assignments[1].TimeSlot.Date)
	assert.NotEmpty(t, byDay)
}

func TestExtractBasicRendersOneAssignmentPerSession(t *testing.T) {
	term := testTerm(1)
	basicGrid := sessions.ExpandBasic(term, []normalizer.RawBasicTimeSlot{
		{Weekday: domain.Monday, Start: 8 * 60, End: 8*60 + 45},
		{Weekday: domain.Monday, Start: 9 * 60, End: 9*60 + 45},
	})
	roomIdx := sessions.NewIndex(nil)
	classIdx := sessions.NewIndex(nil)
	teacherIdx := sessions.NewIndex(nil)

	built, berr := sessions.BuildBasic(
		[]string{"9A"}, []string{"Ms Lin"}, []string{"Room 1"},
		[]string{"Maths", "English"}, basicGrid, roomIdx, classIdx, teacherIdx,
	)
	require.Nil(t, berr)

	m := model.Build(normalizer.ModeBasic, built, basicGrid.Slots, nil, domain.DefaultConstraints())
	res, err := m.Engine.Check(context.Background())
	require.NoError(t, err)
	require.True(t, res.Satisfiable)

	assignments, byDay := extractor.ExtractBasic(m, res, basicGrid, roomIdx, teacherIdx)
	require.Len(t, assignments, 2)
	assert.NotEmpty(t, byDay)
}
