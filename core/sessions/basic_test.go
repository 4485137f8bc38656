package sessions_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smeggmann99/arrango-scheduler/common/models/domain"
	"github.com/smeggmann99/arrango-scheduler/core/normalizer"
	"github.com/smeggmann99/arrango-scheduler/core/sessions"
)

func TestBuildBasicProducesOnePerClassSubject(t *testing.T) {
	grid := sessions.ExpandBasic(term(1), []normalizer.RawBasicTimeSlot{
		{Weekday: domain.Monday, Start: 8 * 60, End: 8*60 + 45},
		{Weekday: domain.Monday, Start: 9 * 60, End: 9*60 + 45},
		{Weekday: domain.Monday, Start: 10 * 60, End: 10*60 + 45},
	})

	roomIdx := sessions.NewIndex(nil)
	classIdx := sessions.NewIndex(nil)
	teacherIdx := sessions.NewIndex(nil)

	out, err := sessions.BuildBasic(
		[]string{"9A"}, []string{"Ms Lin"}, []string{"Room 1"},
		[]string{"Maths", "English", "Art"},
		grid, roomIdx, classIdx, teacherIdx,
	)
	require.Nil(t, err)
	require.Len(t, out, 3)
	for _, s := range out {
		assert.Len(t, s.SlotDomain, 3)
		assert.Equal(t, "9A", s.Class)
	}
}

func TestBuildBasicGivesEveryTeacherAFullDomain(t *testing.T) {
	grid := sessions.ExpandBasic(term(1), []normalizer.RawBasicTimeSlot{
		{Weekday: domain.Monday, Start: 8 * 60, End: 8*60 + 45},
		{Weekday: domain.Monday, Start: 9 * 60, End: 9*60 + 45},
	})

	roomIdx := sessions.NewIndex(nil)
	classIdx := sessions.NewIndex(nil)
	teacherIdx := sessions.NewIndex(nil)

	out, err := sessions.BuildBasic(
		[]string{"9A"}, []string{"Ms Lin", "Mr Roth"}, []string{"Room 1"},
		[]string{"Maths", "English"},
		grid, roomIdx, classIdx, teacherIdx,
	)
	require.Nil(t, err)
	require.Len(t, out, 2)
	for _, s := range out {
		assert.Equal(t, []int{teacherIdx.IndexOf("Ms Lin"), teacherIdx.IndexOf("Mr Roth")}, s.TeacherDomain)
	}
}

func TestBuildBasicRejectsEmptySubjects(t *testing.T) {
	grid := sessions.ExpandBasic(term(1), []normalizer.RawBasicTimeSlot{
		{Weekday: domain.Monday, Start: 8 * 60, End: 8*60 + 45},
	})
	roomIdx := sessions.NewIndex(nil)
	classIdx := sessions.NewIndex(nil)
	teacherIdx := sessions.NewIndex(nil)

	_, err := sessions.BuildBasic(nil, nil, nil, nil, grid, roomIdx, classIdx, teacherIdx)
	require.NotNil(t, err)
	assert.Equal(t, "InvalidInput", string(err.Kind))
}

func TestBuildBasicRejectsEmptySlots(t *testing.T) {
	grid := sessions.ExpandBasic(term(1), nil)
	roomIdx := sessions.NewIndex(nil)
	classIdx := sessions.NewIndex(nil)
	teacherIdx := sessions.NewIndex(nil)

	_, err := sessions.BuildBasic([]string{"9A"}, nil, nil, []string{"Maths"}, grid, roomIdx, classIdx, teacherIdx)
	require.NotNil(t, err)
	assert.Equal(t, "InfeasibleInput", string(err.Kind))
}
