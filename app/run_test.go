package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smeggmann99/arrango-scheduler/app"
	"github.com/smeggmann99/arrango-scheduler/common/models/output"
	"github.com/smeggmann99/arrango-scheduler/pkg/config"
	"github.com/smeggmann99/arrango-scheduler/pkg/logger"
)

func testOptions() app.Options {
	return app.Options{
		Config: &config.Config{SolveTimeout: 5 * time.Second},
		Logger: logger.With(),
	}
}

func runRequest(t *testing.T, body string) output.Result {
	t.Helper()
	var out bytes.Buffer
	code := app.Run(context.Background(), bytes.NewBufferString(body), &out, testOptions())
	var result output.Result
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	if result.Success {
		assert.Equal(t, app.ExitOK, code)
	} else {
		assert.Equal(t, app.ExitFailure, code)
	}
	return result
}

// Scenario 1: one template, two sessions/week, two distinct weekdays.
func TestScenarioOneStructuredTwoSessions(t *testing.T) {
	result := runRequest(t, `{
		"term": {"startDate":"2024-01-01","weeks":1,"days":["Mon","Tue","Wed","Thu","Fri"],
			"dailySlots":[{"start":"08:30","end":"09:30"},{"start":"09:45","end":"10:45"}]},
		"lessonTemplates": [{"class":"5A","teacher":"Alice","subject":"Math","sessionsPerWeek":2,"durationMinutes":60}]
	}`)
	require.True(t, result.Success)
	require.Len(t, result.Assignments, 2)
	days := map[string]bool{}
	for _, a := range result.Assignments {
		assert.Equal(t, "Math", a.Subject)
		assert.Equal(t, "5A", a.Class)
		assert.Equal(t, "Alice", a.Teacher)
		days[a.TimeSlot.DayName] = true
	}
	assert.Len(t, days, 2)
}

// Scenario 3: subject-spread plus too little capacity forces Infeasible.
func TestScenarioThreeInfeasibleSubjectSpread(t *testing.T) {
	result := runRequest(t, `{
		"term": {"startDate":"2024-01-01","weeks":1,"days":["Mon","Tue"],
			"dailySlots":[{"start":"08:30","end":"09:30"},{"start":"09:45","end":"10:45"}]},
		"lessonTemplates": [{"class":"5A","teacher":"Alice","subject":"Math","sessionsPerWeek":3,"durationMinutes":60}]
	}`)
	assert.False(t, result.Success)
	assert.Equal(t, "Infeasible", result.ErrorType)
}

// Scenario 6: basic mode, one assignment per distinct slot.
func TestScenarioSixBasicMode(t *testing.T) {
	result := runRequest(t, `{
		"classes": ["5A"], "teachers": ["Alice"], "classrooms": ["Room 1"],
		"subjects": ["Math", "English", "Art"],
		"timeSlots": [
			{"day":"Monday","start":"08:00","end":"08:45"},
			{"day":"Monday","start":"09:00","end":"09:45"},
			{"day":"Monday","start":"10:00","end":"10:45"}
		]
	}`)
	require.True(t, result.Success)
	require.Len(t, result.Assignments, 3)
	slots := map[string]bool{}
	for _, a := range result.Assignments {
		assert.Equal(t, "Monday", a.TimeSlot.DayName)
		slots[a.TimeSlot.Start] = true
	}
	assert.Len(t, slots, 3)
}

func TestInvalidInputRejectedBySchema(t *testing.T) {
	result := runRequest(t, `{"term": "not-an-object"}`)
	assert.False(t, result.Success)
	assert.Equal(t, "InvalidInput", result.ErrorType)
}

func TestRunIDIsAlwaysPopulated(t *testing.T) {
	result := runRequest(t, `{
		"classes": ["5A"], "subjects": ["Math"],
		"timeSlots": [{"day":"Monday","start":"08:00","end":"08:45"}]
	}`)
	require.NotNil(t, result.Meta)
	assert.NotEmpty(t, result.Meta.RunID)
}
