// Package input holds the raw, not-yet-validated shapes the JSON boundary
// decodes the request body into. Field names carry every alias spec.md §6
// recognises; core/normalizer is the only package allowed to read these.
package input

import "encoding/json"

// RawTerm is term.* before normalisation.
type RawTerm struct {
	Name       string        `json:"name"`
	Label      string        `json:"label"`
	StartDate  string        `json:"startDate"`
	Weeks      *int          `json:"weeks"`
	Days       []string      `json:"days"`
	DailySlots []RawTimeSpan `json:"dailySlots"`
}

// RawTimeSpan is a "HH:MM" start/end pair.
type RawTimeSpan struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// RawLessonTemplate is one lessonTemplates[] entry before normalisation,
// with every recognised alias key present so the normaliser can pick
// whichever was actually supplied.
type RawLessonTemplate struct {
	Class     string `json:"class"`
	ClassName string `json:"className"`

	Teacher     string `json:"teacher"`
	TeacherName string `json:"teacherName"`

	Subject     string `json:"subject"`
	SubjectName string `json:"subjectName"`

	SessionsPerWeek  *int `json:"sessionsPerWeek"`
	LessonsPerWeek   *int `json:"lessonsPerWeek"`
	WeeklyLessons    *int `json:"weeklyLessons"`
	FrequencyPerWeek *int `json:"frequencyPerWeek"`

	DurationMinutes *int `json:"durationMinutes"`
	Duration        *int `json:"duration"`
	LengthMinutes   *int `json:"lengthMinutes"`

	PreferredRoom string `json:"preferredRoom"`
	Room          string `json:"room"`
	Classroom     string `json:"classroom"`

	AllowedRooms []string `json:"allowedRooms"`
	Rooms        []string `json:"rooms"`
}

// RawNamedEntity accepts either a bare string or an {"name": "..."} object
// in classes/teachers/classrooms/subjects arrays.
type RawNamedEntity struct {
	Name string
}

func (e *RawNamedEntity) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		e.Name = s
		return nil
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	e.Name = obj.Name
	return nil
}

// RawTimeSlot is one basic-mode timeSlots[] entry. It accepts either the
// object form {day,start,end} or the tuple form [start,end,day?].
type RawTimeSlot struct {
	Day   string
	Start string
	End   string
}

func (t *RawTimeSlot) UnmarshalJSON(data []byte) error {
	var obj struct {
		Day   string `json:"day"`
		Start string `json:"start"`
		End   string `json:"end"`
	}
	if err := json.Unmarshal(data, &obj); err == nil && (obj.Start != "" || obj.Day != "") {
		t.Day, t.Start, t.End = obj.Day, obj.Start, obj.End
		return nil
	}
	var tuple []string
	if err := json.Unmarshal(data, &tuple); err != nil {
		return err
	}
	if len(tuple) < 2 {
		return errTimeSlotTuple
	}
	t.Start, t.End = tuple[0], tuple[1]
	if len(tuple) >= 3 {
		t.Day = tuple[2]
	}
	return nil
}

var errTimeSlotTuple = &simpleErr{"time slot tuple needs at least [start, end]"}

type simpleErr struct{ msg string }

func (e *simpleErr) Error() string { return e.msg }

// RawConstraints is constraints.* before normalisation/defaulting.
type RawConstraints struct {
	MaxClassSessionsPerDay         *int           `json:"maxClassSessionsPerDay"`
	MaxTeacherSessionsPerDay       *int           `json:"maxTeacherSessionsPerDay"`
	MaxClassIdleMinutes            *int           `json:"maxClassIdleMinutes"`
	MaxTeacherIdleMinutes          *int           `json:"maxTeacherIdleMinutes"`
	DisableSubjectSpread           *bool          `json:"disableSubjectSpread"`
	DisableTransitionBuffers       *bool          `json:"disableTransitionBuffers"`
	PhysicalEducationBufferMinutes *int           `json:"physicalEducationBufferMinutes"`
	PhysicalEducationSubjects      []string       `json:"physicalEducationSubjects"`
	ClassEarliestStartMinutes      *int           `json:"classEarliestStartMinutes"`
	ClassLatestStartMinutes        *int           `json:"classLatestStartMinutes"`
	LunchBreak                     *RawLunchBreak `json:"lunchBreak"`
}

// RawLunchBreak is constraints.lunchBreak before normalisation/defaulting.
type RawLunchBreak struct {
	Enabled     *bool  `json:"enabled"`
	WindowStart string `json:"windowStart"`
	WindowEnd   string `json:"windowEnd"`
	Duration    *int   `json:"duration"`
	Granularity *int   `json:"granularity"`
}

// Request is the whole decoded stdin JSON object.
type Request struct {
	Term            *RawTerm            `json:"term"`
	LessonTemplates []RawLessonTemplate `json:"lessonTemplates"`
	Classes         []RawNamedEntity    `json:"classes"`
	Teachers        []RawNamedEntity    `json:"teachers"`
	Classrooms      []RawNamedEntity    `json:"classrooms"`
	Subjects        []RawNamedEntity    `json:"subjects"`
	TimeSlots       []RawTimeSlot       `json:"timeSlots"`
	Constraints     *RawConstraints     `json:"constraints"`
	Debug           bool                `json:"debug"`
	DebugMode       bool                `json:"debugMode"`
}
