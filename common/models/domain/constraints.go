package domain

import "strings"

// LunchConfig is the normalised, defaulted lunchBreak constraint option.
type LunchConfig struct {
	Enabled     bool
	WindowStart int // minute-of-day
	WindowEnd   int
	Duration    int
	Granularity int
}

// Constraints is the fully normalised, defaulted constraint configuration
// of spec.md §4.1.
type Constraints struct {
	MaxClassSessionsPerDay         int
	MaxTeacherSessionsPerDay       int
	MaxClassIdleMinutes            int
	MaxTeacherIdleMinutes          int
	DisableSubjectSpread           bool
	DisableTransitionBuffers       bool
	PhysicalEducationBufferMinutes int
	PhysicalEducationSubjects      map[string]bool // lower-cased keyword set
	ClassEarliestStartMinutes      *int             // nil = not active
	ClassLatestStartMinutes        *int             // nil = not active
	LunchBreak                     LunchConfig
}

// DefaultPhysicalEducationSubjects is the case-insensitive PE keyword set
// of spec.md §4.1.
func DefaultPhysicalEducationSubjects() map[string]bool {
	return map[string]bool{
		"idrott":               true,
		"idrott och hälsa":     true,
		"physical education":  true,
		"pe":                   true,
		"gymnastik":            true,
	}
}

// DefaultConstraints returns the table of defaults from spec.md §4.1. Whether
// the class start window defaults get activated depends on whether explicit
// daily slots were supplied (see core/normalizer), so they start nil here.
func DefaultConstraints() Constraints {
	return Constraints{
		MaxClassSessionsPerDay:         5,
		MaxTeacherSessionsPerDay:       3,
		MaxClassIdleMinutes:            120,
		MaxTeacherIdleMinutes:          180,
		DisableSubjectSpread:           false,
		DisableTransitionBuffers:       false,
		PhysicalEducationBufferMinutes: 15,
		PhysicalEducationSubjects:      DefaultPhysicalEducationSubjects(),
		ClassEarliestStartMinutes:      nil,
		ClassLatestStartMinutes:        nil,
		LunchBreak: LunchConfig{
			Enabled:     true,
			WindowStart: 10*60 + 30,
			WindowEnd:   12*60 + 30,
			Duration:    30,
			Granularity: 5,
		},
	}
}

// IsPhysicalEducation reports whether subject is a configured PE keyword,
// matched case-insensitively and exactly (not a substring match).
func (c Constraints) IsPhysicalEducation(subject string) bool {
	return c.PhysicalEducationSubjects[strings.ToLower(subject)]
}
