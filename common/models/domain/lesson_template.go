package domain

// LessonTemplate specifies a recurring teaching obligation: one subject
// taught to one class by one teacher, sessionsPerWeek times a week, for
// duration minutes each time.
type LessonTemplate struct {
	Class          string
	Teacher        string
	Subject        string
	SessionsPerWeek int
	Duration       int // minutes
	PreferredRoom  string   // optional, "" if unset
	AllowedRooms   []string // preferred room prepended when set; empty means "any room"
}
