package domain

// Session is one concrete obligation to teach one subject, to one class,
// by one teacher, for one duration, in one specific week. It is built once
// per (template, occurrence, week) by the Session Builder and is immutable
// from that point on; the Constraint Model only ever reads it.
type Session struct {
	TemplateIndex  int
	Occurrence     int // 0-based, < template.SessionsPerWeek
	Week           int // 0-based
	Class          string
	Teacher        string
	Subject        string
	ClassIndex     int
	TeacherIndex   int
	Duration       int

	// SlotDomain holds indices into the week's slot grid that this session
	// may legally be assigned to: duration-compatible, and (if the
	// class-earliest-start constraint is active) not starting before it.
	// The class-latest-start constraint does not prune this domain — it is
	// a per-day window enforced separately (core/model/window.go), since a
	// class may have other sessions on the same day that satisfy it.
	SlotDomain []int

	// RoomDomain holds indices into the global room list this session may
	// legally use. A template with no allowed rooms ("any room") gets the
	// full room list at session-build time, and the Session Builder fails
	// with InfeasibleInput rather than build a Session with an empty domain.
	RoomDomain []int

	// TeacherDomain holds indices into the global teacher list this session
	// may legally be taught by. Structured mode fixes it to a single index
	// (the lesson template's named teacher); basic mode leaves it open over
	// every candidate teacher, matching RoomDomain's treatment of rooms as a
	// genuine decision rather than a pre-decided grouping key.
	TeacherDomain []int

	RequiresBuffer bool // true iff Subject is a configured PE keyword
	BufferMinutes  int

	// ColourIndex groups sessions built from the same lesson template (in
	// basic mode, the same (class, subject) pair): every occurrence and week
	// of one template shares it. The Constraint Model and engine do not read
	// it; canonical-week replication works by slot signature instead.
	ColourIndex int
}

// LunchBreak is materialised only for a (class, week, day) that ended up
// with at least one scheduled session.
type LunchBreak struct {
	Class string
	Week  int
	Day   Weekday
	Start int // minute-of-day
	End   int
}
