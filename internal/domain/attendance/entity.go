package attendance

import (
	"time"
)

type Status string

const (
	StatusWorking Status = "working"
	StatusBreak   Status = "break"
	StatusLeft    Status = "left"
)

// DateLayout is the calendar day key used for attendance and shift dates.
const DateLayout = "2006-01-02"

// Attendance is the single daily record a user owns for one calendar day.
type Attendance struct {
	ID             string
	UserID         string
	Date           string // YYYY-MM-DD, unique per user
	StartTime      *time.Time
	EndTime        *time.Time
	BreakStartTime *time.Time
	BreakEndTime   *time.Time
	Status         Status
	IsEdited       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// DateKey returns the local calendar day of t in t's location.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// WorkedMinutes returns end minus start in whole minutes, or false when the
// record lacks either timestamp. Break time is not subtracted.
func (a Attendance) WorkedMinutes() (int, bool) {
	if a.StartTime == nil || a.EndTime == nil {
		return 0, false
	}
	minutes := int(a.EndTime.Sub(*a.StartTime).Minutes())
	if minutes < 0 {
		minutes = 0
	}
	return minutes, true
}

// BreakMinutes returns the closed break interval in whole minutes.
func (a Attendance) BreakMinutes() int {
	if a.BreakStartTime == nil || a.BreakEndTime == nil {
		return 0
	}
	minutes := int(a.BreakEndTime.Sub(*a.BreakStartTime).Minutes())
	if minutes < 0 {
		return 0
	}
	return minutes
}
