package attendance

import (
	"time"
)

type Action string

const (
	ActionClockIn    Action = "clock_in"
	ActionStartBreak Action = "break_start"
	ActionEndBreak   Action = "break_end"
	ActionClockOut   Action = "clock_out"
)

// CurrentStatus returns the status of today's record. A missing record, or
// one whose end time is set, counts as left.
func CurrentStatus(today *Attendance) Status {
	if today == nil || today.EndTime != nil {
		return StatusLeft
	}
	return today.Status
}

// Transition applies action to today's record (nil when the day has none)
// and returns the record to persist. The input is never mutated. An action
// whose precondition does not hold returns ErrInvalidTransition.
func Transition(today *Attendance, action Action, now time.Time) (Attendance, error) {
	status := CurrentStatus(today)

	switch action {
	case ActionClockIn:
		if status != StatusLeft {
			return Attendance{}, ErrInvalidTransition
		}
		next := Attendance{Date: DateKey(now)}
		if today != nil {
			// Reopen: the day keeps its row, the session starts over.
			next = *today
			next.EndTime = nil
			next.BreakStartTime = nil
			next.BreakEndTime = nil
		}
		next.StartTime = &now
		next.Status = StatusWorking
		return next, nil

	case ActionStartBreak:
		if status != StatusWorking {
			return Attendance{}, ErrInvalidTransition
		}
		next := *today
		next.BreakStartTime = &now
		next.BreakEndTime = nil
		next.Status = StatusBreak
		return next, nil

	case ActionEndBreak:
		if status != StatusBreak {
			return Attendance{}, ErrInvalidTransition
		}
		next := *today
		next.BreakEndTime = &now
		next.Status = StatusWorking
		return next, nil

	case ActionClockOut:
		if status != StatusWorking {
			return Attendance{}, ErrInvalidTransition
		}
		next := *today
		next.EndTime = &now
		next.Status = StatusLeft
		return next, nil
	}

	return Attendance{}, ErrUnknownAction
}

// Can reports whether action is currently allowed for today's record.
func Can(today *Attendance, action Action) bool {
	_, err := Transition(today, action, time.Time{})
	return err == nil
}

// EditedTimes holds the four timestamps of a manual edit; nil clears a field.
type EditedTimes struct {
	StartTime      *time.Time
	EndTime        *time.Time
	BreakStartTime *time.Time
	BreakEndTime   *time.Time
}

// Overwrite replaces all four timestamps of the record for date, outside the
// transition table. existing may be nil, in which case a new record is
// returned. Status is left when an end time is present, working otherwise.
func Overwrite(existing *Attendance, date string, times EditedTimes) Attendance {
	next := Attendance{Date: date}
	if existing != nil {
		next = *existing
	}

	next.StartTime = times.StartTime
	next.EndTime = times.EndTime
	next.BreakStartTime = times.BreakStartTime
	next.BreakEndTime = times.BreakEndTime
	next.IsEdited = true

	if next.EndTime != nil {
		next.Status = StatusLeft
	} else {
		next.Status = StatusWorking
	}
	return next
}
