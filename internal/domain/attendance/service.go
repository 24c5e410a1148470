package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations.
// The acting user is taken from the request context.
type AttendanceService interface {
	// ClockIn opens today's working session
	ClockIn(ctx context.Context) (TransitionResponse, error)

	// ClockOut closes today's working session
	ClockOut(ctx context.Context) (TransitionResponse, error)

	// StartBreak starts a break within today's working session
	StartBreak(ctx context.Context) (TransitionResponse, error)

	// EndBreak ends today's break
	EndBreak(ctx context.Context) (TransitionResponse, error)

	// GetToday returns today's record together with the allowed actions
	GetToday(ctx context.Context) (TodayResponse, error)

	// GetRecent returns the latest records, newest date first
	GetRecent(ctx context.Context, filter RecentFilter) ([]AttendanceResponse, error)

	// UpdateAttendance manually overwrites the timestamps of one day
	UpdateAttendance(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)
}
