package attendance

import (
	"context"
)

// AttendanceRepository defines data access methods for daily attendance records.
// Dates are calendar day keys in YYYY-MM-DD form.
type AttendanceRepository interface {
	// GetByUserAndDate returns the user's record for date, or nil when the day has none
	GetByUserAndDate(ctx context.Context, userID string, date string) (*Attendance, error)

	// Upsert inserts the record or replaces the existing one for (user, date)
	Upsert(ctx context.Context, attendance Attendance) (Attendance, error)

	// ListRecent returns the user's records ordered by date descending
	ListRecent(ctx context.Context, userID string, limit int) ([]Attendance, error)

	// ListByUserAndRange returns the user's records with from <= date <= to
	ListByUserAndRange(ctx context.Context, userID string, from string, to string) ([]Attendance, error)

	// ListByRange returns every user's records with from <= date <= to
	ListByRange(ctx context.Context, from string, to string) ([]Attendance, error)
}
