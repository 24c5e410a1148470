package shift

import (
	"context"
)

// ShiftRepository defines data access methods for planned shifts.
type ShiftRepository interface {
	// Upsert inserts the shift or replaces the one already stored for (user, date)
	Upsert(ctx context.Context, shift Shift) (Shift, error)

	// Delete removes the shift with id owned by userID. Returns ErrShiftNotFound when nothing matched
	Delete(ctx context.Context, id string, userID string) error

	// ListByUserAndRange returns the user's shifts with from <= date <= to, ordered by date
	ListByUserAndRange(ctx context.Context, userID string, from string, to string) ([]Shift, error)

	// ListByRange returns every user's shifts with from <= date <= to, ordered by date, with the owner's name
	ListByRange(ctx context.Context, from string, to string) ([]Shift, error)
}
