package shift

import (
	"context"
)

// ShiftService defines business logic for shift planning.
// The acting user is taken from the request context.
type ShiftService interface {
	// GetShifts returns the caller's shifts within one month
	GetShifts(ctx context.Context, filter MonthFilter) ([]ShiftResponse, error)

	// GetAllShifts returns every user's shifts within one month
	GetAllShifts(ctx context.Context, filter MonthFilter) ([]ShiftResponse, error)

	// AddShift creates or replaces the caller's shift for a day
	AddShift(ctx context.Context, req UpsertShiftRequest) (ShiftResponse, error)

	// DeleteShift removes one of the caller's shifts
	DeleteShift(ctx context.Context, req DeleteShiftRequest) error
}
