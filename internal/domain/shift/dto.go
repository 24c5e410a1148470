package shift

import (
	"github.com/cmlabs-hris/timecard-backend-go/internal/pkg/validator"
)

// ========================================
// SHIFT DTOs
// ========================================

type ShiftResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	UserName  string `json:"user_name,omitempty"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// UpsertShiftRequest creates the caller's shift for date or replaces it.
type UpsertShiftRequest struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func (r *UpsertShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}
	if !validator.IsValidClock(r.StartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be in HH:mm format",
		})
	}
	if !validator.IsValidClock(r.EndTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be in HH:mm format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DeleteShiftRequest struct {
	ID string `json:"id"`
}

func (r DeleteShiftRequest) Validate() error {
	if !validator.IsValidUUID(r.ID) {
		return validator.ValidationErrors{{
			Field:   "id",
			Message: "id must be a valid UUID",
		}}
	}
	return nil
}

// MonthFilter selects one calendar month; Month is 1-12.
type MonthFilter struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

func (f MonthFilter) Validate() error {
	if !validator.IsValidMonth(f.Year, f.Month) {
		return validator.ValidationErrors{{
			Field:   "month",
			Message: "year and month must identify a valid calendar month",
		}}
	}
	return nil
}
