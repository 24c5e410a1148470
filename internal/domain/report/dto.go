package report

import (
	"github.com/cmlabs-hris/timecard-backend-go/internal/pkg/validator"
)

// ========================================
// MONTHLY HOURS REPORT
// ========================================

// MonthlyReportRequest selects one calendar month; Month is 1-12.
type MonthlyReportRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

func (r *MonthlyReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}
	if !validator.IsValidMonth(r.Year, 1) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 1970 and 9999",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type Period struct {
	Year        int    `json:"year"`
	Month       int    `json:"month"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
}

// MonthlyReport is the admin view: one summary per user.
type MonthlyReport struct {
	Period
	GeneratedAt string               `json:"generated_at"`
	Users       []UserMonthlySummary `json:"users"`
}

// UserMonthlyReport is a single user's view of their own month.
type UserMonthlyReport struct {
	Period
	GeneratedAt string             `json:"generated_at"`
	Summary     UserMonthlySummary `json:"summary"`
}

type UserMonthlySummary struct {
	UserID       string       `json:"user_id"`
	UserName     string       `json:"user_name"`
	Email        string       `json:"email"`
	TotalHours   float64      `json:"total_hours"`
	DaysWithWork int          `json:"days_with_work"`
	Days         []DailyHours `json:"days"`
}

type DailyHours struct {
	Date       string  `json:"date"`
	Weekday    string  `json:"weekday"`
	IsWeekend  bool    `json:"is_weekend"`
	Hours      float64 `json:"hours"`
	BreakHours float64 `json:"break_hours"`
	IsEdited   bool    `json:"is_edited"`
}
