package attendance

import (
	"time"

	"github.com/cmlabs-hris/timecard-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type AttendanceResponse struct {
	ID             string  `json:"id"`
	UserID         string  `json:"user_id"`
	Date           string  `json:"date"`
	StartTime      *string `json:"start_time"`
	EndTime        *string `json:"end_time"`
	BreakStartTime *string `json:"break_start_time"`
	BreakEndTime   *string `json:"break_end_time"`
	Status         string  `json:"status"`
	IsEdited       bool    `json:"is_edited"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

// TransitionResponse is returned by the clock actions. Applied is false when
// the action was ignored, either because its precondition did not hold or
// because the record could not be stored.
type TransitionResponse struct {
	Action     string              `json:"action"`
	Applied    bool                `json:"applied"`
	Status     string              `json:"status"`
	Attendance *AttendanceResponse `json:"attendance,omitempty"`
}

// ========================================
// TODAY STATUS DTOs
// ========================================

type TodayResponse struct {
	Date          string              `json:"date"`
	Status        string              `json:"status"`
	Attendance    *AttendanceResponse `json:"attendance"`
	CanClockIn    bool                `json:"can_clock_in"`
	CanClockOut   bool                `json:"can_clock_out"`
	CanStartBreak bool                `json:"can_start_break"`
	CanEndBreak   bool                `json:"can_end_break"`
}

type RecentFilter struct {
	Limit int `json:"limit"`
}

const DefaultRecentLimit = 3

func (f *RecentFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = DefaultRecentLimit
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateAttendanceRequest overwrites the four timestamps of one day.
// Times are local wall-clock "HH:mm"; a null or empty value clears the field.
// At least one of start_time and end_time must be set.
type UpdateAttendanceRequest struct {
	Date           string  `json:"-"`
	StartTime      *string `json:"start_time"`
	EndTime        *string `json:"end_time"`
	BreakStartTime *string `json:"break_start_time"`
	BreakEndTime   *string `json:"break_end_time"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	r.StartTime = emptyToNil(r.StartTime)
	r.EndTime = emptyToNil(r.EndTime)
	r.BreakStartTime = emptyToNil(r.BreakStartTime)
	r.BreakEndTime = emptyToNil(r.BreakEndTime)

	// without an end time the day is working, which needs a start
	if r.StartTime == nil && r.EndTime == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time is required when end_time is empty",
		})
	}

	fields := []struct {
		name  string
		value *string
	}{
		{"start_time", r.StartTime},
		{"end_time", r.EndTime},
		{"break_start_time", r.BreakStartTime},
		{"break_end_time", r.BreakEndTime},
	}
	for _, f := range fields {
		if f.value != nil && !validator.IsValidClock(*f.value) {
			errs = append(errs, validator.ValidationError{
				Field:   f.name,
				Message: f.name + " must be in HH:mm format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Times resolves the wall-clock fields against the request date in loc.
// Validate must have succeeded first.
func (r *UpdateAttendanceRequest) Times(loc *time.Location) (EditedTimes, error) {
	resolve := func(clock *string) (*time.Time, error) {
		if clock == nil {
			return nil, nil
		}
		t, err := time.ParseInLocation(DateLayout+" 15:04", r.Date+" "+*clock, loc)
		if err != nil {
			return nil, err
		}
		return &t, nil
	}

	var (
		times EditedTimes
		err   error
	)
	if times.StartTime, err = resolve(r.StartTime); err != nil {
		return EditedTimes{}, err
	}
	if times.EndTime, err = resolve(r.EndTime); err != nil {
		return EditedTimes{}, err
	}
	if times.BreakStartTime, err = resolve(r.BreakStartTime); err != nil {
		return EditedTimes{}, err
	}
	if times.BreakEndTime, err = resolve(r.BreakEndTime); err != nil {
		return EditedTimes{}, err
	}
	return times, nil
}

func emptyToNil(s *string) *string {
	if s == nil || validator.IsEmpty(*s) {
		return nil
	}
	return s
}
