package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/timecard-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timecard-backend-go/internal/domain/auth"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	now func() time.Time
}

// NewAttendanceService returns the attendance service. now supplies the
// current instant; its location decides which calendar day is "today".
func NewAttendanceService(attendanceRepository attendance.AttendanceRepository, now func() time.Time) attendance.AttendanceService {
	if now == nil {
		now = time.Now
	}
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepository,
		now:                  now,
	}
}

// timePtrToString safely converts a *time.Time to an RFC 3339 string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format(time.RFC3339)
	return &format
}

func toAttendanceResponse(rec attendance.Attendance) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:             rec.ID,
		UserID:         rec.UserID,
		Date:           rec.Date,
		StartTime:      timePtrToString(rec.StartTime),
		EndTime:        timePtrToString(rec.EndTime),
		BreakStartTime: timePtrToString(rec.BreakStartTime),
		BreakEndTime:   timePtrToString(rec.BreakEndTime),
		Status:         string(attendance.CurrentStatus(&rec)),
		IsEdited:       rec.IsEdited,
		CreatedAt:      rec.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      rec.UpdatedAt.Format(time.RFC3339),
	}
}

func toAttendanceResponsePtr(rec *attendance.Attendance) *attendance.AttendanceResponse {
	if rec == nil {
		return nil
	}
	resp := toAttendanceResponse(*rec)
	return &resp
}

// ClockIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockIn(ctx context.Context) (attendance.TransitionResponse, error) {
	return a.apply(ctx, attendance.ActionClockIn)
}

// ClockOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockOut(ctx context.Context) (attendance.TransitionResponse, error) {
	return a.apply(ctx, attendance.ActionClockOut)
}

// StartBreak implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) StartBreak(ctx context.Context) (attendance.TransitionResponse, error) {
	return a.apply(ctx, attendance.ActionStartBreak)
}

// EndBreak implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) EndBreak(ctx context.Context) (attendance.TransitionResponse, error) {
	return a.apply(ctx, attendance.ActionEndBreak)
}

// apply runs one clock action against today's record. A rejected action and
// a storage failure both come back as a successful response with Applied
// false; storage failures are logged.
func (a *AttendanceServiceImpl) apply(ctx context.Context, action attendance.Action) (attendance.TransitionResponse, error) {
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return attendance.TransitionResponse{}, err
	}

	now := a.now()
	date := attendance.DateKey(now)
	resp := attendance.TransitionResponse{Action: string(action)}

	today, err := a.GetByUserAndDate(ctx, identity.UserID, date)
	if err != nil {
		slog.Error("Failed to load today's attendance", "error", err, "user_id", identity.UserID, "action", action)
		resp.Status = string(attendance.StatusLeft)
		return resp, nil
	}

	resp.Status = string(attendance.CurrentStatus(today))
	resp.Attendance = toAttendanceResponsePtr(today)

	next, err := attendance.Transition(today, action, now)
	if err != nil {
		if errors.Is(err, attendance.ErrInvalidTransition) {
			return resp, nil
		}
		return attendance.TransitionResponse{}, err
	}
	next.UserID = identity.UserID

	saved, err := a.Upsert(ctx, next)
	if err != nil {
		slog.Error("Failed to save attendance", "error", err, "user_id", identity.UserID, "action", action)
		return resp, nil
	}

	resp.Applied = true
	resp.Status = string(attendance.CurrentStatus(&saved))
	resp.Attendance = toAttendanceResponsePtr(&saved)
	return resp, nil
}

// GetToday implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetToday(ctx context.Context) (attendance.TodayResponse, error) {
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return attendance.TodayResponse{}, err
	}

	date := attendance.DateKey(a.now())
	today, err := a.GetByUserAndDate(ctx, identity.UserID, date)
	if err != nil {
		return attendance.TodayResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}

	return attendance.TodayResponse{
		Date:          date,
		Status:        string(attendance.CurrentStatus(today)),
		Attendance:    toAttendanceResponsePtr(today),
		CanClockIn:    attendance.Can(today, attendance.ActionClockIn),
		CanClockOut:   attendance.Can(today, attendance.ActionClockOut),
		CanStartBreak: attendance.Can(today, attendance.ActionStartBreak),
		CanEndBreak:   attendance.Can(today, attendance.ActionEndBreak),
	}, nil
}

// GetRecent implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetRecent(ctx context.Context, filter attendance.RecentFilter) ([]attendance.AttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return nil, err
	}

	records, err := a.ListRecent(ctx, identity.UserID, filter.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent attendance: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, toAttendanceResponse(rec))
	}
	return responses, nil
}

// UpdateAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) UpdateAttendance(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	times, err := req.Times(a.now().Location())
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	existing, err := a.GetByUserAndDate(ctx, identity.UserID, req.Date)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	next := attendance.Overwrite(existing, req.Date, times)
	next.UserID = identity.UserID

	saved, err := a.Upsert(ctx, next)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to save attendance: %w", err)
	}

	slog.Info("Attendance edited", "user_id", identity.UserID, "date", req.Date)
	return toAttendanceResponse(saved), nil
}
