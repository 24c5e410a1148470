package shift

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/timecard-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/timecard-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/timecard-backend-go/internal/pkg/calendar"
)

type shiftServiceImpl struct {
	shiftRepo shift.ShiftRepository
}

func NewShiftService(shiftRepo shift.ShiftRepository) shift.ShiftService {
	return &shiftServiceImpl{shiftRepo: shiftRepo}
}

func toShiftResponse(s shift.Shift) shift.ShiftResponse {
	return shift.ShiftResponse{
		ID:        s.ID,
		UserID:    s.UserID,
		UserName:  s.UserName,
		Date:      s.Date,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		CreatedAt: s.CreatedAt.Format(time.RFC3339),
		UpdatedAt: s.UpdatedAt.Format(time.RFC3339),
	}
}

func toShiftResponses(shifts []shift.Shift) []shift.ShiftResponse {
	responses := make([]shift.ShiftResponse, 0, len(shifts))
	for _, s := range shifts {
		responses = append(responses, toShiftResponse(s))
	}
	return responses
}

// GetShifts implements shift.ShiftService.
func (s *shiftServiceImpl) GetShifts(ctx context.Context, filter shift.MonthFilter) ([]shift.ShiftResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return nil, err
	}

	from, to := calendar.Month{Year: filter.Year, Month: filter.Month}.Range()
	shifts, err := s.shiftRepo.ListByUserAndRange(ctx, identity.UserID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	return toShiftResponses(shifts), nil
}

// GetAllShifts implements shift.ShiftService.
func (s *shiftServiceImpl) GetAllShifts(ctx context.Context, filter shift.MonthFilter) ([]shift.ShiftResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	if _, err := auth.IdentityFromContext(ctx); err != nil {
		return nil, err
	}

	from, to := calendar.Month{Year: filter.Year, Month: filter.Month}.Range()
	shifts, err := s.shiftRepo.ListByRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	return toShiftResponses(shifts), nil
}

// AddShift implements shift.ShiftService.
func (s *shiftServiceImpl) AddShift(ctx context.Context, req shift.UpsertShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	saved, err := s.shiftRepo.Upsert(ctx, shift.Shift{
		UserID:    identity.UserID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to save shift: %w", err)
	}
	return toShiftResponse(saved), nil
}

// DeleteShift implements shift.ShiftService.
func (s *shiftServiceImpl) DeleteShift(ctx context.Context, req shift.DeleteShiftRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return err
	}

	return s.shiftRepo.Delete(ctx, req.ID, identity.UserID)
}
