package report

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/timecard-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timecard-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/timecard-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/timecard-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/timecard-backend-go/internal/pkg/calendar"
)

type reportServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	userRepo       user.UserRepository
	now            func() time.Time
}

// NewReportService returns the monthly report service. Days are laid out in
// the location of the instants now returns.
func NewReportService(attendanceRepo attendance.AttendanceRepository, userRepo user.UserRepository, now func() time.Time) report.ReportService {
	if now == nil {
		now = time.Now
	}
	return &reportServiceImpl{
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
		now:            now,
	}
}

func period(month calendar.Month) report.Period {
	from, to := month.Range()
	return report.Period{
		Year:        month.Year,
		Month:       month.Month,
		PeriodStart: from,
		PeriodEnd:   to,
	}
}

func summarize(month calendar.Month, u user.User, records []attendance.Attendance, loc *time.Location) report.UserMonthlySummary {
	summary := report.Aggregate(month, records, loc)
	summary.UserID = u.ID
	summary.UserName = u.Name
	summary.Email = u.Email
	return summary
}

// GetMyMonthlySummary implements report.ReportService.
func (s *reportServiceImpl) GetMyMonthlySummary(ctx context.Context, req report.MonthlyReportRequest) (report.UserMonthlyReport, error) {
	if err := req.Validate(); err != nil {
		return report.UserMonthlyReport{}, err
	}

	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return report.UserMonthlyReport{}, err
	}

	u, err := s.userRepo.GetByID(ctx, identity.UserID)
	if err != nil {
		return report.UserMonthlyReport{}, err
	}

	month := calendar.Month{Year: req.Year, Month: req.Month}
	from, to := month.Range()
	records, err := s.attendanceRepo.ListByUserAndRange(ctx, u.ID, from, to)
	if err != nil {
		return report.UserMonthlyReport{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	now := s.now()
	return report.UserMonthlyReport{
		Period:      period(month),
		GeneratedAt: now.Format(time.RFC3339),
		Summary:     summarize(month, u, records, now.Location()),
	}, nil
}

// GetAllAttendance implements report.ReportService.
// The role is read from storage, not from the token, so a demoted admin
// loses access immediately.
func (s *reportServiceImpl) GetAllAttendance(ctx context.Context, req report.MonthlyReportRequest) (report.MonthlyReport, error) {
	if err := req.Validate(); err != nil {
		return report.MonthlyReport{}, err
	}

	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return report.MonthlyReport{}, err
	}

	caller, err := s.userRepo.GetByID(ctx, identity.UserID)
	if err != nil {
		return report.MonthlyReport{}, err
	}
	if !caller.IsAdmin() {
		return report.MonthlyReport{}, user.ErrAdminPrivilegeRequired
	}

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return report.MonthlyReport{}, fmt.Errorf("failed to list users: %w", err)
	}

	month := calendar.Month{Year: req.Year, Month: req.Month}
	from, to := month.Range()
	records, err := s.attendanceRepo.ListByRange(ctx, from, to)
	if err != nil {
		return report.MonthlyReport{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	byUser := make(map[string][]attendance.Attendance)
	for _, r := range records {
		byUser[r.UserID] = append(byUser[r.UserID], r)
	}

	now := s.now()
	summaries := make([]report.UserMonthlySummary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, summarize(month, u, byUser[u.ID], now.Location()))
	}

	return report.MonthlyReport{
		Period:      period(month),
		GeneratedAt: now.Format(time.RFC3339),
		Users:       summaries,
	}, nil
}
