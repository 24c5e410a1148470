package report

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/timecard-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timecard-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/timecard-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/timecard-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/timecard-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/timecard-backend-go/internal/testfixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clockAt(day, hour, minute int) *time.Time {
	t := time.Date(2025, time.March, day, hour, minute, 0, 0, time.UTC)
	return &t
}

func seedDay(t *testing.T, store *testfixtures.Store, userID string, day, startHour, endHour int) {
	t.Helper()
	_, err := store.Attendance().Upsert(context.Background(), attendance.Attendance{
		UserID:         userID,
		Date:           clockAt(day, 0, 0).Format(attendance.DateLayout),
		StartTime:      clockAt(day, startHour, 0),
		BreakStartTime: clockAt(day, 12, 0),
		BreakEndTime:   clockAt(day, 13, 0),
		EndTime:        clockAt(day, endHour, 0),
		Status:         attendance.StatusLeft,
	})
	require.NoError(t, err)
}

type reportFixture struct {
	svc      report.ReportService
	store    *testfixtures.Store
	admin    user.User
	worker   user.User
	idle     user.User
	adminCtx context.Context
	userCtx  context.Context
}

func newReportFixture(t *testing.T) reportFixture {
	t.Helper()
	ctx := context.Background()
	store := testfixtures.NewStore()

	admin, err := store.Users().Create(ctx, user.User{Name: "Admin", Email: "admin@example.com", Role: user.RoleAdmin})
	require.NoError(t, err)
	worker, err := store.Users().Create(ctx, user.User{Name: "Worker", Email: "worker@example.com", Role: user.RoleUser})
	require.NoError(t, err)
	idle, err := store.Users().Create(ctx, user.User{Name: "Idle", Email: "idle@example.com", Role: user.RoleManager})
	require.NoError(t, err)

	clock := testfixtures.NewClock(time.Date(2025, time.March, 20, 10, 0, 0, 0, time.UTC))
	return reportFixture{
		svc:      NewReportService(store.Attendance(), store.Users(), clock.NowFunc()),
		store:    store,
		admin:    admin,
		worker:   worker,
		idle:     idle,
		adminCtx: testfixtures.ContextWithIdentity(ctx, auth.Identity{UserID: admin.ID, Role: user.RoleAdmin}),
		userCtx:  testfixtures.ContextWithIdentity(ctx, auth.Identity{UserID: worker.ID, Role: user.RoleUser}),
	}
}

func TestReportService_GetMyMonthlySummary(t *testing.T) {
	f := newReportFixture(t)
	seedDay(t, f.store, f.worker.ID, 10, 9, 18)
	seedDay(t, f.store, f.worker.ID, 11, 9, 17)
	seedDay(t, f.store, f.admin.ID, 10, 8, 20)

	got, err := f.svc.GetMyMonthlySummary(f.userCtx, report.MonthlyReportRequest{Year: 2025, Month: 3})
	require.NoError(t, err)

	assert.Equal(t, "2025-03-01", got.PeriodStart)
	assert.Equal(t, "2025-03-31", got.PeriodEnd)
	assert.Equal(t, f.worker.ID, got.Summary.UserID)
	assert.Equal(t, "Worker", got.Summary.UserName)
	assert.Len(t, got.Summary.Days, 31)
	assert.Equal(t, 17.0, got.Summary.TotalHours)
	assert.Equal(t, 2, got.Summary.DaysWithWork)
	assert.Equal(t, 9.0, got.Summary.Days[9].Hours)
	assert.Equal(t, 1.0, got.Summary.Days[9].BreakHours)
}

func TestReportService_GetMyMonthlySummary_InvalidMonth(t *testing.T) {
	f := newReportFixture(t)

	_, err := f.svc.GetMyMonthlySummary(f.userCtx, report.MonthlyReportRequest{Year: 2025, Month: 13})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestReportService_GetAllAttendance(t *testing.T) {
	f := newReportFixture(t)
	seedDay(t, f.store, f.worker.ID, 10, 9, 18)
	seedDay(t, f.store, f.admin.ID, 10, 8, 20)

	got, err := f.svc.GetAllAttendance(f.adminCtx, report.MonthlyReportRequest{Year: 2025, Month: 3})
	require.NoError(t, err)
	require.Len(t, got.Users, 3)

	totals := make(map[string]float64, len(got.Users))
	for _, u := range got.Users {
		assert.Len(t, u.Days, 31)
		totals[u.UserID] = u.TotalHours
	}
	assert.Equal(t, 12.0, totals[f.admin.ID])
	assert.Equal(t, 9.0, totals[f.worker.ID])
	assert.Equal(t, 0.0, totals[f.idle.ID])
}

func TestReportService_GetAllAttendance_AdminOnly(t *testing.T) {
	f := newReportFixture(t)

	_, err := f.svc.GetAllAttendance(f.userCtx, report.MonthlyReportRequest{Year: 2025, Month: 3})
	assert.ErrorIs(t, err, user.ErrAdminPrivilegeRequired)

	// a stale admin claim is not enough once the stored role changes
	_, err = f.store.Users().UpdateProfile(context.Background(), f.admin.ID, f.admin.Name, user.RoleUser)
	require.NoError(t, err)
	_, err = f.svc.GetAllAttendance(f.adminCtx, report.MonthlyReportRequest{Year: 2025, Month: 3})
	assert.ErrorIs(t, err, user.ErrAdminPrivilegeRequired)
}

func TestReportService_RequiresIdentity(t *testing.T) {
	f := newReportFixture(t)

	_, err := f.svc.GetMyMonthlySummary(context.Background(), report.MonthlyReportRequest{Year: 2025, Month: 3})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
