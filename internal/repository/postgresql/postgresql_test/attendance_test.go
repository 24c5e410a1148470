package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/timecard-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timecard-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttendanceRepository_UpsertKeepsOneRowPerDay(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	u := createTestUser(t, postgresql.NewUserRepository(setup.DB), "att@example.com")
	repo := postgresql.NewAttendanceRepository(setup.DB)

	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	first, err := repo.Upsert(ctx, attendance.Attendance{
		UserID: u.ID, Date: "2025-03-10", StartTime: &start, Status: attendance.StatusWorking,
	})
	require.NoError(t, err)

	// a second insert for the same day without the id still lands on the same row
	end := start.Add(9 * time.Hour)
	second, err := repo.Upsert(ctx, attendance.Attendance{
		UserID: u.ID, Date: "2025-03-10", StartTime: &start, EndTime: &end, Status: attendance.StatusLeft,
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, attendance.StatusLeft, second.Status)

	got, err := repo.GetByUserAndDate(ctx, u.ID, "2025-03-10")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.EndTime.Equal(end))

	missing, err := repo.GetByUserAndDate(ctx, u.ID, "2025-03-11")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestAttendanceRepository_ListRecentAndRange(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	u := createTestUser(t, postgresql.NewUserRepository(setup.DB), "recent@example.com")
	repo := postgresql.NewAttendanceRepository(setup.DB)

	for _, date := range []string{"2025-02-28", "2025-03-01", "2025-03-02", "2025-03-03"} {
		_, err := repo.Upsert(ctx, attendance.Attendance{UserID: u.ID, Date: date, Status: attendance.StatusLeft})
		require.NoError(t, err)
	}

	recent, err := repo.ListRecent(ctx, u.ID, 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, "2025-03-03", recent[0].Date)
	assert.Equal(t, "2025-03-01", recent[2].Date)

	march, err := repo.ListByUserAndRange(ctx, u.ID, "2025-03-01", "2025-03-31")
	require.NoError(t, err)
	assert.Len(t, march, 3)

	all, err := repo.ListByRange(ctx, "2025-02-01", "2025-02-28")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
