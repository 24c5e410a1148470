package fixtures

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/timecard-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timecard-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/timecard-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/timecard-backend-go/internal/repository/postgresql"
	authService "github.com/cmlabs-hris/timecard-backend-go/internal/service/auth"
)

// ==========================================
// DEFAULT SEED DATA
// ==========================================

const (
	AdminEmail    = "admin@example.com"
	AdminPassword = "password123"
	AdminName     = "Admin"

	seedDays = 5
)

// workday is the wall-clock layout of every seeded day.
var workday = struct {
	start, end, breakStart, breakEnd string
}{"09:00", "18:00", "12:00", "13:00"}

// SeedResult counts what Seed actually wrote.
type SeedResult struct {
	AdminCreated      bool
	AttendanceCreated int
	ShiftsCreated     int
}

type Seeder struct {
	tx             postgresql.Transactor
	userRepo       user.UserRepository
	attendanceRepo attendance.AttendanceRepository
	shiftRepo      shift.ShiftRepository
}

func NewSeeder(tx postgresql.Transactor, userRepo user.UserRepository, attendanceRepo attendance.AttendanceRepository, shiftRepo shift.ShiftRepository) *Seeder {
	return &Seeder{
		tx:             tx,
		userRepo:       userRepo,
		attendanceRepo: attendanceRepo,
		shiftRepo:      shiftRepo,
	}
}

// Seed creates the admin account, its attendance for the five days ending
// today and its shifts for the five days after. Rows that already exist are
// left alone, so Seed can run repeatedly. today decides the calendar in its
// location.
func (s *Seeder) Seed(ctx context.Context, today time.Time) (SeedResult, error) {
	var result SeedResult
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		admin, created, err := s.ensureAdmin(txCtx)
		if err != nil {
			return err
		}
		result.AdminCreated = created

		if result.AttendanceCreated, err = s.seedAttendance(txCtx, admin.ID, today); err != nil {
			return err
		}
		result.ShiftsCreated, err = s.seedShifts(txCtx, admin.ID, today)
		return err
	})
	if err != nil {
		return SeedResult{}, err
	}

	slog.Info("Seed completed",
		"admin_created", result.AdminCreated,
		"attendance_created", result.AttendanceCreated,
		"shifts_created", result.ShiftsCreated,
	)
	return result, nil
}

func (s *Seeder) ensureAdmin(ctx context.Context) (user.User, bool, error) {
	existing, err := s.userRepo.GetByEmail(ctx, AdminEmail)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return user.User{}, false, fmt.Errorf("failed to look up admin: %w", err)
	}

	hashed, err := authService.HashPassword(AdminPassword)
	if err != nil {
		return user.User{}, false, fmt.Errorf("failed to hash admin password: %w", err)
	}
	admin, err := s.userRepo.Create(ctx, user.User{
		Name:         AdminName,
		Email:        AdminEmail,
		PasswordHash: &hashed,
		Role:         user.RoleAdmin,
	})
	if err != nil {
		return user.User{}, false, fmt.Errorf("failed to create admin: %w", err)
	}
	return admin, true, nil
}

func at(day time.Time, clock string) (*time.Time, error) {
	t, err := time.ParseInLocation(attendance.DateLayout+" 15:04", attendance.DateKey(day)+" "+clock, day.Location())
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Seeder) seedAttendance(ctx context.Context, userID string, today time.Time) (int, error) {
	created := 0
	for i := 0; i < seedDays; i++ {
		day := today.AddDate(0, 0, -i)
		date := attendance.DateKey(day)

		existing, err := s.attendanceRepo.GetByUserAndDate(ctx, userID, date)
		if err != nil {
			return created, fmt.Errorf("failed to get attendance for %s: %w", date, err)
		}
		if existing != nil {
			continue
		}

		var times attendance.EditedTimes
		for _, f := range []struct {
			dst   **time.Time
			clock string
		}{
			{&times.StartTime, workday.start},
			{&times.EndTime, workday.end},
			{&times.BreakStartTime, workday.breakStart},
			{&times.BreakEndTime, workday.breakEnd},
		} {
			if *f.dst, err = at(day, f.clock); err != nil {
				return created, err
			}
		}

		rec := attendance.Overwrite(nil, date, times)
		rec.UserID = userID
		rec.IsEdited = false
		if _, err := s.attendanceRepo.Upsert(ctx, rec); err != nil {
			return created, fmt.Errorf("failed to seed attendance for %s: %w", date, err)
		}
		created++
	}
	return created, nil
}

func (s *Seeder) seedShifts(ctx context.Context, userID string, today time.Time) (int, error) {
	from := attendance.DateKey(today.AddDate(0, 0, 1))
	to := attendance.DateKey(today.AddDate(0, 0, seedDays))
	existing, err := s.shiftRepo.ListByUserAndRange(ctx, userID, from, to)
	if err != nil {
		return 0, fmt.Errorf("failed to list shifts: %w", err)
	}
	planned := make(map[string]bool, len(existing))
	for _, sh := range existing {
		planned[sh.Date] = true
	}

	created := 0
	for i := 1; i <= seedDays; i++ {
		date := attendance.DateKey(today.AddDate(0, 0, i))
		if planned[date] {
			continue
		}
		if _, err := s.shiftRepo.Upsert(ctx, shift.Shift{
			UserID:    userID,
			Date:      date,
			StartTime: workday.start,
			EndTime:   workday.end,
		}); err != nil {
			return created, fmt.Errorf("failed to seed shift for %s: %w", date, err)
		}
		created++
	}
	return created, nil
}
