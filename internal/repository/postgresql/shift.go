package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/timecard-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/timecard-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type shiftRepositoryImpl struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepositoryImpl{db: db}
}

// Upsert implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) Upsert(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	if s.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return shift.Shift{}, fmt.Errorf("generate shift id: %w", err)
		}
		s.ID = id.String()
	}

	query := `
		INSERT INTO shifts (id, user_id, date, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, date) DO UPDATE SET
			start_time = EXCLUDED.start_time,
			end_time   = EXCLUDED.end_time,
			updated_at = NOW()
		RETURNING id, user_id, date::text, start_time, end_time, created_at, updated_at
	`

	var saved shift.Shift
	err := q.QueryRow(ctx, query, s.ID, s.UserID, s.Date, s.StartTime, s.EndTime).Scan(
		&saved.ID, &saved.UserID, &saved.Date, &saved.StartTime, &saved.EndTime, &saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		return shift.Shift{}, fmt.Errorf("failed to upsert shift: %w", err)
	}
	return saved, nil
}

// Delete implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) Delete(ctx context.Context, id string, userID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM shifts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}
	return nil
}

// ListByUserAndRange implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) ListByUserAndRange(ctx context.Context, userID string, from string, to string) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT s.id, s.user_id, u.name, s.date::text, s.start_time, s.end_time, s.created_at, s.updated_at
		FROM shifts s
		JOIN users u ON u.id = s.user_id
		WHERE s.user_id = $1 AND s.date BETWEEN $2 AND $3
		ORDER BY s.date
	`
	rows, err := q.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	return collectShifts(rows)
}

// ListByRange implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) ListByRange(ctx context.Context, from string, to string) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT s.id, s.user_id, u.name, s.date::text, s.start_time, s.end_time, s.created_at, s.updated_at
		FROM shifts s
		JOIN users u ON u.id = s.user_id
		WHERE s.date BETWEEN $1 AND $2
		ORDER BY s.date, u.name
	`
	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	return collectShifts(rows)
}

func collectShifts(rows pgx.Rows) ([]shift.Shift, error) {
	defer rows.Close()

	var shifts []shift.Shift
	for rows.Next() {
		var s shift.Shift
		if err := rows.Scan(&s.ID, &s.UserID, &s.UserName, &s.Date, &s.StartTime, &s.EndTime, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shifts: %w", err)
	}
	return shifts, nil
}
