package testfixtures

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/timecard-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timecard-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/timecard-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/timecard-backend-go/internal/domain/user"
	"github.com/google/uuid"
)

// ErrInjected is returned by a Store whose failure switch is on.
var ErrInjected = errors.New("injected storage failure")

// Store is an in-memory backing for every repository interface. The
// repositories it hands out share one lock so joins stay consistent.
type Store struct {
	mu sync.Mutex

	users      map[string]user.User
	records    map[string]attendance.Attendance // keyed by userID|date
	shifts     map[string]shift.Shift           // keyed by id
	sessions   map[string]auth.Session
	failWrites bool
}

func NewStore() *Store {
	return &Store{
		users:    make(map[string]user.User),
		records:  make(map[string]attendance.Attendance),
		shifts:   make(map[string]shift.Shift),
		sessions: make(map[string]auth.Session),
	}
}

func (s *Store) Users() user.UserRepository { return &memoryUsers{s} }
func (s *Store) Attendance() attendance.AttendanceRepository { return &memoryAttendance{s} }
func (s *Store) Shifts() shift.ShiftRepository { return &memoryShifts{s} }
func (s *Store) Sessions() auth.SessionRepository { return &memorySessions{s} }

// SetFailWrites toggles failure of every write.
func (s *Store) SetFailWrites(fail bool) {
	s.mu.Lock()
	s.failWrites = fail
	s.mu.Unlock()
}

// AttendanceCount returns the number of stored attendance records.
func (s *Store) AttendanceCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// SessionCount returns the number of stored sessions.
func (s *Store) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func recordKey(userID, date string) string {
	return userID + "|" + date
}

// ========================================
// USERS
// ========================================

type memoryUsers struct{ s *Store }

func (m *memoryUsers) GetByEmail(ctx context.Context, email string) (user.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, u := range m.s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (m *memoryUsers) GetByID(ctx context.Context, id string) (user.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	u, ok := m.s.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (m *memoryUsers) Create(ctx context.Context, newUser user.User) (user.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if m.s.failWrites {
		return user.User{}, ErrInjected
	}
	for _, u := range m.s.users {
		if u.Email == newUser.Email {
			return user.User{}, user.ErrUserEmailExists
		}
	}
	if newUser.ID == "" {
		newUser.ID = newID()
	}
	now := time.Now()
	newUser.CreatedAt, newUser.UpdatedAt = now, now
	m.s.users[newUser.ID] = newUser
	return newUser, nil
}

func (m *memoryUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.GetByEmail(ctx, email)
	if errors.Is(err, user.ErrUserNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (m *memoryUsers) LinkGoogleAccount(ctx context.Context, googleID string, email string) (user.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if m.s.failWrites {
		return user.User{}, ErrInjected
	}
	for id, u := range m.s.users {
		if u.Email == email {
			provider := "google"
			u.OAuthProvider = &provider
			u.OAuthProviderID = &googleID
			u.UpdatedAt = time.Now()
			m.s.users[id] = u
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (m *memoryUsers) UpdateProfile(ctx context.Context, id string, name string, role user.Role) (user.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if m.s.failWrites {
		return user.User{}, ErrInjected
	}
	u, ok := m.s.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	u.Name, u.Role, u.UpdatedAt = name, role, time.Now()
	m.s.users[id] = u
	return u, nil
}

func (m *memoryUsers) List(ctx context.Context) ([]user.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	users := make([]user.User, 0, len(m.s.users))
	for _, u := range m.s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].Name != users[j].Name {
			return users[i].Name < users[j].Name
		}
		return users[i].Email < users[j].Email
	})
	return users, nil
}

// ========================================
// ATTENDANCE
// ========================================

type memoryAttendance struct{ s *Store }

func (m *memoryAttendance) GetByUserAndDate(ctx context.Context, userID string, date string) (*attendance.Attendance, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	rec, ok := m.s.records[recordKey(userID, date)]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (m *memoryAttendance) Upsert(ctx context.Context, rec attendance.Attendance) (attendance.Attendance, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if m.s.failWrites {
		return attendance.Attendance{}, ErrInjected
	}
	key := recordKey(rec.UserID, rec.Date)
	now := time.Now()
	if existing, ok := m.s.records[key]; ok {
		rec.ID = existing.ID
		rec.CreatedAt = existing.CreatedAt
		rec.IsEdited = existing.IsEdited || rec.IsEdited
	} else {
		if rec.ID == "" {
			rec.ID = newID()
		}
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
	m.s.records[key] = rec
	return rec, nil
}

func (m *memoryAttendance) ListRecent(ctx context.Context, userID string, limit int) ([]attendance.Attendance, error) {
	records := m.filter(func(r attendance.Attendance) bool { return r.UserID == userID })
	sort.Slice(records, func(i, j int) bool { return records[i].Date > records[j].Date })
	if len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (m *memoryAttendance) ListByUserAndRange(ctx context.Context, userID string, from string, to string) ([]attendance.Attendance, error) {
	records := m.filter(func(r attendance.Attendance) bool {
		return r.UserID == userID && r.Date >= from && r.Date <= to
	})
	sort.Slice(records, func(i, j int) bool { return records[i].Date < records[j].Date })
	return records, nil
}

func (m *memoryAttendance) ListByRange(ctx context.Context, from string, to string) ([]attendance.Attendance, error) {
	records := m.filter(func(r attendance.Attendance) bool { return r.Date >= from && r.Date <= to })
	sort.Slice(records, func(i, j int) bool {
		if records[i].UserID != records[j].UserID {
			return records[i].UserID < records[j].UserID
		}
		return records[i].Date < records[j].Date
	})
	return records, nil
}

func (m *memoryAttendance) filter(keep func(attendance.Attendance) bool) []attendance.Attendance {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var out []attendance.Attendance
	for _, r := range m.s.records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// ========================================
// SHIFTS
// ========================================

type memoryShifts struct{ s *Store }

func (m *memoryShifts) Upsert(ctx context.Context, sh shift.Shift) (shift.Shift, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if m.s.failWrites {
		return shift.Shift{}, ErrInjected
	}
	now := time.Now()
	for id, existing := range m.s.shifts {
		if existing.UserID == sh.UserID && existing.Date == sh.Date {
			existing.StartTime, existing.EndTime, existing.UpdatedAt = sh.StartTime, sh.EndTime, now
			m.s.shifts[id] = existing
			return existing, nil
		}
	}
	if sh.ID == "" {
		sh.ID = newID()
	}
	sh.CreatedAt, sh.UpdatedAt = now, now
	m.s.shifts[sh.ID] = sh
	return sh, nil
}

func (m *memoryShifts) Delete(ctx context.Context, id string, userID string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if m.s.failWrites {
		return ErrInjected
	}
	existing, ok := m.s.shifts[id]
	if !ok || existing.UserID != userID {
		return shift.ErrShiftNotFound
	}
	delete(m.s.shifts, id)
	return nil
}

func (m *memoryShifts) ListByUserAndRange(ctx context.Context, userID string, from string, to string) ([]shift.Shift, error) {
	return m.list(func(sh shift.Shift) bool {
		return sh.UserID == userID && sh.Date >= from && sh.Date <= to
	}), nil
}

func (m *memoryShifts) ListByRange(ctx context.Context, from string, to string) ([]shift.Shift, error) {
	return m.list(func(sh shift.Shift) bool { return sh.Date >= from && sh.Date <= to }), nil
}

func (m *memoryShifts) list(keep func(shift.Shift) bool) []shift.Shift {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var out []shift.Shift
	for _, sh := range m.s.shifts {
		if keep(sh) {
			sh.UserName = m.s.users[sh.UserID].Name
			out = append(out, sh)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].UserName < out[j].UserName
	})
	return out
}

// ========================================
// SESSIONS
// ========================================

type memorySessions struct{ s *Store }

func (m *memorySessions) Create(ctx context.Context, session auth.Session) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if m.s.failWrites {
		return ErrInjected
	}
	m.s.sessions[session.ID] = session
	return nil
}

func (m *memorySessions) GetByID(ctx context.Context, id string) (auth.Session, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	session, ok := m.s.sessions[id]
	if !ok {
		return auth.Session{}, auth.ErrSessionNotFound
	}
	return session, nil
}

func (m *memorySessions) Delete(ctx context.Context, id string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	delete(m.s.sessions, id)
	return nil
}

func (m *memorySessions) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var n int64
	for id, session := range m.s.sessions {
		if session.IsExpired(now) {
			delete(m.s.sessions, id)
			n++
		}
	}
	return n, nil
}

// Transactor runs fn directly; the in-memory store has no rollback.
type Transactor struct{}

func (Transactor) WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}
