package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cmlabs-hris/timecard-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timecard-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/timecard-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/timecard-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/timecard-backend-go/internal/pkg/jwt"
	attendanceService "github.com/cmlabs-hris/timecard-backend-go/internal/service/attendance"
	authService "github.com/cmlabs-hris/timecard-backend-go/internal/service/auth"
	reportService "github.com/cmlabs-hris/timecard-backend-go/internal/service/report"
	shiftService "github.com/cmlabs-hris/timecard-backend-go/internal/service/shift"
	userService "github.com/cmlabs-hris/timecard-backend-go/internal/service/user"
	"github.com/cmlabs-hris/timecard-backend-go/internal/testfixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    *struct {
		Limit    int `json:"limit"`
		Returned int `json:"returned"`
	} `json:"meta"`
	Error *struct {
		Code    string            `json:"code"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

type testServer struct {
	t      *testing.T
	store  *testfixtures.Store
	clock  *testfixtures.Clock
	router http.Handler
}

func newTestServer(t *testing.T, frontendDir string) *testServer {
	t.Helper()
	store := testfixtures.NewStore()
	clock := testfixtures.NewClock(time.Now().UTC())
	now := clock.NowFunc()

	jwtService, err := jwt.NewJWTService("router-test-secret", "168h", false)
	require.NoError(t, err)

	authSvc := authService.NewAuthService(testfixtures.Transactor{}, store.Users(), store.Sessions(), jwtService, now)
	handlers := Handlers{
		Auth:       NewAuthHandler(jwtService, authSvc, nil, false),
		Attendance: NewAttendanceHandler(attendanceService.NewAttendanceService(store.Attendance(), now)),
		Shift:      NewShiftHandler(shiftService.NewShiftService(store.Shifts())),
		Report:     NewReportHandler(reportService.NewReportService(store.Attendance(), store.Users(), now)),
		User:       NewUserHandler(userService.NewUserService(store.Users())),
	}
	if frontendDir != "" {
		handlers.Frontend = NewFrontendHandler(frontendDir, authSvc)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &testServer{
		t:      t,
		store:  store,
		clock:  clock,
		router: NewRouter(jwtService, authSvc, handlers, logger, []string{"http://localhost:3000"}),
	}
}

func (s *testServer) do(method, target string, body any, cookie *http.Cookie) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var env envelope
	if rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == jwt.SessionCookieName {
			return c
		}
	}
	t.Fatalf("no %s cookie set", jwt.SessionCookieName)
	return nil
}

func (s *testServer) register(email string) *http.Cookie {
	s.t.Helper()
	rec, env := s.do(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"name": "Aoi", "email": email, "password": "password123", "confirm_password": "password123",
	}, nil)
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	require.True(s.t, env.Success)
	return sessionCookie(s.t, rec)
}

func TestRouter_RegisterLoginLogout(t *testing.T) {
	s := newTestServer(t, "")
	cookie := s.register("aoi@example.com")
	assert.True(t, cookie.HttpOnly)

	rec, env := s.do(http.MethodGet, "/api/v1/users/me", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	var me user.UserResponse
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, "aoi@example.com", me.Email)
	assert.Equal(t, "user", me.Role)

	rec, env = s.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "aoi@example.com", "password": "nope-nope"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHORIZED", env.Error.Code)

	rec, _ = s.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "aoi@example.com", "password": "password123"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	second := sessionCookie(t, rec)

	rec, _ = s.do(http.MethodPost, "/api/v1/auth/logout", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	cleared := sessionCookie(t, rec)
	assert.Equal(t, "", cleared.Value)

	rec, _ = s.do(http.MethodGet, "/api/v1/users/me", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// other sessions survive
	rec, _ = s.do(http.MethodGet, "/api/v1/users/me", nil, second)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_RegisterValidation(t *testing.T) {
	s := newTestServer(t, "")

	rec, env := s.do(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"name": "Aoi", "email": "aoi@example.com", "password": "short", "confirm_password": "other",
	}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, env.Error.Details, "password")
	assert.Contains(t, env.Error.Details, "confirm_password")

	s.register("aoi@example.com")
	rec, _ = s.do(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"name": "Aoi", "email": "aoi@example.com", "password": "password123", "confirm_password": "password123",
	}, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRouter_RequiresSession(t *testing.T) {
	s := newTestServer(t, "")

	for _, target := range []string{"/api/v1/attendance/today", "/api/v1/shifts", "/api/v1/users/me"} {
		rec, _ := s.do(http.MethodGet, target, nil, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, target)
	}
}

func TestRouter_ClockActions(t *testing.T) {
	s := newTestServer(t, "")
	cookie := s.register("aoi@example.com")

	rec, env := s.do(http.MethodPost, "/api/v1/attendance/clock-in", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	var result attendance.TransitionResponse
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.True(t, result.Applied)
	assert.Equal(t, "working", result.Status)

	// ending a break that never started is ignored, not an error
	rec, env = s.do(http.MethodPost, "/api/v1/attendance/break-end", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.False(t, result.Applied)
	assert.Equal(t, "working", result.Status)

	s.clock.Advance(time.Minute)
	rec, _ = s.do(http.MethodPost, "/api/v1/attendance/break-start", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env = s.do(http.MethodGet, "/api/v1/attendance/today", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	var today attendance.TodayResponse
	require.NoError(t, json.Unmarshal(env.Data, &today))
	assert.Equal(t, "break", today.Status)
	assert.True(t, today.CanEndBreak)
	assert.False(t, today.CanClockOut)

	rec, env = s.do(http.MethodGet, "/api/v1/attendance/recent?limit=5", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	var recent []attendance.AttendanceResponse
	require.NoError(t, json.Unmarshal(env.Data, &recent))
	assert.Len(t, recent, 1)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 5, env.Meta.Limit)
	assert.Equal(t, 1, env.Meta.Returned)

	rec, env = s.do(http.MethodGet, "/api/v1/attendance/recent", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, env.Meta)
	assert.Equal(t, attendance.DefaultRecentLimit, env.Meta.Limit)

	rec, _ = s.do(http.MethodGet, "/api/v1/attendance/recent?limit=abc", nil, cookie)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRouter_ManualEdit(t *testing.T) {
	s := newTestServer(t, "")
	cookie := s.register("aoi@example.com")

	rec, env := s.do(http.MethodPut, "/api/v1/attendance/2025-03-10", map[string]any{
		"start_time": "09:00", "end_time": "18:00", "break_start_time": "12:00", "break_end_time": "13:00",
	}, cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var edited attendance.AttendanceResponse
	require.NoError(t, json.Unmarshal(env.Data, &edited))
	assert.Equal(t, "left", edited.Status)
	assert.True(t, edited.IsEdited)

	rec, env = s.do(http.MethodGet, "/api/v1/attendance/monthly?year=2025&month=3", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	var monthly report.UserMonthlyReport
	require.NoError(t, json.Unmarshal(env.Data, &monthly))
	assert.Equal(t, 9.0, monthly.Summary.TotalHours)

	rec, _ = s.do(http.MethodPut, "/api/v1/attendance/2025-03-10", map[string]any{"start_time": "9am"}, cookie)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRouter_Shifts(t *testing.T) {
	s := newTestServer(t, "")
	alice := s.register("alice@example.com")
	bob := s.register("bob@example.com")

	rec, env := s.do(http.MethodPut, "/api/v1/shifts", map[string]string{"date": "2025-03-10", "start_time": "09:00", "end_time": "18:00"}, alice)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var saved shift.ShiftResponse
	require.NoError(t, json.Unmarshal(env.Data, &saved))

	rec, _ = s.do(http.MethodPut, "/api/v1/shifts", map[string]string{"date": "2025-03-10", "start_time": "10:00", "end_time": "19:00"}, bob)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env = s.do(http.MethodGet, "/api/v1/shifts?year=2025&month=3", nil, alice)
	require.Equal(t, http.StatusOK, rec.Code)
	var mine []shift.ShiftResponse
	require.NoError(t, json.Unmarshal(env.Data, &mine))
	assert.Len(t, mine, 1)

	rec, env = s.do(http.MethodGet, "/api/v1/shifts/all?year=2025&month=3", nil, alice)
	require.Equal(t, http.StatusOK, rec.Code)
	var all []shift.ShiftResponse
	require.NoError(t, json.Unmarshal(env.Data, &all))
	assert.Len(t, all, 2)

	rec, _ = s.do(http.MethodDelete, "/api/v1/shifts/"+saved.ID, nil, bob)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = s.do(http.MethodDelete, "/api/v1/shifts/"+saved.ID, nil, alice)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = s.do(http.MethodGet, "/api/v1/shifts?year=2025&month=13", nil, alice)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRouter_AdminReport(t *testing.T) {
	s := newTestServer(t, "")
	cookie := s.register("aoi@example.com")

	rec, _ := s.do(http.MethodGet, "/api/v1/admin/attendance?year=2025&month=3", nil, cookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_GoogleNotConfigured(t *testing.T) {
	s := newTestServer(t, "")

	rec, _ := s.do(http.MethodGet, "/api/v1/auth/login/oauth/google", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_FrontendPageGate(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"index.html": "home", "login.html": "login", "register.html": "register", "app.js": "js",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	s := newTestServer(t, dir)

	get := func(target string, cookie *http.Cookie) *httptest.ResponseRecorder {
		rec, _ := s.do(http.MethodGet, target, nil, cookie)
		return rec
	}

	rec := get("/", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	rec = get("/login", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "login", rec.Body.String())

	rec = get("/app.js", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	cookie := s.register("aoi@example.com")
	rec = get("/register", cookie)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	rec = get("/", cookie)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "home", rec.Body.String())
}
