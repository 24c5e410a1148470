package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/timecard-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/timecard-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/timecard-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/timecard-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// Handlers groups everything the router mounts. Frontend may be nil when no
// static build is served.
type Handlers struct {
	Auth       AuthHandler
	Attendance AttendanceHandler
	Shift      ShiftHandler
	Report     ReportHandler
	User       UserHandler
	Frontend   http.Handler
}

func NewRouter(JWTService jwt.Service, authService auth.AuthService, handlers Handlers, logger *slog.Logger, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	// Tokens are read from the session cookie first, then the Authorization
	// header. Verify only records the result; AuthRequired enforces it.
	r.Use(jwtauth.Verify(JWTService.JWTAuth(), jwt.TokenFromSessionCookie, jwtauth.TokenFromHeader))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(chiMiddleware.AllowContentEncoding("application/json"))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", handlers.Auth.Register)
			r.Post("/login", handlers.Auth.Login)
			r.Post("/logout", handlers.Auth.Logout)
			r.Get("/login/oauth/google", handlers.Auth.LoginWithGoogle)
			r.Get("/oauth/callback/google", handlers.Auth.OAuthCallbackGoogle)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthRequired(authService))
			r.Use(middleware.RequireRole(user.RoleAdmin, user.RoleManager, user.RoleUser))

			r.Route("/users/me", func(r chi.Router) {
				r.Get("/", handlers.User.GetMe)
				r.Put("/", handlers.User.UpdateMe)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/clock-in", handlers.Attendance.ClockIn)
				r.Post("/clock-out", handlers.Attendance.ClockOut)
				r.Post("/break-start", handlers.Attendance.StartBreak)
				r.Post("/break-end", handlers.Attendance.EndBreak)
				r.Get("/today", handlers.Attendance.GetToday)
				r.Get("/recent", handlers.Attendance.GetRecent)
				r.Get("/monthly", handlers.Report.GetMyMonthlySummary)
				r.Put("/{date}", handlers.Attendance.Update)
			})

			r.Route("/shifts", func(r chi.Router) {
				r.Get("/", handlers.Shift.List)
				r.Get("/all", handlers.Shift.ListAll)
				r.Put("/", handlers.Shift.Upsert)
				r.Delete("/{id}", handlers.Shift.Delete)
			})

			// Admin only
			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/attendance", handlers.Report.GetAllAttendance)
			})
		})
	})

	if handlers.Frontend != nil {
		r.Handle("/*", handlers.Frontend)
	}
	return r
}
