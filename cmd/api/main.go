package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/timecard-backend-go/internal/config"
	"github.com/cmlabs-hris/timecard-backend-go/internal/fixtures"
	appHTTP "github.com/cmlabs-hris/timecard-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/timecard-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/timecard-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/timecard-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/timecard-backend-go/internal/pkg/oauth"
	"github.com/cmlabs-hris/timecard-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/timecard-backend-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/timecard-backend-go/internal/service/auth"
	reportService "github.com/cmlabs-hris/timecard-backend-go/internal/service/report"
	shiftService "github.com/cmlabs-hris/timecard-backend-go/internal/service/shift"
	userService "github.com/cmlabs-hris/timecard-backend-go/internal/service/user"
	"github.com/go-chi/httplog/v3"
	"github.com/spf13/cobra"
)

const (
	appName    = "timecard"
	appVersion = "v1.0.0"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), runServe)
		},
	}

	root := &cobra.Command{
		Use:           "api",
		Short:         "Timecard attendance and shift backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}

	root.AddCommand(
		serve,
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply pending database migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd.Context(), func(ctx context.Context, app *application) error {
					_, err := app.db.Migrate(ctx)
					return err
				})
			},
		},
		&cobra.Command{
			Use:   "seed",
			Short: "Create the demo admin account with sample attendance and shifts",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd.Context(), runSeed)
			},
		},
	)
	return root
}

type application struct {
	cfg    *config.Config
	db     *database.DB
	logger *slog.Logger
}

// withApp loads configuration, installs the JSON logger and opens the
// database before handing off to fn. Errors are logged here.
func withApp(ctx context.Context, fn func(ctx context.Context, app *application) error) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		return err
	}

	logFormat := httplog.SchemaECS.Concise(!cfg.App.IsProduction())
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", appName),
		slog.String("version", appVersion),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		return err
	}
	defer db.Close()

	if err := fn(ctx, &application{cfg: cfg, db: db, logger: logger}); err != nil {
		slog.Error("Command failed", "error", err)
		return err
	}
	return nil
}

func runSeed(ctx context.Context, app *application) error {
	if _, err := app.db.Migrate(ctx); err != nil {
		return err
	}
	seeder := fixtures.NewSeeder(
		postgresql.NewTransactor(app.db),
		postgresql.NewUserRepository(app.db),
		postgresql.NewAttendanceRepository(app.db),
		postgresql.NewShiftRepository(app.db),
	)
	_, err := seeder.Seed(ctx, time.Now())
	return err
}

func runServe(ctx context.Context, app *application) error {
	cfg := app.cfg

	if _, err := app.db.Migrate(ctx); err != nil {
		return err
	}

	userRepo := postgresql.NewUserRepository(app.db)
	attendanceRepo := postgresql.NewAttendanceRepository(app.db)
	shiftRepo := postgresql.NewShiftRepository(app.db)
	sessionRepo := postgresql.NewSessionRepository(app.db)
	transactor := postgresql.NewTransactor(app.db)

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.SessionExpiration, cfg.App.IsProduction())
	if err != nil {
		return err
	}

	var GoogleService oauth.GoogleService
	if cfg.OAuth2Google.Enabled() {
		GoogleService = oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	}

	authService := serviceAuth.NewAuthService(transactor, userRepo, sessionRepo, JWTService, time.Now)

	handlers := appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(JWTService, authService, GoogleService, cfg.App.IsProduction()),
		Attendance: appHTTP.NewAttendanceHandler(attendanceService.NewAttendanceService(attendanceRepo, time.Now)),
		Shift:      appHTTP.NewShiftHandler(shiftService.NewShiftService(shiftRepo)),
		Report:     appHTTP.NewReportHandler(reportService.NewReportService(attendanceRepo, userRepo, time.Now)),
		User:       appHTTP.NewUserHandler(userService.NewUserService(userRepo)),
	}
	if cfg.App.FrontendDir != "" {
		handlers.Frontend = appHTTP.NewFrontendHandler(cfg.App.FrontendDir, authService)
	}

	router := appHTTP.NewRouter(JWTService, authService, handlers, app.logger, cfg.App.CORSAllowedOrigins)

	scheduler := cron.NewScheduler(ctx)
	cron.NewSessionJobs(authService).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr)
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
