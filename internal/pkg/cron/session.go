package cron

import (
	"context"
	"log/slog"
	"time"
)

// SessionPurger deletes expired sessions and reports how many were removed.
type SessionPurger interface {
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}

type SessionJobs struct {
	purger SessionPurger
}

func NewSessionJobs(purger SessionPurger) *SessionJobs {
	return &SessionJobs{purger: purger}
}

func (j *SessionJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("purge_expired_sessions", 1*time.Hour, j.PurgeExpiredSessions)
}

func (j *SessionJobs) PurgeExpiredSessions(ctx context.Context) error {
	purged, err := j.purger.PurgeExpiredSessions(ctx)
	if err != nil {
		return err
	}
	if purged > 0 {
		slog.Info("Cron: purged expired sessions", "count", purged)
	}
	return nil
}
