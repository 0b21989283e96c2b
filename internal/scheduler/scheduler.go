package scheduler

import (
	"context"
	"time"

	"rental-app/internal/api/auth"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// TokenPurger is the part of the auth service the scheduler drives.
type TokenPurger interface {
	PurgeTokens(ctx context.Context, retention time.Duration) (auth.PurgeResult, error)
}

// Scheduler runs the refresh token purge on a cron schedule.
type Scheduler struct {
	cron      *cron.Cron
	purger    TokenPurger
	retention time.Duration
	logger    *zap.Logger
}

func New(purger TokenPurger, retention time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		purger:    purger,
		retention: retention,
		logger:    logger,
	}
}

// Start registers the purge job under spec (standard five field cron syntax) and
// starts the cron loop.
func (s *Scheduler) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.purge); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("Scheduler started", zap.String("token_purge", spec))
	return nil
}

// Stop waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("Scheduler stopped")
}

func (s *Scheduler) purge() {
	if _, err := s.purger.PurgeTokens(context.Background(), s.retention); err != nil {
		s.logger.Error("Refresh token purge failed", zap.Error(err))
	}
}
