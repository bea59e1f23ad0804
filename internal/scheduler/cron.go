package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// probeTimeout bounds a single scheduled session probe
const probeTimeout = 30 * time.Second

// SessionProber re-checks the backend session
type SessionProber interface {
	RefreshSession(ctx context.Context) error
}

// Scheduler manages scheduled tasks
type Scheduler struct {
	cron     *cron.Cron
	prober   SessionProber
	schedule string
	logger   *logrus.Logger
}

// NewScheduler creates a new scheduler running the session probe on schedule
func NewScheduler(prober SessionProber, schedule string, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		prober:   prober,
		schedule: schedule,
		logger:   logger,
	}
}

// Start starts the scheduler. An empty schedule disables the probe.
func (s *Scheduler) Start() error {
	if s.schedule == "" {
		s.logger.Debug("Session probe disabled")
		return nil
	}

	s.logger.WithField("schedule", s.schedule).Info("Starting scheduler")

	if _, err := s.cron.AddFunc(s.schedule, s.runSessionProbe); err != nil {
		return fmt.Errorf("failed to add session probe job: %w", err)
	}

	s.cron.Start()
	s.logger.Info("Scheduler started")
	return nil
}

// Stop stops the scheduler and waits for a running probe to finish
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping scheduler")
	<-s.cron.Stop().Done()
}

// runSessionProbe executes the session probe job
func (s *Scheduler) runSessionProbe() {
	s.logger.Debug("Running scheduled session probe")
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	if err := s.prober.RefreshSession(ctx); err != nil {
		s.logger.WithError(err).Warn("Session probe failed")
	} else {
		s.logger.Debug("Session probe completed")
	}
}
