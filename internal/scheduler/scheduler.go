// Package scheduler runs periodic housekeeping: purging old notifications
// and expired refresh tokens.
package scheduler

import (
	"context"
	"time"

	"github.com/schoolmate-bg/schoolmate-api/internal/app/repositories"
	"github.com/schoolmate-bg/schoolmate-api/internal/pkg/logger"
)

const (
	// NotificationRetention is how long notifications are kept
	NotificationRetention = 30 * 24 * time.Hour

	cleanupInterval = time.Hour
)

// Scheduler owns the background cleanup loop
type Scheduler struct {
	notificationRepo *repositories.NotificationRepository
	tokenRepo        *repositories.TokenRepository
	stop             chan struct{}
	done             chan struct{}
}

// NewScheduler creates a new Scheduler
func NewScheduler(
	notificationRepo *repositories.NotificationRepository,
	tokenRepo *repositories.TokenRepository,
) *Scheduler {
	return &Scheduler{
		notificationRepo: notificationRepo,
		tokenRepo:        tokenRepo,
		stop:             make(chan struct{}),
		done:             make(chan struct{}),
	}
}

// Start launches the cleanup loop. One pass runs immediately so stale
// rows do not survive a restart cycle.
func (s *Scheduler) Start() {
	go func() {
		defer close(s.done)

		s.runCleanup()

		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.runCleanup()
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop halts the loop and waits for an in-flight pass to finish
func (s *Scheduler) Stop() {
	close(s.stop)
	<-s.done
}

func (s *Scheduler) runCleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cutoff := time.Now().Add(-NotificationRetention)
	if purged, err := s.notificationRepo.DeleteOlderThan(ctx, cutoff); err != nil {
		logger.Error().Err(err).Msg("Notification retention purge failed")
	} else if purged > 0 {
		logger.Info().Int64("purged", purged).Msg("Old notifications purged")
	}

	if purged, err := s.tokenRepo.DeleteExpired(ctx); err != nil {
		logger.Error().Err(err).Msg("Expired refresh token purge failed")
	} else if purged > 0 {
		logger.Debug().Int64("purged", purged).Msg("Expired refresh tokens purged")
	}
}
