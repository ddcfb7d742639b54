package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mzohdy/northstar/internal/domain/task"
	"github.com/mzohdy/northstar/pkg/logger"
)

// Scheduler drives the nightly replanning pass. Overdue pending tasks
// roll forward to the next day just after midnight so stale plans never
// survive into a new morning.
type Scheduler struct {
	taskService task.Service
	location    *time.Location
	logger      *logger.Logger

	stop chan struct{}
}

func NewScheduler(taskService task.Service, location *time.Location, logger *logger.Logger) *Scheduler {
	if location == nil {
		location = time.UTC
	}
	return &Scheduler{
		taskService: taskService,
		location:    location,
		logger:      logger,
		stop:        make(chan struct{}),
	}
}

func (s *Scheduler) Start() {
	// Run immediately at startup to catch tasks that went overdue while
	// the server was down.
	s.runReplan()

	now := time.Now().In(s.location)
	nextMidnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, s.location)
	timeUntilMidnight := nextMidnight.Sub(now)

	s.logger.Info("Replan scheduler initialized",
		zap.Time("current_time", now),
		zap.Time("next_run", nextMidnight),
		zap.Duration("time_until_next_run", timeUntilMidnight),
	)

	go func() {
		timer := time.NewTimer(timeUntilMidnight)
		defer timer.Stop()

		select {
		case <-timer.C:
		case <-s.stop:
			return
		}

		s.runReplan()

		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.runReplan()
			case <-s.stop:
				return
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	close(s.stop)
}

func (s *Scheduler) runReplan() {
	ctx := context.Background()
	startTime := time.Now()

	s.logger.Info("Starting overdue task replan", zap.Time("start_time", startTime))

	moved, err := s.taskService.ReplanOverdue(ctx, time.Now())
	if err != nil {
		s.logger.Error("Failed to replan overdue tasks", zap.Error(err))
		return
	}

	s.logger.Info("Completed overdue task replan",
		zap.Int64("moved", moved),
		zap.Duration("duration", time.Since(startTime)),
	)
}
