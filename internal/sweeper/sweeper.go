package sweeper

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// SessionPruner deletes sessions that expired at or before now.
type SessionPruner interface {
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

// Service periodically removes expired sessions.
type Service struct {
	pruner   SessionPruner
	interval time.Duration
	now      func() time.Time
}

// NewService creates a sweeper that runs every interval.
func NewService(pruner SessionPruner, interval time.Duration) *Service {
	return &Service{
		pruner:   pruner,
		interval: interval,
		now:      time.Now,
	}
}

// SweepOnce performs a single pruning pass and reports how many sessions went.
func (s *Service) SweepOnce(ctx context.Context) (int64, error) {
	removed, err := s.pruner.DeleteExpiredSessions(ctx, s.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("sweep sessions: %w", err)
	}
	if removed > 0 {
		log.Printf("[Sweeper] Removed %d expired sessions", removed)
	}
	return removed, nil
}

// Run schedules SweepOnce every interval, starting immediately, and blocks
// until ctx is cancelled.
func (s *Service) Run(ctx context.Context) error {
	if s.interval <= 0 {
		log.Println("[Sweeper] Interval is not positive. Not starting.")
		return nil
	}

	sched, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("create scheduler: %w", err)
	}

	_, err = sched.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(func() {
			if _, err := s.SweepOnce(ctx); err != nil {
				log.Printf("[Sweeper] %v", err)
			}
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = sched.Shutdown()
		return fmt.Errorf("schedule sweep job: %w", err)
	}

	log.Printf("[Sweeper] Pruning expired sessions every %s", s.interval)
	sched.Start()

	<-ctx.Done()
	log.Println("[Sweeper] Shutting down.")
	return sched.Shutdown()
}
