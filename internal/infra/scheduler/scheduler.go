package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"homework_status_bot/internal/domain/notification"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Ticker runs one poll cycle.
type Ticker interface {
	Tick(ctx context.Context) notification.Outcome
}

// ParseSchedule returns the schedule for the poll loop: spec when given (any
// cron.ParseStandard expression, e.g. "@every 10m"), otherwise a constant
// delay of every.
func ParseSchedule(spec string, every time.Duration) (cron.Schedule, error) {
	if spec == "" {
		return cron.Every(every), nil
	}
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid poll schedule %q: %w", spec, err)
	}
	return schedule, nil
}

// PollScheduler runs cycles one after another. The next cycle is planned from
// the moment the previous one finished, so cycles never overlap.
type PollScheduler struct {
	poller   Ticker
	schedule cron.Schedule
	logger   logrus.FieldLogger
	now      func() time.Time

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewPollScheduler(poller Ticker, schedule cron.Schedule, logger logrus.FieldLogger) *PollScheduler {
	return &PollScheduler{
		poller:   poller,
		schedule: schedule,
		logger:   logger,
		now:      time.Now,
	}
}

// Start launches the poll loop in the background. The first cycle runs immediately.
func (s *PollScheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done != nil {
		s.logger.Info("Poll scheduler already running")
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	s.logger.Info("Starting poll scheduler...")
	go func(done chan struct{}) {
		defer close(done)
		s.Run(runCtx)
	}(s.done)
}

// Run executes the poll loop until ctx is cancelled.
func (s *PollScheduler) Run(ctx context.Context) {
	for {
		outcome := s.poller.Tick(ctx)

		next := s.schedule.Next(s.now())
		wait := next.Sub(s.now())
		s.logger.WithFields(logrus.Fields{
			"outcome":  outcome,
			"next_run": next.Format(time.RFC3339),
		}).Debug("Poll cycle done, waiting for next run")

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.WithError(context.Cause(ctx)).Info("Poll loop stopped")
			return
		case <-timer.C:
		}
	}
}

// Stop cancels the loop and waits for the running cycle to return.
func (s *PollScheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if done == nil {
		s.logger.Info("Poll scheduler not running")
		return
	}

	s.logger.Info("Stopping poll scheduler...")
	cancel()
	<-done
	s.logger.Info("Poll scheduler gracefully stopped.")
}
