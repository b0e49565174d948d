package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"homework_status_bot/internal/domain/notification"

	"github.com/sirupsen/logrus/hooks/test"
)

type countingTicker struct {
	calls   int32
	running int32
	overlap int32
	onTick  func(n int32)
}

func (c *countingTicker) Tick(ctx context.Context) notification.Outcome {
	if atomic.AddInt32(&c.running, 1) > 1 {
		atomic.StoreInt32(&c.overlap, 1)
	}
	defer atomic.AddInt32(&c.running, -1)

	n := atomic.AddInt32(&c.calls, 1)
	time.Sleep(2 * time.Millisecond)
	if c.onTick != nil {
		c.onTick(n)
	}
	return notification.OutcomeSucceeded
}

// shortSchedule fires a fixed delay after the given time.
type shortSchedule time.Duration

func (s shortSchedule) Next(t time.Time) time.Time { return t.Add(time.Duration(s)) }

func TestParseSchedule(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	every, err := ParseSchedule("", 10*time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := every.Next(now); !got.Equal(now.Add(10 * time.Minute)) {
		t.Fatalf("expected next run in 10m, got %s", got)
	}

	descriptor, err := ParseSchedule("@every 90s", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := descriptor.Next(now); !got.Equal(now.Add(90 * time.Second)) {
		t.Fatalf("expected next run in 90s, got %s", got)
	}

	if _, err := ParseSchedule("every now and then", time.Minute); err == nil {
		t.Fatalf("expected error for invalid spec")
	}
}

func TestRun_SequentialUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ticker := &countingTicker{onTick: func(n int32) {
		if n == 3 {
			cancel()
		}
	}}
	logger, _ := test.NewNullLogger()
	s := NewPollScheduler(ticker, shortSchedule(time.Millisecond), logger)

	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("poll loop did not stop")
	}
	if got := atomic.LoadInt32(&ticker.calls); got != 3 {
		t.Fatalf("expected 3 cycles, got %d", got)
	}
	if atomic.LoadInt32(&ticker.overlap) != 0 {
		t.Fatalf("cycles overlapped")
	}
}

func TestRun_WaitsBetweenCycles(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ticker := &countingTicker{}
	logger, _ := test.NewNullLogger()
	s := NewPollScheduler(ticker, shortSchedule(time.Hour), logger)
	s.Start(ctx)

	time.Sleep(50 * time.Millisecond)
	s.Stop()

	if got := atomic.LoadInt32(&ticker.calls); got != 1 {
		t.Fatalf("expected exactly the immediate first cycle, got %d", got)
	}
}

func TestStartStop_Idempotent(t *testing.T) {
	logger, hook := test.NewNullLogger()
	s := NewPollScheduler(&countingTicker{}, shortSchedule(time.Hour), logger)

	s.Stop()
	if hook.LastEntry() == nil || hook.LastEntry().Message != "Poll scheduler not running" {
		t.Fatalf("expected not running message")
	}

	s.Start(context.Background())
	s.Start(context.Background())
	s.Stop()
	s.Stop()
}
