// internal/app/poller.go
package app

import (
	"context"
	"sync"
	"time"

	"homework_status_bot/internal/domain/homework"
	"homework_status_bot/internal/domain/notification"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const journalTimeout = 5 * time.Second

// Fetcher returns the raw decoded API body for homeworks updated since fromDate.
type Fetcher interface {
	Fetch(ctx context.Context, fromDate int64) (any, error)
}

// PollerConfig holds the poller settings resolved at startup.
type PollerConfig struct {
	ChatID   int64
	Language homework.Language
}

// PollerStatus is a point-in-time view of the poller for reporting.
type PollerStatus struct {
	Cursor      int64
	LastCycleAt time.Time
	LastOutcome notification.Outcome
	LastError   string
	Cycles      int
	Failures    int
}

// Poller runs fetch-validate-notify cycles. Cursor and the last notified error
// are only touched from the goroutine calling Tick or RunCycle.
type Poller struct {
	cfg       PollerConfig
	fetcher   Fetcher
	notifier  *Notifier
	formatter *homework.Formatter
	journal   notification.Repository // nil when the journal is disabled
	logger    logrus.FieldLogger

	cursor  int64
	lastErr error

	mu     sync.RWMutex
	status PollerStatus
}

func NewPoller(
	cfg PollerConfig,
	fetcher Fetcher,
	notifier *Notifier,
	journal notification.Repository,
	logger logrus.FieldLogger,
) *Poller {
	return &Poller{
		cfg:       cfg,
		fetcher:   fetcher,
		notifier:  notifier,
		formatter: homework.NewFormatter(cfg.Language),
		journal:   journal,
		logger:    logger,
	}
}

// Cursor returns the timestamp the next cycle will query from.
func (p *Poller) Cursor() int64 {
	return p.cursor
}

// Status returns a copy of the latest status; safe for concurrent use.
func (p *Poller) Status() PollerStatus {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.status
}

type cycleReport struct {
	currentDate int64
	items       int
	notified    int
}

// RunCycle performs one fetch-validate-notify cycle. The cursor moves to the
// response's current_date only when every homework was delivered; otherwise
// the next cycle asks for the same range again.
func (p *Poller) RunCycle(ctx context.Context) error {
	var rep cycleReport
	return p.runCycle(ctx, p.logger, &rep)
}

func (p *Poller) runCycle(ctx context.Context, logCtx logrus.FieldLogger, rep *cycleReport) error {
	payload, err := p.fetcher.Fetch(ctx, p.cursor)
	if err != nil {
		return err
	}

	result, err := homework.NewFetchResult(payload)
	if err != nil {
		return err
	}
	rep.currentDate = result.CurrentDate
	rep.items = len(result.Homeworks)

	if len(result.Homeworks) == 0 {
		logCtx.Debug("No updates in homeworks' statuses")
	}

	for _, item := range result.Homeworks {
		text, err := p.formatter.ParseStatus(item)
		if err != nil {
			return err
		}
		if err := p.notifier.Notify(ctx, p.cfg.ChatID, text); err != nil {
			return err
		}
		rep.notified++
	}

	p.cursor = result.CurrentDate
	return nil
}

// Tick runs one cycle and applies the error policy: failures are always
// logged, forwarded to the chat unless equal to the last forwarded error, and
// never forwarded when the chat itself is unreachable.
func (p *Poller) Tick(ctx context.Context) notification.Outcome {
	cycle := &notification.Cycle{
		ID:        uuid.New(),
		From:      p.cursor,
		StartedAt: time.Now(),
	}
	logCtx := p.logger.WithFields(logrus.Fields{
		"cycle_id":  cycle.ID.String(),
		"from_date": cycle.From,
	})
	logCtx.Debug("Starting poll cycle")

	var rep cycleReport
	err := p.runCycle(ctx, logCtx, &rep)
	outcome := p.handleCycleError(ctx, logCtx, err)

	cycle.CurrentDate = rep.currentDate
	cycle.Items = rep.items
	cycle.Notified = rep.notified
	cycle.Outcome = outcome
	cycle.FinishedAt = time.Now()
	if err != nil {
		cycle.Error = err.Error()
	}

	p.updateStatus(cycle)
	p.recordCycle(ctx, logCtx, cycle)
	return outcome
}

func (p *Poller) handleCycleError(ctx context.Context, logCtx logrus.FieldLogger, err error) notification.Outcome {
	if err == nil {
		logCtx.WithField("cursor", p.cursor).Debug("Poll cycle finished")
		return notification.OutcomeSucceeded
	}

	kind := homework.KindOf(err)
	logCtx = logCtx.WithError(err).WithField("kind", kind.String())

	if kind == homework.KindUnsendable {
		logCtx.Error("Unable to deliver message to chat")
		return notification.OutcomeUnsendable
	}

	logCtx.Error("An error has occurred")

	if homework.SameError(err, p.lastErr) {
		logCtx.Debug("Same error was already reported, notification suppressed")
		return notification.OutcomeSuppressed
	}

	p.lastErr = err
	if nerr := p.notifier.Notify(ctx, p.cfg.ChatID, err.Error()); nerr != nil {
		logCtx.WithField("notify_error", nerr.Error()).Error("Unable to report error to chat")
	}
	return notification.OutcomeFailed
}

func (p *Poller) updateStatus(cycle *notification.Cycle) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status.Cursor = p.cursor
	p.status.LastCycleAt = cycle.FinishedAt
	p.status.LastOutcome = cycle.Outcome
	p.status.Cycles++
	if cycle.Outcome != notification.OutcomeSucceeded {
		p.status.Failures++
		p.status.LastError = cycle.Error
	}
}

func (p *Poller) recordCycle(ctx context.Context, logCtx logrus.FieldLogger, cycle *notification.Cycle) {
	if p.journal == nil {
		return
	}
	// Still record the cycle that was interrupted by shutdown.
	jctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), journalTimeout)
	defer cancel()
	if err := p.journal.CreateCycle(jctx, cycle); err != nil {
		logCtx.WithError(err).Warn("Failed to record poll cycle")
	}
}
