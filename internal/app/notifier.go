// internal/app/notifier.go
package app

import (
	"context"

	"homework_status_bot/internal/domain/homework"
	domainTelegram "homework_status_bot/internal/domain/telegram"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Notifier delivers text to a Telegram chat. Every delivery failure comes back
// as a homework.KindUnsendable error so callers never try to report it through
// the same broken channel.
type Notifier struct {
	telegramClient domainTelegram.Client
	limiter        *rate.Limiter
	logger         logrus.FieldLogger
}

// NewNotifier creates a Notifier. ratePerSec <= 0 disables throttling.
func NewNotifier(tc domainTelegram.Client, ratePerSec int, logger logrus.FieldLogger) *Notifier {
	n := &Notifier{
		telegramClient: tc,
		logger:         logger,
	}
	if ratePerSec > 0 {
		// Token bucket: burst = rate per sec, so short spikes don't block too hard.
		n.limiter = rate.NewLimiter(rate.Limit(ratePerSec), ratePerSec)
	}
	return n
}

// Notify sends text to chatID.
func (n *Notifier) Notify(ctx context.Context, chatID int64, text string) error {
	logCtx := n.logger.WithField("chat_id", chatID)
	logCtx.Debug("Trying to send message")

	if n.limiter != nil {
		if err := n.limiter.Wait(ctx); err != nil {
			return homework.Wrap(homework.KindUnsendable, err, "unable to send message")
		}
	}

	if err := n.telegramClient.SendMessage(chatID, text, nil); err != nil {
		return homework.Wrap(homework.KindUnsendable, err, "unable to send message")
	}

	logCtx.Debug("Bot has sent message successfully")
	return nil
}
