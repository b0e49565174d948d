// internal/infra/telegram/bot_commands_handler.go
package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"homework_status_bot/internal/app"
	"homework_status_bot/internal/domain/notification"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

const helpText = "I watch your homework reviews and write here when a status changes.\n\n" +
	"/status - poller state: cursor, last cycle, last error\n" +
	"/history [n] - last n poll cycles (default 5)\n" +
	"/help - show this message"

// StatusQuerier answers the status commands.
type StatusQuerier interface {
	Status(requestingChatID int64) (app.PollerStatus, error)
	History(ctx context.Context, requestingChatID int64, limit int) ([]*notification.Cycle, error)
}

func RegisterBotCommands(
	ctx context.Context,
	b *telebot.Bot,
	statusService StatusQuerier,
	baseLogger *logrus.Entry, // For contextual logging
) {
	cmdLogger := baseLogger.WithField("handler_group", "commands")

	b.Handle("/start", func(c telebot.Context) error {
		logCtx := cmdLogger.WithField("command", "/start").WithField("chat_id", c.Chat().ID)
		logCtx.Info("Processing /start command")
		if _, err := statusService.Status(c.Chat().ID); err != nil {
			logCtx.Warn("Unauthorized chat")
			return c.Send("This bot only reports to its owner chat.")
		}
		return c.Send("Hi! " + helpText)
	})

	b.Handle("/help", func(c telebot.Context) error {
		cmdLogger.WithField("command", "/help").WithField("chat_id", c.Chat().ID).Info("Processing /help command")
		return c.Send(helpText)
	})

	b.Handle("/status", func(c telebot.Context) error {
		logCtx := cmdLogger.WithField("command", "/status").WithField("chat_id", c.Chat().ID)
		logCtx.Info("Processing /status command")

		st, err := statusService.Status(c.Chat().ID)
		if err != nil {
			logCtx.WithError(err).Warn("Status request refused")
			return c.Send("Error: you are not allowed to use this command.")
		}
		return c.Send(FormatStatus(st))
	})

	b.Handle("/history", func(c telebot.Context) error {
		logCtx := cmdLogger.WithField("command", "/history").WithField("chat_id", c.Chat().ID)
		logCtx.Info("Processing /history command")

		limit := 0
		if args := c.Args(); len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n <= 0 {
				return c.Send("Usage: /history [n], n is a positive number.")
			}
			limit = n
		}

		cycles, err := statusService.History(ctx, c.Chat().ID, limit)
		switch {
		case errors.Is(err, app.ErrNotAuthorized):
			logCtx.Warn("History request refused")
			return c.Send("Error: you are not allowed to use this command.")
		case errors.Is(err, app.ErrJournalDisabled):
			return c.Send("Cycle history is disabled: no database configured.")
		case err != nil:
			logCtx.WithError(err).Error("Failed to load cycle history")
			return c.Send("Failed to load cycle history, try again later.")
		}
		return c.Send(FormatHistory(cycles))
	})
}

// FormatStatus renders the poller status as a chat message.
func FormatStatus(st app.PollerStatus) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Cursor: %d (%s)\n", st.Cursor, time.Unix(st.Cursor, 0).UTC().Format(time.RFC3339))
	if st.Cycles == 0 {
		sb.WriteString("No poll cycles yet.")
		return sb.String()
	}
	fmt.Fprintf(&sb, "Last cycle: %s, %s\n", st.LastCycleAt.UTC().Format(time.RFC3339), st.LastOutcome)
	fmt.Fprintf(&sb, "Cycles: %d, failed: %d", st.Cycles, st.Failures)
	if st.LastError != "" {
		fmt.Fprintf(&sb, "\nLast error: %s", st.LastError)
	}
	return sb.String()
}

// FormatHistory renders journal rows, one line per cycle.
func FormatHistory(cycles []*notification.Cycle) string {
	if len(cycles) == 0 {
		return "No poll cycles recorded yet."
	}
	var sb strings.Builder
	for i, c := range cycles {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%s %s from=%d items=%d sent=%d",
			c.StartedAt.UTC().Format("2006-01-02 15:04:05"), c.Outcome, c.From, c.Items, c.Notified)
		if c.Error != "" {
			fmt.Fprintf(&sb, " error=%q", c.Error)
		}
	}
	return sb.String()
}
