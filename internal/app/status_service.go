package app

import (
	"context"
	"errors"
	"fmt"

	"homework_status_bot/internal/domain/notification"
)

// Custom application-level errors for the status service
var ErrNotAuthorized = errors.New("chat is not authorized to query the bot")
var ErrJournalDisabled = errors.New("cycle journal is not configured")

const (
	DefaultHistoryLimit = 5
	MaxHistoryLimit     = 20
)

// StatusProvider exposes the current poller status.
type StatusProvider interface {
	Status() PollerStatus
}

// StatusService answers status queries coming from the configured chat.
type StatusService struct {
	poller  StatusProvider
	journal notification.Repository
	chatID  int64
}

func NewStatusService(p StatusProvider, journal notification.Repository, chatID int64) *StatusService {
	return &StatusService{
		poller:  p,
		journal: journal,
		chatID:  chatID,
	}
}

// Status returns the poller status if requestingChatID is the configured chat.
func (s *StatusService) Status(requestingChatID int64) (PollerStatus, error) {
	if requestingChatID != s.chatID {
		return PollerStatus{}, ErrNotAuthorized
	}
	return s.poller.Status(), nil
}

// History returns up to limit most recent journal entries, newest first.
// A non-positive limit means DefaultHistoryLimit; larger than MaxHistoryLimit is clamped.
func (s *StatusService) History(ctx context.Context, requestingChatID int64, limit int) ([]*notification.Cycle, error) {
	if requestingChatID != s.chatID {
		return nil, ErrNotAuthorized
	}
	if s.journal == nil {
		return nil, ErrJournalDisabled
	}

	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	cycles, err := s.journal.ListRecentCycles(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent cycles: %w", err)
	}
	return cycles, nil
}
