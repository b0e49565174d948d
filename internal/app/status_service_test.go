package app

import (
	"context"
	"errors"
	"testing"

	"homework_status_bot/internal/domain/notification"

	"github.com/google/uuid"
)

type staticStatus PollerStatus

func (s staticStatus) Status() PollerStatus { return PollerStatus(s) }

func TestStatusService_Status(t *testing.T) {
	svc := NewStatusService(staticStatus{Cursor: 100, Cycles: 3}, nil, testChatID)

	st, err := svc.Status(testChatID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.Cursor != 100 || st.Cycles != 3 {
		t.Fatalf("unexpected status %+v", st)
	}

	if _, err := svc.Status(testChatID + 1); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got %v", err)
	}
}

func TestStatusService_HistoryDisabled(t *testing.T) {
	svc := NewStatusService(staticStatus{}, nil, testChatID)
	if _, err := svc.History(context.Background(), testChatID, 5); !errors.Is(err, ErrJournalDisabled) {
		t.Fatalf("expected ErrJournalDisabled, got %v", err)
	}
}

func TestStatusService_HistoryLimits(t *testing.T) {
	journal := &fakeJournal{}
	for i := 0; i < 30; i++ {
		journal.cycles = append(journal.cycles, &notification.Cycle{ID: uuid.New(), From: int64(i)})
	}
	svc := NewStatusService(staticStatus{}, journal, testChatID)

	cases := map[int]int{0: DefaultHistoryLimit, -3: DefaultHistoryLimit, 7: 7, 100: MaxHistoryLimit}
	for limit, want := range cases {
		cycles, err := svc.History(context.Background(), testChatID, limit)
		if err != nil {
			t.Fatalf("limit %d: unexpected error: %v", limit, err)
		}
		if len(cycles) != want {
			t.Fatalf("limit %d: expected %d cycles, got %d", limit, want, len(cycles))
		}
		if cycles[0].From != 29 {
			t.Fatalf("limit %d: expected newest first, got from=%d", limit, cycles[0].From)
		}
	}

	if _, err := svc.History(context.Background(), 1, 5); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got %v", err)
	}
}
