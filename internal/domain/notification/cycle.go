// internal/domain/notification/cycle.go
package notification

import (
	"time"

	"github.com/google/uuid"
)

// Cycle is one fetch-validate-notify run of the poller.
// Corresponds to the 'poll_cycles' table.
type Cycle struct {
	ID          uuid.UUID
	From        int64 // cursor the API was queried with
	CurrentDate int64 // current_date returned by the API, 0 if the cycle failed before validation
	Items       int   // homeworks received
	Notified    int   // status messages delivered
	Outcome     Outcome
	Error       string
	StartedAt   time.Time
	FinishedAt  time.Time
}
