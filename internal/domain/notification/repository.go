// internal/domain/notification/repository.go
package notification

import (
	"context"
)

// Repository is an append-only journal of poll cycles.
type Repository interface {
	CreateCycle(ctx context.Context, cycle *Cycle) error
	ListRecentCycles(ctx context.Context, limit int) ([]*Cycle, error)
}
