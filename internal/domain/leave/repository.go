package leave

import (
	"context"
	"time"
)

// GrantRepository - data access for persisted paid-leave grants. Historical
// grants are mostly projected by the ledger builder rather than stored; rows
// exist only for grants created through the management screen.
type GrantRepository interface {
	GetByID(ctx context.Context, id string) (Grant, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Grant, error)
	CountByEmployee(ctx context.Context, employeeID string) (int, error)
	Create(ctx context.Context, grant Grant) (Grant, error)
	Delete(ctx context.Context, id string) error
}

// UsageRepository - data access for explicit paid-leave usage records.
type UsageRepository interface {
	ListByEmployee(ctx context.Context, employeeID string, from, to *time.Time) ([]Usage, error)
	Create(ctx context.Context, usage Usage) (Usage, error)
	Delete(ctx context.Context, id string) error
}
