package leave

import (
	"context"
)

// LeaveService defines business logic for paid-leave management.
type LeaveService interface {
	// Ledger builds the leave-management ledger for one employee: the yearly
	// summary (newest first), usage details and the current balance.
	Ledger(ctx context.Context, employeeID string, years int) (LedgerResponse, error)

	// Balance computes the current balance for one employee.
	Balance(ctx context.Context, employeeID string) (BalanceResponse, error)

	// AllBalances computes the balance summary for every active employee.
	AllBalances(ctx context.Context) ([]BalanceResponse, error)

	// CreateGrant records a manual grant; days default to the tenure table.
	CreateGrant(ctx context.Context, req CreateGrantRequest) (Grant, error)

	// CreateUsage records a consumption event.
	CreateUsage(ctx context.Context, req CreateUsageRequest) (Usage, error)

	// UsageDetails lists consumption entries over the ledger window.
	UsageDetails(ctx context.Context, employeeID string, years int) ([]UsageDetailResponse, error)
}
