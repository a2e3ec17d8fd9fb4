package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations.
type AttendanceService interface {
	// MonthlyReport computes the billing-period report: per-day breakdowns,
	// anomalies and the Article-36 monthly totals.
	MonthlyReport(ctx context.Context, req MonthlyReportRequest) (MonthlyReportResponse, error)

	// ListDays retrieves records in a date range with derived breakdowns.
	ListDays(ctx context.Context, filter ListFilter) ([]DayResponse, error)

	// Update applies a manual correction to one record.
	Update(ctx context.Context, req UpdateRequest) (DayResponse, error)

	// Import upserts a batch of pre-parsed time-card rows in a single
	// transaction. A storage failure aborts the whole batch; per-row
	// resolution failures are collected in the result.
	Import(ctx context.Context, req ImportRequest) (ImportResult, error)
}
