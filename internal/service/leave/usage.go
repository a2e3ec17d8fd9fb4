package leave

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/kintai-labs/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-labs/kintai-backend-go/internal/domain/leave"
	"github.com/shopspring/decimal"
)

// usageAggregator merges paid-leave consumption from its two sources: the
// explicit usage table and leave-marked attendance rows. The same
// (date, type) pair is counted once, with the explicit record winning.
type usageAggregator struct {
	usageRepo      leave.UsageRepository
	attendanceRepo attendance.AttendanceRepository
}

func usageKey(date time.Time, leaveType string) string {
	return date.Format("2006-01-02") + "_" + leaveType
}

// details returns the merged, deduplicated consumption entries in the window,
// newest first.
func (a *usageAggregator) details(ctx context.Context, employeeID string, from, to *time.Time) ([]leave.UsageDetail, error) {
	usages, err := a.usageRepo.ListByEmployee(ctx, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave usages: %w", err)
	}

	counted := make(map[string]bool, len(usages))
	details := make([]leave.UsageDetail, 0, len(usages))

	for _, u := range usages {
		counted[usageKey(u.Date, u.LeaveType)] = true
		details = append(details, leave.UsageDetail{
			Date: u.Date,
			Type: u.LeaveType,
			Days: u.Days,
			Note: u.Note,
		})
	}

	records, err := a.attendanceRepo.ListLeaveMarked(ctx, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave-marked attendance: %w", err)
	}

	for _, record := range records {
		leaveType := record.AbsenceReasonValue()
		days := leave.TypeDays(leaveType)
		if days.IsZero() {
			continue
		}
		if counted[usageKey(record.Date, leaveType)] {
			continue
		}
		counted[usageKey(record.Date, leaveType)] = true
		details = append(details, leave.UsageDetail{
			Date: record.Date,
			Type: leaveType,
			Days: days,
			Note: record.Note,
		})
	}

	sort.SliceStable(details, func(i, j int) bool {
		return details[i].Date.After(details[j].Date)
	})

	return details, nil
}

// total sums the merged consumption in the window.
func (a *usageAggregator) total(ctx context.Context, employeeID string, from, to *time.Time) (decimal.Decimal, error) {
	details, err := a.details(ctx, employeeID, from, to)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, d := range details {
		total = total.Add(d.Days)
	}
	return total, nil
}
