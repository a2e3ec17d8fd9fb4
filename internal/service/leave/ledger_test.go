package leave

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kintai-labs/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-labs/kintai-backend-go/internal/domain/employee"
	"github.com/kintai-labs/kintai-backend-go/internal/domain/leave"
)

// In-memory fakes. Only the methods the ledger path touches do real work.

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) ListActive(_ context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range f.employees {
		out = append(out, emp)
	}
	return out, nil
}

func (f *fakeEmployeeRepo) FindByCodeNameOrCard(_ context.Context, _, _, _ string) (*employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	return emp, nil
}

func (f *fakeEmployeeRepo) UpdateLeaveFields(_ context.Context, _ employee.Employee) error {
	return nil
}

type fakeGrantRepo struct {
	grants []leave.Grant
}

func (f *fakeGrantRepo) GetByID(_ context.Context, _ string) (leave.Grant, error) {
	return leave.Grant{}, leave.ErrGrantNotFound
}

func (f *fakeGrantRepo) ListByEmployee(_ context.Context, employeeID string) ([]leave.Grant, error) {
	var out []leave.Grant
	for _, g := range f.grants {
		if g.EmployeeID == employeeID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeGrantRepo) CountByEmployee(_ context.Context, employeeID string) (int, error) {
	grants, _ := f.ListByEmployee(context.Background(), employeeID)
	return len(grants), nil
}

func (f *fakeGrantRepo) Create(_ context.Context, grant leave.Grant) (leave.Grant, error) {
	grant.ID = "grant-fake"
	f.grants = append(f.grants, grant)
	return grant, nil
}

func (f *fakeGrantRepo) Delete(_ context.Context, _ string) error { return nil }

type fakeUsageRepo struct {
	usages []leave.Usage
}

func (f *fakeUsageRepo) ListByEmployee(_ context.Context, employeeID string, from, to *time.Time) ([]leave.Usage, error) {
	var out []leave.Usage
	for _, u := range f.usages {
		if u.EmployeeID != employeeID {
			continue
		}
		if from != nil && u.Date.Before(*from) {
			continue
		}
		if to != nil && u.Date.After(*to) {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUsageRepo) Create(_ context.Context, usage leave.Usage) (leave.Usage, error) {
	usage.ID = "usage-fake"
	f.usages = append(f.usages, usage)
	return usage, nil
}

func (f *fakeUsageRepo) Delete(_ context.Context, _ string) error { return nil }

type fakeAttendanceRepo struct {
	records []attendance.Attendance
}

func (f *fakeAttendanceRepo) GetByID(_ context.Context, _ string) (attendance.Attendance, error) {
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, _ string, _ time.Time) (*attendance.Attendance, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) ListByEmployeeAndRange(_ context.Context, _ string, _, _ time.Time) ([]attendance.Attendance, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) Upsert(_ context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	return att, nil
}

func (f *fakeAttendanceRepo) Update(_ context.Context, _ attendance.Attendance) error { return nil }

func (f *fakeAttendanceRepo) ListLeaveMarked(_ context.Context, employeeID string, from, to *time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, r := range f.records {
		if r.EmployeeID != employeeID {
			continue
		}
		reason := r.AbsenceReasonValue()
		if reason != attendance.AbsencePaidLeave && reason != attendance.AbsenceAMHalfLeave && reason != attendance.AbsencePMHalfLeave {
			continue
		}
		if from != nil && r.Date.Before(*from) {
			continue
		}
		if to != nil && r.Date.After(*to) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func newTestService(emp employee.Employee, grants *fakeGrantRepo, usages *fakeUsageRepo, atts *fakeAttendanceRepo) *Service {
	if grants == nil {
		grants = &fakeGrantRepo{}
	}
	if usages == nil {
		usages = &fakeUsageRepo{}
	}
	if atts == nil {
		atts = &fakeAttendanceRepo{}
	}

	svc := NewService(
		&fakeEmployeeRepo{employees: map[string]employee.Employee{emp.ID: emp}},
		grants,
		usages,
		atts,
	).(*Service)
	svc.now = func() time.Time { return date(2025, time.June, 1) }
	return svc
}

func decp(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func migratedEmployee(initialBalance string) employee.Employee {
	return employee.Employee{
		ID:                   "emp-1",
		Name:                 "山田太郎",
		HireDate:             datep(2017, time.January, 1),
		LeaveGrantDate:       datep(2023, time.October, 1),
		InitialLeaveBalance:  decp(initialBalance),
		InitialLeaveDate:     datep(2023, time.October, 1),
		InitialLeaveImported: true,
	}
}

func TestLedger_AnchorYearSplitsBalanceOverTwenty(t *testing.T) {
	// A migrated balance of 25 enters the anchor year as 20 granted that
	// year plus 5 carried from the years before the snapshot.
	svc := newTestService(migratedEmployee("25"), nil, nil, nil)

	resp, err := svc.Ledger(context.Background(), "emp-1", 5)
	require.NoError(t, err)
	require.Len(t, resp.Years, 5)

	// Newest first: 2024 is the current fiscal year.
	assert.Equal(t, "2024年度", resp.Years[0].FiscalYear)

	anchor := resp.Years[1]
	assert.Equal(t, "2023年度", anchor.FiscalYear)
	assert.Equal(t, "2023-10-01", anchor.PeriodStart)
	assert.Equal(t, "2024-09-30", anchor.PeriodEnd)
	assert.Equal(t, "20", anchor.Granted)
	assert.Equal(t, "5", anchor.Carryover)
	assert.Equal(t, "25", anchor.Remaining)

	// 2017-01-01 hire reaches the top table step well before 2024, so the
	// current year grants 20 on top of the carried 25, capped at 40.
	current := resp.Years[0]
	assert.Equal(t, "20", current.Carryover)
	assert.Equal(t, "20", current.Granted)
	assert.Equal(t, "40", current.Remaining)

	// Years before the anchor are unknowable and stay zero.
	assert.Equal(t, "0", resp.Years[2].Granted)
	assert.Equal(t, "0", resp.Years[2].Carryover)
}

func TestLedger_AnchorYearAtMaximumBalance(t *testing.T) {
	svc := newTestService(migratedEmployee("40"), nil, nil, nil)

	resp, err := svc.Ledger(context.Background(), "emp-1", 5)
	require.NoError(t, err)

	anchor := resp.Years[1]
	assert.Equal(t, "20", anchor.Granted)
	assert.Equal(t, "20", anchor.Carryover)
	assert.Equal(t, "40", anchor.Remaining)
}

func TestLedger_AnchorYearBalanceUnderTwenty(t *testing.T) {
	svc := newTestService(migratedEmployee("15.5"), nil, nil, nil)

	resp, err := svc.Ledger(context.Background(), "emp-1", 5)
	require.NoError(t, err)

	anchor := resp.Years[1]
	assert.Equal(t, "0", anchor.Granted)
	assert.Equal(t, "15.5", anchor.Carryover)
	assert.Equal(t, "15.5", anchor.Remaining)
}

func TestLedger_DeduplicatesUsageSources(t *testing.T) {
	// The same full day recorded both explicitly and on the attendance row
	// counts once; the half day only on attendance still counts.
	usages := &fakeUsageRepo{usages: []leave.Usage{
		{
			EmployeeID: "emp-1",
			Date:       date(2024, time.November, 1),
			LeaveType:  leave.TypePaidLeave,
			Days:       decimal.NewFromInt(1),
		},
	}}
	atts := &fakeAttendanceRepo{records: []attendance.Attendance{
		{
			EmployeeID:    "emp-1",
			Date:          date(2024, time.November, 1),
			DayType:       attendance.DayTypeWeekday,
			AbsenceReason: strp(attendance.AbsencePaidLeave),
		},
		{
			EmployeeID:    "emp-1",
			Date:          date(2024, time.November, 5),
			DayType:       attendance.DayTypeWeekday,
			AbsenceReason: strp(attendance.AbsenceAMHalfLeave),
		},
	}}

	svc := newTestService(migratedEmployee("25"), nil, usages, atts)

	resp, err := svc.Ledger(context.Background(), "emp-1", 5)
	require.NoError(t, err)

	current := resp.Years[0]
	assert.Equal(t, "1.5", current.Usage)
	assert.Equal(t, "38.5", current.Remaining)

	require.Len(t, resp.UsageDetails, 2)
	assert.Equal(t, "2024-11-05", resp.UsageDetails[0].Date)
	assert.Equal(t, "午前半休", resp.UsageDetails[0].Type)
	assert.Equal(t, "2024-11-01", resp.UsageDetails[1].Date)
	assert.Equal(t, "全休", resp.UsageDetails[1].Type)
}

func TestLedger_CarryoverCappedAtTwenty(t *testing.T) {
	// Remaining 25 in the anchor year carries only 20 into the next.
	svc := newTestService(migratedEmployee("25"), nil, nil, nil)

	resp, err := svc.Ledger(context.Background(), "emp-1", 5)
	require.NoError(t, err)

	assert.Equal(t, "25", resp.Years[1].Remaining)
	assert.Equal(t, "20", resp.Years[0].Carryover)
}

func TestLedger_HireDateMode(t *testing.T) {
	emp := employee.Employee{
		ID:       "emp-2",
		Name:     "佐藤花子",
		HireDate: datep(2024, time.January, 1),
	}
	svc := newTestService(emp, nil, nil, nil)

	resp, err := svc.Ledger(context.Background(), "emp-2", 5)
	require.NoError(t, err)
	require.NotEmpty(t, resp.Years)

	// First statutory grant: 2024-07-01, six whole months of service, 10 days.
	current := resp.Years[0]
	assert.Equal(t, "2024年度", current.FiscalYear)
	assert.Equal(t, "2024-07-01", current.PeriodStart)
	assert.Equal(t, "10", current.Granted)
	assert.Equal(t, "0", current.Carryover)
	assert.Equal(t, "10", current.Remaining)
}

func TestLedger_NoAnniversaryYieldsEmptyLedger(t *testing.T) {
	emp := employee.Employee{ID: "emp-3", Name: "新人"}
	svc := newTestService(emp, nil, nil, nil)

	resp, err := svc.Ledger(context.Background(), "emp-3", 5)
	require.NoError(t, err)

	assert.Empty(t, resp.Years)
	assert.Equal(t, "0", resp.Balance.TotalRemaining)
}

func TestBalance_FromMigratedLedger(t *testing.T) {
	svc := newTestService(migratedEmployee("25"), nil, nil, nil)

	resp, err := svc.Balance(context.Background(), "emp-1")
	require.NoError(t, err)

	// Snapshot 25 plus the 2024 grant of 20.
	assert.Equal(t, "45", resp.TotalGranted)
	assert.Equal(t, "0", resp.TotalUsed)
	assert.Equal(t, "40", resp.TotalRemaining)
	assert.True(t, resp.IsAtMax)

	require.NotNil(t, resp.NextGrantDate)
	assert.Equal(t, "2025-10-01", *resp.NextGrantDate)
}

func TestBalance_ZeroBeforeFirstGrant(t *testing.T) {
	// Hired four months ago: the statutory first grant is still two months
	// out, so nothing is granted yet.
	emp := employee.Employee{
		ID:       "emp-1",
		Name:     "新井一郎",
		HireDate: datep(2025, time.February, 1),
	}
	svc := newTestService(emp, nil, nil, nil)

	resp, err := svc.Balance(context.Background(), "emp-1")
	require.NoError(t, err)

	assert.Equal(t, "0", resp.TotalGranted)
	assert.Equal(t, "0", resp.TotalRemaining)
	assert.False(t, resp.IsAtMax)
	assert.Empty(t, resp.Grants)
}

func TestBalance_InitialBalanceWithoutAnniversary(t *testing.T) {
	// A migrated snapshot with no hire date and no grant date has no fiscal
	// years to fold; the snapshot itself stands as the balance.
	emp := employee.Employee{
		ID:                   "emp-1",
		Name:                 "移行花子",
		InitialLeaveBalance:  decp("12.5"),
		InitialLeaveImported: true,
	}
	svc := newTestService(emp, nil, nil, nil)

	resp, err := svc.Balance(context.Background(), "emp-1")
	require.NoError(t, err)

	assert.Equal(t, "12.5", resp.TotalGranted)
	assert.Equal(t, "0", resp.TotalUsed)
	assert.Equal(t, "12.5", resp.TotalRemaining)
	assert.False(t, resp.IsAtMax)
}

func TestBalance_GrantKeptOnExpiryDay(t *testing.T) {
	svc := newTestService(migratedEmployee("25"), nil, nil, nil)
	// Evaluated on the anchor grant's exact expiry day.
	svc.now = func() time.Time { return date(2025, time.October, 1) }

	resp, err := svc.Balance(context.Background(), "emp-1")
	require.NoError(t, err)

	require.NotEmpty(t, resp.Grants)
	first := resp.Grants[0]
	assert.Equal(t, "2023-10-01", first.GrantDate)
	assert.Equal(t, "2025-10-01", first.ExpiresAt)
	assert.True(t, first.IsExpiringSoon)
}

func TestBalance_FirstGrantEligibility(t *testing.T) {
	// Hired eight months ago with nothing on record: flagged for the first
	// grant.
	emp := employee.Employee{
		ID:       "emp-1",
		Name:     "佐藤花子",
		HireDate: datep(2024, time.October, 1),
	}
	svc := newTestService(emp, nil, nil, nil)

	resp, err := svc.Balance(context.Background(), "emp-1")
	require.NoError(t, err)
	assert.True(t, resp.EligibleForFirstGrant)

	// A persisted grant clears the flag.
	grants := &fakeGrantRepo{grants: []leave.Grant{{
		ID:          "grant-1",
		EmployeeID:  "emp-1",
		GrantDate:   date(2025, time.April, 1),
		DaysGranted: decimal.NewFromInt(10),
	}}}
	svc = newTestService(emp, grants, nil, nil)

	resp, err = svc.Balance(context.Background(), "emp-1")
	require.NoError(t, err)
	assert.False(t, resp.EligibleForFirstGrant)

	// Six months not yet reached.
	emp.HireDate = datep(2025, time.February, 1)
	svc = newTestService(emp, nil, nil, nil)

	resp, err = svc.Balance(context.Background(), "emp-1")
	require.NoError(t, err)
	assert.False(t, resp.EligibleForFirstGrant)
}

func TestCreateUsage_RejectsDuplicate(t *testing.T) {
	usages := &fakeUsageRepo{}
	svc := newTestService(migratedEmployee("25"), nil, usages, nil)

	req := leave.CreateUsageRequest{
		EmployeeID: "emp-1",
		Date:       "2025-05-01",
		LeaveType:  leave.TypePaidLeave,
	}

	_, err := svc.CreateUsage(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.CreateUsage(context.Background(), req)
	assert.ErrorIs(t, err, leave.ErrDuplicateUsage)

	// A different type on the same date is a separate event.
	req.LeaveType = leave.TypeAMHalfLeave
	_, err = svc.CreateUsage(context.Background(), req)
	assert.NoError(t, err)
}

func TestCreateGrant_DefaultsToTenureTable(t *testing.T) {
	grants := &fakeGrantRepo{}
	svc := newTestService(migratedEmployee("25"), grants, nil, nil)

	grant, err := svc.CreateGrant(context.Background(), leave.CreateGrantRequest{
		EmployeeID: "emp-1",
		GrantDate:  "2024-10-01",
	})
	require.NoError(t, err)

	// Old rule applies (grant date sits on the hire anniversary side), with
	// tenure far past the top step.
	assert.Equal(t, "20", grant.DaysGranted.String())
	assert.Equal(t, date(2026, time.October, 1), grant.ExpiresAt)
}

func strp(s string) *string {
	return &s
}
