package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/kintai-labs/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-labs/kintai-backend-go/internal/domain/employee"
	"github.com/kintai-labs/kintai-backend-go/internal/domain/leave"
	"github.com/shopspring/decimal"
)

// defaultLedgerYears is how many fiscal years the ledger screen shows.
const defaultLedgerYears = 5

// Service implements leave.LeaveService.
type Service struct {
	employeeRepo employee.EmployeeRepository
	grantRepo    leave.GrantRepository
	usageRepo    leave.UsageRepository
	usage        *usageAggregator

	// now is swappable so ledger folds are reproducible in tests.
	now func() time.Time
}

// NewService creates a leave service.
func NewService(
	employeeRepo employee.EmployeeRepository,
	grantRepo leave.GrantRepository,
	usageRepo leave.UsageRepository,
	attendanceRepo attendance.AttendanceRepository,
) leave.LeaveService {
	return &Service{
		employeeRepo: employeeRepo,
		grantRepo:    grantRepo,
		usageRepo:    usageRepo,
		usage: &usageAggregator{
			usageRepo:      usageRepo,
			attendanceRepo: attendanceRepo,
		},
		now: time.Now,
	}
}

// Ledger builds the leave-management ledger for one employee.
func (s *Service) Ledger(ctx context.Context, employeeID string, years int) (leave.LedgerResponse, error) {
	if years <= 0 {
		years = defaultLedgerYears
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return leave.LedgerResponse{}, err
	}

	today := s.today()

	rows, displayStart, ok, err := s.buildLedger(ctx, emp, years, today)
	if err != nil {
		return leave.LedgerResponse{}, err
	}

	resp := leave.LedgerResponse{
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		Years:        []leave.LedgerEntryResponse{},
		UsageDetails: []leave.UsageDetailResponse{},
	}
	eligible, err := s.firstGrantEligible(ctx, emp, today)
	if err != nil {
		return leave.LedgerResponse{}, err
	}

	if !ok {
		resp.Balance = s.toBalanceResponse(emp, currentBalance(emp, nil, false, today), today)
		resp.Balance.EligibleForFirstGrant = eligible
		return resp, nil
	}

	// Trim the fold to the display window, newest year first.
	for i := len(rows) - 1; i >= 0; i-- {
		entry := rows[i].entry
		if entry.PeriodStart.Before(displayStart) {
			continue
		}
		resp.Years = append(resp.Years, toLedgerEntryResponse(entry))
	}

	details, err := s.usage.details(ctx, emp.ID, &displayStart, &today)
	if err != nil {
		return leave.LedgerResponse{}, err
	}
	for _, d := range details {
		resp.UsageDetails = append(resp.UsageDetails, toUsageDetailResponse(d))
	}

	resp.Balance = s.toBalanceResponse(emp, currentBalance(emp, rows, true, today), today)
	resp.Balance.EligibleForFirstGrant = eligible

	return resp, nil
}

// Balance computes the current balance for one employee.
func (s *Service) Balance(ctx context.Context, employeeID string) (leave.BalanceResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return leave.BalanceResponse{}, err
	}
	return s.balanceFor(ctx, emp)
}

// AllBalances computes the balance summary for every active employee.
func (s *Service) AllBalances(ctx context.Context) ([]leave.BalanceResponse, error) {
	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}

	balances := make([]leave.BalanceResponse, 0, len(employees))
	for _, emp := range employees {
		balance, err := s.balanceFor(ctx, emp)
		if err != nil {
			return nil, err
		}
		balances = append(balances, balance)
	}
	return balances, nil
}

func (s *Service) balanceFor(ctx context.Context, emp employee.Employee) (leave.BalanceResponse, error) {
	today := s.today()

	// A one-year window still folds from the anchor, so the balance sees the
	// entire derivable history.
	rows, _, ok, err := s.buildLedger(ctx, emp, 1, today)
	if err != nil {
		return leave.BalanceResponse{}, err
	}
	resp := s.toBalanceResponse(emp, currentBalance(emp, rows, ok, today), today)
	resp.EligibleForFirstGrant, err = s.firstGrantEligible(ctx, emp, today)
	if err != nil {
		return leave.BalanceResponse{}, err
	}
	return resp, nil
}

// CreateGrant records a manual grant; days default to the tenure table.
func (s *Service) CreateGrant(ctx context.Context, req leave.CreateGrantRequest) (leave.Grant, error) {
	if err := req.Validate(); err != nil {
		return leave.Grant{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return leave.Grant{}, err
	}

	grantDate, err := time.Parse("2006-01-02", req.GrantDate)
	if err != nil {
		return leave.Grant{}, fmt.Errorf("failed to parse grant date: %w", err)
	}

	var days decimal.Decimal
	if req.Days != nil {
		days, err = decimal.NewFromString(*req.Days)
		if err != nil {
			return leave.Grant{}, leave.ErrInvalidDays
		}
	} else {
		days = decimal.NewFromInt(int64(GrantDays(emp.HireDate, grantDate, UsesOldRule(emp))))
		if days.IsZero() {
			return leave.Grant{}, leave.ErrNoGrantReference
		}
	}

	grant, err := s.grantRepo.Create(ctx, leave.Grant{
		EmployeeID:      emp.ID,
		GrantDate:       grantDate,
		DaysGranted:     days,
		FiscalYearStart: grantDate,
		ExpiresAt:       grantDate.AddDate(leave.ExpirationYears, 0, 0),
		Note:            req.Note,
	})
	if err != nil {
		return leave.Grant{}, fmt.Errorf("failed to create leave grant: %w", err)
	}
	return grant, nil
}

// CreateUsage records a consumption event. A second record for the same
// employee, date and type is rejected so the ledger never double-counts.
func (s *Service) CreateUsage(ctx context.Context, req leave.CreateUsageRequest) (leave.Usage, error) {
	if err := req.Validate(); err != nil {
		return leave.Usage{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return leave.Usage{}, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return leave.Usage{}, fmt.Errorf("failed to parse usage date: %w", err)
	}

	existing, err := s.usageRepo.ListByEmployee(ctx, emp.ID, &date, &date)
	if err != nil {
		return leave.Usage{}, fmt.Errorf("failed to check existing usage: %w", err)
	}
	for _, u := range existing {
		if u.LeaveType == req.LeaveType {
			return leave.Usage{}, leave.ErrDuplicateUsage
		}
	}

	usage, err := s.usageRepo.Create(ctx, leave.Usage{
		EmployeeID: emp.ID,
		Date:       date,
		LeaveType:  req.LeaveType,
		Days:       leave.TypeDays(req.LeaveType),
		Note:       req.Note,
	})
	if err != nil {
		return leave.Usage{}, fmt.Errorf("failed to create leave usage: %w", err)
	}
	return usage, nil
}

// UsageDetails lists consumption entries over the ledger window.
func (s *Service) UsageDetails(ctx context.Context, employeeID string, years int) ([]leave.UsageDetailResponse, error) {
	if years <= 0 {
		years = defaultLedgerYears
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	today := s.today()

	var from *time.Time
	if _, displayStart, ok, err := s.buildLedger(ctx, emp, years, today); err != nil {
		return nil, err
	} else if ok {
		from = &displayStart
	}

	details, err := s.usage.details(ctx, emp.ID, from, &today)
	if err != nil {
		return nil, err
	}

	resp := make([]leave.UsageDetailResponse, 0, len(details))
	for _, d := range details {
		resp = append(resp, toUsageDetailResponse(d))
	}
	return resp, nil
}

// firstGrantEligible reports whether the employee passed the six-month mark
// without any persisted grant on record.
func (s *Service) firstGrantEligible(ctx context.Context, emp employee.Employee, today time.Time) (bool, error) {
	if emp.HireDate == nil {
		return false, nil
	}
	if today.Before(emp.HireDate.AddDate(0, 6, 0)) {
		return false, nil
	}

	count, err := s.grantRepo.CountByEmployee(ctx, emp.ID)
	if err != nil {
		return false, fmt.Errorf("failed to count leave grants: %w", err)
	}
	return count == 0, nil
}

func (s *Service) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// nextGrantDate returns the employee's next grant anniversary after today.
func nextGrantDate(emp employee.Employee, today time.Time) *time.Time {
	eff := emp.EffectiveLeaveGrantDate()
	if eff == nil {
		return nil
	}

	next := *eff
	for !next.After(today) {
		next = next.AddDate(1, 0, 0)
	}
	return &next
}

func (s *Service) toBalanceResponse(emp employee.Employee, balance leave.Balance, today time.Time) leave.BalanceResponse {
	resp := leave.BalanceResponse{
		EmployeeID:     emp.ID,
		EmployeeName:   emp.Name,
		TotalGranted:   balance.TotalGranted.String(),
		TotalUsed:      balance.TotalUsed.String(),
		TotalRemaining: balance.TotalRemaining.String(),
		IsAtMax:        balance.IsAtMax,
	}
	if next := nextGrantDate(emp, today); next != nil {
		formatted := next.Format("2006-01-02")
		resp.NextGrantDate = &formatted
	}
	for _, g := range balance.Grants {
		resp.Grants = append(resp.Grants, leave.GrantProjectionResponse{
			GrantDate:      g.GrantDate.Format("2006-01-02"),
			DaysGranted:    g.DaysGranted.String(),
			ExpiresAt:      g.ExpiresAt.Format("2006-01-02"),
			IsExpiringSoon: g.IsExpiringSoon,
		})
	}
	return resp
}

func toLedgerEntryResponse(entry leave.LedgerEntry) leave.LedgerEntryResponse {
	return leave.LedgerEntryResponse{
		FiscalYear:  entry.FiscalYear,
		PeriodStart: entry.PeriodStart.Format("2006-01-02"),
		PeriodEnd:   entry.PeriodEnd.Format("2006-01-02"),
		Carryover:   entry.Carryover.String(),
		Granted:     entry.Granted.String(),
		Usage:       entry.Usage.String(),
		Remaining:   entry.Remaining.String(),
	}
}

func toUsageDetailResponse(d leave.UsageDetail) leave.UsageDetailResponse {
	return leave.UsageDetailResponse{
		Date: d.Date.Format("2006-01-02"),
		Type: leave.TypeLabel(d.Type),
		Days: d.Days.String(),
		Note: d.Note,
	}
}
