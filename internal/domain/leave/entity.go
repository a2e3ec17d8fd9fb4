package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

// Statutory limits on annual paid leave.
const (
	// MaxCarryoverDays caps the balance rolled into the next fiscal year.
	MaxCarryoverDays = 20
	// MaxTotalDays caps the balance itself (20 current + 20 carryover).
	MaxTotalDays = 40
	// ExpirationYears is the statutory life of a grant.
	ExpirationYears = 2
)

// Leave types shared by usage records and attendance absence reasons.
const (
	TypePaidLeave   = "paid_leave"
	TypeAMHalfLeave = "am_half_leave"
	TypePMHalfLeave = "pm_half_leave"
)

// TypeDays maps a leave type to the days it consumes.
func TypeDays(leaveType string) decimal.Decimal {
	switch leaveType {
	case TypePaidLeave:
		return decimal.NewFromInt(1)
	case TypeAMHalfLeave, TypePMHalfLeave:
		return decimal.NewFromFloat(0.5)
	default:
		return decimal.Zero
	}
}

// TypeLabel returns the display label for a leave type.
func TypeLabel(leaveType string) string {
	switch leaveType {
	case TypePaidLeave:
		return "全休"
	case TypeAMHalfLeave:
		return "午前半休"
	case TypePMHalfLeave:
		return "午後半休"
	default:
		return leaveType
	}
}

// Grant is one paid-leave grant event. FiscalYearStart equals the grant date
// and ExpiresAt is the grant date plus two years.
type Grant struct {
	ID              string          `json:"id"`
	EmployeeID      string          `json:"employee_id"`
	GrantDate       time.Time       `json:"grant_date"`
	DaysGranted     decimal.Decimal `json:"days_granted"`
	FiscalYearStart time.Time       `json:"fiscal_year_start"`
	ExpiresAt       time.Time       `json:"expires_at"`
	Note            *string         `json:"note,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Usage is one paid-leave consumption event: a full day (1.0) or half day (0.5).
type Usage struct {
	ID         string          `json:"id"`
	EmployeeID string          `json:"employee_id"`
	Date       time.Time       `json:"date"`
	LeaveType  string          `json:"leave_type"`
	Days       decimal.Decimal `json:"days"`
	Note       *string         `json:"note,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// LedgerEntry is one fiscal year of the derived leave ledger.
// Remaining = min(40, max(0, Carryover + Granted - Usage)); the next year
// carries min(20, Remaining).
type LedgerEntry struct {
	FiscalYear  string
	PeriodStart time.Time
	PeriodEnd   time.Time
	Carryover   decimal.Decimal
	Granted     decimal.Decimal
	Usage       decimal.Decimal
	Remaining   decimal.Decimal
}

// GrantProjection is an unexpired grant as shown on the balance screens;
// projected from the ledger, not necessarily persisted.
type GrantProjection struct {
	GrantDate      time.Time
	DaysGranted    decimal.Decimal
	ExpiresAt      time.Time
	IsExpiringSoon bool
}

// Balance is the current-balance summary for one employee.
type Balance struct {
	TotalGranted   decimal.Decimal
	TotalUsed      decimal.Decimal
	TotalRemaining decimal.Decimal
	Grants         []GrantProjection
	IsAtMax        bool
}

// UsageDetail is one dated consumption entry for the usage listing, merged
// from the explicit usage table and leave-marked attendance rows.
type UsageDetail struct {
	Date time.Time
	Type string
	Days decimal.Decimal
	Note *string
}
