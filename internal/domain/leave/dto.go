package leave

import (
	"github.com/kintai-labs/kintai-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// LEAVE DTOs
// ========================================

// CreateGrantRequest records a manual grant. Days defaults to the tenure
// table when omitted.
type CreateGrantRequest struct {
	EmployeeID string  `json:"employee_id"`
	GrantDate  string  `json:"grant_date"`
	Days       *string `json:"days,omitempty"`
	Note       *string `json:"note,omitempty"`
}

func (r *CreateGrantRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if !validator.IsValidDate(r.GrantDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "grant_date",
			Message: "grant_date must be in YYYY-MM-DD format",
		})
	}
	if r.Days != nil {
		days, err := decimal.NewFromString(*r.Days)
		if err != nil || days.IsNegative() || days.GreaterThan(decimal.NewFromInt(MaxTotalDays)) {
			errs = append(errs, validator.ValidationError{
				Field:   "days",
				Message: "days must be a decimal between 0 and 40",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CreateUsageRequest records a consumption event.
type CreateUsageRequest struct {
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`
	LeaveType  string  `json:"leave_type"`
	Note       *string `json:"note,omitempty"`
}

func (r *CreateUsageRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if !validator.IsValidDate(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}
	switch r.LeaveType {
	case TypePaidLeave, TypeAMHalfLeave, TypePMHalfLeave:
	default:
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must be paid_leave, am_half_leave or pm_half_leave",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// LedgerEntryResponse is one fiscal year as the ledger screen and the print
// view render it. Decimal amounts are serialized as strings to keep the 0.5
// granularity exact.
type LedgerEntryResponse struct {
	FiscalYear  string `json:"fiscal_year"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	Carryover   string `json:"carryover"`
	Granted     string `json:"granted"`
	Usage       string `json:"usage"`
	Remaining   string `json:"remaining"`
}

// GrantProjectionResponse is an unexpired grant on the balance screen.
type GrantProjectionResponse struct {
	GrantDate      string `json:"grant_date"`
	DaysGranted    string `json:"days_granted"`
	ExpiresAt      string `json:"expires_at"`
	IsExpiringSoon bool   `json:"is_expiring_soon"`
}

// BalanceResponse is the current-balance summary for one employee.
type BalanceResponse struct {
	EmployeeID     string                    `json:"employee_id"`
	EmployeeName   string                    `json:"employee_name,omitempty"`
	TotalGranted   string                    `json:"total_granted"`
	TotalUsed      string                    `json:"total_used"`
	TotalRemaining string                    `json:"total_remaining"`
	IsAtMax        bool                      `json:"is_at_max"`
	NextGrantDate  *string                   `json:"next_grant_date,omitempty"`
	Grants         []GrantProjectionResponse `json:"grants,omitempty"`

	// EligibleForFirstGrant flags employees past the six-month mark with no
	// grant on record yet, so the roster view can surface them.
	EligibleForFirstGrant bool `json:"eligible_for_first_grant"`
}

// UsageDetailResponse is one dated consumption entry.
type UsageDetailResponse struct {
	Date string  `json:"date"`
	Type string  `json:"type"`
	Days string  `json:"days"`
	Note *string `json:"note,omitempty"`
}

// LedgerResponse bundles everything the leave-management ledger shows for one
// employee: the yearly table, the usage listing and the current balance.
type LedgerResponse struct {
	EmployeeID   string                `json:"employee_id"`
	EmployeeName string                `json:"employee_name"`
	Years        []LedgerEntryResponse `json:"years"`
	UsageDetails []UsageDetailResponse `json:"usage_details"`
	Balance      BalanceResponse       `json:"balance"`
}
