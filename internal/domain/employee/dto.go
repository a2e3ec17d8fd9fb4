package employee

import (
	"github.com/kintai-labs/kintai-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// UpdateLeaveFieldsRequest carries the leave-settings form: grant-date
// override, grant month and the initial-balance anchor used for ledgers
// migrated from the previous system.
type UpdateLeaveFieldsRequest struct {
	ID                  string  `json:"id"`
	HireDate            *string `json:"hire_date,omitempty"`
	LeaveGrantDate      *string `json:"leave_grant_date,omitempty"`
	LeaveGrantMonth     *int    `json:"leave_grant_month,omitempty"`
	InitialLeaveBalance *string `json:"initial_leave_balance,omitempty"`
	InitialLeaveDate    *string `json:"initial_leave_date,omitempty"`
}

func (r *UpdateLeaveFieldsRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	for field, v := range map[string]*string{
		"hire_date": r.HireDate, "leave_grant_date": r.LeaveGrantDate,
		"initial_leave_date": r.InitialLeaveDate,
	} {
		if v != nil && *v != "" && !validator.IsValidDate(*v) {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " must be in YYYY-MM-DD format",
			})
		}
	}
	if r.LeaveGrantMonth != nil && (*r.LeaveGrantMonth < 1 || *r.LeaveGrantMonth > 12) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_grant_month",
			Message: "leave_grant_month must be between 1 and 12",
		})
	}
	if r.InitialLeaveBalance != nil && *r.InitialLeaveBalance != "" {
		balance, err := decimal.NewFromString(*r.InitialLeaveBalance)
		switch {
		case err != nil:
			errs = append(errs, validator.ValidationError{
				Field:   "initial_leave_balance",
				Message: "initial_leave_balance must be a decimal number",
			})
		case balance.IsNegative() || balance.GreaterThan(decimal.NewFromInt(40)):
			errs = append(errs, validator.ValidationError{
				Field:   "initial_leave_balance",
				Message: "initial_leave_balance must be between 0 and 40",
			})
		case !balance.Mod(decimal.NewFromFloat(0.5)).IsZero():
			errs = append(errs, validator.ValidationError{
				Field:   "initial_leave_balance",
				Message: "initial_leave_balance must be in 0.5 day steps",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Response is the roster row rendered by the admin screens.
type Response struct {
	ID                   string  `json:"id"`
	Name                 string  `json:"name"`
	EmployeeCode         *string `json:"employee_code,omitempty"`
	DepartmentName       *string `json:"department_name,omitempty"`
	Position             *string `json:"position,omitempty"`
	HireDate             *string `json:"hire_date,omitempty"`
	LeaveGrantDate       *string `json:"leave_grant_date,omitempty"`
	EffectiveGrantDate   *string `json:"effective_grant_date,omitempty"`
	LeaveGrantMonth      *int    `json:"leave_grant_month,omitempty"`
	InitialLeaveBalance  *string `json:"initial_leave_balance,omitempty"`
	InitialLeaveDate     *string `json:"initial_leave_date,omitempty"`
	InitialLeaveImported bool    `json:"initial_leave_imported"`
	IsActive             bool    `json:"is_active"`
}
