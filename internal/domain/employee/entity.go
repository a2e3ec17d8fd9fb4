package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is one roster entry from the payroll-system export. The leave
// fields drive the paid-leave ledger: HireDate anchors the grant table,
// LeaveGrantDate overrides the computed grant anniversary, and the initial
// balance pair anchors ledgers migrated from the previous system.
type Employee struct {
	ID           string
	Name         string
	EmployeeCode *string
	CardNumber   *string
	CardName     *string
	DepartmentID *string
	Position     *string

	HireDate        *time.Time
	LeaveGrantDate  *time.Time
	LeaveGrantMonth *int

	InitialLeaveBalance  *decimal.Decimal
	InitialLeaveDate     *time.Time
	InitialLeaveImported bool

	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	DepartmentName *string
}

// EffectiveLeaveGrantDate returns the manual grant-date override when set,
// otherwise the hire date plus six months rounded to the first of that month.
// Nil when neither source is available.
func (e Employee) EffectiveLeaveGrantDate() *time.Time {
	if e.LeaveGrantDate != nil {
		return e.LeaveGrantDate
	}
	if e.HireDate == nil {
		return nil
	}

	d := e.HireDate.AddDate(0, 6, 0)
	firstOfMonth := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location())
	return &firstOfMonth
}
