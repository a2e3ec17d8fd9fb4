package attendance

import (
	"time"

	"github.com/kintai-labs/kintai-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

// MonthlyReportRequest selects one employee's billing period. Month is the
// closing month: with a closing day of 20, (2025, 4) covers 3/21 through 4/20.
type MonthlyReportRequest struct {
	EmployeeID string `json:"employee_id"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`
}

func (r *MonthlyReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 2000 and 2100",
		})
	}
	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateRequest carries a manual correction from the edit form. Nil fields are
// left untouched; empty strings clear the stored stamp.
type UpdateRequest struct {
	ID            string  `json:"id"`
	Date          *string `json:"date,omitempty"`
	DayType       *string `json:"day_type,omitempty"`
	ClockIn       *string `json:"clock_in,omitempty"`
	ClockOut      *string `json:"clock_out,omitempty"`
	GoOutAt       *string `json:"go_out_at,omitempty"`
	ReturnAt      *string `json:"return_at,omitempty"`
	Status        *string `json:"status,omitempty"`
	AbsenceReason *string `json:"absence_reason,omitempty"`
	Note          *string `json:"note,omitempty"`
}

func (r *UpdateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if r.Date != nil && !validator.IsValidDate(*r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}
	for field, v := range map[string]*string{
		"clock_in": r.ClockIn, "clock_out": r.ClockOut,
		"go_out_at": r.GoOutAt, "return_at": r.ReturnAt,
	} {
		if v != nil && *v != "" && !validator.IsValidClock(*v) {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " must be in HH:MM format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ImportRow is one pre-parsed line from a time-card CSV export. Parsing,
// column mapping and encoding detection happen upstream; rows arriving here
// are structured but not yet matched to an employee.
type ImportRow struct {
	CardNumber    string `json:"card_number"`
	EmployeeCode  string `json:"employee_code"`
	EmployeeName  string `json:"employee_name"`
	Date          string `json:"date"`
	ShiftCode     string `json:"shift_code"`
	DayType       string `json:"day_type"`
	AbsenceReason string `json:"absence_reason"`
	ClockIn       string `json:"clock_in"`
	ClockOut      string `json:"clock_out"`
	GoOutAt       string `json:"go_out_at"`
	ReturnAt      string `json:"return_at"`
	Note          string `json:"note"`
}

// ImportRequest is a batch of rows imported in one all-or-nothing transaction.
type ImportRequest struct {
	Rows []ImportRow `json:"rows"`
}

func (r *ImportRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Rows) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "rows",
			Message: "at least one row is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RowError reports one rejected row. Rejected rows are skipped; the rest of
// the batch still commits. Only a storage failure aborts the transaction.
type RowError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// ImportResult summarizes an import batch.
type ImportResult struct {
	Imported  int        `json:"imported"`
	Skipped   int        `json:"skipped"`
	RowErrors []RowError `json:"row_errors,omitempty"`
}

// DayResponse is one record with its derived breakdown and anomalies, as the
// attendance screens render it.
type DayResponse struct {
	ID            string      `json:"id"`
	EmployeeID    string      `json:"employee_id"`
	EmployeeName  string      `json:"employee_name,omitempty"`
	Date          string      `json:"date"`
	DayType       string      `json:"day_type"`
	ClockIn       *string     `json:"clock_in"`
	ClockOut      *string     `json:"clock_out"`
	AbsenceReason *string     `json:"absence_reason,omitempty"`
	Note          *string     `json:"note,omitempty"`
	Calculation   DailyResult `json:"calculation"`
	Anomalies     []Anomaly   `json:"anomalies,omitempty"`
}

// MonthlyReportResponse is the billing-period compliance report.
type MonthlyReportResponse struct {
	EmployeeID  string        `json:"employee_id"`
	PeriodStart string        `json:"period_start"`
	PeriodEnd   string        `json:"period_end"`
	Days        []DayResponse `json:"days"`
	Total       MonthlyTotal  `json:"total"`
}

// ListFilter bounds a raw record listing.
type ListFilter struct {
	EmployeeID string
	From       time.Time
	To         time.Time
}
