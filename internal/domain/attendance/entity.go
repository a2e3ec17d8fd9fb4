package attendance

import (
	"time"
)

// Attendance is one employee-day as imported from the time-card export or
// edited by hand. Clock fields keep the raw "HH:MM:SS" labels; the regulated
// time buckets are never stored, they are derived on every read.
type Attendance struct {
	ID            string
	EmployeeID    string
	Date          time.Time
	DayType       string
	ShiftCode     *string
	ClockIn       *string
	ClockOut      *string
	GoOutAt       *string
	ReturnAt      *string
	BreakMinutes  *int
	WorkMinutes   *int
	Status        *string
	AbsenceReason *string
	Note          *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// DTO
	EmployeeName *string
}

// Day type codes as they appear in the time-card export.
const (
	DayTypeWeekday           = "00"
	DayTypeLegalHoliday      = "01"
	DayTypePrescribedHoliday = "02"
)

// Absence reasons mapped from the export's absence column.
const (
	AbsencePaidLeave   = "paid_leave"
	AbsenceAMHalfLeave = "am_half_leave"
	AbsencePMHalfLeave = "pm_half_leave"
	AbsenceUnexcused   = "absence"
)

// IsFullDayOff reports whether the record's absence reason excuses the whole
// day (full-day paid leave or unexcused absence), which suppresses punch
// checks.
func (a Attendance) IsFullDayOff() bool {
	r := a.AbsenceReasonValue()
	return r == AbsencePaidLeave || r == AbsenceUnexcused
}

// HasClockIn reports whether a clock-in stamp is present.
func (a Attendance) HasClockIn() bool {
	return a.ClockIn != nil && *a.ClockIn != ""
}

// HasClockOut reports whether a clock-out stamp is present.
func (a Attendance) HasClockOut() bool {
	return a.ClockOut != nil && *a.ClockOut != ""
}

// AbsenceReasonValue returns the absence reason or "" when none is recorded.
func (a Attendance) AbsenceReasonValue() string {
	if a.AbsenceReason == nil {
		return ""
	}
	return *a.AbsenceReason
}
