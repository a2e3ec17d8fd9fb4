package leave

import (
	"time"

	"github.com/kintai-labs/kintai-backend-go/internal/domain/employee"
)

// grantStep maps whole months of service to the days granted at that tenure.
type grantStep struct {
	Months int
	Days   int
}

// Statutory grant tables, ascending by tenure. The new rule grants from six
// months of service; the old rule, kept for employees migrated with a
// first-anniversary grant date, starts at one year.
var (
	grantTableNew = []grantStep{
		{6, 10}, {18, 11}, {30, 12}, {42, 14}, {54, 16}, {66, 18}, {78, 20},
	}
	grantTableOld = []grantStep{
		{12, 10}, {24, 11}, {36, 12}, {48, 14}, {60, 16}, {72, 18}, {84, 20},
	}
)

// GrantDays returns the days granted at grantDate for an employee hired at
// hireDate: the highest table step whose tenure threshold is reached, zero
// below the first step or when the hire date is unknown.
func GrantDays(hireDate *time.Time, grantDate time.Time, useOldRule bool) int {
	if hireDate == nil {
		return 0
	}

	months := wholeMonthsBetween(*hireDate, grantDate)

	table := grantTableNew
	if useOldRule {
		table = grantTableOld
	}

	days := 0
	for _, step := range table {
		if months < step.Months {
			break
		}
		days = step.Days
	}
	return days
}

// UsesOldRule reports whether an employee's recorded grant date sits closer
// to the first hire anniversary than to the statutory six-month mark, which
// identifies ledgers migrated from the pre-reform rule.
func UsesOldRule(emp employee.Employee) bool {
	if emp.LeaveGrantDate == nil || emp.HireDate == nil {
		return false
	}

	sixMonths := startOfMonth(emp.HireDate.AddDate(0, 6, 0))
	oneYear := emp.HireDate.AddDate(1, 0, 0)

	grantDate := *emp.LeaveGrantDate
	toSixMonths := absDays(grantDate.Sub(sixMonths))
	toOneYear := absDays(grantDate.Sub(oneYear))

	return toOneYear < toSixMonths
}

// FirstGrantDate returns the statutory first grant date for an employee with
// no migrated initial balance: six months (or one year under the old rule)
// after hire, rounded to the first of the month. Nil without a hire date.
func FirstGrantDate(emp employee.Employee, useOldRule bool) *time.Time {
	if emp.HireDate == nil {
		return nil
	}

	var d time.Time
	if useOldRule {
		d = startOfMonth(emp.HireDate.AddDate(1, 0, 0))
	} else {
		d = startOfMonth(emp.HireDate.AddDate(0, 6, 0))
	}
	return &d
}

// wholeMonthsBetween counts completed calendar months from a to b.
func wholeMonthsBetween(a, b time.Time) int {
	if b.Before(a) {
		return 0
	}

	months := (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
	if b.Day() < a.Day() {
		months--
	}
	return max(0, months)
}

func startOfMonth(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location())
}

func absDays(d time.Duration) int {
	days := int(d.Hours() / 24)
	if days < 0 {
		return -days
	}
	return days
}
