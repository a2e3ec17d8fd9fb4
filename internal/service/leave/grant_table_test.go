package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kintai-labs/kintai-backend-go/internal/domain/employee"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datep(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func TestGrantDays_NewRule(t *testing.T) {
	hire := datep(2020, time.April, 1)

	tests := []struct {
		name      string
		grantDate time.Time
		want      int
	}{
		{"below six months", date(2020, time.September, 1), 0},
		{"six months", date(2020, time.October, 1), 10},
		{"one and a half years", date(2021, time.October, 1), 11},
		{"two and a half years", date(2022, time.October, 1), 12},
		{"three and a half years", date(2023, time.October, 1), 14},
		{"six and a half years", date(2026, time.October, 1), 20},
		{"far beyond the table", date(2035, time.October, 1), 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GrantDays(hire, tt.grantDate, false))
		})
	}
}

func TestGrantDays_OldRule(t *testing.T) {
	hire := datep(2015, time.April, 1)

	assert.Equal(t, 0, GrantDays(hire, date(2016, time.March, 1), true))
	assert.Equal(t, 10, GrantDays(hire, date(2016, time.April, 1), true))
	assert.Equal(t, 16, GrantDays(hire, date(2020, time.April, 1), true))
	assert.Equal(t, 20, GrantDays(hire, date(2022, time.April, 1), true))
}

func TestGrantDays_WholeMonthsOnly(t *testing.T) {
	// Hired on the 15th: at the first-of-month grant date only five whole
	// months have passed, which is below the first step.
	hire := datep(2024, time.January, 15)

	assert.Equal(t, 0, GrantDays(hire, date(2024, time.July, 1), false))
	assert.Equal(t, 10, GrantDays(hire, date(2024, time.July, 15), false))
}

func TestGrantDays_NoHireDate(t *testing.T) {
	assert.Equal(t, 0, GrantDays(nil, date(2024, time.July, 1), false))
}

func TestUsesOldRule(t *testing.T) {
	tests := []struct {
		name      string
		hireDate  *time.Time
		grantDate *time.Time
		want      bool
	}{
		{
			name:      "grant near six-month mark",
			hireDate:  datep(2020, time.April, 10),
			grantDate: datep(2020, time.October, 1),
			want:      false,
		},
		{
			name:      "grant near first anniversary",
			hireDate:  datep(2015, time.April, 1),
			grantDate: datep(2016, time.April, 1),
			want:      true,
		},
		{
			name:      "no explicit grant date",
			hireDate:  datep(2020, time.April, 1),
			grantDate: nil,
			want:      false,
		},
		{
			name:      "no hire date",
			hireDate:  nil,
			grantDate: datep(2020, time.October, 1),
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emp := employee.Employee{HireDate: tt.hireDate, LeaveGrantDate: tt.grantDate}
			assert.Equal(t, tt.want, UsesOldRule(emp))
		})
	}
}

func TestFirstGrantDate(t *testing.T) {
	emp := employee.Employee{HireDate: datep(2024, time.January, 15)}

	newRule := FirstGrantDate(emp, false)
	assert.Equal(t, date(2024, time.July, 1), *newRule)

	oldRule := FirstGrantDate(emp, true)
	assert.Equal(t, date(2025, time.January, 1), *oldRule)

	assert.Nil(t, FirstGrantDate(employee.Employee{}, false))
}
