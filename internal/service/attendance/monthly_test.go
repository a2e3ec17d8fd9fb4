package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kintai-labs/kintai-backend-go/internal/domain/attendance"
)

func dayRecord(day int, dayType, clockIn, clockOut string) attendance.Attendance {
	return attendance.Attendance{
		EmployeeID: "emp-1",
		Date:       time.Date(2025, 4, day, 0, 0, 0, 0, time.UTC),
		DayType:    dayType,
		ClockIn:    strp(clockIn),
		ClockOut:   strp(clockOut),
	}
}

func TestCalculateMonthlyTotal_UnderLimit(t *testing.T) {
	calc := NewCalculator(attendance.DefaultRuleConfig())

	records := []attendance.Attendance{
		dayRecord(1, "00", "08:00:00", "16:55:00"),
		dayRecord(2, "00", "08:00:00", "18:30:00"),
		dayRecord(3, "00", "08:00:00", "16:55:00"),
	}

	total := calc.CalculateMonthlyTotal(records)

	assert.Equal(t, 3, total.WorkDays)
	assert.Equal(t, 1395, total.RegularMinutes)
	assert.Equal(t, 90, total.OvertimeMinutes)
	assert.Equal(t, 0, total.OvertimeOver60Minutes)
	assert.Equal(t, 90, total.Article36Minutes)
	assert.Equal(t, 1485, total.WorkMinutes)
}

func TestCalculateMonthlyTotal_CrossesLimitMidDay(t *testing.T) {
	cfg := attendance.DefaultRuleConfig()
	cfg.OvertimeLimitMinutes = 120
	calc := NewCalculator(cfg)

	// 90 overtime minutes per day. The ceiling is crossed during day two:
	// 30 minutes stay under it, 60 go over; day three is entirely over.
	records := []attendance.Attendance{
		dayRecord(1, "00", "08:00:00", "18:30:00"),
		dayRecord(2, "00", "08:00:00", "18:30:00"),
		dayRecord(3, "00", "08:00:00", "18:30:00"),
	}

	total := calc.CalculateMonthlyTotal(records)

	assert.Equal(t, 120, total.OvertimeMinutes)
	assert.Equal(t, 150, total.OvertimeOver60Minutes)
	assert.Equal(t, 0, total.NightOver60Minutes)
	assert.Equal(t, 270, total.Article36Minutes)

	// Minutes are never created or lost by the split.
	assert.Equal(t, 270, total.OvertimeMinutes+total.OvertimeOver60Minutes)
}

func TestCalculateMonthlyTotal_ProratesNightOnCrossingDay(t *testing.T) {
	cfg := attendance.DefaultRuleConfig()
	cfg.OvertimeLimitMinutes = 200
	calc := NewCalculator(cfg)

	// One day with 300 overtime and 90 night: 390 counted minutes against a
	// 200-minute ceiling. Both buckets are prorated with truncation.
	records := []attendance.Attendance{
		dayRecord(1, "00", "08:00:00", "23:30:00"),
	}

	total := calc.CalculateMonthlyTotal(records)

	assert.Equal(t, 153, total.OvertimeMinutes)       // 300 * 200 / 390
	assert.Equal(t, 46, total.NightMinutes)           // 90 * 200 / 390
	assert.Equal(t, 190, total.OvertimeOver60Minutes) // 390 - 200
	assert.Equal(t, 43, total.NightOver60Minutes)     // 90 * 190 / 390
	assert.Equal(t, 432, total.Article36Minutes)
}

func TestCalculateMonthlyTotal_LegalHolidayExcludedFromLimit(t *testing.T) {
	cfg := attendance.DefaultRuleConfig()
	cfg.OvertimeLimitMinutes = 60
	calc := NewCalculator(cfg)

	records := []attendance.Attendance{
		dayRecord(5, "01", "08:00:00", "17:00:00"),
		dayRecord(6, "00", "08:00:00", "18:00:00"),
	}

	total := calc.CalculateMonthlyTotal(records)

	// Legal holiday work accumulates in its own bucket and never pushes the
	// weekday overtime over the ceiling.
	assert.Equal(t, 470, total.HolidayMinutes)
	assert.Equal(t, 60, total.OvertimeMinutes)
	assert.Equal(t, 0, total.OvertimeOver60Minutes)
	assert.Equal(t, 60, total.Article36Minutes)
	assert.Equal(t, 2, total.WorkDays)
}

func TestCalculateMonthlyTotal_PrescribedHolidayCountsTowardLimit(t *testing.T) {
	cfg := attendance.DefaultRuleConfig()
	cfg.OvertimeLimitMinutes = 100
	calc := NewCalculator(cfg)

	records := []attendance.Attendance{
		dayRecord(5, "02", "09:00:00", "12:00:00"), // 180 prescribed-holiday minutes, 80 over
		dayRecord(6, "00", "08:00:00", "18:00:00"), // 60 overtime, entirely over now
	}

	total := calc.CalculateMonthlyTotal(records)

	assert.Equal(t, 180, total.PrescribedHolidayMinutes)
	assert.Equal(t, 0, total.OvertimeMinutes)
	assert.Equal(t, 140, total.OvertimeOver60Minutes)
	assert.Equal(t, 320, total.Article36Minutes)
}

func TestCalculateMonthlyTotal_SortsOutOfOrderInput(t *testing.T) {
	cfg := attendance.DefaultRuleConfig()
	cfg.OvertimeLimitMinutes = 120
	calc := NewCalculator(cfg)

	ordered := []attendance.Attendance{
		dayRecord(1, "00", "08:00:00", "18:30:00"),
		dayRecord(2, "00", "08:00:00", "18:30:00"),
		dayRecord(3, "00", "08:00:00", "18:30:00"),
	}
	shuffled := []attendance.Attendance{ordered[2], ordered[0], ordered[1]}

	assert.Equal(t, calc.CalculateMonthlyTotal(ordered), calc.CalculateMonthlyTotal(shuffled))
}

func TestCalculateMonthlyTotal_Empty(t *testing.T) {
	calc := NewCalculator(attendance.DefaultRuleConfig())

	total := calc.CalculateMonthlyTotal(nil)

	assert.Equal(t, attendance.MonthlyTotal{}, total)
}
