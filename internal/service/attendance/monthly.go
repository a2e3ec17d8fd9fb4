package attendance

import (
	"sort"

	"github.com/kintai-labs/kintai-backend-go/internal/domain/attendance"
)

// CalculateMonthlyTotal folds daily results over a payroll period, splitting
// the Article 36 counted minutes at the monthly ceiling. Days are walked in
// chronological order so the split always lands on the same calendar day for
// a given input set.
func (c *Calculator) CalculateMonthlyTotal(records []attendance.Attendance) attendance.MonthlyTotal {
	sorted := make([]attendance.Attendance, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	var total attendance.MonthlyTotal
	limit := c.cfg.OvertimeLimitMinutes
	accumulated := 0

	for _, record := range sorted {
		daily := c.CalculateDaily(record)

		total.WorkMinutes += daily.WorkMinutes
		total.RegularMinutes += daily.RegularMinutes
		total.HolidayMinutes += daily.HolidayMinutes
		total.PrescribedHolidayMinutes += daily.PrescribedHolidayMinutes

		if daily.WorkMinutes > 0 {
			total.WorkDays++
		}

		// Legal holiday work is premium-paid separately and never counts
		// toward the Article 36 ceiling.
		if daily.IsLegalHoliday {
			continue
		}

		countedToday := daily.OvertimeMinutes + daily.NightMinutes + daily.PrescribedHolidayMinutes

		if accumulated+countedToday <= limit {
			total.OvertimeMinutes += daily.OvertimeMinutes
			total.NightMinutes += daily.NightMinutes
		} else if countedToday > 0 {
			// The ceiling is crossed mid-day: prorate this day's overtime
			// and night minutes between the two rate tiers, truncating
			// toward zero so no fractional minute is ever invented.
			underLimit := max(0, limit-accumulated)
			overLimit := countedToday - underLimit

			total.OvertimeMinutes += daily.OvertimeMinutes * underLimit / countedToday
			total.NightMinutes += daily.NightMinutes * underLimit / countedToday

			total.OvertimeOver60Minutes += overLimit
			total.NightOver60Minutes += daily.NightMinutes * overLimit / countedToday
		}

		accumulated += countedToday
	}

	total.Article36Minutes = total.OvertimeMinutes + total.NightMinutes +
		total.PrescribedHolidayMinutes + total.OvertimeOver60Minutes + total.NightOver60Minutes

	return total
}
