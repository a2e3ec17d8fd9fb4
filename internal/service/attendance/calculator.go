package attendance

import (
	"time"

	"github.com/kintai-labs/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-labs/kintai-backend-go/internal/pkg/timeutil"
)

// Calculator derives the regulated time buckets for attendance records. It is
// a pure function of the record and the rule config: no clock, no storage, so
// the same record always produces the same breakdown.
type Calculator struct {
	cfg attendance.RuleConfig
}

func NewCalculator(cfg attendance.RuleConfig) *Calculator {
	return &Calculator{cfg: cfg}
}

// Config returns the rule set the calculator was built with.
func (c *Calculator) Config() attendance.RuleConfig {
	return c.cfg
}

// CalculateDaily computes the time-bucket breakdown for one employee-day.
// Records missing either punch produce the all-zero result; partial
// computation is never attempted.
func (c *Calculator) CalculateDaily(att attendance.Attendance) attendance.DailyResult {
	var result attendance.DailyResult

	if !att.HasClockIn() || !att.HasClockOut() {
		return result
	}

	inMinutes, err := timeutil.ParseClock(*att.ClockIn)
	if err != nil {
		return result
	}
	outMinutes, err := timeutil.ParseClock(*att.ClockOut)
	if err != nil {
		return result
	}

	baseDate := att.Date
	clockIn := timeutil.AtClock(baseDate, inMinutes)
	clockOut := timeutil.AtClock(baseDate, outMinutes)

	// Clock-out before clock-in means the shift crossed midnight.
	if clockOut.Before(clockIn) {
		clockOut = clockOut.AddDate(0, 0, 1)
	}

	regularStart := timeutil.AtClock(baseDate, c.cfg.RegularStartMinutes)
	regularEnd := timeutil.AtClock(baseDate, c.cfg.RegularEndMinutes)
	overtimeStart := timeutil.AtClock(baseDate, c.cfg.OvertimeStartMinutes)
	nightStart := timeutil.AtClock(baseDate, c.cfg.NightStartMinutes)

	dayClass := c.cfg.Classify(att.DayType)
	result.IsLegalHoliday = dayClass.IsLegalHoliday
	result.IsPrescribedHoliday = dayClass.IsHoliday && !dayClass.IsLegalHoliday

	// Early arrival earns no credit: clamp to the regular start.
	effectiveIn := clockIn
	if clockIn.Before(regularStart) {
		effectiveIn = regularStart
	}

	// Leaving inside the grace window between the nominal end and the
	// overtime boundary counts as leaving at the nominal end.
	effectiveOut := clockOut
	if !clockOut.Before(regularEnd) && clockOut.Before(overtimeStart) {
		effectiveOut = regularEnd
	}

	if result.IsLegalHoliday {
		return c.calculateHolidayWork(effectiveIn, clockOut, baseDate, result, true)
	}
	if result.IsPrescribedHoliday {
		return c.calculateHolidayWork(effectiveIn, clockOut, baseDate, result, false)
	}

	// Weekday: prescribed working time inside the regular window.
	if effectiveOut.After(regularStart) {
		regularWorkStart := effectiveIn
		if regularStart.After(regularWorkStart) {
			regularWorkStart = regularStart
		}
		regularWorkEnd := effectiveOut
		if regularEnd.Before(regularWorkEnd) {
			regularWorkEnd = regularEnd
		}

		if regularWorkEnd.After(regularWorkStart) {
			total := timeutil.MinutesBetween(regularWorkStart, regularWorkEnd)
			breaks := c.breakMinutes(regularWorkStart, regularWorkEnd)
			result.RegularMinutes = max(0, total-breaks)
		}
	}

	// Ordinary overtime runs from the overtime boundary to the night window;
	// anything past the night boundary belongs to the night bucket.
	if clockOut.After(overtimeStart) {
		if !clockOut.After(nightStart) {
			result.OvertimeMinutes = timeutil.MinutesBetween(overtimeStart, clockOut)
		} else {
			result.OvertimeMinutes = timeutil.MinutesBetween(overtimeStart, nightStart)
			result.NightMinutes = c.nightMinutes(clockIn, clockOut, baseDate)
		}
	}

	result.WorkMinutes = result.RegularMinutes + result.OvertimeMinutes + result.NightMinutes

	return result
}

// calculateHolidayWork handles both rest-day classifications: the whole span
// minus break overlap goes into the holiday bucket, with the night portion
// split out. Rest-day work applies the same break windows as a working day.
func (c *Calculator) calculateHolidayWork(clockIn, clockOut, baseDate time.Time, result attendance.DailyResult, legal bool) attendance.DailyResult {
	nightStart := timeutil.AtClock(baseDate, c.cfg.NightStartMinutes)

	total := timeutil.MinutesBetween(clockIn, clockOut)
	breaks := c.breakMinutes(clockIn, clockOut)
	workMinutes := max(0, total-breaks)

	night := 0
	if clockOut.After(nightStart) {
		night = c.nightMinutes(clockIn, clockOut, baseDate)
	}

	result.WorkMinutes = workMinutes
	result.NightMinutes = night
	if legal {
		result.HolidayMinutes = max(0, workMinutes-night)
	} else {
		result.PrescribedHolidayMinutes = max(0, workMinutes-night)
	}

	return result
}

// nightMinutes sums time worked inside the night window: the evening segment
// from the night boundary into the next morning, plus the pre-dawn segment
// for shifts that start before the window's same-day end.
func (c *Calculator) nightMinutes(clockIn, clockOut, baseDate time.Time) int {
	nightStart := timeutil.AtClock(baseDate, c.cfg.NightStartMinutes)
	nightEnd := timeutil.AtClock(baseDate, c.cfg.NightEndMinutes)

	night := 0

	if clockOut.After(nightStart) {
		night += timeutil.OverlapMinutes(clockIn, clockOut, nightStart, nightEnd)
	}

	earlyMorningEnd := timeutil.AtClock(baseDate, c.cfg.NightEndMinutes%(24*60))
	if clockIn.Before(earlyMorningEnd) {
		end := clockOut
		if earlyMorningEnd.Before(end) {
			end = earlyMorningEnd
		}
		night += timeutil.MinutesBetween(clockIn, end)
	}

	return night
}

// breakMinutes sums the overlap between the worked span and each configured
// break window, anchored to the span's starting date.
func (c *Calculator) breakMinutes(clockIn, clockOut time.Time) int {
	total := 0
	for _, b := range c.cfg.Breaks {
		breakStart := timeutil.AtClock(clockIn, b.StartMinutes)
		breakEnd := timeutil.AtClock(clockIn, b.EndMinutes)
		total += timeutil.OverlapMinutes(clockIn, clockOut, breakStart, breakEnd)
	}
	return total
}
