package attendance

// RuleConfig is the process-lifetime attendance rule set: the regular-hours
// window, the ordinary-overtime boundary, the night window, the configured
// break windows and the day-type classification map. All clock values are
// minutes since midnight on the record's date; NightEndMinutes is expressed
// past 1440 because the window closes on the following day.
//
// The config is immutable once loaded and is passed into each calculator
// explicitly, so tests can vary boundaries without touching globals.
type RuleConfig struct {
	RegularStartMinutes  int
	RegularEndMinutes    int
	OvertimeStartMinutes int
	NightStartMinutes    int
	NightEndMinutes      int

	Breaks []BreakWindow

	// RequiredWorkMinutes is the daily prescribed working time used by the
	// shortfall check (half of it, rounded up, on half-day leave).
	RequiredWorkMinutes int

	// OvertimeLimitMinutes is the monthly Article-36 ceiling (60h = 3600).
	OvertimeLimitMinutes int

	// ClosingDay ends the billing period: the period for month M runs from
	// the day after ClosingDay of M-1 through ClosingDay of M.
	ClosingDay int

	DayTypes map[string]DayTypeClass
}

// BreakWindow is one fixed break in the working day.
type BreakWindow struct {
	StartMinutes int
	EndMinutes   int
}

// DayTypeClass classifies a day-type code.
type DayTypeClass struct {
	IsHoliday      bool
	IsLegalHoliday bool
}

// DefaultRuleConfig returns the plant's standing rules: regular hours
// 08:00-16:55, overtime from 17:00, night 22:00-05:00, a lunch break and a
// short afternoon break (465 prescribed minutes), 60-hour monthly ceiling and
// a 20th-of-month closing day.
func DefaultRuleConfig() RuleConfig {
	return RuleConfig{
		RegularStartMinutes:  8 * 60,
		RegularEndMinutes:    16*60 + 55,
		OvertimeStartMinutes: 17 * 60,
		NightStartMinutes:    22 * 60,
		NightEndMinutes:      29 * 60, // 05:00 next day
		Breaks: []BreakWindow{
			{StartMinutes: 12 * 60, EndMinutes: 13 * 60},
			{StartMinutes: 15 * 60, EndMinutes: 15*60 + 10},
		},
		RequiredWorkMinutes:  465,
		OvertimeLimitMinutes: 3600,
		ClosingDay:           20,
		DayTypes: map[string]DayTypeClass{
			DayTypeWeekday:           {},
			DayTypeLegalHoliday:      {IsHoliday: true, IsLegalHoliday: true},
			DayTypePrescribedHoliday: {IsHoliday: true},
		},
	}
}

// Classify maps a day-type code to its classification. Unknown codes fall
// back to the weekday default.
func (c RuleConfig) Classify(dayType string) DayTypeClass {
	if cls, ok := c.DayTypes[dayType]; ok {
		return cls
	}
	return c.DayTypes[DayTypeWeekday]
}
