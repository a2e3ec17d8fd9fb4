package attendance

// DailyResult is the regulated time-bucket breakdown for one employee-day.
// Derived, never persisted. On weekdays WorkMinutes = RegularMinutes +
// OvertimeMinutes + NightMinutes; on rest days WorkMinutes is the holiday
// bucket plus NightMinutes.
type DailyResult struct {
	WorkMinutes              int  `json:"work_minutes"`
	RegularMinutes           int  `json:"regular_minutes"`
	OvertimeMinutes          int  `json:"overtime_minutes"`
	NightMinutes             int  `json:"night_minutes"`
	PrescribedHolidayMinutes int  `json:"prescribed_holiday_minutes"`
	HolidayMinutes           int  `json:"holiday_minutes"`
	IsLegalHoliday           bool `json:"is_legal_holiday"`
	IsPrescribedHoliday      bool `json:"is_prescribed_holiday"`
}

// MonthlyTotal aggregates one billing period. OvertimeMinutes and NightMinutes
// hold only the within-ceiling portions; the over-60h remainders are split out
// into the Over60 fields. Legal-holiday work never counts toward the ceiling.
type MonthlyTotal struct {
	WorkMinutes              int `json:"work_minutes"`
	RegularMinutes           int `json:"regular_minutes"`
	OvertimeMinutes          int `json:"overtime_minutes"`
	NightMinutes             int `json:"night_minutes"`
	PrescribedHolidayMinutes int `json:"prescribed_holiday_minutes"`
	HolidayMinutes           int `json:"holiday_minutes"`
	Article36Minutes         int `json:"article36_minutes"`
	OvertimeOver60Minutes    int `json:"overtime_over60_minutes"`
	NightOver60Minutes       int `json:"night_over60_minutes"`
	WorkDays                 int `json:"work_days"`
}

// AnomalyType tags a detected irregularity in one record.
type AnomalyType string

const (
	AnomalyMissingPunch      AnomalyType = "missing_punch"
	AnomalyMissingClockIn    AnomalyType = "missing_clock_in"
	AnomalyMissingClockOut   AnomalyType = "missing_clock_out"
	AnomalyLate              AnomalyType = "late"
	AnomalyEarlyLeave        AnomalyType = "early_leave"
	AnomalyInsufficientHours AnomalyType = "insufficient_hours"
)

// AnomalySeverity separates blocking-style warnings from informational notes.
type AnomalySeverity string

const (
	SeverityWarning AnomalySeverity = "warning"
	SeverityInfo    AnomalySeverity = "info"
)

// Anomaly is one detected irregularity with a display message.
type Anomaly struct {
	Type     AnomalyType     `json:"type"`
	Message  string          `json:"message"`
	Severity AnomalySeverity `json:"severity"`
}
