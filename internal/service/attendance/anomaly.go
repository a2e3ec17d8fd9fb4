package attendance

import (
	"fmt"

	"github.com/kintai-labs/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-labs/kintai-backend-go/internal/pkg/timeutil"
)

const (
	// Half-day leave shifts the expected boundary to the half-day line.
	amHalfExpectedStartMinutes = 13 * 60
	pmHalfExpectedEndMinutes   = 12 * 60
)

// DetectAnomalies flags problems on a single day record. The daily result
// must come from CalculateDaily on the same record.
func (c *Calculator) DetectAnomalies(att attendance.Attendance, daily attendance.DailyResult) []attendance.Anomaly {
	var anomalies []attendance.Anomaly

	dayClass := c.cfg.Classify(att.DayType)
	isHoliday := dayClass.IsHoliday

	hasIn := att.HasClockIn()
	hasOut := att.HasClockOut()
	isFullDayOff := att.IsFullDayOff()
	reason := att.AbsenceReasonValue()

	if !isHoliday && !hasIn && !hasOut && !isFullDayOff {
		anomalies = append(anomalies, attendance.Anomaly{
			Type:     attendance.AnomalyMissingPunch,
			Message:  "打刻なし",
			Severity: attendance.SeverityWarning,
		})
	}

	if !hasIn && hasOut && !isFullDayOff && reason != attendance.AbsenceAMHalfLeave {
		anomalies = append(anomalies, attendance.Anomaly{
			Type:     attendance.AnomalyMissingClockIn,
			Message:  "出勤打刻なし",
			Severity: attendance.SeverityWarning,
		})
	}

	if hasIn && !hasOut && !isFullDayOff && reason != attendance.AbsencePMHalfLeave {
		anomalies = append(anomalies, attendance.Anomaly{
			Type:     attendance.AnomalyMissingClockOut,
			Message:  "退勤打刻なし",
			Severity: attendance.SeverityWarning,
		})
	}

	if !hasIn && !hasOut {
		return anomalies
	}

	lateDetected := false
	earlyDetected := false

	if hasIn && !isHoliday && !isFullDayOff {
		if inMinutes, err := timeutil.ParseClock(*att.ClockIn); err == nil {
			expectedStart := c.cfg.RegularStartMinutes
			suffix := ""
			if reason == attendance.AbsenceAMHalfLeave {
				expectedStart = amHalfExpectedStartMinutes
				suffix = "（午前半休）"
			}
			if inMinutes > expectedStart {
				lateDetected = true
				anomalies = append(anomalies, attendance.Anomaly{
					Type:     attendance.AnomalyLate,
					Message:  fmt.Sprintf("遅刻%d分%s", inMinutes-expectedStart, suffix),
					Severity: attendance.SeverityInfo,
				})
			}
		}
	}

	if hasOut && !isHoliday && !isFullDayOff {
		if outMinutes, err := timeutil.ParseClock(*att.ClockOut); err == nil {
			if reason == attendance.AbsencePMHalfLeave {
				if outMinutes < pmHalfExpectedEndMinutes {
					earlyDetected = true
					anomalies = append(anomalies, attendance.Anomaly{
						Type:     attendance.AnomalyEarlyLeave,
						Message:  fmt.Sprintf("早退%d分（午後半休）", pmHalfExpectedEndMinutes-outMinutes),
						Severity: attendance.SeverityInfo,
					})
				}
			} else if outMinutes < c.cfg.RegularEndMinutes && daily.OvertimeMinutes == 0 {
				// No flag when overtime is on record: an overnight shift
				// clocks out before the regular end of the next day.
				earlyDetected = true
				anomalies = append(anomalies, attendance.Anomaly{
					Type:     attendance.AnomalyEarlyLeave,
					Message:  fmt.Sprintf("早退%d分", c.cfg.RegularEndMinutes-outMinutes),
					Severity: attendance.SeverityInfo,
				})
			}
		}
	}

	if !isHoliday && !isFullDayOff && hasIn && hasOut {
		required := c.cfg.RequiredWorkMinutes
		if reason == attendance.AbsenceAMHalfLeave || reason == attendance.AbsencePMHalfLeave {
			required = (required + 1) / 2
		}
		// Late or early already explains the shortfall; do not double-report.
		if daily.RegularMinutes < required && !lateDetected && !earlyDetected {
			anomalies = append(anomalies, attendance.Anomaly{
				Type:     attendance.AnomalyInsufficientHours,
				Message:  fmt.Sprintf("所定労働時間不足%d分", required-daily.RegularMinutes),
				Severity: attendance.SeverityWarning,
			})
		}
	}

	return anomalies
}
