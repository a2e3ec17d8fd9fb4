package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kintai-labs/kintai-backend-go/internal/domain/attendance"
)

func detect(t *testing.T, record attendance.Attendance) []attendance.Anomaly {
	t.Helper()
	calc := NewCalculator(attendance.DefaultRuleConfig())
	return calc.DetectAnomalies(record, calc.CalculateDaily(record))
}

func TestDetectAnomalies_MissingPunch(t *testing.T) {
	anomalies := detect(t, testRecord("00", nil, nil))

	require.Len(t, anomalies, 1)
	assert.Equal(t, attendance.AnomalyMissingPunch, anomalies[0].Type)
	assert.Equal(t, attendance.SeverityWarning, anomalies[0].Severity)
}

func TestDetectAnomalies_NoPunchesOnHoliday(t *testing.T) {
	assert.Empty(t, detect(t, testRecord("01", nil, nil)))
	assert.Empty(t, detect(t, testRecord("02", nil, nil)))
}

func TestDetectAnomalies_FullDayOffSuppressesPunchChecks(t *testing.T) {
	for _, reason := range []string{attendance.AbsencePaidLeave, attendance.AbsenceUnexcused} {
		record := testRecord("00", nil, nil)
		record.AbsenceReason = strp(reason)
		assert.Empty(t, detect(t, record), reason)
	}
}

func TestDetectAnomalies_MissingClockIn(t *testing.T) {
	record := testRecord("00", nil, strp("17:30:00"))

	anomalies := detect(t, record)

	require.Len(t, anomalies, 1)
	assert.Equal(t, attendance.AnomalyMissingClockIn, anomalies[0].Type)

	// Morning half-leave legitimately has no clock-in pair symmetry issue:
	// the late check against 13:00 takes over instead.
	record.AbsenceReason = strp(attendance.AbsenceAMHalfLeave)
	for _, a := range detect(t, record) {
		assert.NotEqual(t, attendance.AnomalyMissingClockIn, a.Type)
	}
}

func TestDetectAnomalies_MissingClockOut(t *testing.T) {
	record := testRecord("00", strp("08:00:00"), nil)

	anomalies := detect(t, record)

	require.Len(t, anomalies, 1)
	assert.Equal(t, attendance.AnomalyMissingClockOut, anomalies[0].Type)

	record.AbsenceReason = strp(attendance.AbsencePMHalfLeave)
	for _, a := range detect(t, record) {
		assert.NotEqual(t, attendance.AnomalyMissingClockOut, a.Type)
	}
}

func TestDetectAnomalies_Late(t *testing.T) {
	anomalies := detect(t, testRecord("00", strp("08:10:00"), strp("16:55:00")))

	require.Len(t, anomalies, 1)
	assert.Equal(t, attendance.AnomalyLate, anomalies[0].Type)
	assert.Equal(t, attendance.SeverityInfo, anomalies[0].Severity)
	assert.Equal(t, "遅刻10分", anomalies[0].Message)
}

func TestDetectAnomalies_LateOnMorningHalfLeave(t *testing.T) {
	record := testRecord("00", strp("13:05:00"), strp("16:55:00"))
	record.AbsenceReason = strp(attendance.AbsenceAMHalfLeave)

	anomalies := detect(t, record)

	var late *attendance.Anomaly
	for i := range anomalies {
		if anomalies[i].Type == attendance.AnomalyLate {
			late = &anomalies[i]
		}
	}
	require.NotNil(t, late)
	assert.Equal(t, "遅刻5分（午前半休）", late.Message)
}

func TestDetectAnomalies_EarlyLeave(t *testing.T) {
	anomalies := detect(t, testRecord("00", strp("08:00:00"), strp("16:00:00")))

	require.Len(t, anomalies, 1)
	assert.Equal(t, attendance.AnomalyEarlyLeave, anomalies[0].Type)
	assert.Equal(t, "早退55分", anomalies[0].Message)
}

func TestDetectAnomalies_EarlyLeaveOnAfternoonHalfDespiteOvertime(t *testing.T) {
	// An overnight shift on an afternoon half-leave day records overtime,
	// but clocking out before 12:00 is still an early leave.
	record := testRecord("00", strp("08:00:00"), strp("05:00:00"))
	record.AbsenceReason = strp(attendance.AbsencePMHalfLeave)

	anomalies := detect(t, record)

	require.Len(t, anomalies, 1)
	assert.Equal(t, attendance.AnomalyEarlyLeave, anomalies[0].Type)
	assert.Equal(t, "早退420分（午後半休）", anomalies[0].Message)
}

func TestDetectAnomalies_OvernightShiftNotEarlyLeave(t *testing.T) {
	// Without the half-leave, the same punches are an overnight shift: the
	// pre-dawn clock-out is explained by the overtime on record.
	assert.Empty(t, detect(t, testRecord("00", strp("08:00:00"), strp("05:00:00"))))
}

func TestDetectAnomalies_InsufficientHours(t *testing.T) {
	// Morning half-leave starting exactly at 13:00: neither late nor early,
	// but 225 regular minutes against a 233-minute half-day requirement.
	record := testRecord("00", strp("13:00:00"), strp("16:55:00"))
	record.AbsenceReason = strp(attendance.AbsenceAMHalfLeave)

	anomalies := detect(t, record)

	require.Len(t, anomalies, 1)
	assert.Equal(t, attendance.AnomalyInsufficientHours, anomalies[0].Type)
	assert.Equal(t, attendance.SeverityWarning, anomalies[0].Severity)
	assert.Equal(t, "所定労働時間不足8分", anomalies[0].Message)
}

func TestDetectAnomalies_LateSuppressesInsufficient(t *testing.T) {
	// 08:10 in leaves 455 regular minutes, but the shortfall is already
	// explained by the late flag.
	anomalies := detect(t, testRecord("00", strp("08:10:00"), strp("16:55:00")))

	require.Len(t, anomalies, 1)
	assert.Equal(t, attendance.AnomalyLate, anomalies[0].Type)
}

func TestDetectAnomalies_CleanDay(t *testing.T) {
	assert.Empty(t, detect(t, testRecord("00", strp("08:00:00"), strp("16:55:00"))))
	assert.Empty(t, detect(t, testRecord("00", strp("07:50:00"), strp("18:30:00"))))
	assert.Empty(t, detect(t, testRecord("01", strp("08:00:00"), strp("17:00:00"))))
}
