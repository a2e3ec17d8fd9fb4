package attendance

import "errors"

// Attendance domain errors
var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrDuplicateDate      = errors.New("attendance already exists for this employee and date")
	ErrInvalidPeriod      = errors.New("invalid billing period")
	ErrImportFailed       = errors.New("attendance import failed")
)
