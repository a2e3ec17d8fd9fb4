package response

import (
	"errors"
	"net/http"

	"github.com/kintai-labs/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-labs/kintai-backend-go/internal/domain/auth"
	"github.com/kintai-labs/kintai-backend-go/internal/domain/employee"
	"github.com/kintai-labs/kintai-backend-go/internal/domain/leave"
	"github.com/kintai-labs/kintai-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "User not found")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrInvalidLeaveFields):
		BadRequest(w, "Invalid leave fields", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrDuplicateDate):
		Conflict(w, "Attendance record already exists for this date")
	case errors.Is(err, attendance.ErrInvalidPeriod):
		BadRequest(w, "Invalid period", nil)
	case errors.Is(err, attendance.ErrImportFailed):
		BadRequest(w, "Import failed", nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrGrantNotFound):
		NotFound(w, "Leave grant not found")
	case errors.Is(err, leave.ErrUsageNotFound):
		NotFound(w, "Leave usage not found")
	case errors.Is(err, leave.ErrDuplicateUsage):
		Conflict(w, "Leave already recorded for this date and type")
	case errors.Is(err, leave.ErrInvalidDays):
		BadRequest(w, "Invalid number of days", nil)
	case errors.Is(err, leave.ErrNoGrantReference):
		BadRequest(w, "No grant days can be derived for this date", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
