package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance records. Records are
// unique per (employee, date); Upsert replaces an existing row for that key.
type AttendanceRepository interface {
	// GetByID retrieves a record by ID.
	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByEmployeeAndDate retrieves the record for one employee-day, nil when
	// none exists.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	// ListByEmployeeAndRange retrieves records for one employee within
	// [from, to], ordered by date ascending.
	ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]Attendance, error)

	// Upsert inserts or replaces the record keyed by (employee, date).
	Upsert(ctx context.Context, att Attendance) (Attendance, error)

	// Update updates an existing record by ID.
	Update(ctx context.Context, att Attendance) error

	// ListLeaveMarked retrieves records whose absence reason is a paid-leave
	// type, optionally bounded by date. Feeds the leave usage aggregator.
	ListLeaveMarked(ctx context.Context, employeeID string, from, to *time.Time) ([]Attendance, error)
}
