package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/kintai-labs/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-labs/kintai-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

// NewAttendanceRepository creates a PostgreSQL attendance repository.
func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	a.id, a.employee_id, a.date, a.day_type, a.shift_code,
	a.clock_in, a.clock_out, a.go_out_at, a.return_at,
	a.break_minutes, a.work_minutes, a.status, a.absence_reason, a.note,
	a.created_at, a.updated_at
`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.Date, &att.DayType, &att.ShiftCode,
		&att.ClockIn, &att.ClockOut, &att.GoOutAt, &att.ReturnAt,
		&att.BreakMinutes, &att.WorkMinutes, &att.Status, &att.AbsenceReason, &att.Note,
		&att.CreatedAt, &att.UpdatedAt,
	)
	return att, err
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.id = $1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance record: %w", err)
	}
	return att, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.employee_id = $1 AND a.date = $2
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance record: %w", err)
	}
	return &att, nil
}

// ListByEmployeeAndRange implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.employee_id = $1 AND a.date BETWEEN $2 AND $3
		ORDER BY a.date
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, att)
	}
	return records, rows.Err()
}

// Upsert implements attendance.AttendanceRepository. Records are unique per
// (employee, date); re-importing a period replaces the stamps in place.
func (r *attendanceRepository) Upsert(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (
			id, employee_id, date, day_type, shift_code,
			clock_in, clock_out, go_out_at, return_at,
			break_minutes, work_minutes, status, absence_reason, note
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			day_type = EXCLUDED.day_type,
			shift_code = EXCLUDED.shift_code,
			clock_in = EXCLUDED.clock_in,
			clock_out = EXCLUDED.clock_out,
			go_out_at = EXCLUDED.go_out_at,
			return_at = EXCLUDED.return_at,
			break_minutes = EXCLUDED.break_minutes,
			work_minutes = EXCLUDED.work_minutes,
			status = EXCLUDED.status,
			absence_reason = EXCLUDED.absence_reason,
			note = EXCLUDED.note,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		uuid.New().String(),
		att.EmployeeID,
		att.Date,
		att.DayType,
		att.ShiftCode,
		att.ClockIn,
		att.ClockOut,
		att.GoOutAt,
		att.ReturnAt,
		att.BreakMinutes,
		att.WorkMinutes,
		att.Status,
		att.AbsenceReason,
		att.Note,
	).Scan(&att.ID, &att.CreatedAt, &att.UpdatedAt)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to upsert attendance record: %w", err)
	}
	return att, nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := database.GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances SET
			date = $2,
			day_type = $3,
			shift_code = $4,
			clock_in = $5,
			clock_out = $6,
			go_out_at = $7,
			return_at = $8,
			break_minutes = $9,
			work_minutes = $10,
			status = $11,
			absence_reason = $12,
			note = $13,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		att.ID,
		att.Date,
		att.DayType,
		att.ShiftCode,
		att.ClockIn,
		att.ClockOut,
		att.GoOutAt,
		att.ReturnAt,
		att.BreakMinutes,
		att.WorkMinutes,
		att.Status,
		att.AbsenceReason,
		att.Note,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// ListLeaveMarked implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListLeaveMarked(ctx context.Context, employeeID string, from, to *time.Time) ([]attendance.Attendance, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.employee_id = $1
		  AND a.absence_reason IN ('paid_leave', 'am_half_leave', 'pm_half_leave')
		  AND ($2::date IS NULL OR a.date >= $2)
		  AND ($3::date IS NULL OR a.date <= $3)
		ORDER BY a.date
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave-marked attendance: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, att)
	}
	return records, rows.Err()
}
