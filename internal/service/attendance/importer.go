package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/kintai-labs/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-labs/kintai-backend-go/internal/domain/employee"
	"github.com/kintai-labs/kintai-backend-go/internal/pkg/database"
)

// Import upserts a batch of time-card rows in one transaction. Rows that
// cannot be resolved are skipped and reported; a storage failure rolls the
// whole batch back so a partial import never reaches the database.
func (s *Service) Import(ctx context.Context, req attendance.ImportRequest) (attendance.ImportResult, error) {
	if err := req.Validate(); err != nil {
		return attendance.ImportResult{}, err
	}

	var result attendance.ImportResult

	err := database.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		for i, row := range req.Rows {
			line := i + 1

			date, err := parseImportDate(row.Date)
			if err != nil {
				result.Skipped++
				result.RowErrors = append(result.RowErrors, attendance.RowError{
					Line:    line,
					Message: fmt.Sprintf("invalid date %q", row.Date),
				})
				continue
			}

			emp, err := s.resolveEmployee(txCtx, row)
			if err != nil {
				return err
			}
			if emp == nil {
				result.Skipped++
				result.RowErrors = append(result.RowErrors, attendance.RowError{
					Line:    line,
					Message: "row has no employee code, name or card number",
				})
				continue
			}

			record := attendance.Attendance{
				EmployeeID:    emp.ID,
				Date:          date,
				DayType:       row.DayType,
				ShiftCode:     optional(row.ShiftCode),
				ClockIn:       optional(row.ClockIn),
				ClockOut:      optional(row.ClockOut),
				GoOutAt:       optional(row.GoOutAt),
				ReturnAt:      optional(row.ReturnAt),
				AbsenceReason: optional(row.AbsenceReason),
				Note:          optional(row.Note),
			}
			if record.DayType == "" {
				record.DayType = attendance.DayTypeWeekday
			}
			s.recalcStoredMinutes(&record)

			if _, err := s.attendanceRepo.Upsert(txCtx, record); err != nil {
				return fmt.Errorf("failed to upsert attendance row %d: %w", line, err)
			}
			result.Imported++
		}
		return nil
	})
	if err != nil {
		return attendance.ImportResult{}, fmt.Errorf("%w: %v", attendance.ErrImportFailed, err)
	}

	return result, nil
}

// resolveEmployee matches a row to the roster by code, normalized name or
// card number, creating a minimal roster entry when the row carries a name
// but no match exists. Nil means the row has nothing to match or create by.
func (s *Service) resolveEmployee(ctx context.Context, row attendance.ImportRow) (*employee.Employee, error) {
	if row.EmployeeCode == "" && row.EmployeeName == "" && row.CardNumber == "" {
		return nil, nil
	}

	emp, err := s.employeeRepo.FindByCodeNameOrCard(ctx, row.EmployeeCode, row.EmployeeName, row.CardNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve employee: %w", err)
	}
	if emp != nil {
		return emp, nil
	}

	name := row.EmployeeName
	if name == "" {
		name = row.CardNumber
	}
	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		Name:         name,
		EmployeeCode: optional(row.EmployeeCode),
		CardNumber:   optional(row.CardNumber),
		CardName:     optional(row.EmployeeName),
		IsActive:     true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create employee from import row: %w", err)
	}
	return &created, nil
}

func parseImportDate(value string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", "2006/01/02", "2006/1/2"} {
		if d, err := time.Parse(layout, value); err == nil {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported date format %q", value)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
