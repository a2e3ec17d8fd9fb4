package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/kintai-labs/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-labs/kintai-backend-go/internal/domain/employee"
	"github.com/kintai-labs/kintai-backend-go/internal/pkg/database"
	"github.com/kintai-labs/kintai-backend-go/internal/pkg/timeutil"
)

// Service implements attendance.AttendanceService.
type Service struct {
	db             *database.DB
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	calc           *Calculator
}

// NewService creates an attendance service.
func NewService(
	db *database.DB,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	calc *Calculator,
) attendance.AttendanceService {
	return &Service{
		db:             db,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		calc:           calc,
	}
}

// MonthlyReport builds the billing-period report for one employee. The
// period for (year, month) ends on the closing day of that month and starts
// the day after the previous closing day.
func (s *Service) MonthlyReport(ctx context.Context, req attendance.MonthlyReportRequest) (attendance.MonthlyReportResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.MonthlyReportResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return attendance.MonthlyReportResponse{}, err
	}

	periodEnd := time.Date(req.Year, time.Month(req.Month), s.calc.Config().ClosingDay, 0, 0, 0, 0, time.UTC)
	periodStart := periodEnd.AddDate(0, -1, 0).AddDate(0, 0, 1)

	records, err := s.attendanceRepo.ListByEmployeeAndRange(ctx, req.EmployeeID, periodStart, periodEnd)
	if err != nil {
		return attendance.MonthlyReportResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	days := make([]attendance.DayResponse, 0, len(records))
	for _, record := range records {
		days = append(days, s.toDayResponse(record))
	}

	return attendance.MonthlyReportResponse{
		EmployeeID:  req.EmployeeID,
		PeriodStart: periodStart.Format("2006-01-02"),
		PeriodEnd:   periodEnd.Format("2006-01-02"),
		Days:        days,
		Total:       s.calc.CalculateMonthlyTotal(records),
	}, nil
}

// ListDays retrieves records in a date range with derived breakdowns.
func (s *Service) ListDays(ctx context.Context, filter attendance.ListFilter) ([]attendance.DayResponse, error) {
	if filter.EmployeeID == "" || filter.From.IsZero() || filter.To.IsZero() || filter.To.Before(filter.From) {
		return nil, attendance.ErrInvalidPeriod
	}

	records, err := s.attendanceRepo.ListByEmployeeAndRange(ctx, filter.EmployeeID, filter.From, filter.To)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}

	days := make([]attendance.DayResponse, 0, len(records))
	for _, record := range records {
		days = append(days, s.toDayResponse(record))
	}
	return days, nil
}

// Update applies a manual correction and recomputes the stored raw minutes.
// The regulated buckets are never stored, so corrections take effect on the
// next read with no further recalculation step.
func (s *Service) Update(ctx context.Context, req attendance.UpdateRequest) (attendance.DayResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.DayResponse{}, err
	}

	record, err := s.attendanceRepo.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.DayResponse{}, err
	}

	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return attendance.DayResponse{}, fmt.Errorf("failed to parse date: %w", err)
		}
		record.Date = date
	}
	if req.DayType != nil {
		record.DayType = *req.DayType
	}
	applyClockField(&record.ClockIn, req.ClockIn)
	applyClockField(&record.ClockOut, req.ClockOut)
	applyClockField(&record.GoOutAt, req.GoOutAt)
	applyClockField(&record.ReturnAt, req.ReturnAt)
	applyClockField(&record.Status, req.Status)
	applyClockField(&record.AbsenceReason, req.AbsenceReason)
	applyClockField(&record.Note, req.Note)

	s.recalcStoredMinutes(&record)

	if err := s.attendanceRepo.Update(ctx, record); err != nil {
		return attendance.DayResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	return s.toDayResponse(record), nil
}

func (s *Service) toDayResponse(record attendance.Attendance) attendance.DayResponse {
	daily := s.calc.CalculateDaily(record)

	resp := attendance.DayResponse{
		ID:            record.ID,
		EmployeeID:    record.EmployeeID,
		Date:          record.Date.Format("2006-01-02"),
		DayType:       record.DayType,
		ClockIn:       record.ClockIn,
		ClockOut:      record.ClockOut,
		AbsenceReason: record.AbsenceReason,
		Note:          record.Note,
		Calculation:   daily,
		Anomalies:     s.calc.DetectAnomalies(record, daily),
	}
	if record.EmployeeName != nil {
		resp.EmployeeName = *record.EmployeeName
	}
	return resp
}

// recalcStoredMinutes refreshes the raw break/work totals persisted alongside
// the stamps. These feed simple listings only; the regulated buckets come
// from the calculator.
func (s *Service) recalcStoredMinutes(record *attendance.Attendance) {
	if !record.HasClockIn() || !record.HasClockOut() {
		record.BreakMinutes = nil
		record.WorkMinutes = nil
		return
	}

	inMinutes, errIn := timeutil.ParseClock(*record.ClockIn)
	outMinutes, errOut := timeutil.ParseClock(*record.ClockOut)
	if errIn != nil || errOut != nil {
		record.BreakMinutes = nil
		record.WorkMinutes = nil
		return
	}

	clockIn := timeutil.AtClock(record.Date, inMinutes)
	clockOut := timeutil.AtClock(record.Date, outMinutes)
	if clockOut.Before(clockIn) {
		clockOut = clockOut.AddDate(0, 0, 1)
	}

	breakTotal := 0
	if record.GoOutAt != nil && *record.GoOutAt != "" && record.ReturnAt != nil && *record.ReturnAt != "" {
		goOut, errGo := timeutil.ParseClock(*record.GoOutAt)
		returned, errRet := timeutil.ParseClock(*record.ReturnAt)
		if errGo == nil && errRet == nil && returned > goOut {
			breakTotal = returned - goOut
		}
	} else {
		for _, b := range s.calc.Config().Breaks {
			breakStart := timeutil.AtClock(record.Date, b.StartMinutes)
			breakEnd := timeutil.AtClock(record.Date, b.EndMinutes)
			breakTotal += timeutil.OverlapMinutes(clockIn, clockOut, breakStart, breakEnd)
		}
	}

	work := max(0, timeutil.MinutesBetween(clockIn, clockOut)-breakTotal)
	record.BreakMinutes = &breakTotal
	record.WorkMinutes = &work
}

// applyClockField applies an optional string update: nil leaves the stored
// value untouched, an empty string clears it.
func applyClockField(dst **string, src *string) {
	if src == nil {
		return
	}
	if *src == "" {
		*dst = nil
		return
	}
	v := *src
	*dst = &v
}
