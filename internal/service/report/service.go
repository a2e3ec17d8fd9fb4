package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/kintai-labs/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-labs/kintai-backend-go/internal/domain/leave"
	"github.com/kintai-labs/kintai-backend-go/internal/pkg/timeutil"
)

// Service renders report screens as Excel workbooks for download.
type Service interface {
	MonthlyReportWorkbook(report attendance.MonthlyReportResponse, employeeName string) (*excelize.File, error)
	LeaveLedgerWorkbook(ledger leave.LedgerResponse) (*excelize.File, error)
}

type xlsxService struct{}

// NewService creates a report service.
func NewService() Service {
	return &xlsxService{}
}

// MonthlyReportWorkbook lays out one billing period: a row per day with the
// derived buckets, then the monthly totals.
func (s *xlsxService) MonthlyReportWorkbook(report attendance.MonthlyReportResponse, employeeName string) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "勤怠月報"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	if err := setRow(f, sheet, 1, []any{"社員", employeeName, "期間", report.PeriodStart + " 〜 " + report.PeriodEnd}); err != nil {
		return nil, err
	}
	header := []any{"日付", "区分", "出勤", "退勤", "所定内", "残業", "深夜", "休日", "所定休日", "異常"}
	if err := setRow(f, sheet, 3, header); err != nil {
		return nil, err
	}

	row := 4
	for _, day := range report.Days {
		anomalies := ""
		for i, a := range day.Anomalies {
			if i > 0 {
				anomalies += " / "
			}
			anomalies += a.Message
		}
		values := []any{
			day.Date,
			dayTypeLabel(day.DayType),
			clockLabel(day.ClockIn),
			clockLabel(day.ClockOut),
			timeutil.FormatMinutes(day.Calculation.RegularMinutes),
			timeutil.FormatMinutes(day.Calculation.OvertimeMinutes),
			timeutil.FormatMinutes(day.Calculation.NightMinutes),
			timeutil.FormatMinutes(day.Calculation.HolidayMinutes),
			timeutil.FormatMinutes(day.Calculation.PrescribedHolidayMinutes),
			anomalies,
		}
		if err := setRow(f, sheet, row, values); err != nil {
			return nil, err
		}
		row++
	}

	row++
	totals := [][]any{
		{"出勤日数", report.Total.WorkDays},
		{"総労働時間", timeutil.FormatMinutes(report.Total.WorkMinutes)},
		{"所定内", timeutil.FormatMinutes(report.Total.RegularMinutes)},
		{"残業(60h以内)", timeutil.FormatMinutes(report.Total.OvertimeMinutes)},
		{"深夜(60h以内)", timeutil.FormatMinutes(report.Total.NightMinutes)},
		{"残業(60h超)", timeutil.FormatMinutes(report.Total.OvertimeOver60Minutes)},
		{"深夜(60h超)", timeutil.FormatMinutes(report.Total.NightOver60Minutes)},
		{"法定休日", timeutil.FormatMinutes(report.Total.HolidayMinutes)},
		{"所定休日", timeutil.FormatMinutes(report.Total.PrescribedHolidayMinutes)},
		{"36協定対象", timeutil.FormatMinutes(report.Total.Article36Minutes)},
	}
	for _, t := range totals {
		if err := setRow(f, sheet, row, t); err != nil {
			return nil, err
		}
		row++
	}

	return f, nil
}

// LeaveLedgerWorkbook lays out the paid-leave ledger: the yearly table and
// the dated usage listing, matching the print view of the ledger screen.
func (s *xlsxService) LeaveLedgerWorkbook(ledger leave.LedgerResponse) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "有給管理簿"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	if err := setRow(f, sheet, 1, []any{"社員", ledger.EmployeeName, "現在残日数", ledger.Balance.TotalRemaining}); err != nil {
		return nil, err
	}
	if err := setRow(f, sheet, 3, []any{"年度", "期間", "繰越", "付与", "取得", "残日数"}); err != nil {
		return nil, err
	}

	row := 4
	for _, y := range ledger.Years {
		values := []any{
			y.FiscalYear,
			y.PeriodStart + " 〜 " + y.PeriodEnd,
			y.Carryover,
			y.Granted,
			y.Usage,
			y.Remaining,
		}
		if err := setRow(f, sheet, row, values); err != nil {
			return nil, err
		}
		row++
	}

	row++
	if err := setRow(f, sheet, row, []any{"取得日", "種別", "日数", "備考"}); err != nil {
		return nil, err
	}
	row++
	for _, d := range ledger.UsageDetails {
		note := ""
		if d.Note != nil {
			note = *d.Note
		}
		if err := setRow(f, sheet, row, []any{d.Date, d.Type, d.Days, note}); err != nil {
			return nil, err
		}
		row++
	}

	return f, nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to build cell name: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}

func dayTypeLabel(dayType string) string {
	switch dayType {
	case attendance.DayTypeLegalHoliday:
		return "法定休日"
	case attendance.DayTypePrescribedHoliday:
		return "所定休日"
	default:
		return "出勤日"
	}
}

func clockLabel(clock *string) string {
	if clock == nil || *clock == "" {
		return "-"
	}
	if len(*clock) >= 5 {
		return (*clock)[:5]
	}
	return *clock
}
