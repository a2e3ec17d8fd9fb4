package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/xuri/excelize/v2"

	"github.com/kintai-labs/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-labs/kintai-backend-go/internal/domain/employee"
	"github.com/kintai-labs/kintai-backend-go/internal/domain/leave"
	"github.com/kintai-labs/kintai-backend-go/internal/handler/http/response"
	"github.com/kintai-labs/kintai-backend-go/internal/service/report"
)

type ReportHandler struct {
	attendanceService attendance.AttendanceService
	leaveService      leave.LeaveService
	employeeService   employee.EmployeeService
	reportService     report.Service
}

func NewReportHandler(
	attendanceService attendance.AttendanceService,
	leaveService leave.LeaveService,
	employeeService employee.EmployeeService,
	reportService report.Service,
) *ReportHandler {
	return &ReportHandler{
		attendanceService: attendanceService,
		leaveService:      leaveService,
		employeeService:   employeeService,
		reportService:     reportService,
	}
}

// MonthlyReportXLSX handles GET /reports/attendances/xlsx?employee_id=&year=&month=.
func (h *ReportHandler) MonthlyReportXLSX(w http.ResponseWriter, r *http.Request) {
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))
	month, _ := strconv.Atoi(r.URL.Query().Get("month"))
	employeeID := r.URL.Query().Get("employee_id")

	emp, err := h.employeeService.Get(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	monthly, err := h.attendanceService.MonthlyReport(r.Context(), attendance.MonthlyReportRequest{
		EmployeeID: employeeID,
		Year:       year,
		Month:      month,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	f, err := h.reportService.MonthlyReportWorkbook(monthly, emp.Name)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	writeWorkbook(w, f, fmt.Sprintf("attendance_%s_%04d-%02d.xlsx", employeeID, year, month))
}

// LeaveLedgerXLSX handles GET /reports/leaves/{employeeID}/ledger/xlsx?years=.
func (h *ReportHandler) LeaveLedgerXLSX(w http.ResponseWriter, r *http.Request) {
	years, _ := strconv.Atoi(r.URL.Query().Get("years"))
	employeeID := chi.URLParam(r, "employeeID")

	ledger, err := h.leaveService.Ledger(r.Context(), employeeID, years)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	f, err := h.reportService.LeaveLedgerWorkbook(ledger)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	writeWorkbook(w, f, fmt.Sprintf("leave_ledger_%s.xlsx", employeeID))
}

func writeWorkbook(w http.ResponseWriter, f *excelize.File, filename string) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := f.Write(w); err != nil {
		response.InternalServerError(w, "Failed to write workbook")
	}
}
