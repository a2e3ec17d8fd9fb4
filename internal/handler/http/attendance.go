package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kintai-labs/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-labs/kintai-backend-go/internal/handler/http/response"
)

type AttendanceHandler struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

// MonthlyReport handles GET /attendances/report?employee_id=&year=&month=.
func (h *AttendanceHandler) MonthlyReport(w http.ResponseWriter, r *http.Request) {
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))
	month, _ := strconv.Atoi(r.URL.Query().Get("month"))

	resp, err := h.attendanceService.MonthlyReport(r.Context(), attendance.MonthlyReportRequest{
		EmployeeID: r.URL.Query().Get("employee_id"),
		Year:       year,
		Month:      month,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// List handles GET /attendances?employee_id=&from=&to=.
func (h *AttendanceHandler) List(w http.ResponseWriter, r *http.Request) {
	from, errFrom := time.Parse("2006-01-02", r.URL.Query().Get("from"))
	to, errTo := time.Parse("2006-01-02", r.URL.Query().Get("to"))
	if errFrom != nil || errTo != nil {
		response.BadRequest(w, "from and to must be in YYYY-MM-DD format", nil)
		return
	}

	days, err := h.attendanceService.ListDays(r.Context(), attendance.ListFilter{
		EmployeeID: r.URL.Query().Get("employee_id"),
		From:       from,
		To:         to,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, days)
}

// Update handles PUT /attendances/{id}.
func (h *AttendanceHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req attendance.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	day, err := h.attendanceService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance record updated", day)
}

// Import handles POST /attendances/import.
func (h *AttendanceHandler) Import(w http.ResponseWriter, r *http.Request) {
	var req attendance.ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.attendanceService.Import(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Import completed", result)
}
