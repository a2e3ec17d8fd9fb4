package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kintai-labs/kintai-backend-go/internal/domain/leave"
	"github.com/kintai-labs/kintai-backend-go/internal/handler/http/response"
)

type LeaveHandler struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) *LeaveHandler {
	return &LeaveHandler{leaveService: leaveService}
}

// Ledger handles GET /leaves/{employeeID}/ledger?years=.
func (h *LeaveHandler) Ledger(w http.ResponseWriter, r *http.Request) {
	years, _ := strconv.Atoi(r.URL.Query().Get("years"))

	resp, err := h.leaveService.Ledger(r.Context(), chi.URLParam(r, "employeeID"), years)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// Balance handles GET /leaves/{employeeID}/balance.
func (h *LeaveHandler) Balance(w http.ResponseWriter, r *http.Request) {
	resp, err := h.leaveService.Balance(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// AllBalances handles GET /leaves/balances.
func (h *LeaveHandler) AllBalances(w http.ResponseWriter, r *http.Request) {
	resp, err := h.leaveService.AllBalances(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// UsageDetails handles GET /leaves/{employeeID}/usages?years=.
func (h *LeaveHandler) UsageDetails(w http.ResponseWriter, r *http.Request) {
	years, _ := strconv.Atoi(r.URL.Query().Get("years"))

	resp, err := h.leaveService.UsageDetails(r.Context(), chi.URLParam(r, "employeeID"), years)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// CreateGrant handles POST /leaves/grants.
func (h *LeaveHandler) CreateGrant(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateGrantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	grant, err := h.leaveService.CreateGrant(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave grant recorded", grant)
}

// CreateUsage handles POST /leaves/usages.
func (h *LeaveHandler) CreateUsage(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateUsageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	usage, err := h.leaveService.CreateUsage(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave usage recorded", usage)
}
