package http

import (
	"net/http"

	"github.com/staffclock/attendance-backend-go/internal/domain/dashboard"
	"github.com/staffclock/attendance-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	AdminSummary(w http.ResponseWriter, r *http.Request)
	EmployeeOverview(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{
		dashboardService: dashboardService,
	}
}

// AdminSummary implements DashboardHandler.
func (h *dashboardHandlerImpl) AdminSummary(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.AdminSummary(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// EmployeeOverview implements DashboardHandler.
func (h *dashboardHandlerImpl) EmployeeOverview(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.EmployeeOverview(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
