package handler

import (
	"pix-credit-service/internal/adapter/http/dto"
	"pix-credit-service/internal/core/ports"
	"pix-credit-service/pkg/apperror"
	"pix-credit-service/pkg/response"

	"github.com/gin-gonic/gin"
)

// DashboardHandler handles dashboard endpoints.
type DashboardHandler struct {
	reportingSvc ports.ReportingService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(reportingSvc ports.ReportingService) *DashboardHandler {
	return &DashboardHandler{reportingSvc: reportingSvc}
}

// GetStats handles GET /api/v1/dashboard/stats?period=today|7d|30d|all.
func (h *DashboardHandler) GetStats(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	var q dto.DashboardQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	if q.Period == "" {
		q.Period = "all"
	}

	stats, err := h.reportingSvc.GetDashboardStats(c.Request.Context(), a, q.Period)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, stats)
}
