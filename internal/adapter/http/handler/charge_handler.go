package handler

import (
	"errors"
	"io"
	"strconv"
	"time"

	"pix-credit-service/internal/adapter/http/dto"
	"pix-credit-service/internal/core/domain"
	"pix-credit-service/internal/core/ports"
	"pix-credit-service/pkg/apperror"
	"pix-credit-service/pkg/response"

	"github.com/gin-gonic/gin"
)

// ChargeHandler serves stored charges.
type ChargeHandler struct {
	chargeSvc    ports.ChargeService
	reportingSvc ports.ReportingService
}

// NewChargeHandler creates a new ChargeHandler.
func NewChargeHandler(chargeSvc ports.ChargeService, reportingSvc ports.ReportingService) *ChargeHandler {
	return &ChargeHandler{chargeSvc: chargeSvc, reportingSvc: reportingSvc}
}

// List handles GET /api/v1/charges.
func (h *ChargeHandler) List(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	var q dto.ListChargesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	params := ports.ChargeListParams{Page: q.Page, PageSize: q.PageSize, From: q.From, To: q.To}
	if q.Status != "" {
		status := domain.ChargeStatus(q.Status)
		params.Status = &status
	}

	charges, total, err := h.reportingSvc.ListCharges(c.Request.Context(), a, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.ChargeSummary, 0, len(charges))
	for i := range charges {
		items = append(items, dto.NewChargeSummary(&charges[i]))
	}

	page, pageSize := q.Page, q.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	response.Page(c, items, total, page, pageSize)
}

// Get handles GET /api/v1/charges/:id.
func (h *ChargeHandler) Get(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := chargeID(c)
	if !ok {
		return
	}

	res, err := h.chargeSvc.GetCharge(c.Request.Context(), a, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewChargeResponse(res))
}

// Regenerate handles POST /api/v1/charges/:id/pix. hide_reference may come
// in the JSON body or the query string.
func (h *ChargeHandler) Regenerate(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := chargeID(c)
	if !ok {
		return
	}

	var req dto.RegenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	if q := c.Query("hide_reference"); q != "" {
		hide, err := strconv.ParseBool(q)
		if err != nil {
			response.Error(c, apperror.Validation("hide_reference must be a boolean"))
			return
		}
		req.HideReference = hide
	}

	res, err := h.chargeSvc.RegeneratePix(c.Request.Context(), a, id, req.HideReference)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewChargeResponse(res))
}

// UpdateStatus handles PATCH /api/v1/charges/:id/status.
func (h *ChargeHandler) UpdateStatus(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := chargeID(c)
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	charge, err := h.chargeSvc.UpdateStatus(c.Request.Context(), a, id, domain.ChargeStatus(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.StatusResponse{
		ID:        charge.ID.String(),
		Status:    string(charge.Status),
		UpdatedAt: charge.UpdatedAt.UTC().Format(time.RFC3339),
	})
}
