package handler

import (
	"pix-credit-service/internal/adapter/http/dto"
	"pix-credit-service/internal/core/ports"
	"pix-credit-service/pkg/apperror"
	"pix-credit-service/pkg/response"

	"github.com/gin-gonic/gin"
)

// PixHandler serves code issuance and the stateless BR Code tools.
type PixHandler struct {
	chargeSvc ports.ChargeService
	pixSvc    ports.PixService
}

// NewPixHandler creates a new PixHandler.
func NewPixHandler(chargeSvc ports.ChargeService, pixSvc ports.PixService) *PixHandler {
	return &PixHandler{chargeSvc: chargeSvc, pixSvc: pixSvc}
}

// CreateStatic handles POST /api/v1/pix/static.
func (h *PixHandler) CreateStatic(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	var req dto.CreateStaticPixRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	res, err := h.chargeSvc.CreateStaticPix(c.Request.Context(), ports.CreateChargeRequest{
		Actor:        a,
		ReferenceID:  req.ReferenceID,
		PayerName:    req.PayerName,
		PayerEmail:   req.PayerEmail,
		PayerCPF:     req.PayerCPF,
		ReceiverName: req.ReceiverName,
		ReceiverCPF:  req.ReceiverCPF,
		Amount:       req.Amount,
		Description:  req.Description,
		ClientIP:     c.ClientIP(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.NewChargeResponse(res))
}

// ValidateKey handles POST /api/v1/pix/validate-key.
func (h *PixHandler) ValidateKey(c *gin.Context) {
	var req dto.ValidateKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	v := h.pixSvc.ValidateKey(req.Key)
	response.OK(c, dto.ValidateKeyResponse{
		Key:   v.Key,
		Valid: v.Valid,
		Type:  string(v.Type),
	})
}

// Config handles GET /api/v1/pix/config.
func (h *PixHandler) Config(c *gin.Context) {
	cfg := h.pixSvc.Config()
	response.OK(c, dto.PixConfigResponse{
		PixKey:       cfg.PixKey,
		KeyType:      string(cfg.KeyType),
		MerchantName: cfg.MerchantName,
		MerchantCity: cfg.MerchantCity,
		IsConfigured: cfg.IsConfigured,
	})
}

// Decode handles POST /api/v1/pix/decode.
func (h *PixHandler) Decode(c *gin.Context) {
	var req dto.DecodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	p, err := h.pixSvc.Decode(req.Code)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewDecodeResponse(p))
}
