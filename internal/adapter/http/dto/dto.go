package dto

import (
	"time"

	"pix-credit-service/internal/core/domain"
	"pix-credit-service/internal/core/ports"
	"pix-credit-service/pkg/brcode"
)

// RegisterRequest is the request body for operator registration.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

// LoginRequest is the request body for operator login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"is_admin"`
	CreatedAt string `json:"created_at"`
}

// LoginResponse is the response body for successful login.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt int64        `json:"expires_at"` // Unix timestamp
	User      UserResponse `json:"user"`
}

// CreateStaticPixRequest is the request body for a new credit request.
// Amount is in centavos.
type CreateStaticPixRequest struct {
	ReferenceID  string `json:"reference_id" binding:"omitempty,max=64,safe_id"`
	PayerName    string `json:"payer_name" binding:"required,max=120"`
	PayerEmail   string `json:"payer_email" binding:"required,email,max=255"`
	PayerCPF     string `json:"payer_cpf" binding:"omitempty,tax_id"`
	ReceiverName string `json:"receiver_name" binding:"required,max=120"`
	ReceiverCPF  string `json:"receiver_cpf" binding:"omitempty,tax_id"`
	Amount       int64  `json:"amount" binding:"required,gt=0,lte=9999999999"`
	Description  string `json:"description" binding:"omitempty,max=140"`
}

// ChargeResponse is a charge together with its PIX code.
type ChargeResponse struct {
	ID              string `json:"id"`
	ReferenceID     string `json:"reference_id"`
	PayerName       string `json:"payer_name"`
	PayerEmail      string `json:"payer_email"`
	PayerCPF        string `json:"payer_cpf,omitempty"`
	ReceiverName    string `json:"receiver_name"`
	ReceiverCPF     string `json:"receiver_cpf,omitempty"`
	Amount          int64  `json:"amount"`
	AmountFormatted string `json:"amount_formatted"`
	Description     string `json:"description"`
	PaymentMethod   string `json:"payment_method"`
	Status          string `json:"status"`
	TransactionID   string `json:"transaction_id"`
	PixKey          string `json:"pix_key"`
	PixCode         string `json:"pix_code"`
	QRCodeURL       string `json:"qr_code_url,omitempty"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

// ChargeSummary is a list item; it carries no code or documents.
type ChargeSummary struct {
	ID            string `json:"id"`
	ReferenceID   string `json:"reference_id"`
	PayerName     string `json:"payer_name"`
	ReceiverName  string `json:"receiver_name"`
	Amount        int64  `json:"amount"`
	Description   string `json:"description"`
	Status        string `json:"status"`
	TransactionID string `json:"transaction_id"`
	CreatedAt     string `json:"created_at"`
}

// RegenerateRequest is the optional body of POST /charges/:id/pix.
type RegenerateRequest struct {
	HideReference bool `json:"hide_reference"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PAID CANCELLED"`
}

type StatusResponse struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	UpdatedAt string `json:"updated_at"`
}

// ListChargesQuery holds GET /charges query parameters.
type ListChargesQuery struct {
	Status   string     `form:"status" binding:"omitempty,oneof=PENDING PAID CANCELLED"`
	From     *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To       *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
	Page     int        `form:"page" binding:"omitempty,gte=1"`
	PageSize int        `form:"page_size" binding:"omitempty,gte=1,lte=100"`
}

type DashboardQuery struct {
	Period string `form:"period" binding:"omitempty,oneof=today 7d 30d all"`
}

type ValidateKeyRequest struct {
	Key string `json:"key" binding:"required,max=77"`
}

type ValidateKeyResponse struct {
	Key   string `json:"key"`
	Valid bool   `json:"valid"`
	Type  string `json:"type"`
}

type PixConfigResponse struct {
	PixKey       string `json:"pix_key"`
	KeyType      string `json:"key_type"`
	MerchantName string `json:"merchant_name"`
	MerchantCity string `json:"merchant_city"`
	IsConfigured bool   `json:"is_configured"`
}

type DecodeRequest struct {
	Code string `json:"code" binding:"required,max=512"`
}

// DecodeResponse is a verified BR Code broken into its fields.
type DecodeResponse struct {
	PixKey          string `json:"pix_key"`
	Description     string `json:"description,omitempty"`
	Amount          int64  `json:"amount"`
	AmountFormatted string `json:"amount_formatted,omitempty"`
	Currency        string `json:"currency"`
	Country         string `json:"country"`
	MerchantName    string `json:"merchant_name"`
	MerchantCity    string `json:"merchant_city"`
	TransactionID   string `json:"transaction_id"`
	Checksum        string `json:"checksum"`
	Valid           bool   `json:"valid"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// NewChargeResponse maps a service result.
func NewChargeResponse(r *ports.ChargeResult) ChargeResponse {
	c := r.Charge
	return ChargeResponse{
		ID:              c.ID.String(),
		ReferenceID:     c.ReferenceID,
		PayerName:       c.PayerName,
		PayerEmail:      c.PayerEmail,
		PayerCPF:        r.PayerCPF,
		ReceiverName:    c.ReceiverName,
		ReceiverCPF:     r.ReceiverCPF,
		Amount:          c.Amount,
		AmountFormatted: brcode.FormatAmount(c.Amount),
		Description:     c.Description,
		PaymentMethod:   string(c.PaymentMethod),
		Status:          string(c.Status),
		TransactionID:   c.TransactionID,
		PixKey:          r.PixKey,
		PixCode:         r.PixCode,
		QRCodeURL:       r.QRCodeURL,
		CreatedAt:       c.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:       c.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func NewChargeSummary(c *domain.Charge) ChargeSummary {
	return ChargeSummary{
		ID:            c.ID.String(),
		ReferenceID:   c.ReferenceID,
		PayerName:     c.PayerName,
		ReceiverName:  c.ReceiverName,
		Amount:        c.Amount,
		Description:   c.Description,
		Status:        string(c.Status),
		TransactionID: c.TransactionID,
		CreatedAt:     c.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func NewDecodeResponse(p *brcode.Payload) DecodeResponse {
	resp := DecodeResponse{
		PixKey:        p.PixKey,
		Description:   p.Description,
		Amount:        p.Amount,
		Currency:      p.Currency,
		Country:       p.Country,
		MerchantName:  p.MerchantName,
		MerchantCity:  p.MerchantCity,
		TransactionID: p.TransactionID,
		Checksum:      p.Checksum,
		Valid:         true,
	}
	if p.Amount > 0 {
		resp.AmountFormatted = brcode.FormatAmount(p.Amount)
	}
	return resp
}
