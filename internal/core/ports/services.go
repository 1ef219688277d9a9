package ports

import (
	"context"
	"time"

	"pix-credit-service/internal/core/domain"
	"pix-credit-service/pkg/brcode"

	"github.com/google/uuid"
)

// EncryptionService handles AES-256-GCM encryption/decryption.
type EncryptionService interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// HashService handles password hashing (Argon2id).
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// TokenService handles JWT token operations.
type TokenService interface {
	Generate(user *domain.User) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	UserID  uuid.UUID
	Email   string
	IsAdmin bool
}

// Actor returns the caller identity carried by the token.
func (c *TokenClaims) Actor() Actor {
	return Actor{UserID: c.UserID, IsAdmin: c.IsAdmin}
}

// Actor is the authenticated caller of a service operation.
type Actor struct {
	UserID  uuid.UUID
	IsAdmin bool
}

// IdempotencyCache is the Redis-layer idempotency check (fast path).
type IdempotencyCache interface {
	Get(ctx context.Context, key string) ([]byte, error) // nil, nil on miss
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// RateLimiter counts requests per key in a fixed window.
type RateLimiter interface {
	// Allow records one hit and reports whether key is still under limit,
	// plus the hits left in the current window.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, int, error)
}

// --- Service Ports (Business Logic) ---

// PixService issues and inspects static BR Codes for the configured merchant.
type PixService interface {
	Generate(amount int64, description string) (*brcode.Result, error)
	Regenerate(amount int64, description, transactionID string) (*brcode.Result, error)
	ValidateKey(key string) KeyValidation
	Config() PixConfig
	Decode(code string) (*brcode.Payload, error)
	QRCodeURL(code string) string
}

// KeyValidation is the outcome of classifying a PIX key.
type KeyValidation struct {
	Key   string
	Valid bool
	Type  brcode.KeyType
}

// PixConfig describes the merchant profile codes are issued for.
type PixConfig struct {
	PixKey       string
	KeyType      brcode.KeyType
	MerchantName string
	MerchantCity string
	IsConfigured bool
}

// ChargeService defines the credit request lifecycle.
type ChargeService interface {
	CreateStaticPix(ctx context.Context, req CreateChargeRequest) (*ChargeResult, error)
	GetCharge(ctx context.Context, actor Actor, chargeID uuid.UUID) (*ChargeResult, error)
	RegeneratePix(ctx context.Context, actor Actor, chargeID uuid.UUID, hideReference bool) (*ChargeResult, error)
	UpdateStatus(ctx context.Context, actor Actor, chargeID uuid.UUID, status domain.ChargeStatus) (*domain.Charge, error)
}

// CreateChargeRequest holds validated input for a new static PIX charge.
type CreateChargeRequest struct {
	Actor        Actor
	ReferenceID  string // client idempotency key, optional
	PayerName    string
	PayerEmail   string
	PayerCPF     string
	ReceiverName string
	ReceiverCPF  string
	Amount       int64 // centavos
	Description  string
	ClientIP     string
}

// ChargeResult is a charge together with its payable code. CPFs are masked.
type ChargeResult struct {
	Charge      *domain.Charge `json:"charge"`
	PixKey      string         `json:"pix_key"`
	PixCode     string         `json:"pix_code"`
	QRCodeURL   string         `json:"qr_code_url"`
	PayerCPF    string         `json:"payer_cpf,omitempty"`
	ReceiverCPF string         `json:"receiver_cpf,omitempty"`
}

// AuthService defines operator authentication.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

// RegisterRequest holds input for operator registration.
type RegisterRequest struct {
	Name     string
	Email    string
	Password string
}

// LoginResult carries the issued token.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

// ReportingService defines listing and dashboard aggregates.
type ReportingService interface {
	ListCharges(ctx context.Context, actor Actor, params ChargeListParams) ([]domain.Charge, int64, error)
	GetDashboardStats(ctx context.Context, actor Actor, period string) (*ChargeStats, error)
}

// AuditService records audited actions without blocking the caller.
type AuditService interface {
	Log(ctx context.Context, entry *domain.AuditLog)
}
