package ports

import (
	"context"
	"time"

	"pix-credit-service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UserRepository defines persistence operations for operators.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Count(ctx context.Context) (int64, error)
}

// ChargeRepository defines persistence operations for charges.
// Methods accepting pgx.Tx run inside the caller's transaction.
type ChargeRepository interface {
	Create(ctx context.Context, tx pgx.Tx, charge *domain.Charge) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Charge, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Charge, error)
	UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.ChargeStatus) error
	List(ctx context.Context, params ChargeListParams) ([]domain.Charge, int64, error)
	GetStats(ctx context.Context, createdBy *uuid.UUID, since *time.Time) (*ChargeStats, error)
}

// ChargeListParams holds filter + pagination for listing charges.
type ChargeListParams struct {
	CreatedBy *uuid.UUID // nil lists every user's charges
	Status    *domain.ChargeStatus
	From      *time.Time
	To        *time.Time
	Page      int
	PageSize  int
}

// ChargeStats holds dashboard aggregates. Amounts are centavos.
type ChargeStats struct {
	TotalCharges    int64 `json:"total_charges"`
	Pending         int64 `json:"pending"`
	Paid            int64 `json:"paid"`
	Cancelled       int64 `json:"cancelled"`
	TotalAmount     int64 `json:"total_amount"`
	PaidAmount      int64 `json:"paid_amount"`
	PendingAmount   int64 `json:"pending_amount"`
	CancelledAmount int64 `json:"cancelled_amount"`
}

// IdempotencyRepository is the durable copy of charge-creation responses.
type IdempotencyRepository interface {
	Create(ctx context.Context, tx pgx.Tx, log *domain.IdempotencyLog) error
	Get(ctx context.Context, key string) (*domain.IdempotencyLog, error)
}

// AuditRepository persists audit entries.
type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditLog) error
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
