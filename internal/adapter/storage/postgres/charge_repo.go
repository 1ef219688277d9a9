package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pix-credit-service/internal/core/domain"
	"pix-credit-service/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const chargeColumns = `id, reference_id, payer_name, payer_email, payer_cpf_enc, receiver_name,
		receiver_cpf_enc, amount, description, payment_method, status, transaction_id,
		created_by, created_at, updated_at`

// ChargeRepo implements ports.ChargeRepository.
type ChargeRepo struct {
	pool Pool
}

// NewChargeRepo creates a new ChargeRepo.
func NewChargeRepo(pool Pool) *ChargeRepo {
	return &ChargeRepo{pool: pool}
}

// Create inserts a charge within a database transaction. A duplicate
// reference or transaction id yields domain.ErrAlreadyExists.
func (r *ChargeRepo) Create(ctx context.Context, tx pgx.Tx, c *domain.Charge) error {
	query := `INSERT INTO charges (` + chargeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := tx.Exec(ctx, query,
		c.ID, c.ReferenceID, c.PayerName, c.PayerEmail, c.PayerCPFEnc, c.ReceiverName,
		c.ReceiverCPFEnc, c.Amount, c.Description, c.PaymentMethod, c.Status, c.TransactionID,
		c.CreatedBy, c.CreatedAt, c.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("insert charge: %w: %w", domain.ErrAlreadyExists, err)
	}
	if err != nil {
		return fmt.Errorf("insert charge: %w", err)
	}
	return nil
}

// GetByID fetches a charge by UUID. Returns nil, nil when absent.
func (r *ChargeRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Charge, error) {
	query := `SELECT ` + chargeColumns + ` FROM charges WHERE id = $1`
	return scanCharge(r.pool.QueryRow(ctx, query, id))
}

// GetByIDForUpdate locks the charge row for the rest of tx.
func (r *ChargeRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Charge, error) {
	query := `SELECT ` + chargeColumns + ` FROM charges WHERE id = $1 FOR UPDATE`
	return scanCharge(tx.QueryRow(ctx, query, id))
}

// UpdateStatus sets a charge's status within a database transaction.
func (r *ChargeRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.ChargeStatus) error {
	query := `UPDATE charges SET status = $1, updated_at = $2 WHERE id = $3`

	tag, err := tx.Exec(ctx, query, status, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update charge status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("charge not found: %s", id)
	}
	return nil
}

// List fetches charges with filtering and pagination, newest first.
func (r *ChargeRepo) List(ctx context.Context, params ports.ChargeListParams) ([]domain.Charge, int64, error) {
	where, args := chargeFilter(params.CreatedBy, params.Status, params.From, params.To)
	argIdx := len(args) + 1

	var total int64
	countQuery := "SELECT COUNT(*) FROM charges" + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count charges: %w", err)
	}

	offset := (params.Page - 1) * params.PageSize
	dataQuery := fmt.Sprintf(`SELECT %s FROM charges%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		chargeColumns, where, argIdx, argIdx+1)
	args = append(args, params.PageSize, offset)

	rows, err := r.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list charges: %w", err)
	}
	defer rows.Close()

	charges := make([]domain.Charge, 0, params.PageSize)
	for rows.Next() {
		c, err := scanCharge(rows)
		if err != nil {
			return nil, 0, err
		}
		charges = append(charges, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate charge rows: %w", err)
	}
	return charges, total, nil
}

// GetStats aggregates counts and amounts per status.
func (r *ChargeRepo) GetStats(ctx context.Context, createdBy *uuid.UUID, since *time.Time) (*ports.ChargeStats, error) {
	where, args := chargeFilter(createdBy, nil, since, nil)

	query := `SELECT
		COUNT(*) AS total,
		COUNT(*) FILTER (WHERE status = 'PENDING') AS pending,
		COUNT(*) FILTER (WHERE status = 'PAID') AS paid,
		COUNT(*) FILTER (WHERE status = 'CANCELLED') AS cancelled,
		COALESCE(SUM(amount), 0) AS total_amount,
		COALESCE(SUM(amount) FILTER (WHERE status = 'PAID'), 0) AS paid_amount,
		COALESCE(SUM(amount) FILTER (WHERE status = 'PENDING'), 0) AS pending_amount,
		COALESCE(SUM(amount) FILTER (WHERE status = 'CANCELLED'), 0) AS cancelled_amount
		FROM charges` + where

	stats := &ports.ChargeStats{}
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&stats.TotalCharges, &stats.Pending, &stats.Paid, &stats.Cancelled,
		&stats.TotalAmount, &stats.PaidAmount, &stats.PendingAmount, &stats.CancelledAmount,
	)
	if err != nil {
		return nil, fmt.Errorf("get charge stats: %w", err)
	}
	return stats, nil
}

func chargeFilter(createdBy *uuid.UUID, status *domain.ChargeStatus, from, to *time.Time) (string, []any) {
	var conditions []string
	var args []any

	add := func(cond string, v any) {
		args = append(args, v)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}
	if createdBy != nil {
		add("created_by = $%d", *createdBy)
	}
	if status != nil {
		add("status = $%d", *status)
	}
	if from != nil {
		add("created_at >= $%d", *from)
	}
	if to != nil {
		add("created_at <= $%d", *to)
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func scanCharge(row pgx.Row) (*domain.Charge, error) {
	c := &domain.Charge{}
	err := row.Scan(
		&c.ID, &c.ReferenceID, &c.PayerName, &c.PayerEmail, &c.PayerCPFEnc, &c.ReceiverName,
		&c.ReceiverCPFEnc, &c.Amount, &c.Description, &c.PaymentMethod, &c.Status, &c.TransactionID,
		&c.CreatedBy, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan charge: %w", err)
	}
	return c, nil
}
