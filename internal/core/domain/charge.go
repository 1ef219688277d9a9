package domain

import (
	"time"

	"github.com/google/uuid"
)

// ChargeStatus is the settlement state of a credit request.
type ChargeStatus string

const (
	ChargeStatusPending   ChargeStatus = "PENDING"
	ChargeStatusPaid      ChargeStatus = "PAID"
	ChargeStatusCancelled ChargeStatus = "CANCELLED"
)

// PaymentMethod is how the payer settles a charge.
type PaymentMethod string

const PaymentMethodPix PaymentMethod = "PIX"

// ParseChargeStatus returns the status named by s, or false.
func ParseChargeStatus(s string) (ChargeStatus, bool) {
	switch st := ChargeStatus(s); st {
	case ChargeStatusPending, ChargeStatusPaid, ChargeStatusCancelled:
		return st, true
	}
	return "", false
}

// Charge is a credit request from a payer to a receiver, settled by a static
// PIX code. TransactionID is the reference label embedded in the code and is
// what regeneration reproduces it from.
type Charge struct {
	ID             uuid.UUID     `json:"id"`
	ReferenceID    string        `json:"reference_id"`
	PayerName      string        `json:"payer_name"`
	PayerEmail     string        `json:"payer_email"`
	PayerCPFEnc    string        `json:"-"` // AES-256-GCM, empty when not supplied
	ReceiverName   string        `json:"receiver_name"`
	ReceiverCPFEnc string        `json:"-"`
	Amount         int64         `json:"amount"` // centavos
	Description    string        `json:"description"`
	PaymentMethod  PaymentMethod `json:"payment_method"`
	Status         ChargeStatus  `json:"status"`
	TransactionID  string        `json:"transaction_id"`
	CreatedBy      uuid.UUID     `json:"created_by"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// IsTerminal returns true once the charge is paid or cancelled.
func (c *Charge) IsTerminal() bool {
	return c.Status == ChargeStatusPaid || c.Status == ChargeStatusCancelled
}

// CanTransitionTo reports whether the charge may move to next. Only pending
// charges move, and only to a terminal state.
func (c *Charge) CanTransitionTo(next ChargeStatus) bool {
	return c.Status == ChargeStatusPending &&
		(next == ChargeStatusPaid || next == ChargeStatusCancelled)
}

// IsOwnedBy reports whether userID created the charge.
func (c *Charge) IsOwnedBy(userID uuid.UUID) bool {
	return c.CreatedBy == userID
}
