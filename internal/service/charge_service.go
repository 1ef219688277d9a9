package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"pix-credit-service/internal/core/domain"
	"pix-credit-service/internal/core/ports"
	"pix-credit-service/pkg/apperror"
	"pix-credit-service/pkg/brcode"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	idempotencyTTL           = 24 * time.Hour
	defaultDescriptionPrefix = "Pagamento para "
	maxCreateAttempts        = 2
)

// ChargeServiceImpl implements ports.ChargeService.
type ChargeServiceImpl struct {
	chargeRepo ports.ChargeRepository
	idempRepo  ports.IdempotencyRepository
	idempCache ports.IdempotencyCache
	encSvc     ports.EncryptionService
	pixSvc     ports.PixService
	transactor ports.DBTransactor
	log        zerolog.Logger
	retryDelay time.Duration
}

// NewChargeService creates a new ChargeServiceImpl.
func NewChargeService(
	chargeRepo ports.ChargeRepository,
	idempRepo ports.IdempotencyRepository,
	idempCache ports.IdempotencyCache,
	encSvc ports.EncryptionService,
	pixSvc ports.PixService,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) *ChargeServiceImpl {
	return &ChargeServiceImpl{
		chargeRepo: chargeRepo,
		idempRepo:  idempRepo,
		idempCache: idempCache,
		encSvc:     encSvc,
		pixSvc:     pixSvc,
		transactor: transactor,
		log:        log,
		retryDelay: time.Millisecond,
	}
}

// CreateStaticPix records a credit request and issues its static code.
// Retrying with the same reference returns the original charge.
func (s *ChargeServiceImpl) CreateStaticPix(ctx context.Context, req ports.CreateChargeRequest) (*ports.ChargeResult, error) {
	if req.Amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}
	for _, f := range []struct{ name, value string }{
		{"payer_name", req.PayerName},
		{"payer_email", req.PayerEmail},
		{"receiver_name", req.ReceiverName},
	} {
		if strings.TrimSpace(f.value) == "" {
			return nil, apperror.Validation(f.name + " is required")
		}
	}

	referenceID := strings.TrimSpace(req.ReferenceID)
	if referenceID == "" {
		referenceID = uuid.NewString()
	}
	idempKey := domain.BuildIdempotencyKey(req.Actor.UserID, referenceID)

	// Layer 1: Redis idempotency check
	cached, err := s.idempCache.Get(ctx, idempKey)
	if err != nil {
		s.log.Warn().Err(err).Str("key", idempKey).Msg("redis idempotency check failed, falling through to DB")
	}
	if cached != nil {
		return replayCharge(cached, req.Amount)
	}

	// Layer 2: DB idempotency check
	idempLog, err := s.idempRepo.Get(ctx, idempKey)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("db idempotency check: %w", err))
	}
	if idempLog != nil {
		return replayCharge(idempLog.ResponseJSON, req.Amount)
	}

	var (
		result   *ports.ChargeResult
		respJSON []byte
	)
	for attempt := 1; ; attempt++ {
		result, respJSON, err = s.issueCharge(ctx, req, referenceID, idempKey)
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrAlreadyExists) {
			return nil, err
		}

		// A concurrent request with the same reference won the insert.
		winner, getErr := s.idempRepo.Get(ctx, idempKey)
		if getErr != nil {
			return nil, apperror.InternalError(fmt.Errorf("db idempotency check: %w", getErr))
		}
		if winner != nil {
			return replayCharge(winner.ResponseJSON, req.Amount)
		}

		// Otherwise the transaction id collided; issue a fresh one.
		if attempt >= maxCreateAttempts {
			return nil, apperror.InternalError(fmt.Errorf("create charge: %w", err))
		}
		s.log.Warn().Err(err).Str("key", idempKey).Msg("charge insert conflicted, retrying with a new transaction id")
		time.Sleep(s.retryDelay)
	}
	charge := result.Charge

	// Post-process: cache in Redis (best-effort)
	if err := s.idempCache.Set(ctx, idempKey, respJSON, idempotencyTTL); err != nil {
		s.log.Warn().Err(err).Str("key", idempKey).Msg("failed to cache idempotency in redis")
	}

	s.log.Info().
		Str("charge_id", charge.ID.String()).
		Str("transaction_id", charge.TransactionID).
		Str("user_id", req.Actor.UserID.String()).
		Int64("amount", charge.Amount).
		Msg("static pix charge created")

	return result, nil
}

// issueCharge builds a charge with a new code and stores it together with its
// idempotency log. Unique constraint violations are returned unwrapped so the
// caller can tell them apart.
func (s *ChargeServiceImpl) issueCharge(ctx context.Context, req ports.CreateChargeRequest, referenceID, idempKey string) (*ports.ChargeResult, []byte, error) {
	description := chargeDescription(req.Description, req.ReceiverName)
	code, err := s.pixSvc.Generate(req.Amount, description)
	if err != nil {
		return nil, nil, err
	}

	payerCPFEnc, err := s.encSvc.Encrypt(onlyDigits(req.PayerCPF))
	if err != nil {
		return nil, nil, apperror.ErrEncryptionFailure(fmt.Errorf("encrypt payer cpf: %w", err))
	}
	receiverCPFEnc, err := s.encSvc.Encrypt(onlyDigits(req.ReceiverCPF))
	if err != nil {
		return nil, nil, apperror.ErrEncryptionFailure(fmt.Errorf("encrypt receiver cpf: %w", err))
	}

	now := time.Now().UTC()
	charge := &domain.Charge{
		ID:             uuid.New(),
		ReferenceID:    referenceID,
		PayerName:      strings.TrimSpace(req.PayerName),
		PayerEmail:     strings.ToLower(strings.TrimSpace(req.PayerEmail)),
		PayerCPFEnc:    payerCPFEnc,
		ReceiverName:   strings.TrimSpace(req.ReceiverName),
		ReceiverCPFEnc: receiverCPFEnc,
		Amount:         req.Amount,
		Description:    description,
		PaymentMethod:  domain.PaymentMethodPix,
		Status:         domain.ChargeStatusPending,
		TransactionID:  code.TransactionID,
		CreatedBy:      req.Actor.UserID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	result := &ports.ChargeResult{
		Charge:      charge,
		PixKey:      code.PixKey,
		PixCode:     code.PixCode,
		QRCodeURL:   s.pixSvc.QRCodeURL(code.PixCode),
		PayerCPF:    maskDocument(req.PayerCPF),
		ReceiverCPF: maskDocument(req.ReceiverCPF),
	}

	respJSON, err := json.Marshal(result)
	if err != nil {
		return nil, nil, apperror.InternalError(fmt.Errorf("marshal response: %w", err))
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := s.chargeRepo.Create(ctx, dbTx, charge); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, nil, err
		}
		return nil, nil, apperror.InternalError(fmt.Errorf("create charge: %w", err))
	}
	if err := s.idempRepo.Create(ctx, dbTx, &domain.IdempotencyLog{
		Key:          idempKey,
		ChargeID:     charge.ID,
		ResponseJSON: respJSON,
		CreatedAt:    now,
	}); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, nil, err
		}
		return nil, nil, apperror.InternalError(fmt.Errorf("save idempotency log: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	return result, respJSON, nil
}

// GetCharge loads a charge with its code rebuilt from the stored fields.
func (s *ChargeServiceImpl) GetCharge(ctx context.Context, actor ports.Actor, chargeID uuid.UUID) (*ports.ChargeResult, error) {
	charge, err := s.loadVisible(ctx, actor, chargeID)
	if err != nil {
		return nil, err
	}
	return s.withCode(charge, charge.TransactionID)
}

// RegeneratePix rebuilds the identical code for a stored charge. With
// hideReference the payload carries the placeholder instead of the real id;
// the stored id is unchanged.
func (s *ChargeServiceImpl) RegeneratePix(ctx context.Context, actor ports.Actor, chargeID uuid.UUID, hideReference bool) (*ports.ChargeResult, error) {
	charge, err := s.loadVisible(ctx, actor, chargeID)
	if err != nil {
		return nil, err
	}
	txid := charge.TransactionID
	if hideReference {
		txid = brcode.HiddenTransactionID
	}
	res, err := s.withCode(charge, txid)
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Str("charge_id", charge.ID.String()).
		Bool("hide_reference", hideReference).
		Msg("pix code regenerated")
	return res, nil
}

// UpdateStatus settles or cancels a pending charge. Administrators only.
func (s *ChargeServiceImpl) UpdateStatus(ctx context.Context, actor ports.Actor, chargeID uuid.UUID, status domain.ChargeStatus) (*domain.Charge, error) {
	if !actor.IsAdmin {
		return nil, apperror.ErrAdminRequired()
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	charge, err := s.chargeRepo.GetByIDForUpdate(ctx, dbTx, chargeID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock charge: %w", err))
	}
	if charge == nil {
		return nil, apperror.ErrNotFound("Charge")
	}
	if !charge.CanTransitionTo(status) {
		return nil, apperror.ErrInvalidStatusTransition(string(charge.Status), string(status))
	}

	if err := s.chargeRepo.UpdateStatus(ctx, dbTx, chargeID, status); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update status: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("charge_id", chargeID.String()).
		Str("from", string(charge.Status)).
		Str("to", string(status)).
		Msg("charge status updated")

	charge.Status = status
	charge.UpdatedAt = time.Now().UTC()
	return charge, nil
}

func (s *ChargeServiceImpl) loadVisible(ctx context.Context, actor ports.Actor, chargeID uuid.UUID) (*domain.Charge, error) {
	charge, err := s.chargeRepo.GetByID(ctx, chargeID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get charge: %w", err))
	}
	if charge == nil {
		return nil, apperror.ErrNotFound("Charge")
	}
	if !actor.IsAdmin && !charge.IsOwnedBy(actor.UserID) {
		return nil, apperror.ErrChargeForbidden()
	}
	return charge, nil
}

func (s *ChargeServiceImpl) withCode(charge *domain.Charge, transactionID string) (*ports.ChargeResult, error) {
	code, err := s.pixSvc.Regenerate(charge.Amount, charge.Description, transactionID)
	if err != nil {
		return nil, err
	}
	payerCPF, err := s.encSvc.Decrypt(charge.PayerCPFEnc)
	if err != nil {
		return nil, apperror.ErrEncryptionFailure(fmt.Errorf("decrypt payer cpf: %w", err))
	}
	receiverCPF, err := s.encSvc.Decrypt(charge.ReceiverCPFEnc)
	if err != nil {
		return nil, apperror.ErrEncryptionFailure(fmt.Errorf("decrypt receiver cpf: %w", err))
	}
	return &ports.ChargeResult{
		Charge:      charge,
		PixKey:      code.PixKey,
		PixCode:     code.PixCode,
		QRCodeURL:   s.pixSvc.QRCodeURL(code.PixCode),
		PayerCPF:    maskDocument(payerCPF),
		ReceiverCPF: maskDocument(receiverCPF),
	}, nil
}

// replayCharge returns a stored creation response. A reference reused with a
// different amount is a client error, not a replay.
func replayCharge(data []byte, amount int64) (*ports.ChargeResult, error) {
	var res ports.ChargeResult
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("unmarshal cached charge: %w", err))
	}
	if res.Charge == nil {
		return nil, apperror.InternalError(fmt.Errorf("cached response has no charge"))
	}
	if res.Charge.Amount != amount {
		return nil, apperror.ErrDuplicateCharge()
	}
	return &res, nil
}

// chargeDescription trims the caller's description, falling back to
// "Pagamento para <receiver>", strips diacritics and cuts it to the BR Code
// budget.
func chargeDescription(description, receiverName string) string {
	d := strings.TrimSpace(description)
	if d == "" {
		d = strings.TrimSpace(defaultDescriptionPrefix + strings.TrimSpace(receiverName))
	}
	return strings.TrimSpace(brcode.Truncate(brcode.FoldASCII(d), brcode.MaxDescriptionLength))
}

func onlyDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// maskDocument keeps the middle digits of a CPF or CNPJ visible.
func maskDocument(doc string) string {
	d := onlyDigits(doc)
	switch len(d) {
	case 0:
		return ""
	case 11:
		return "***." + d[3:6] + "." + d[6:9] + "-**"
	case 14:
		return "**." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-**"
	}
	return "***"
}
