package service

import (
	"errors"
	"fmt"

	"pix-credit-service/internal/core/ports"
	"pix-credit-service/pkg/apperror"
	"pix-credit-service/pkg/brcode"

	"github.com/rs/zerolog"
)

// pixService implements ports.PixService on top of a brcode.Builder.
type pixService struct {
	builder   *brcode.Builder
	qrBaseURL string
	log       zerolog.Logger
}

// NewPixService binds the service to an already validated builder.
func NewPixService(builder *brcode.Builder, qrBaseURL string, log zerolog.Logger) ports.PixService {
	return &pixService{builder: builder, qrBaseURL: qrBaseURL, log: log}
}

// Generate issues a code with a fresh transaction id.
func (s *pixService) Generate(amount int64, description string) (*brcode.Result, error) {
	res, err := s.builder.Generate(amount, description)
	if err != nil {
		return nil, mapBRCodeError(err)
	}
	s.log.Debug().
		Str("transaction_id", res.TransactionID).
		Int64("amount", amount).
		Msg("pix code generated")
	return res, nil
}

// Regenerate rebuilds the code for a stored transaction id.
func (s *pixService) Regenerate(amount int64, description, transactionID string) (*brcode.Result, error) {
	res, err := s.builder.Regenerate(amount, description, transactionID)
	if err != nil {
		return nil, mapBRCodeError(err)
	}
	s.log.Debug().
		Str("transaction_id", transactionID).
		Int64("amount", amount).
		Msg("pix code regenerated")
	return res, nil
}

func (s *pixService) ValidateKey(key string) ports.KeyValidation {
	kt := brcode.Classify(key)
	return ports.KeyValidation{Key: key, Valid: kt != brcode.KeyTypeInvalid, Type: kt}
}

func (s *pixService) Config() ports.PixConfig {
	m := s.builder.Merchant()
	return ports.PixConfig{
		PixKey:       m.PixKey,
		KeyType:      brcode.Classify(m.PixKey),
		MerchantName: m.Name,
		MerchantCity: m.City,
		IsConfigured: m.Validate() == nil,
	}
}

// Decode parses and verifies a BR Code.
func (s *pixService) Decode(code string) (*brcode.Payload, error) {
	p, err := brcode.Decode(code)
	if err != nil {
		return nil, apperror.ErrInvalidPixCode(err)
	}
	return p, nil
}

func (s *pixService) QRCodeURL(code string) string {
	return brcode.QRCodeURL(s.qrBaseURL, code)
}

// mapBRCodeError turns builder errors into client-facing AppErrors.
func mapBRCodeError(err error) error {
	var fe *brcode.FieldError
	switch {
	case errors.Is(err, brcode.ErrInvalidAmount):
		return apperror.ErrInvalidAmount()
	case errors.As(err, &fe) && fe.NonASCII:
		return apperror.Validation(fmt.Sprintf("%s must contain only ASCII letters after accents are removed", fe.Name))
	case errors.As(err, &fe):
		return apperror.Validation(fmt.Sprintf("%s must be at most %d bytes", fe.Name, fe.Max))
	case errors.Is(err, brcode.ErrInvalidTransactionID):
		return apperror.Validation("invalid transaction id")
	}
	return apperror.ErrCodeGeneration(err)
}
