package service

import (
	"context"
	"fmt"
	"time"

	"pix-credit-service/internal/core/domain"
	"pix-credit-service/internal/core/ports"
	"pix-credit-service/pkg/apperror"

	"github.com/google/uuid"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// reportingService implements ports.ReportingService.
type reportingService struct {
	chargeRepo ports.ChargeRepository
	now        func() time.Time
}

// NewReportingService creates a new reporting service.
func NewReportingService(chargeRepo ports.ChargeRepository) ports.ReportingService {
	return &reportingService{
		chargeRepo: chargeRepo,
		now:        time.Now,
	}
}

// ListCharges returns a page of charges. Operators only see their own.
func (s *reportingService) ListCharges(ctx context.Context, actor ports.Actor, params ports.ChargeListParams) ([]domain.Charge, int64, error) {
	if !actor.IsAdmin {
		owner := actor.UserID
		params.CreatedBy = &owner
	}
	if params.Page < 1 {
		params.Page = 1
	}
	switch {
	case params.PageSize < 1:
		params.PageSize = defaultPageSize
	case params.PageSize > maxPageSize:
		params.PageSize = maxPageSize
	}
	if params.From != nil && params.To != nil && params.From.After(*params.To) {
		return nil, 0, apperror.Validation("from must not be after to")
	}

	charges, total, err := s.chargeRepo.List(ctx, params)
	if err != nil {
		return nil, 0, apperror.InternalError(fmt.Errorf("list charges: %w", err))
	}
	return charges, total, nil
}

// GetDashboardStats returns per-status totals for the period.
func (s *reportingService) GetDashboardStats(ctx context.Context, actor ports.Actor, period string) (*ports.ChargeStats, error) {
	since, err := s.periodStart(period)
	if err != nil {
		return nil, err
	}

	var owner *uuid.UUID
	if !actor.IsAdmin {
		owner = &actor.UserID
	}

	stats, err := s.chargeRepo.GetStats(ctx, owner, since)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("charge stats: %w", err))
	}
	return stats, nil
}

func (s *reportingService) periodStart(period string) (*time.Time, error) {
	now := s.now().UTC()
	var t time.Time
	switch period {
	case "today":
		t = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	case "7d":
		t = now.AddDate(0, 0, -7)
	case "30d":
		t = now.AddDate(0, 0, -30)
	case "all", "":
		return nil, nil
	default:
		return nil, apperror.Validation("invalid period: must be today, 7d, 30d, or all")
	}
	return &t, nil
}
