package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"pix-credit-service/internal/core/domain"
	"pix-credit-service/internal/core/ports"
	"pix-credit-service/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setupReportingService(t *testing.T, now time.Time) (*reportingService, *mocks.MockChargeRepository) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockChargeRepository(ctrl)
	svc := NewReportingService(repo).(*reportingService)
	svc.now = func() time.Time { return now }
	return svc, repo
}

func TestReportingService_GetDashboardStats_AdminAll(t *testing.T) {
	svc, repo := setupReportingService(t, time.Now())

	expected := &ports.ChargeStats{
		TotalCharges:  10,
		Pending:       5,
		Paid:          4,
		Cancelled:     1,
		TotalAmount:   100000,
		PaidAmount:    40000,
		PendingAmount: 50000,
	}
	repo.EXPECT().GetStats(gomock.Any(), (*uuid.UUID)(nil), (*time.Time)(nil)).Return(expected, nil)

	result, err := svc.GetDashboardStats(context.Background(), ports.Actor{UserID: uuid.New(), IsAdmin: true}, "all")
	require.NoError(t, err)
	assert.Equal(t, expected, result)
}

func TestReportingService_GetDashboardStats_OperatorScopedToSelf(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)
	svc, repo := setupReportingService(t, now)
	userID := uuid.New()

	repo.EXPECT().GetStats(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, createdBy *uuid.UUID, since *time.Time) (*ports.ChargeStats, error) {
			require.NotNil(t, createdBy)
			assert.Equal(t, userID, *createdBy)
			require.NotNil(t, since)
			assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), *since)
			return &ports.ChargeStats{TotalCharges: 2}, nil
		},
	)

	result, err := svc.GetDashboardStats(context.Background(), ports.Actor{UserID: userID}, "today")
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.TotalCharges)
}

func TestReportingService_PeriodStart(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)
	svc, _ := setupReportingService(t, now)

	tests := []struct {
		period string
		want   *time.Time
	}{
		{"7d", ptrTime(now.AddDate(0, 0, -7))},
		{"30d", ptrTime(now.AddDate(0, 0, -30))},
		{"all", nil},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.period, func(t *testing.T) {
			got, err := svc.periodStart(tt.period)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReportingService_GetDashboardStats_InvalidPeriod(t *testing.T) {
	svc, _ := setupReportingService(t, time.Now())

	_, err := svc.GetDashboardStats(context.Background(), ports.Actor{}, "month")
	assertAppError(t, err, "PIX_002")
}

func TestReportingService_GetDashboardStats_RepoError(t *testing.T) {
	svc, repo := setupReportingService(t, time.Now())
	repo.EXPECT().GetStats(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

	_, err := svc.GetDashboardStats(context.Background(), ports.Actor{IsAdmin: true}, "7d")
	assertAppError(t, err, "SYS_001")
}

func TestReportingService_ListCharges_OperatorForcedToOwnCharges(t *testing.T) {
	svc, repo := setupReportingService(t, time.Now())
	userID := uuid.New()
	other := uuid.New()

	charges := []domain.Charge{{ID: uuid.New(), CreatedBy: userID}}
	repo.EXPECT().List(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p ports.ChargeListParams) ([]domain.Charge, int64, error) {
			require.NotNil(t, p.CreatedBy)
			assert.Equal(t, userID, *p.CreatedBy)
			assert.Equal(t, 1, p.Page)
			assert.Equal(t, defaultPageSize, p.PageSize)
			return charges, 1, nil
		},
	)

	result, total, err := svc.ListCharges(context.Background(), ports.Actor{UserID: userID},
		ports.ChargeListParams{CreatedBy: &other})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, result, 1)
}

func TestReportingService_ListCharges_AdminFiltersAndCapsPageSize(t *testing.T) {
	svc, repo := setupReportingService(t, time.Now())
	status := domain.ChargeStatusPaid

	repo.EXPECT().List(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p ports.ChargeListParams) ([]domain.Charge, int64, error) {
			assert.Nil(t, p.CreatedBy)
			assert.Equal(t, &status, p.Status)
			assert.Equal(t, 3, p.Page)
			assert.Equal(t, maxPageSize, p.PageSize)
			return nil, 0, nil
		},
	)

	_, _, err := svc.ListCharges(context.Background(), ports.Actor{IsAdmin: true},
		ports.ChargeListParams{Status: &status, Page: 3, PageSize: 500})
	require.NoError(t, err)
}

func TestReportingService_ListCharges_InvertedRange(t *testing.T) {
	svc, _ := setupReportingService(t, time.Now())
	from := time.Now()
	to := from.Add(-time.Hour)

	_, _, err := svc.ListCharges(context.Background(), ports.Actor{IsAdmin: true},
		ports.ChargeListParams{From: &from, To: &to})
	assertAppError(t, err, "PIX_002")
}

func ptrTime(t time.Time) *time.Time { return &t }
