package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"pix-credit-service/internal/core/domain"
	"pix-credit-service/internal/core/ports/mocks"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestAuditLog_StatusUpdate(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAudit := mocks.NewMockAuditService(ctrl)
	userID := uuid.New()
	chargeID := uuid.NewString()

	var got *domain.AuditLog
	mockAudit.EXPECT().Log(gomock.Any(), gomock.Any()).Do(
		func(_ context.Context, entry *domain.AuditLog) { got = entry },
	)

	r := gin.New()
	r.Use(AuditLog(mockAudit))
	r.PATCH("/api/v1/charges/:id/status", func(c *gin.Context) {
		c.Set(CtxUserID, userID)
		c.Set(CtxIsAdmin, true)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/api/v1/charges/"+chargeID+"/status", nil))

	require.NotNil(t, got)
	assert.Equal(t, domain.AuditActionUpdateStatus, got.Action)
	assert.Equal(t, "charge", got.ResourceType)
	assert.Equal(t, chargeID, got.ResourceID)
	require.NotNil(t, got.UserID)
	assert.Equal(t, userID, *got.UserID)
}

func TestAuditLog_SkipsReads(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAudit := mocks.NewMockAuditService(ctrl)

	r := gin.New()
	r.Use(AuditLog(mockAudit))
	r.GET("/api/v1/charges", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/charges", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuditLog_SkipsFailedRequests(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAudit := mocks.NewMockAuditService(ctrl)

	r := gin.New()
	r.Use(AuditLog(mockAudit))
	r.POST("/api/v1/pix/static", func(c *gin.Context) { c.Status(http.StatusBadRequest) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/pix/static", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMapRouteToAction(t *testing.T) {
	tests := []struct {
		route, method string
		action        domain.AuditAction
		resource      string
	}{
		{"/api/v1/auth/register", http.MethodPost, domain.AuditActionRegister, "user"},
		{"/api/v1/auth/login", http.MethodPost, domain.AuditActionLogin, "session"},
		{"/api/v1/pix/static", http.MethodPost, domain.AuditActionCreateCharge, "charge"},
		{"/api/v1/charges/:id/pix", http.MethodPost, domain.AuditActionRegenerate, "charge"},
		{"/api/v1/charges/:id/status", http.MethodPatch, domain.AuditActionUpdateStatus, "charge"},
		{"/api/v1/pix/decode", http.MethodPost, "", ""},
		{"/api/v1/charges/:id", http.MethodGet, "", ""},
	}

	for _, tt := range tests {
		action, resource := mapRouteToAction(tt.route, tt.method)
		assert.Equal(t, tt.action, action, tt.route)
		assert.Equal(t, tt.resource, resource, tt.route)
	}
}
