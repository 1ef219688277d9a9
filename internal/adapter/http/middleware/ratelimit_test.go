package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pix-credit-service/internal/core/ports/mocks"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newLimitedRouter(limiter *mocks.MockRateLimiter, pre ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append(pre,
		RateLimiter(limiter, "api", RateLimitRule{Limit: 3, Window: time.Minute}, zerolog.Nop()),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)
	r.GET("/test", handlers...)
	return r
}

func TestRateLimiter_AllowsWithinLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	limiter := mocks.NewMockRateLimiter(ctrl)
	limiter.EXPECT().Allow(gomock.Any(), "192.0.2.1:api", 3, time.Minute).Return(true, 2, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	newLimitedRouter(limiter).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "3", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Remaining"))
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	limiter := mocks.NewMockRateLimiter(ctrl)
	limiter.EXPECT().Allow(gomock.Any(), gomock.Any(), 3, time.Minute).Return(false, 0, nil)

	w := httptest.NewRecorder()
	newLimitedRouter(limiter).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "RATE_001")
}

func TestRateLimiter_KeysByUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	limiter := mocks.NewMockRateLimiter(ctrl)
	userID := uuid.New()
	limiter.EXPECT().Allow(gomock.Any(), userID.String()+":api", 3, time.Minute).Return(true, 1, nil)

	setUser := func(c *gin.Context) { c.Set(CtxUserID, userID) }

	w := httptest.NewRecorder()
	newLimitedRouter(limiter, setUser).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimiter_DegradedModeAllows(t *testing.T) {
	ctrl := gomock.NewController(t)
	limiter := mocks.NewMockRateLimiter(ctrl)
	limiter.EXPECT().Allow(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, 0, errors.New("redis down"))

	w := httptest.NewRecorder()
	newLimitedRouter(limiter).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimitRules(t *testing.T) {
	rules := RateLimitRules(120, 30*time.Second)

	assert.Equal(t, RateLimitRule{Limit: 120, Window: 30 * time.Second}, rules["api"])
	assert.Equal(t, 10, rules["auth_login"].Limit)
	assert.Equal(t, time.Hour, rules["auth_register"].Window)
}
