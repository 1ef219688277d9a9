package handler

import (
	"pix-credit-service/internal/adapter/http/middleware"
	"pix-credit-service/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const maxBodyBytes = 1 << 20

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AuthSvc        ports.AuthService
	ChargeSvc      ports.ChargeService
	PixSvc         ports.PixService
	ReportingSvc   ports.ReportingService
	TokenSvc       ports.TokenService
	RateLimiter    ports.RateLimiter // nil = rate limiting disabled
	RateLimitRules map[string]middleware.RateLimitRule
	AuditSvc       ports.AuditService // nil = audit logging disabled
	HealthCheckers []ports.HealthChecker
	OpenAPISpec    []byte
	Mode           string // gin mode: debug, release, test
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	if deps.Mode != "" {
		gin.SetMode(deps.Mode)
	}
	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(maxBodyBytes))
	if deps.AuditSvc != nil {
		r.Use(middleware.AuditLog(deps.AuditSvc))
	}

	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	swagger := NewSwagger(deps.OpenAPISpec)
	r.GET("/swagger", swagger.UI)
	r.GET("/swagger/spec", swagger.Spec)

	rl := func(group string) gin.HandlerFunc {
		rule, ok := deps.RateLimitRules[group]
		if deps.RateLimiter == nil || !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimiter, group, rule, deps.Logger)
	}

	v1 := r.Group("/api/v1")

	authHandler := NewAuthHandler(deps.AuthSvc)
	auth := v1.Group("/auth")
	{
		auth.POST("/register", rl("auth_register"), authHandler.Register)
		auth.POST("/login", rl("auth_login"), authHandler.Login)
	}

	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	api := v1.Group("", jwtAuth, rl("api"))

	pixHandler := NewPixHandler(deps.ChargeSvc, deps.PixSvc)
	pix := api.Group("/pix")
	{
		pix.POST("/static", pixHandler.CreateStatic)
		pix.POST("/validate-key", pixHandler.ValidateKey)
		pix.GET("/config", pixHandler.Config)
		pix.POST("/decode", pixHandler.Decode)
	}

	chargeHandler := NewChargeHandler(deps.ChargeSvc, deps.ReportingSvc)
	charges := api.Group("/charges")
	{
		charges.GET("", chargeHandler.List)
		charges.GET("/:id", chargeHandler.Get)
		charges.POST("/:id/pix", chargeHandler.Regenerate)
		charges.PATCH("/:id/status", middleware.RequireAdmin(), chargeHandler.UpdateStatus)
	}

	dashboardHandler := NewDashboardHandler(deps.ReportingSvc)
	api.GET("/dashboard/stats", dashboardHandler.GetStats)

	return r
}
