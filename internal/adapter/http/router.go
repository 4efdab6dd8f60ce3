package http

import (
	"net/http"
	"time"

	"agricredit-backend/internal/adapter/middleware"
	"agricredit-backend/internal/domain/user"
	"agricredit-backend/internal/infrastructure/token"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Routes wires the handlers onto an echo instance. Metrics is optional.
type Routes struct {
	Health   *Handler
	Loans    *LoanHandler
	Receipts *ReceiptHandler
	Auth     *AuthHandler

	Issuer   *token.Issuer
	Redis    *redis.Client
	IdempTTL time.Duration
	// Applied to login and verify-otp.
	AuthLimiter echo.MiddlewareFunc
	Metrics     http.Handler
	Log         *zap.Logger
}

func (r Routes) Register(e *echo.Echo) {
	e.GET("/health", r.Health.Health)
	if r.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(r.Metrics))
	}

	limit := r.AuthLimiter
	if limit == nil {
		limit = func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	a := e.Group("/api/auth")
	a.POST("/register", r.Auth.Register)
	a.POST("/login", r.Auth.Login, limit)
	a.POST("/verify-otp", r.Auth.VerifyOTP, limit)
	a.POST("/refresh", r.Auth.Refresh)

	// roles are checked before a request id is claimed
	authn := middleware.Authenticate(r.Issuer)
	idemp := middleware.Idempotency(r.Redis, r.IdempTTL, r.Log)
	farmers := middleware.RequireRoles(user.RoleFarmer, user.RoleAdmin)
	lenders := middleware.RequireRoles(user.RoleLender, user.RoleAdmin)

	l := e.Group("/api/loans", authn)
	l.POST("/apply", r.Loans.Apply, farmers, idemp)
	l.PUT("/:loan_id/approve", r.Loans.Approve, lenders, idemp)
	l.PUT("/:loan_id/reject", r.Loans.Reject, lenders, idemp)
	l.PUT("/:loan_id/disburse", r.Loans.Disburse, lenders, idemp)
	l.GET("/:loan_id", r.Loans.Get)
	l.GET("/farmer/:farmer_id", r.Loans.ListByFarmer)
	l.GET("/lender/:lender_id", r.Loans.ListByLender)
	l.GET("/status/:status", r.Loans.ListByStatus)
	l.GET("", r.Loans.ListAll)

	w := e.Group("/api/warehouse/receipts", authn)
	w.POST("", r.Receipts.Create, farmers, idemp)
	w.PUT("/:receipt_id/status", r.Receipts.UpdateStatus, idemp)
	w.GET("/active", r.Receipts.ListActive)
	w.GET("/farmer/:farmer_id", r.Receipts.ListByFarmer)
	w.GET("/status/:status", r.Receipts.ListByStatus)
	w.GET("/location/:location", r.Receipts.ListByLocation)
	w.GET("/:receipt_id", r.Receipts.Get)
	w.GET("", r.Receipts.ListAll)
}
