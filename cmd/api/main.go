package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	httpadp "agricredit-backend/internal/adapter/http"
	"agricredit-backend/internal/adapter/middleware"
	"agricredit-backend/internal/adapter/repository/gormdb"
	"agricredit-backend/internal/config"
	"agricredit-backend/internal/infrastructure/cache"
	"agricredit-backend/internal/infrastructure/db"
	"agricredit-backend/internal/infrastructure/logging"
	"agricredit-backend/internal/infrastructure/metrics"
	"agricredit-backend/internal/infrastructure/notify"
	"agricredit-backend/internal/infrastructure/token"
	"agricredit-backend/internal/usecase/auth"
	"agricredit-backend/internal/usecase/loan"
	"agricredit-backend/internal/usecase/receipt"
	"agricredit-backend/pkg/clock"
	"agricredit-backend/pkg/id"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	logger, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	gdb, err := db.OpenGorm(cfg, logger)
	if err != nil {
		logger.Fatal("open database", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}
	if err := gormdb.AutoMigrate(gdb); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	rdb, err := cache.OpenRedis(context.Background(), cfg.RedisAddr, cfg.RedisDB, logger)
	if err != nil {
		logger.Fatal("open redis", zap.String("addr", cfg.RedisAddr), zap.Error(err))
	}
	defer func() { _ = rdb.Close() }()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	clk := clock.System()
	ids := id.NewGenerator(clk, nil)
	issuer := token.NewIssuer(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL, clk)

	var notifier notify.Notifier
	if cfg.OTPWebhookURL != "" {
		notifier = notify.NewWebhook(cfg.OTPWebhookURL, 5*time.Second)
	} else {
		logger.Warn("OTP_WEBHOOK_URL not set, codes are only logged")
		notifier = notify.NewLog(logger)
	}

	loans := gormdb.NewLoanRepository(gdb)
	receipts := gormdb.NewReceiptRepository(gdb)
	users := gormdb.NewUserRepository(gdb)
	tx := gormdb.NewGormUoW(gdb)

	loanUC := loan.NewUsecase(loans, users, tx, clk, logger, m)
	receiptUC := receipt.NewUsecase(receipts, users, tx, ids, clk, logger, m)
	authUC := auth.NewUsecase(auth.Deps{
		Users:    users,
		Tx:       tx,
		OTPs:     cache.NewOTPStore(rdb, cfg.OTPTTL),
		OTPTTL:   cfg.OTPTTL,
		Codes:    ids,
		Notifier: notifier,
		Tokens:   issuer,
		Clock:    clk,
		Log:      logger,
		Metrics:  m,
	})

	if cfg.AdminUsername != "" {
		_, err := authUC.EnsureAdmin(context.Background(), auth.RegisterInput{
			Username: cfg.AdminUsername,
			Email:    cfg.AdminEmail,
			Password: cfg.AdminPassword,
			FullName: "Administrator",
		})
		if err != nil {
			logger.Fatal("bootstrap admin", zap.String("username", cfg.AdminUsername), zap.Error(err))
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = httpadp.NewValidator()
	e.Use(
		echomw.Recover(),
		echomw.RequestID(),
		echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins: []string{"*"},
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization, "X-Request-Id", "X-Request-At"},
		}),
		middleware.RequestLogger(logger, m),
	)

	httpadp.Routes{
		Health:      httpadp.NewHandler(clk),
		Loans:       httpadp.NewLoanHandler(loanUC, logger),
		Receipts:    httpadp.NewReceiptHandler(receiptUC, logger),
		Auth:        httpadp.NewAuthHandler(authUC, logger),
		Issuer:      issuer,
		Redis:       rdb,
		IdempTTL:    cfg.IdempotencyTTL(),
		AuthLimiter: middleware.RateLimit(cfg.RateLimitPerSecond, 10),
		Metrics:     promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		Log:         logger,
	}.Register(e)

	addr := ":" + cfg.AppPort
	go func() {
		logger.Info("listening", zap.String("addr", addr), zap.String("db_driver", cfg.DBDriver))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
	if sqlDB, err := gdb.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logger.Info("bye")
}
