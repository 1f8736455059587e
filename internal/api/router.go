package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/aireviews/review-system/internal/api/handler"
	"github.com/aireviews/review-system/internal/api/middleware"
	"github.com/aireviews/review-system/internal/core/domain"
	"github.com/aireviews/review-system/internal/core/service"
	"github.com/aireviews/review-system/internal/infrastructure/ai"
	"github.com/aireviews/review-system/internal/infrastructure/config"
	mongodb "github.com/aireviews/review-system/internal/infrastructure/db/mongo"
	redisdb "github.com/aireviews/review-system/internal/infrastructure/db/redis"
	"github.com/aireviews/review-system/internal/infrastructure/email"
	healthhandlers "github.com/aireviews/review-system/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("reviews"))

	// --- Dependencies ---
	accountRepo := mongodb.NewAccountRepository(db)
	reviewRepo := mongodb.NewReviewRepository(db)
	otpLimiter := redisdb.NewOTPLimiter(rdb, cfg.OTPMaxPerWindow, cfg.OTPTTL)
	mailer := email.NewMailer(email.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
	analyzer := ai.NewClient(ai.Config{
		BaseURL: cfg.AI.BaseURL,
		Timeout: cfg.AI.Timeout,
	})

	authService := service.NewAuthService(accountRepo, mailer, otpLimiter, service.AuthConfig{
		JWTSecret:     cfg.JWTSecret,
		AdminEmails:   cfg.AdminAllowList(),
		OTPTTL:        cfg.OTPTTL,
		UserTokenTTL:  cfg.UserTokenTTL,
		AdminTokenTTL: cfg.AdminTokenTTL,
	}, log)
	reviewService := service.NewReviewService(reviewRepo, analyzer, log)
	adminService := service.NewAdminService(reviewRepo, analyzer, log)

	authHandler := handler.NewAuthHandler(authService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	adminHandler := handler.NewAdminHandler(adminService)

	authn := middleware.Auth(cfg.JWTSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/send-otp", authHandler.SendOTP)
	e.POST("/auth/verify-otp", authHandler.VerifyOTP)

	// --- Review routes ---
	reviews := e.Group("/reviews", authn)
	reviews.POST("", reviewHandler.Create)
	reviews.GET("", reviewHandler.ListAll, adminOnly)
	reviews.GET("/my-latest", reviewHandler.MyLatest)
	reviews.PUT("/:id", reviewHandler.Update)
	reviews.DELETE("/:id", reviewHandler.Delete)

	// --- Admin routes ---
	e.POST("/admin/send-otp", authHandler.SendAdminOTP)
	e.POST("/admin/verify-otp", authHandler.VerifyAdminOTP)

	admin := e.Group("/admin", authn, adminOnly)
	admin.GET("/reviews", adminHandler.ListReviews)
	admin.PATCH("/reviews/:id/spam", adminHandler.MarkSpam)
	admin.GET("/stats", adminHandler.Stats)
	admin.GET("/summary", adminHandler.Summary)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := healthhandlers.NewHealthHandler()
	healthDepsHandler := healthhandlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
