package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"example.com/finwell/backend/internal/assistant"
	"example.com/finwell/backend/internal/auth"
	"example.com/finwell/backend/internal/billing"
	"example.com/finwell/backend/internal/config"
	"example.com/finwell/backend/internal/handlers"
	"example.com/finwell/backend/internal/notifications"
	"example.com/finwell/backend/internal/notify"
	"example.com/finwell/backend/internal/repository"
)

// New собирает HTTP-сервер Echo с роутами и зависимостями, а также
// ежедневную сверку счетов, которую планирует вызывающая сторона.
func New(cfg config.Config, logger *slog.Logger, db *pgxpool.Pool) (*echo.Echo, *billing.Sweeper) {
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(requestLogger(logger))

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL)
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewRefreshTokenRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	budgetRepo := repository.NewBudgetRepository(db)
	billRepo := repository.NewBillRepository(db)
	challengeRepo := repository.NewChallengeRepository(db)
	notificationHub := notifications.NewHub()

	var assistantClient assistant.Client
	switch strings.ToLower(cfg.Assistant.Provider) {
	case "gemini":
		assistantClient = assistant.NewGeminiClient(cfg.Assistant.APIKey, cfg.Assistant.BaseURL, cfg.Assistant.Model, cfg.Assistant.Timeout, cfg.Assistant.MaxOutputTokens)
	default:
		assistantClient = assistant.NewGroqClient(cfg.Assistant.APIKey, cfg.Assistant.BaseURL, cfg.Assistant.Model, cfg.Assistant.Timeout, cfg.Assistant.MaxOutputTokens)
	}
	assistantService := assistant.NewService(assistantClient)

	authHandler := handlers.NewAuthHandler(userRepo, tokenRepo, tokenManager)
	profileHandler := handlers.NewProfileHandler(profileRepo)
	transactionHandler := handlers.NewTransactionHandler(transactionRepo, profileRepo, notificationHub)
	budgetHandler := handlers.NewBudgetHandler(budgetRepo)
	billHandler := handlers.NewBillHandler(billRepo, transactionRepo, notificationHub)
	challengeHandler := handlers.NewChallengeHandler(challengeRepo, transactionRepo, profileRepo, notificationHub)
	dashboardHandler := handlers.NewDashboardHandler(transactionRepo, budgetRepo, billRepo, challengeRepo, profileRepo)
	assistantHandler := handlers.NewAssistantHandler(assistantService, transactionRepo, budgetRepo, billRepo, challengeRepo, profileRepo)
	notificationHandler := handlers.NewNotificationHandler(notificationHub)

	registerRoutes(
		e,
		authHandler,
		profileHandler,
		transactionHandler,
		budgetHandler,
		billHandler,
		challengeHandler,
		dashboardHandler,
		assistantHandler,
		notificationHandler,
		auth.JWTMiddleware(tokenManager),
		authRateLimiter(cfg.Auth),
		assistantRateLimiter(cfg.Assistant),
	)

	mailSender := notify.NewSender(cfg.SMTP, logger)
	sweeper := billing.NewSweeper(billRepo, mailSender, notificationHub, logger, cfg.Billing.ReminderDays)

	return e, sweeper
}

// NewHTTPServer создает net/http сервер с заданными таймаутами.
func NewHTTPServer(cfg config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.String("remote_ip", v.RemoteIP),
				slog.Duration("latency", v.Latency),
			}

			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}

			msg := "request completed"
			if v.Status >= http.StatusInternalServerError {
				logger.LogAttrs(c.Request().Context(), slog.LevelError, msg, attrs...)
				return nil
			}

			logger.LogAttrs(c.Request().Context(), slog.LevelInfo, msg, attrs...)
			return nil
		},
	})
}

func authRateLimiter(cfg config.AuthConfig) echo.MiddlewareFunc {
	limit := rate.Limit(float64(cfg.RateLimitPerMinute) / 60.0)
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      limit,
		Burst:     cfg.RateLimitBurst,
		ExpiresIn: time.Minute,
	})

	return middleware.RateLimiter(store)
}

func assistantRateLimiter(cfg config.AssistantConfig) echo.MiddlewareFunc {
	limit := rate.Limit(float64(cfg.RateLimitPerMinute) / 60.0)
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      limit,
		Burst:     cfg.RateLimitBurst,
		ExpiresIn: time.Minute,
	})

	return middleware.RateLimiter(store)
}
