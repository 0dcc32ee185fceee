package server

import (
	"github.com/labstack/echo/v4"

	"example.com/finwell/backend/internal/handlers"
)

func registerRoutes(
	e *echo.Echo,
	authHandler *handlers.AuthHandler,
	profileHandler *handlers.ProfileHandler,
	transactionHandler *handlers.TransactionHandler,
	budgetHandler *handlers.BudgetHandler,
	billHandler *handlers.BillHandler,
	challengeHandler *handlers.ChallengeHandler,
	dashboardHandler *handlers.DashboardHandler,
	assistantHandler *handlers.AssistantHandler,
	notificationHandler *handlers.NotificationHandler,
	authMiddleware echo.MiddlewareFunc,
	authRateLimiter echo.MiddlewareFunc,
	assistantRateLimiter echo.MiddlewareFunc,
) {
	e.GET("/health", handlers.Health)

	api := e.Group("/api/v1")
	authGroup := api.Group("/auth", authRateLimiter)

	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/refresh", authHandler.Refresh)
	authGroup.POST("/logout", authHandler.Logout)
	authGroup.GET("/me", authHandler.Me, authMiddleware)

	profile := api.Group("/profile", authMiddleware)
	profile.GET("", profileHandler.Get)
	profile.PUT("", profileHandler.Update)

	transactions := api.Group("/transactions", authMiddleware)
	transactions.GET("", transactionHandler.List)
	transactions.POST("", transactionHandler.Create)
	transactions.DELETE("/:transactionId", transactionHandler.Delete)

	budgets := api.Group("/budgets", authMiddleware)
	budgets.GET("", budgetHandler.Get)
	budgets.PUT("", budgetHandler.Upsert)

	bills := api.Group("/bills", authMiddleware)
	bills.GET("", billHandler.List)
	bills.POST("", billHandler.Create)
	bills.PUT("/:billId", billHandler.Update)
	bills.DELETE("/:billId", billHandler.Delete)
	bills.POST("/:billId/pay", billHandler.Pay)
	bills.POST("/:billId/unpay", billHandler.Unpay)

	challenges := api.Group("/challenges", authMiddleware)
	challenges.GET("", challengeHandler.List)
	challenges.POST("", challengeHandler.Create)
	challenges.GET("/suggestions", challengeHandler.Suggestions)
	challenges.PATCH("/:challengeId/abandon", challengeHandler.Abandon)
	challenges.POST("/:challengeId/checkin", challengeHandler.CheckIn)

	dashboard := api.Group("/dashboard", authMiddleware)
	dashboard.GET("", dashboardHandler.Snapshot)

	notifications := api.Group("/notifications", authMiddleware)
	notifications.GET("/stream", notificationHandler.Stream)

	assistantGroup := api.Group("/assistant", authMiddleware, assistantRateLimiter)
	assistantGroup.POST("/chat", assistantHandler.Chat)
}
