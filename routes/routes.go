package routes

import (
	"database/sql"

	"github.com/gin-gonic/gin"

	"github.com/budgetiq/budget-api/handlers"
	"github.com/budgetiq/budget-api/services"
)

// SetupAuthRoutes sets up public authentication routes.
func SetupAuthRoutes(rg *gin.RouterGroup, db *sql.DB) {
	authHandler := &handlers.AuthHandler{DB: db}

	rg.POST("/auth/signup", authHandler.Signup)
	rg.POST("/auth/login", authHandler.Login)
	rg.POST("/auth/refresh", authHandler.Refresh)
	rg.POST("/auth/logout", authHandler.Logout)
}

// SetupUserRoutes sets up protected user account routes.
func SetupUserRoutes(rg *gin.RouterGroup, db *sql.DB) {
	userHandler := &handlers.UserHandler{DB: db}

	rg.GET("/user/profile", userHandler.GetProfile)
	rg.POST("/user/password", userHandler.ChangePassword)
	rg.POST("/user/2fa/setup", userHandler.SetupTOTP)
	rg.POST("/user/2fa/verify", userHandler.VerifyTOTP)
	rg.POST("/user/2fa/disable", userHandler.DisableTOTP)
}

// SetupFinanceRoutes sets up protected category, budget and transaction
// routes.
func SetupFinanceRoutes(rg *gin.RouterGroup, db *sql.DB, ws *handlers.WSHandler) {
	financeService := services.NewFinanceService(db)
	h := handlers.NewFinanceHandler(financeService, ws)

	rg.GET("/categories", h.GetCategories)
	rg.POST("/categories", h.CreateCategory)
	rg.DELETE("/categories/:id", h.DeleteCategory)

	rg.GET("/budgets", h.GetBudgets)
	rg.POST("/budgets", h.CreateBudget)
	rg.PUT("/budgets/:id", h.UpdateBudget)
	rg.DELETE("/budgets/:id", h.DeleteBudget)

	rg.GET("/transactions", h.GetTransactions)
	rg.POST("/transactions", h.CreateTransaction)
	rg.DELETE("/transactions/:id", h.DeleteTransaction)
}

// SetupAnalyticsRoutes sets up protected analytics routes.
func SetupAnalyticsRoutes(rg *gin.RouterGroup, db *sql.DB) {
	financeService := services.NewFinanceService(db)
	h := handlers.NewAnalyticsHandler(financeService)

	rg.GET("/analytics/summary", h.Summary)
	rg.GET("/analytics/insights", h.Insights)
	rg.GET("/analytics/history", h.History)
	rg.GET("/analytics/forecast", h.Forecast)
	rg.GET("/analytics/yoy", h.YearOverYear)
}
