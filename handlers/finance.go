package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/budgetiq/budget-api/middleware"
	"github.com/budgetiq/budget-api/models"
	"github.com/budgetiq/budget-api/services"
	"github.com/budgetiq/budget-api/utils"
)

// FinanceHandler serves category, budget and transaction CRUD. Every
// mutation broadcasts a refresh so open dashboards refetch their analytics.
type FinanceHandler struct {
	Finance *services.FinanceService
	WS      *WSHandler
}

func NewFinanceHandler(finance *services.FinanceService, ws *WSHandler) *FinanceHandler {
	return &FinanceHandler{Finance: finance, WS: ws}
}

func (h *FinanceHandler) notifyChange(userID string) {
	if h.WS != nil {
		h.WS.BroadcastRefresh(userID)
	}
}

func (h *FinanceHandler) GetCategories(c *gin.Context) {
	userID := middleware.GetUserID(c)

	categories, err := h.Finance.GetCategories(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load categories"})
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}

	c.JSON(http.StatusOK, categories)
}

func (h *FinanceHandler) CreateCategory(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.Finance.CreateCategory(c.Request.Context(), userID, req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}

	utils.LogFinanceAction("category created", category.ID, userID)
	h.notifyChange(userID)
	c.JSON(http.StatusCreated, category)
}

func (h *FinanceHandler) DeleteCategory(c *gin.Context) {
	userID := middleware.GetUserID(c)
	categoryID := c.Param("id")

	err := h.Finance.DeleteCategory(c.Request.Context(), userID, categoryID)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}

	utils.LogFinanceAction("category deleted", categoryID, userID)
	h.notifyChange(userID)
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}

func (h *FinanceHandler) GetBudgets(c *gin.Context) {
	userID := middleware.GetUserID(c)

	budgets, err := h.Finance.GetBudgets(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load budgets"})
		return
	}
	if budgets == nil {
		budgets = []models.Budget{}
	}

	c.JSON(http.StatusOK, budgets)
}

func (h *FinanceHandler) CreateBudget(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req models.CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Amount.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must not be negative"})
		return
	}

	budget, err := h.Finance.CreateBudget(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create budget"})
		return
	}

	utils.LogFinanceAction("budget created", budget.ID, userID)
	h.notifyChange(userID)
	c.JSON(http.StatusCreated, budget)
}

type updateBudgetRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Period string          `json:"period" binding:"required,oneof=weekly monthly yearly"`
}

func (h *FinanceHandler) UpdateBudget(c *gin.Context) {
	userID := middleware.GetUserID(c)
	budgetID := c.Param("id")

	var req updateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Amount.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must not be negative"})
		return
	}

	err := h.Finance.UpdateBudget(c.Request.Context(), userID, budgetID, req.Amount, req.Period)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Budget not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update budget"})
		return
	}

	utils.LogFinanceAction("budget updated", budgetID, userID)
	h.notifyChange(userID)
	c.JSON(http.StatusOK, gin.H{"message": "Budget updated"})
}

func (h *FinanceHandler) DeleteBudget(c *gin.Context) {
	userID := middleware.GetUserID(c)
	budgetID := c.Param("id")

	err := h.Finance.DeleteBudget(c.Request.Context(), userID, budgetID)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Budget not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete budget"})
		return
	}

	utils.LogFinanceAction("budget deleted", budgetID, userID)
	h.notifyChange(userID)
	c.JSON(http.StatusOK, gin.H{"message": "Budget deleted"})
}

func (h *FinanceHandler) GetTransactions(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var from, to time.Time
	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date, expected YYYY-MM-DD"})
			return
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date, expected YYYY-MM-DD"})
			return
		}
		to = parsed
	}

	transactions, err := h.Finance.GetTransactions(c.Request.Context(), userID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load transactions"})
		return
	}
	if transactions == nil {
		transactions = []models.Transaction{}
	}

	c.JSON(http.StatusOK, transactions)
}

func (h *FinanceHandler) CreateTransaction(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req models.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Amount.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be positive"})
		return
	}

	tx, err := h.Finance.CreateTransaction(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create transaction"})
		return
	}

	utils.LogFinanceAction("transaction created", tx.ID, userID)
	h.notifyChange(userID)
	c.JSON(http.StatusCreated, tx)
}

func (h *FinanceHandler) DeleteTransaction(c *gin.Context) {
	userID := middleware.GetUserID(c)
	transactionID := c.Param("id")

	err := h.Finance.DeleteTransaction(c.Request.Context(), userID, transactionID)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete transaction"})
		return
	}

	utils.LogFinanceAction("transaction deleted", transactionID, userID)
	h.notifyChange(userID)
	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted"})
}
