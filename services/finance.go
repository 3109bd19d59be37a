package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetiq/budget-api/models"
	"github.com/budgetiq/budget-api/utils"
)

// FinanceService owns the finance tables (categories, budgets, transactions).
// The analytics functions in this package never query the database directly;
// handlers fetch rows through this service and feed them in.
type FinanceService struct {
	db *sql.DB
}

func NewFinanceService(db *sql.DB) *FinanceService {
	return &FinanceService{db: db}
}

// GetCategories lists the user's categories by name.
func (s *FinanceService) GetCategories(ctx context.Context, userID string) ([]models.Category, error) {
	query := `
		SELECT id, user_id, name, created_at
		FROM categories
		WHERE user_id = $1
		ORDER BY name
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.UserID, &cat.Name, &cat.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, cat)
	}

	return categories, rows.Err()
}

func (s *FinanceService) CreateCategory(ctx context.Context, userID, name string) (*models.Category, error) {
	category := &models.Category{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		CreatedAt: time.Now(),
	}

	query := `
		INSERT INTO categories (id, user_id, name, created_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := s.db.ExecContext(ctx, query, category.ID, category.UserID, category.Name, category.CreatedAt); err != nil {
		return nil, err
	}

	return category, nil
}

// DeleteCategory removes a category together with its budgets and
// transactions so analytics never sees rows pointing at a missing category.
func (s *FinanceService) DeleteCategory(ctx context.Context, userID, categoryID string) error {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1 AND user_id = $2)`,
		categoryID, userID).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return sql.ErrNoRows
	}

	return utils.WithTransaction(s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM transactions WHERE category_id = $1 AND user_id = $2`, categoryID, userID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM budgets WHERE category_id = $1 AND user_id = $2`, categoryID, userID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE id = $1 AND user_id = $2`, categoryID, userID); err != nil {
			return err
		}
		return nil
	})
}

// GetBudgets lists the user's budgets with their category names resolved.
func (s *FinanceService) GetBudgets(ctx context.Context, userID string) ([]models.Budget, error) {
	query := `
		SELECT b.id, b.user_id, b.category_id, c.name, b.amount, b.period, b.created_at, b.updated_at
		FROM budgets b
		JOIN categories c ON b.category_id = c.id
		WHERE b.user_id = $1
		ORDER BY c.name
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var budgets []models.Budget
	for rows.Next() {
		var budget models.Budget
		var amount string
		err := rows.Scan(
			&budget.ID,
			&budget.UserID,
			&budget.CategoryID,
			&budget.CategoryName,
			&amount,
			&budget.Period,
			&budget.CreatedAt,
			&budget.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		if budget.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, err
		}
		budgets = append(budgets, budget)
	}

	return budgets, rows.Err()
}

func (s *FinanceService) CreateBudget(ctx context.Context, userID string, req models.CreateBudgetRequest) (*models.Budget, error) {
	budget := &models.Budget{
		ID:         uuid.New().String(),
		UserID:     userID,
		CategoryID: req.CategoryID,
		Amount:     req.Amount,
		Period:     req.Period,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	query := `
		INSERT INTO budgets (id, user_id, category_id, amount, period, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		budget.ID, budget.UserID, budget.CategoryID,
		budget.Amount.String(), budget.Period,
		budget.CreatedAt, budget.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	err = s.db.QueryRowContext(ctx, `SELECT name FROM categories WHERE id = $1`, budget.CategoryID).
		Scan(&budget.CategoryName)
	if err != nil {
		return nil, err
	}

	return budget, nil
}

func (s *FinanceService) UpdateBudget(ctx context.Context, userID, budgetID string, amount decimal.Decimal, period string) error {
	query := `
		UPDATE budgets
		SET amount = $1, period = $2, updated_at = $3
		WHERE id = $4 AND user_id = $5
	`
	result, err := s.db.ExecContext(ctx, query, amount.String(), period, time.Now(), budgetID, userID)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *FinanceService) DeleteBudget(ctx context.Context, userID, budgetID string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM budgets WHERE id = $1 AND user_id = $2`, budgetID, userID)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// GetTransactions lists the user's transactions newest first. The zero value
// for from/to means unbounded on that side.
func (s *FinanceService) GetTransactions(ctx context.Context, userID string, from, to time.Time) ([]models.Transaction, error) {
	query := `
		SELECT t.id, t.user_id, t.amount, t.type, t.category_id, c.name,
		       COALESCE(t.description, ''), t.date, t.created_at
		FROM transactions t
		JOIN categories c ON t.category_id = c.id
		WHERE t.user_id = $1
		  AND ($2::timestamp IS NULL OR t.date >= $2)
		  AND ($3::timestamp IS NULL OR t.date < $3)
		ORDER BY t.date DESC, t.created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID, nullableTime(from), nullableTime(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var tx models.Transaction
		var amount string
		err := rows.Scan(
			&tx.ID,
			&tx.UserID,
			&amount,
			&tx.Type,
			&tx.CategoryID,
			&tx.CategoryName,
			&tx.Description,
			&tx.Date,
			&tx.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		if tx.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}

	return transactions, rows.Err()
}

func (s *FinanceService) CreateTransaction(ctx context.Context, userID string, req models.CreateTransactionRequest) (*models.Transaction, error) {
	tx := &models.Transaction{
		ID:          uuid.New().String(),
		UserID:      userID,
		Amount:      req.Amount,
		Type:        req.Type,
		CategoryID:  req.CategoryID,
		Description: req.Description,
		Date:        req.Date,
		CreatedAt:   time.Now(),
	}
	if tx.Date.IsZero() {
		tx.Date = time.Now()
	}

	query := `
		INSERT INTO transactions (id, user_id, amount, type, category_id, description, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(ctx, query,
		tx.ID, tx.UserID, tx.Amount.String(), tx.Type,
		tx.CategoryID, tx.Description, tx.Date, tx.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	err = s.db.QueryRowContext(ctx, `SELECT name FROM categories WHERE id = $1`, tx.CategoryID).
		Scan(&tx.CategoryName)
	if err != nil {
		return nil, err
	}

	return tx, nil
}

func (s *FinanceService) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE id = $1 AND user_id = $2`, transactionID, userID)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func nullableTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}
