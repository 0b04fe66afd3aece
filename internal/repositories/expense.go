package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noschwa/expense-tracker/internal/logger"
	"github.com/noschwa/expense-tracker/internal/models"
)

// sortColumns whitelists the ORDER BY targets; anything else falls back to
// the expense date.
var sortColumns = map[string]string{
	models.SortByDate:      "expense_date",
	models.SortByAmount:    "amount",
	models.SortByCreatedAt: "created_at",
}

// expensePageRow carries a page row plus the windowed count of all rows
// matching the filter.
type expensePageRow struct {
	models.ExpenseDB
	TotalCount int64 `db:"total_count"`
}

// ExpenseReadRepository handles owner-scoped expense queries.
type ExpenseReadRepository struct {
	db *sqlx.DB
}

func NewExpenseReadRepository(db *sqlx.DB) *ExpenseReadRepository {
	return &ExpenseReadRepository{db: db}
}

// List returns one page of the user's expenses matching the filter, plus the
// total number of matching rows. Filters are conjunctive; the date filter
// applies only when both bounds are present.
func (r *ExpenseReadRepository) List(ctx context.Context, userID uuid.UUID, filter models.ExpenseFilter) ([]models.ExpenseDB, int64, error) {
	where := []string{"user_id = $1"}
	args := []any{userID}

	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		where = append(where, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if filter.StartDate != nil && filter.EndDate != nil {
		args = append(args, *filter.StartDate)
		where = append(where, fmt.Sprintf("expense_date >= $%d", len(args)))
		args = append(args, *filter.EndDate)
		where = append(where, fmt.Sprintf("expense_date <= $%d", len(args)))
	}
	whereClause := strings.Join(where, " AND ")
	whereArgs := args

	column, ok := sortColumns[filter.SortBy]
	if !ok {
		column = "expense_date"
	}
	direction := "DESC"
	if strings.EqualFold(filter.SortOrder, models.SortAsc) {
		direction = "ASC"
	}

	// The count rides along as a window so the page and the total come
	// from the same snapshot.
	offset := (filter.Page - 1) * filter.Limit
	args = append(args, filter.Limit, offset)
	pageQuery := fmt.Sprintf(`
		SELECT expense_id, user_id, category_id, amount, description, expense_date, created_at, updated_at,
		       COUNT(*) OVER () AS total_count
		FROM expenses
		WHERE %s
		ORDER BY %s %s, expense_id ASC
		LIMIT $%d OFFSET $%d
	`, whereClause, column, direction, len(args)-1, len(args))

	var rows []expensePageRow
	err := r.db.SelectContext(ctx, &rows, pageQuery, args...)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(pageQuery), " "),
		"args", args,
		"result", len(rows),
		"error", err,
	)

	if err != nil {
		return nil, 0, err
	}

	// An empty page carries no window row; count the matches separately.
	if len(rows) == 0 {
		countQuery := "SELECT COUNT(*) FROM expenses WHERE " + whereClause

		var total int64
		if err := r.db.GetContext(ctx, &total, countQuery, whereArgs...); err != nil {
			logger.Log.Infow(
				"query", strings.Join(strings.Fields(countQuery), " "),
				"args", whereArgs,
				"error", err,
			)
			return nil, 0, err
		}
		return nil, total, nil
	}

	expenses := make([]models.ExpenseDB, len(rows))
	for i, row := range rows {
		expenses[i] = row.ExpenseDB
	}
	return expenses, rows[0].TotalCount, nil
}

// CountByCategory returns how many of the user's expenses reference the
// category.
func (r *ExpenseReadRepository) CountByCategory(ctx context.Context, userID, categoryID uuid.UUID) (int64, error) {
	const query = `
		SELECT COUNT(*) FROM expenses
		WHERE user_id = $1 AND category_id = $2
	`

	var count int64
	err := r.db.GetContext(ctx, &count, query, userID, categoryID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID, categoryID},
		"result", count,
		"error", err,
	)

	return count, err
}

// ExpenseWriteRepository handles owner-scoped expense mutations.
type ExpenseWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewExpenseWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *ExpenseWriteRepository {
	return &ExpenseWriteRepository{db: db, txGetter: txGetter}
}

func (r *ExpenseWriteRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// Save inserts a new expense and returns the stored row.
func (r *ExpenseWriteRepository) Save(ctx context.Context, userID, categoryID uuid.UUID, amount float64, description string, expenseDate time.Time) (*models.ExpenseDB, error) {
	const query = `
		INSERT INTO expenses (user_id, category_id, amount, description, expense_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING expense_id, user_id, category_id, amount, description, expense_date, created_at, updated_at
	`
	args := []any{userID, categoryID, amount, description, expenseDate}

	var expense models.ExpenseDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &expense, query, args...)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return &expense, nil
}

// Update mutates an expense owned by the user. The ownership check and the
// update run in the same statement, so a non-owner can never race the check.
// The second return value is the pre-update expense date, so callers can
// invalidate both affected summary months when the date moves. Returns
// (nil, zero, nil) when no owned row matched.
func (r *ExpenseWriteRepository) Update(ctx context.Context, userID, expenseID, categoryID uuid.UUID, amount float64, description string, expenseDate time.Time) (*models.ExpenseDB, time.Time, error) {
	const query = `
		UPDATE expenses e
		SET category_id = $3, amount = $4, description = $5, expense_date = $6, updated_at = NOW()
		FROM (
			SELECT expense_id, expense_date FROM expenses
			WHERE expense_id = $1 AND user_id = $2
			FOR UPDATE
		) prev
		WHERE e.expense_id = prev.expense_id
		RETURNING e.expense_id, e.user_id, e.category_id, e.amount, e.description, e.expense_date, e.created_at, e.updated_at,
		          prev.expense_date AS prev_expense_date
	`
	args := []any{expenseID, userID, categoryID, amount, description, expenseDate}

	var row struct {
		models.ExpenseDB
		PrevExpenseDate time.Time `db:"prev_expense_date"`
	}
	err := sqlx.GetContext(ctx, r.executor(ctx), &row, query, args...)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, err
	}

	return &row.ExpenseDB, row.PrevExpenseDate, nil
}

// Delete removes an expense owned by the user, returning the deleted row so
// callers can invalidate the matching summary month. Same single-statement
// ownership guarantee as Update. Returns (nil, nil) when no owned row
// matched.
func (r *ExpenseWriteRepository) Delete(ctx context.Context, userID, expenseID uuid.UUID) (*models.ExpenseDB, error) {
	const query = `
		DELETE FROM expenses
		WHERE expense_id = $1 AND user_id = $2
		RETURNING expense_id, user_id, category_id, amount, description, expense_date, created_at, updated_at
	`

	var expense models.ExpenseDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &expense, query, expenseID, userID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{expenseID, userID},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &expense, nil
}
