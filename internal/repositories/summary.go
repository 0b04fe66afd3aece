package repositories

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noschwa/expense-tracker/internal/logger"
	"github.com/noschwa/expense-tracker/internal/models"
)

// SummaryReadRepository computes monthly per-category aggregates.
type SummaryReadRepository struct {
	db *sqlx.DB
}

func NewSummaryReadRepository(db *sqlx.DB) *SummaryReadRepository {
	return &SummaryReadRepository{db: db}
}

// GetMonthly returns totals and transaction counts for every category
// visible to the user in the given month. The LEFT JOIN keeps zero-expense
// categories in the result with zero totals. Ordered by total descending.
func (r *SummaryReadRepository) GetMonthly(ctx context.Context, userID uuid.UUID, month, year int) ([]models.CategorySummary, error) {
	const query = `
		SELECT c.name AS category,
		       COALESCE(SUM(e.amount), 0) AS total_amount,
		       COUNT(e.expense_id) AS transaction_count
		FROM categories c
		LEFT JOIN expenses e
		  ON e.category_id = c.category_id
		 AND e.user_id = $1
		 AND EXTRACT(MONTH FROM e.expense_date) = $2
		 AND EXTRACT(YEAR FROM e.expense_date) = $3
		WHERE c.is_default OR c.user_id = $1
		GROUP BY c.category_id, c.name
		ORDER BY total_amount DESC, LOWER(c.name) ASC
	`

	var summaries []models.CategorySummary
	err := r.db.SelectContext(ctx, &summaries, query, userID, month, year)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID, month, year},
		"result", len(summaries),
		"error", err,
	)

	return summaries, err
}
