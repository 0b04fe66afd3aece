package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/noschwa/expense-tracker/internal/logger"
	"github.com/noschwa/expense-tracker/internal/models"
)

var (
	// ErrCategoryReferenced is returned when a delete is rejected because
	// expenses still reference the category (FK ON DELETE RESTRICT).
	ErrCategoryReferenced = errors.New("category is referenced by expenses")

	// ErrCategoryNameTaken is returned when an insert or rename loses a race
	// against the per-owner unique name index.
	ErrCategoryNameTaken = errors.New("category name is already taken")
)

// SQLSTATE codes surfaced by the constraints on the categories table.
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

// CategoryReadRepository handles category lookups.
type CategoryReadRepository struct {
	db *sqlx.DB
}

func NewCategoryReadRepository(db *sqlx.DB) *CategoryReadRepository {
	return &CategoryReadRepository{db: db}
}

// ListVisible returns the union of the user's own categories and the shared
// defaults, defaults first, then alphabetically by name.
func (r *CategoryReadRepository) ListVisible(ctx context.Context, userID uuid.UUID) ([]models.CategoryDB, error) {
	const query = `
		SELECT category_id, user_id, name, is_default, created_at, updated_at
		FROM categories
		WHERE is_default OR user_id = $1
		ORDER BY is_default DESC, LOWER(name) ASC
	`

	var categories []models.CategoryDB
	err := r.db.SelectContext(ctx, &categories, query, userID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"result", len(categories),
		"error", err,
	)

	return categories, err
}

// GetVisibleByID returns the category if it is a default or owned by the
// user. Returns (nil, nil) when the category is not visible.
func (r *CategoryReadRepository) GetVisibleByID(ctx context.Context, userID, categoryID uuid.UUID) (*models.CategoryDB, error) {
	const query = `
		SELECT category_id, user_id, name, is_default, created_at, updated_at
		FROM categories
		WHERE category_id = $1 AND (is_default OR user_id = $2)
	`

	var category models.CategoryDB
	err := r.db.GetContext(ctx, &category, query, categoryID, userID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{categoryID, userID},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &category, nil
}

// NameExists reports whether the name is already taken among the user's own
// categories (case-insensitive). Shared default names are not counted: an
// owned category may carry the same name as a default. A non-nil excludeID
// skips one row, for rename checks.
func (r *CategoryReadRepository) NameExists(ctx context.Context, userID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM categories
			WHERE LOWER(name) = LOWER($2)
			  AND user_id = $1
			  AND ($3::UUID IS NULL OR category_id <> $3)
		)
	`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, userID, name, excludeID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID, name, excludeID},
		"result", exists,
		"error", err,
	)

	return exists, err
}

// CategoryWriteRepository handles category mutations.
type CategoryWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewCategoryWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *CategoryWriteRepository {
	return &CategoryWriteRepository{db: db, txGetter: txGetter}
}

func (r *CategoryWriteRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// Save inserts a new user-owned category and returns the stored row.
func (r *CategoryWriteRepository) Save(ctx context.Context, userID uuid.UUID, name string) (*models.CategoryDB, error) {
	const query = `
		INSERT INTO categories (user_id, name, is_default, created_at, updated_at)
		VALUES ($1, $2, FALSE, NOW(), NOW())
		RETURNING category_id, user_id, name, is_default, created_at, updated_at
	`

	var category models.CategoryDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &category, query, userID, name)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID, name},
		"error", err,
	)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return nil, ErrCategoryNameTaken
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// Update renames a category owned by the user. The ownership check and the
// mutation run in the same statement; defaults are never updatable.
// Returns (nil, nil) when no owned row matched.
func (r *CategoryWriteRepository) Update(ctx context.Context, userID, categoryID uuid.UUID, name string) (*models.CategoryDB, error) {
	const query = `
		UPDATE categories
		SET name = $3, updated_at = NOW()
		WHERE category_id = $1 AND user_id = $2 AND NOT is_default
		RETURNING category_id, user_id, name, is_default, created_at, updated_at
	`

	var category models.CategoryDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &category, query, categoryID, userID, name)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{categoryID, userID, name},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return nil, ErrCategoryNameTaken
	}
	if err != nil {
		return nil, err
	}

	return &category, nil
}

// Delete removes a category owned by the user. Returns false when no owned
// row matched, and ErrCategoryReferenced when expenses still use it.
func (r *CategoryWriteRepository) Delete(ctx context.Context, userID, categoryID uuid.UUID) (bool, error) {
	const query = `
		DELETE FROM categories
		WHERE category_id = $1 AND user_id = $2 AND NOT is_default
		RETURNING category_id
	`

	var deletedID uuid.UUID
	err := sqlx.GetContext(ctx, r.executor(ctx), &deletedID, query, categoryID, userID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{categoryID, userID},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return false, ErrCategoryReferenced
	}
	if err != nil {
		return false, err
	}

	return true, nil
}
