package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/noschwa/expense-tracker/internal/logger"
	"github.com/noschwa/expense-tracker/internal/models"
	"github.com/noschwa/expense-tracker/internal/repositories"
)

// Error variables
var (
	ErrCategoryNameRequired  = errors.New("category name is required")
	ErrCategoryAlreadyExists = errors.New("category already exists")
	ErrCategoryNotFound      = errors.New("category not found")
	ErrCategoryInUse         = errors.New("category has expenses assigned to it")
)

// CategoryReader defines read-only operations for categories.
type CategoryReader interface {
	ListVisible(ctx context.Context, userID uuid.UUID) ([]models.CategoryDB, error)
	NameExists(ctx context.Context, userID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error)
}

// CategoryWriter defines write operations for categories.
type CategoryWriter interface {
	Save(ctx context.Context, userID uuid.UUID, name string) (*models.CategoryDB, error)
	Update(ctx context.Context, userID, categoryID uuid.UUID, name string) (*models.CategoryDB, error)
	Delete(ctx context.Context, userID, categoryID uuid.UUID) (bool, error)
}

// ExpenseCounter reports how many expenses reference a category.
type ExpenseCounter interface {
	CountByCategory(ctx context.Context, userID, categoryID uuid.UUID) (int64, error)
}

// CategoryService manages per-user categories plus the shared defaults.
type CategoryService struct {
	reader   CategoryReader
	writer   CategoryWriter
	expenses ExpenseCounter
}

// NewCategoryService creates a new CategoryService instance.
func NewCategoryService(reader CategoryReader, writer CategoryWriter, expenses ExpenseCounter) *CategoryService {
	return &CategoryService{
		reader:   reader,
		writer:   writer,
		expenses: expenses,
	}
}

// List returns the user's categories plus the defaults, defaults first.
func (svc *CategoryService) List(ctx context.Context, userID uuid.UUID) ([]models.CategoryDB, error) {
	categories, err := svc.reader.ListVisible(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to list categories", "userID", userID, "err", err)
		return nil, err
	}
	return categories, nil
}

// Create adds a new user-owned category. The name must be non-blank and
// unique (case-insensitively) among the user's own categories; an owned
// category may share a name with a shared default.
func (svc *CategoryService) Create(ctx context.Context, userID uuid.UUID, name string) (*models.CategoryDB, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrCategoryNameRequired
	}

	exists, err := svc.reader.NameExists(ctx, userID, name, nil)
	if err != nil {
		logger.Log.Errorw("failed to check category name", "userID", userID, "name", name, "err", err)
		return nil, err
	}
	if exists {
		return nil, ErrCategoryAlreadyExists
	}

	category, err := svc.writer.Save(ctx, userID, name)
	if errors.Is(err, repositories.ErrCategoryNameTaken) {
		// Unique-index backstop for the window between the check and the
		// insert.
		return nil, ErrCategoryAlreadyExists
	}
	if err != nil {
		logger.Log.Errorw("failed to save category", "userID", userID, "name", name, "err", err)
		return nil, err
	}

	return category, nil
}

// Update renames a user-owned category with the same checks as Create.
// Defaults and other users' categories are reported as not found.
func (svc *CategoryService) Update(ctx context.Context, userID, categoryID uuid.UUID, name string) (*models.CategoryDB, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrCategoryNameRequired
	}

	exists, err := svc.reader.NameExists(ctx, userID, name, &categoryID)
	if err != nil {
		logger.Log.Errorw("failed to check category name", "userID", userID, "name", name, "err", err)
		return nil, err
	}
	if exists {
		return nil, ErrCategoryAlreadyExists
	}

	category, err := svc.writer.Update(ctx, userID, categoryID, name)
	if errors.Is(err, repositories.ErrCategoryNameTaken) {
		return nil, ErrCategoryAlreadyExists
	}
	if err != nil {
		logger.Log.Errorw("failed to update category", "userID", userID, "categoryID", categoryID, "err", err)
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	return category, nil
}

// Delete removes a user-owned category. Deletion is blocked while expenses
// still reference the category; the caller must reassign them first.
func (svc *CategoryService) Delete(ctx context.Context, userID, categoryID uuid.UUID) error {
	count, err := svc.expenses.CountByCategory(ctx, userID, categoryID)
	if err != nil {
		logger.Log.Errorw("failed to count category expenses", "userID", userID, "categoryID", categoryID, "err", err)
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}

	deleted, err := svc.writer.Delete(ctx, userID, categoryID)
	if errors.Is(err, repositories.ErrCategoryReferenced) {
		// FK backstop for the window between the count and the delete.
		return ErrCategoryInUse
	}
	if err != nil {
		logger.Log.Errorw("failed to delete category", "userID", userID, "categoryID", categoryID, "err", err)
		return err
	}
	if !deleted {
		return ErrCategoryNotFound
	}

	return nil
}
