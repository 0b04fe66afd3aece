package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/noschwa/expense-tracker/internal/logger"
	"github.com/noschwa/expense-tracker/internal/models"
	"github.com/noschwa/expense-tracker/internal/services"
)

// CategoryCreator defines the interface that the service must implement.
type CategoryCreator interface {
	Create(ctx context.Context, userID uuid.UUID, name string) (*models.CategoryDB, error)
}

// CreateCategoryRequest represents the JSON body for creating a category
// swagger:model CreateCategoryRequest
type CreateCategoryRequest struct {
	// Category name
	// required: true
	// example: Groceries
	Name string `json:"name"`
}

// NewCreateCategoryHandler returns an HTTP handler for creating a category.
// @Summary Create a category
// @Description Creates a user-owned category. The name must be unique (case-insensitive) among the user's own categories; default names may be reused.
// @Tags categories
// @Accept json
// @Produce json
// @Param createCategoryRequest body handlers.CreateCategoryRequest true "Category to create"
// @Success 201 {object} models.CategoryDB "Created category"
// @Failure 400 {object} handlers.ErrorResponse "Category name is required"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 409 {object} handlers.ErrorResponse "Category already exists"
// @Router /categories [post]
// @Security BearerAuth
func NewCreateCategoryHandler(svc CategoryCreator, tokener Tokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := authenticate(w, r, tokener)
		if !ok {
			return
		}

		var req CreateCategoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		category, err := svc.Create(r.Context(), userID, req.Name)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrCategoryNameRequired):
				writeError(w, http.StatusBadRequest, "Category name is required")
			case errors.Is(err, services.ErrCategoryAlreadyExists):
				writeError(w, http.StatusConflict, "Category already exists")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeJSON(w, http.StatusCreated, category)
	}
}
