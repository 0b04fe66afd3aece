package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/noschwa/expense-tracker/internal/logger"
	"github.com/noschwa/expense-tracker/internal/models"
	"github.com/noschwa/expense-tracker/internal/services"
)

// CategoryUpdater defines the interface that the service must implement.
type CategoryUpdater interface {
	Update(ctx context.Context, userID, categoryID uuid.UUID, name string) (*models.CategoryDB, error)
}

// UpdateCategoryRequest represents the JSON body for renaming a category
// swagger:model UpdateCategoryRequest
type UpdateCategoryRequest struct {
	// New category name
	// required: true
	// example: Dining out
	Name string `json:"name"`
}

// NewUpdateCategoryHandler returns an HTTP handler for renaming a category.
// @Summary Rename a category
// @Description Renames a user-owned category. Defaults and other users' categories are reported as not found.
// @Tags categories
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param updateCategoryRequest body handlers.UpdateCategoryRequest true "New name"
// @Success 200 {object} models.CategoryDB "Updated category"
// @Failure 400 {object} handlers.ErrorResponse "Invalid id or blank name"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Category not found"
// @Failure 409 {object} handlers.ErrorResponse "Category already exists"
// @Router /categories/{id} [put]
// @Security BearerAuth
func NewUpdateCategoryHandler(svc CategoryUpdater, tokener Tokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := authenticate(w, r, tokener)
		if !ok {
			return
		}

		categoryID, err := uuid.Parse(chi.URLParam(r, "categoryID"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid category ID")
			return
		}

		var req UpdateCategoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		category, err := svc.Update(r.Context(), userID, categoryID, req.Name)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrCategoryNameRequired):
				writeError(w, http.StatusBadRequest, "Category name is required")
			case errors.Is(err, services.ErrCategoryAlreadyExists):
				writeError(w, http.StatusConflict, "Category already exists")
			case errors.Is(err, services.ErrCategoryNotFound):
				writeError(w, http.StatusNotFound, "Category not found")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeJSON(w, http.StatusOK, category)
	}
}
