package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/noschwa/expense-tracker/internal/logger"
	"github.com/noschwa/expense-tracker/internal/services"
)

// CategoryDeleter defines the interface that the service must implement.
type CategoryDeleter interface {
	Delete(ctx context.Context, userID, categoryID uuid.UUID) error
}

// NewDeleteCategoryHandler returns an HTTP handler for deleting a category.
// @Summary Delete a category
// @Description Deletes a user-owned category. Blocked while expenses still reference it.
// @Tags categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} handlers.MessageResponse "Category deleted"
// @Failure 400 {object} handlers.ErrorResponse "Invalid category ID"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Category not found"
// @Failure 409 {object} handlers.ErrorResponse "Category has expenses assigned to it"
// @Router /categories/{id} [delete]
// @Security BearerAuth
func NewDeleteCategoryHandler(svc CategoryDeleter, tokener Tokener) http.HandlerFunc {
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

		if err := svc.Delete(r.Context(), userID, categoryID); err != nil {
			switch {
			case errors.Is(err, services.ErrCategoryNotFound):
				writeError(w, http.StatusNotFound, "Category not found")
			case errors.Is(err, services.ErrCategoryInUse):
				writeError(w, http.StatusConflict, "Category has expenses assigned to it")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeJSON(w, http.StatusOK, MessageResponse{Message: "Category deleted successfully"})
	}
}
