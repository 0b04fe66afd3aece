package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/noschwa/expense-tracker/internal/logger"
	"github.com/noschwa/expense-tracker/internal/models"
)

// CategoryLister defines the interface that the service must implement.
type CategoryLister interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.CategoryDB, error)
}

// NewListCategoriesHandler returns an HTTP handler for listing categories.
// @Summary List categories
// @Description Returns the user's own categories plus the shared defaults, defaults first, then alphabetically.
// @Tags categories
// @Produce json
// @Success 200 {array} models.CategoryDB "Visible categories"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /categories [get]
// @Security BearerAuth
func NewListCategoriesHandler(svc CategoryLister, tokener Tokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := authenticate(w, r, tokener)
		if !ok {
			return
		}

		categories, err := svc.List(r.Context(), userID)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		if categories == nil {
			categories = []models.CategoryDB{}
		}
		writeJSON(w, http.StatusOK, categories)
	}
}
