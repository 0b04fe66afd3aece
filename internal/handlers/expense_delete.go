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

// ExpenseDeleter defines the interface that the service must implement.
type ExpenseDeleter interface {
	Delete(ctx context.Context, userID, expenseID uuid.UUID) error
}

// NewDeleteExpenseHandler returns an HTTP handler for deleting an expense.
// @Summary Delete an expense
// @Description Deletes a user-owned expense. Another user's expense is reported as not found.
// @Tags expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} handlers.MessageResponse "Expense deleted"
// @Failure 400 {object} handlers.ErrorResponse "Invalid expense ID"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Expense not found"
// @Router /expenses/{id} [delete]
// @Security BearerAuth
func NewDeleteExpenseHandler(svc ExpenseDeleter, tokener Tokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := authenticate(w, r, tokener)
		if !ok {
			return
		}

		expenseID, err := uuid.Parse(chi.URLParam(r, "expenseID"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid expense ID")
			return
		}

		if err := svc.Delete(r.Context(), userID, expenseID); err != nil {
			switch {
			case errors.Is(err, services.ErrExpenseNotFound):
				writeError(w, http.StatusNotFound, "Expense not found")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeJSON(w, http.StatusOK, MessageResponse{Message: "Expense deleted successfully"})
	}
}
