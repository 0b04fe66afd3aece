package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/noschwa/expense-tracker/internal/logger"
	"github.com/noschwa/expense-tracker/internal/models"
	"github.com/noschwa/expense-tracker/internal/services"
)

// ExpenseUpdater defines the interface that the service must implement.
type ExpenseUpdater interface {
	Update(ctx context.Context, userID, expenseID, categoryID uuid.UUID, amount float64, description string, expenseDate time.Time) (*models.ExpenseDB, error)
}

// UpdateExpenseRequest represents the JSON body for replacing an expense
// swagger:model UpdateExpenseRequest
type UpdateExpenseRequest struct {
	// Amount spent, must be positive
	// required: true
	// example: 42.50
	Amount float64 `json:"amount"`

	// Category the expense belongs to
	// required: true
	CategoryID string `json:"categoryId"`

	// Free-form note
	// example: Weekly groceries
	Description string `json:"description"`

	// Date of the expense in YYYY-MM-DD format
	// required: true
	// example: 2025-03-14
	ExpenseDate string `json:"expenseDate"`
}

// NewUpdateExpenseHandler returns an HTTP handler for replacing an expense.
// @Summary Update an expense
// @Description Replaces all fields of a user-owned expense. Another user's expense is reported as not found.
// @Tags expenses
// @Accept json
// @Produce json
// @Param id path string true "Expense ID"
// @Param updateExpenseRequest body handlers.UpdateExpenseRequest true "New expense fields"
// @Success 200 {object} models.ExpenseDB "Updated expense"
// @Failure 400 {object} handlers.ErrorResponse "Invalid amount, date or category"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Expense not found"
// @Router /expenses/{id} [put]
// @Security BearerAuth
func NewUpdateExpenseHandler(svc ExpenseUpdater, tokener Tokener) http.HandlerFunc {
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

		var req UpdateExpenseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		categoryID, err := uuid.Parse(req.CategoryID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid category ID")
			return
		}

		expenseDate, err := time.Parse(expenseDateLayout, req.ExpenseDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid expense date, expected YYYY-MM-DD")
			return
		}

		expense, err := svc.Update(r.Context(), userID, expenseID, categoryID, req.Amount, req.Description, expenseDate)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidAmount):
				writeError(w, http.StatusBadRequest, "Amount must be greater than zero")
			case errors.Is(err, services.ErrInvalidExpenseDate):
				writeError(w, http.StatusBadRequest, "Expense date is required")
			case errors.Is(err, services.ErrCategoryNotVisible):
				writeError(w, http.StatusBadRequest, "Category does not exist")
			case errors.Is(err, services.ErrExpenseNotFound):
				writeError(w, http.StatusNotFound, "Expense not found")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeJSON(w, http.StatusOK, expense)
	}
}
