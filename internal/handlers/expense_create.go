package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/noschwa/expense-tracker/internal/logger"
	"github.com/noschwa/expense-tracker/internal/models"
	"github.com/noschwa/expense-tracker/internal/services"
)

const expenseDateLayout = "2006-01-02"

// ExpenseCreator defines the interface that the service must implement.
type ExpenseCreator interface {
	Create(ctx context.Context, userID, categoryID uuid.UUID, amount float64, description string, expenseDate time.Time) (*models.ExpenseDB, error)
}

// CreateExpenseRequest represents the JSON body for recording an expense
// swagger:model CreateExpenseRequest
type CreateExpenseRequest struct {
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

// NewCreateExpenseHandler returns an HTTP handler for recording an expense.
// @Summary Record an expense
// @Description Records an expense against a category visible to the user.
// @Tags expenses
// @Accept json
// @Produce json
// @Param createExpenseRequest body handlers.CreateExpenseRequest true "Expense to record"
// @Success 201 {object} models.ExpenseDB "Recorded expense"
// @Failure 400 {object} handlers.ErrorResponse "Invalid amount, date or category"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /expenses [post]
// @Security BearerAuth
func NewCreateExpenseHandler(svc ExpenseCreator, tokener Tokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := authenticate(w, r, tokener)
		if !ok {
			return
		}

		var req CreateExpenseRequest
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

		expense, err := svc.Create(r.Context(), userID, categoryID, req.Amount, req.Description, expenseDate)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidAmount):
				writeError(w, http.StatusBadRequest, "Amount must be greater than zero")
			case errors.Is(err, services.ErrInvalidExpenseDate):
				writeError(w, http.StatusBadRequest, "Expense date is required")
			case errors.Is(err, services.ErrCategoryNotVisible):
				writeError(w, http.StatusBadRequest, "Category does not exist")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeJSON(w, http.StatusCreated, expense)
	}
}
