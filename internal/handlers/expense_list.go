package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/noschwa/expense-tracker/internal/logger"
	"github.com/noschwa/expense-tracker/internal/models"
)

var (
	errInvalidCategoryID = errors.New("Invalid category ID")
	errInvalidDateRange  = errors.New("Invalid date, expected YYYY-MM-DD")
)

// ExpenseLister defines the interface that the service must implement.
type ExpenseLister interface {
	List(ctx context.Context, userID uuid.UUID, filter models.ExpenseFilter) (expenses []models.ExpenseDB, total int64, page, totalPages int, err error)
}

// ListExpensesResponse represents one page of expenses
// swagger:model ListExpensesResponse
type ListExpensesResponse struct {
	// Expenses on this page
	Expenses []models.ExpenseDB `json:"expenses"`

	// Total number of matching expenses across all pages
	// example: 42
	TotalExpenses int64 `json:"totalExpenses"`

	// Current page, 1-indexed
	// example: 1
	Page int `json:"page"`

	// Total number of pages
	// example: 5
	TotalPages int `json:"totalPages"`
}

// NewListExpensesHandler returns an HTTP handler for listing expenses.
// @Summary List expenses
// @Description Returns one page of the user's expenses, filtered and sorted. The date filter applies only when both bounds are given.
// @Tags expenses
// @Produce json
// @Param page query int false "Page number, 1-indexed" default(1)
// @Param limit query int false "Page size, capped at 100" default(10)
// @Param categoryId query string false "Filter by category"
// @Param startDate query string false "Start of date range, YYYY-MM-DD"
// @Param endDate query string false "End of date range, YYYY-MM-DD"
// @Param sortBy query string false "Sort column" Enums(expenseDate, amount, createdAt) default(expenseDate)
// @Param sortOrder query string false "Sort direction" Enums(asc, desc) default(desc)
// @Success 200 {object} handlers.ListExpensesResponse "Page of expenses"
// @Failure 400 {object} handlers.ErrorResponse "Invalid filter value"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /expenses [get]
// @Security BearerAuth
func NewListExpensesHandler(svc ExpenseLister, tokener Tokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := authenticate(w, r, tokener)
		if !ok {
			return
		}

		filter, err := parseExpenseFilter(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		expenses, total, page, totalPages, err := svc.List(r.Context(), userID, filter)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		if expenses == nil {
			expenses = []models.ExpenseDB{}
		}
		writeJSON(w, http.StatusOK, ListExpensesResponse{
			Expenses:      expenses,
			TotalExpenses: total,
			Page:          page,
			TotalPages:    totalPages,
		})
	}
}

// parseExpenseFilter reads the list query parameters. Absent or non-numeric
// page/limit values fall back to defaults; malformed uuids and dates fail.
func parseExpenseFilter(r *http.Request) (models.ExpenseFilter, error) {
	q := r.URL.Query()

	var filter models.ExpenseFilter
	if v := q.Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Page = n
		}
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}

	if v := q.Get("categoryId"); v != "" {
		categoryID, err := uuid.Parse(v)
		if err != nil {
			return filter, errInvalidCategoryID
		}
		filter.CategoryID = &categoryID
	}

	if v := q.Get("startDate"); v != "" {
		startDate, err := time.Parse(expenseDateLayout, v)
		if err != nil {
			return filter, errInvalidDateRange
		}
		filter.StartDate = &startDate
	}
	if v := q.Get("endDate"); v != "" {
		endDate, err := time.Parse(expenseDateLayout, v)
		if err != nil {
			return filter, errInvalidDateRange
		}
		filter.EndDate = &endDate
	}

	filter.SortBy = q.Get("sortBy")
	filter.SortOrder = q.Get("sortOrder")

	return filter, nil
}
