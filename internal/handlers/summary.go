package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/noschwa/expense-tracker/internal/logger"
	"github.com/noschwa/expense-tracker/internal/models"
	"github.com/noschwa/expense-tracker/internal/services"
)

// SummaryGetter defines the interface that the service must implement.
type SummaryGetter interface {
	GetMonthly(ctx context.Context, userID uuid.UUID, month, year int) (*models.MonthlySummary, error)
}

// NewSummaryHandler returns an HTTP handler for the monthly summary.
// @Summary Monthly spending summary
// @Description Returns per-category totals for one calendar month. Omitted month/year default to the current month.
// @Tags expenses
// @Produce json
// @Param month query int false "Month 1-12, defaults to current"
// @Param year query int false "Year, defaults to current"
// @Success 200 {object} models.MonthlySummary "Per-category totals"
// @Failure 400 {object} handlers.ErrorResponse "Invalid month or year"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /expenses/summary [get]
// @Security BearerAuth
func NewSummaryHandler(svc SummaryGetter, tokener Tokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := authenticate(w, r, tokener)
		if !ok {
			return
		}

		q := r.URL.Query()
		var month, year int
		if v := q.Get("month"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				writeError(w, http.StatusBadRequest, "Invalid month")
				return
			}
			month = n
		}
		if v := q.Get("year"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				writeError(w, http.StatusBadRequest, "Invalid year")
				return
			}
			year = n
		}

		summary, err := svc.GetMonthly(r.Context(), userID, month, year)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidPeriod):
				writeError(w, http.StatusBadRequest, "Invalid month or year")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeJSON(w, http.StatusOK, summary)
	}
}
