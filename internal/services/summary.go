package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/noschwa/expense-tracker/internal/logger"
	"github.com/noschwa/expense-tracker/internal/models"
)

// ErrInvalidPeriod is returned for an out-of-range month or year.
var ErrInvalidPeriod = errors.New("invalid month or year")

// SummaryReader computes monthly aggregates from storage.
type SummaryReader interface {
	GetMonthly(ctx context.Context, userID uuid.UUID, month, year int) ([]models.CategorySummary, error)
}

// SummaryCache caches computed summaries.
type SummaryCache interface {
	GetMonthly(ctx context.Context, userID uuid.UUID, month, year int) (*models.MonthlySummary, error)
	SetMonthly(ctx context.Context, userID uuid.UUID, summary models.MonthlySummary) error
}

// SummaryService aggregates monthly spending per category.
type SummaryService struct {
	reader SummaryReader
	cache  SummaryCache
}

// NewSummaryService creates a new SummaryService. The cache may be nil.
func NewSummaryService(reader SummaryReader, cache SummaryCache) *SummaryService {
	return &SummaryService{
		reader: reader,
		cache:  cache,
	}
}

// GetMonthly returns totals per visible category for the given month.
// A zero month or year defaults to the current calendar month/year.
func (svc *SummaryService) GetMonthly(ctx context.Context, userID uuid.UUID, month, year int) (*models.MonthlySummary, error) {
	now := time.Now()
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}
	if month < 1 || month > 12 || year < 1 {
		return nil, ErrInvalidPeriod
	}

	if svc.cache != nil {
		if cached, err := svc.cache.GetMonthly(ctx, userID, month, year); err == nil {
			return cached, nil
		}
	}

	categories, err := svc.reader.GetMonthly(ctx, userID, month, year)
	if err != nil {
		logger.Log.Errorw("failed to compute monthly summary", "userID", userID, "month", month, "year", year, "error", err)
		return nil, err
	}

	summary := models.MonthlySummary{
		Month:      month,
		Year:       year,
		Categories: categories,
	}
	for _, c := range categories {
		summary.TotalExpenses += c.TotalAmount
	}

	if svc.cache != nil {
		if err := svc.cache.SetMonthly(ctx, userID, summary); err != nil {
			logger.Log.Errorw("failed to cache monthly summary", "userID", userID, "error", err)
		}
	}

	return &summary, nil
}
