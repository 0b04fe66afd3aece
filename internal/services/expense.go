package services

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/noschwa/expense-tracker/internal/logger"
	"github.com/noschwa/expense-tracker/internal/models"
)

// Error variables
var (
	ErrInvalidAmount      = errors.New("amount must be greater than zero")
	ErrInvalidExpenseDate = errors.New("expense date is required")
	ErrCategoryNotVisible = errors.New("category does not exist")
	ErrExpenseNotFound    = errors.New("expense not found")
)

// ExpenseReader defines read-only operations for expenses.
type ExpenseReader interface {
	List(ctx context.Context, userID uuid.UUID, filter models.ExpenseFilter) ([]models.ExpenseDB, int64, error)
}

// ExpenseWriter defines write operations for expenses. Update also reports
// the pre-update expense date.
type ExpenseWriter interface {
	Save(ctx context.Context, userID, categoryID uuid.UUID, amount float64, description string, expenseDate time.Time) (*models.ExpenseDB, error)
	Update(ctx context.Context, userID, expenseID, categoryID uuid.UUID, amount float64, description string, expenseDate time.Time) (*models.ExpenseDB, time.Time, error)
	Delete(ctx context.Context, userID, expenseID uuid.UUID) (*models.ExpenseDB, error)
}

// CategoryVisibilityReader checks that a category is visible to a user.
type CategoryVisibilityReader interface {
	GetVisibleByID(ctx context.Context, userID, categoryID uuid.UUID) (*models.CategoryDB, error)
}

// SummaryInvalidator drops cached summaries after expense mutations.
type SummaryInvalidator interface {
	InvalidateMonthly(ctx context.Context, userID uuid.UUID, month, year int) error
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// ExpenseService handles expense CRUD and event publishing.
type ExpenseService struct {
	reader      ExpenseReader
	writer      ExpenseWriter
	categories  CategoryVisibilityReader
	cache       SummaryInvalidator
	kafkaWriter KafkaWriter
}

// NewExpenseService creates a new ExpenseService.
func NewExpenseService(
	reader ExpenseReader,
	writer ExpenseWriter,
	categories CategoryVisibilityReader,
	cache SummaryInvalidator,
	kafkaWriter KafkaWriter,
) *ExpenseService {
	return &ExpenseService{
		reader:      reader,
		writer:      writer,
		categories:  categories,
		cache:       cache,
		kafkaWriter: kafkaWriter,
	}
}

// publishEvent publishes an expense mutation to Kafka. Best effort: a
// missing writer or a broker failure never fails the request.
func (s *ExpenseService) publishEvent(ctx context.Context, expense models.ExpenseDB, operation string) {
	if s.kafkaWriter == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "expense_id", expense.ExpenseID)
		return
	}

	event := models.ExpenseEvent{
		EventID:   uuid.NewString(),
		Timestamp: time.Now().Unix(),
		UserID:    expense.UserID.String(),
		ExpenseID: expense.ExpenseID.String(),
		Operation: operation,
		Amount:    expense.Amount,
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal expense event", "event_id", event.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.EventID),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish expense event", "event_id", event.EventID, "error", err)
	} else {
		logger.Log.Infow("Expense event published", "event_id", event.EventID, "operation", operation)
	}
}

// invalidateSummary drops the cached summary for the expense's month.
func (s *ExpenseService) invalidateSummary(ctx context.Context, userID uuid.UUID, expenseDate time.Time) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateMonthly(ctx, userID, int(expenseDate.Month()), expenseDate.Year()); err != nil {
		logger.Log.Errorw("failed to invalidate summary cache", "userID", userID, "error", err)
	}
}

// validate checks the fields shared by Create and Update.
func (s *ExpenseService) validate(ctx context.Context, userID, categoryID uuid.UUID, amount float64, expenseDate time.Time) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if expenseDate.IsZero() {
		return ErrInvalidExpenseDate
	}

	category, err := s.categories.GetVisibleByID(ctx, userID, categoryID)
	if err != nil {
		logger.Log.Errorw("failed to check category visibility", "userID", userID, "categoryID", categoryID, "error", err)
		return err
	}
	if category == nil {
		return ErrCategoryNotVisible
	}
	return nil
}

// roundCents truncates sub-cent precision before persisting.
func roundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// Create records a new expense for the user and publishes the event.
func (s *ExpenseService) Create(ctx context.Context, userID, categoryID uuid.UUID, amount float64, description string, expenseDate time.Time) (*models.ExpenseDB, error) {
	if err := s.validate(ctx, userID, categoryID, amount, expenseDate); err != nil {
		return nil, err
	}

	expense, err := s.writer.Save(ctx, userID, categoryID, roundCents(amount), description, expenseDate)
	if err != nil {
		logger.Log.Errorw("failed to save expense", "userID", userID, "error", err)
		return nil, err
	}

	s.publishEvent(ctx, *expense, models.ExpenseCreated)
	s.invalidateSummary(ctx, userID, expense.ExpenseDate)

	return expense, nil
}

// List returns one page of the user's expenses plus pagination metadata:
// total matching rows, the (normalized) 1-indexed page, and the page count.
func (s *ExpenseService) List(ctx context.Context, userID uuid.UUID, filter models.ExpenseFilter) (expenses []models.ExpenseDB, total int64, page, totalPages int, err error) {
	filter.Normalize()

	expenses, total, err = s.reader.List(ctx, userID, filter)
	if err != nil {
		logger.Log.Errorw("failed to list expenses", "userID", userID, "error", err)
		return nil, 0, 0, 0, err
	}

	totalPages = int(math.Ceil(float64(total) / float64(filter.Limit)))
	return expenses, total, filter.Page, totalPages, nil
}

// Update replaces an expense's fields. Ownership is checked atomically with
// the write; a non-owner sees ErrExpenseNotFound.
func (s *ExpenseService) Update(ctx context.Context, userID, expenseID, categoryID uuid.UUID, amount float64, description string, expenseDate time.Time) (*models.ExpenseDB, error) {
	if err := s.validate(ctx, userID, categoryID, amount, expenseDate); err != nil {
		return nil, err
	}

	expense, prevDate, err := s.writer.Update(ctx, userID, expenseID, categoryID, roundCents(amount), description, expenseDate)
	if err != nil {
		logger.Log.Errorw("failed to update expense", "userID", userID, "expenseID", expenseID, "error", err)
		return nil, err
	}
	if expense == nil {
		return nil, ErrExpenseNotFound
	}

	s.publishEvent(ctx, *expense, models.ExpenseUpdated)
	s.invalidateSummary(ctx, userID, expense.ExpenseDate)
	// A date move changes two monthly totals.
	if prevDate.Year() != expense.ExpenseDate.Year() || prevDate.Month() != expense.ExpenseDate.Month() {
		s.invalidateSummary(ctx, userID, prevDate)
	}

	return expense, nil
}

// Delete removes an expense. Same atomic ownership guarantee as Update.
func (s *ExpenseService) Delete(ctx context.Context, userID, expenseID uuid.UUID) error {
	expense, err := s.writer.Delete(ctx, userID, expenseID)
	if err != nil {
		logger.Log.Errorw("failed to delete expense", "userID", userID, "expenseID", expenseID, "error", err)
		return err
	}
	if expense == nil {
		return ErrExpenseNotFound
	}

	s.publishEvent(ctx, *expense, models.ExpenseDeleted)
	s.invalidateSummary(ctx, userID, expense.ExpenseDate)

	return nil
}
