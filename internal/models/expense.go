package models

import (
	"time"

	"github.com/google/uuid"
)

// Sort columns accepted by the expense list endpoint.
const (
	SortByDate      = "expenseDate"
	SortByAmount    = "amount"
	SortByCreatedAt = "createdAt"

	SortAsc  = "asc"
	SortDesc = "desc"
)

// Pagination bounds for the expense list endpoint.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// ExpenseDB represents an expense row in the database.
type ExpenseDB struct {
	ExpenseID   uuid.UUID `json:"expenseId" db:"expense_id"` // Primary key
	UserID      uuid.UUID `json:"userId" db:"user_id"`       // Owning user
	CategoryID  uuid.UUID `json:"categoryId" db:"category_id"`
	Amount      float64   `json:"amount" db:"amount"`
	Description string    `json:"description" db:"description"`
	ExpenseDate time.Time `json:"expenseDate" db:"expense_date"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// ExpenseFilter describes the conjunctive filters and pagination for listing
// expenses. CategoryID and the date bounds are optional; the date filter is
// applied only when both bounds are present.
type ExpenseFilter struct {
	CategoryID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	Page       int
	Limit      int
	SortBy     string
	SortOrder  string
}

// Normalize clamps pagination to sane bounds and fills sort defaults.
func (f *ExpenseFilter) Normalize() {
	if f.Page < 1 {
		f.Page = DefaultPage
	}
	if f.Limit < 1 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	if f.SortBy == "" {
		f.SortBy = SortByDate
	}
	if f.SortOrder == "" {
		f.SortOrder = SortDesc
	}
}
