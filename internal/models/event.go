package models

// Expense event operations.
const (
	ExpenseCreated = "created"
	ExpenseUpdated = "updated"
	ExpenseDeleted = "deleted"
)

// ExpenseEvent represents an expense mutation published to the event stream.
type ExpenseEvent struct {
	EventID   string  `json:"event_id"`  // EventID is a unique identifier for the event.
	Timestamp int64   `json:"timestamp"` // Timestamp is the Unix timestamp (in seconds) when the mutation occurred.
	UserID    string  `json:"user_id"`   // UserID is the identifier of the expense owner.
	ExpenseID string  `json:"expense_id"`
	Operation string  `json:"operation"` // Operation is one of "created", "updated", "deleted".
	Amount    float64 `json:"amount"`
}
