package models

// CategorySummary aggregates one category's spending for a month.
type CategorySummary struct {
	Category         string  `json:"category" db:"category"`
	TotalAmount      float64 `json:"totalAmount" db:"total_amount"`
	TransactionCount int64   `json:"transactionCount" db:"transaction_count"`
}

// MonthlySummary is the full aggregation for a (month, year): every category
// visible to the user, ordered by total descending, plus the overall total.
type MonthlySummary struct {
	Month         int               `json:"month"`
	Year          int               `json:"year"`
	Categories    []CategorySummary `json:"categories"`
	TotalExpenses float64           `json:"totalExpenses"`
}
