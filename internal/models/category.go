package models

import (
	"time"

	"github.com/google/uuid"
)

// CategoryDB represents a category row in the database.
// Default categories have a NULL owner and are visible to every user.
type CategoryDB struct {
	CategoryID uuid.UUID  `json:"categoryId" db:"category_id"` // Primary key
	UserID     *uuid.UUID `json:"userId,omitempty" db:"user_id"`
	Name       string     `json:"name" db:"name"`
	IsDefault  bool       `json:"isDefault" db:"is_default"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time  `json:"updatedAt" db:"updated_at"`
}
