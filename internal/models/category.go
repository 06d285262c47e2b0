package models

import (
	"errors"
	"strings"
	"time"
)

// Category is an admin-managed label shared by all users.
type Category struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Kind      TransactionKind `json:"kind"`
	CreatedAt time.Time       `json:"created_at"`
}

func (c *Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("category name required")
	}
	if c.Kind != KindExpense && c.Kind != KindIncome {
		return ErrInvalidKind
	}
	return nil
}
