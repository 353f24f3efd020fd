package models

import "time"

// Product event types published after successful mutations.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

// ProductEvent describes a change to the products table.
type ProductEvent struct {
	Type       string    `json:"type"`
	ProductID  uint      `json:"product_id"`
	Columns    []string  `json:"columns,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
