package models

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// TimestampLayout is the wire format of created_at and updated_at.
const TimestampLayout = "2006-01-02 15:04:05"

// Product represents a row of the products table.
type Product struct {
	ID          uint            `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string          `json:"name" gorm:"type:varchar(255);not null"`
	Description string          `json:"description" gorm:"type:text;not null"`
	Category    string          `json:"category" gorm:"type:varchar(100);not null"`
	Quantity    int             `json:"quantity" gorm:"not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductView is the JSON shape of a product in response envelopes.
// Numeric columns are rendered as text, the way they were submitted.
type ProductView struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Quantity    string `json:"quantity"`
	Price       string `json:"price"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// View converts the product into its wire representation.
func (p Product) View() ProductView {
	return ProductView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Quantity:    strconv.Itoa(p.Quantity),
		Price:       p.Price.StringFixed(2),
		CreatedAt:   p.CreatedAt.Format(TimestampLayout),
		UpdatedAt:   p.UpdatedAt.Format(TimestampLayout),
	}
}

// Views converts a slice of products, never returning nil.
func Views(products []Product) []ProductView {
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, p.View())
	}
	return views
}
