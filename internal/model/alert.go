package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Alert is a stock threshold watch on a single product. The alerts table
// holds one row per product at most; ProductName is joined in from the
// products table for display.
type Alert struct {
	ID          int             `db:"id" json:"id"`
	ProductID   int             `db:"product_id" json:"productId"`
	ProductName string          `db:"product_name" json:"productName"`
	Threshold   decimal.Decimal `db:"threshold" json:"threshold"`
	IsActive    bool            `db:"is_active" json:"isActive"`
	CreatedBy   uuid.UUID       `db:"created_by" json:"createdBy"`
}

type Product struct {
	ID   int    `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}
