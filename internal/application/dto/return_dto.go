package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateReturnItemRequest línea de una devolución.
type CreateReturnItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Condition string          `json:"condition,omitempty"` // new, opened, damaged
	Reason    string          `json:"reason,omitempty"`
}

// CreateReturnRequest body para POST /api/returns.
type CreateReturnRequest struct {
	SalesOrderID string                    `json:"sales_order_id,omitempty"`
	CustomerID   string                    `json:"customer_id,omitempty"`
	Reason       string                    `json:"reason,omitempty"`
	Notes        string                    `json:"notes,omitempty"`
	Items        []CreateReturnItemRequest `json:"items"`
}

// ReturnItemResponse línea de devolución.
type ReturnItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Condition string          `json:"condition,omitempty"`
	Reason    string          `json:"reason,omitempty"`
}

// ReturnResponse devolución completa.
type ReturnResponse struct {
	ID           string               `json:"id"`
	ReturnNumber string               `json:"return_number"`
	SalesOrderID string               `json:"sales_order_id,omitempty"`
	CustomerID   string               `json:"customer_id,omitempty"`
	Status       string               `json:"status"`
	Reason       string               `json:"reason,omitempty"`
	Notes        string               `json:"notes,omitempty"`
	RefundAmount decimal.Decimal      `json:"refund_amount"`
	ProcessedAt  *time.Time           `json:"processed_at,omitempty"`
	Items        []ReturnItemResponse `json:"items"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}
