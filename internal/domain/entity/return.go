package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una devolución.
const (
	ReturnStatusPending  = "pending"
	ReturnStatusApproved = "approved"
	ReturnStatusReceived = "received"
	ReturnStatusRefunded = "refunded"
	ReturnStatusRejected = "rejected"
)

// Return devolución de un cliente, opcionalmente ligada a una orden de venta.
// Al pasar a "received" se reingresa el stock vía ledger (una sola vez).
type Return struct {
	ID           string
	CompanyID    string
	ReturnNumber string // RET-00001
	CustomerID   string
	SalesOrderID string // opcional
	Status       string
	Reason       string
	Notes        string
	Subtotal     decimal.Decimal
	RefundAmount decimal.Decimal
	ProcessedAt  *time.Time
	CreatedBy    string
	Items        []ReturnItem
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ReturnItem línea de una devolución.
type ReturnItem struct {
	ID        string
	ReturnID  string
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Condition string // new, opened, damaged
	Reason    string
}
