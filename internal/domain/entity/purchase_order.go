package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra.
const (
	POStatusDraft     = "draft"
	POStatusPending   = "pending"
	POStatusApproved  = "approved"
	POStatusOrdered   = "ordered"
	POStatusPartial   = "partial"
	POStatusReceived  = "received"
	POStatusCancelled = "cancelled"
)

// PurchaseOrder orden de compra a un proveedor.
type PurchaseOrder struct {
	ID           string
	CompanyID    string
	OrderNumber  string // PO-00001
	SupplierID   string
	Status       string
	Subtotal     decimal.Decimal
	Tax          decimal.Decimal
	Total        decimal.Decimal
	Notes        string
	ExpectedDate *time.Time
	ReceivedDate *time.Time
	CreatedBy    string
	ApprovedBy   string
	Items        []PurchaseOrderItem
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PurchaseOrderItem línea de una orden de compra. ReceivedQty es acumulativo,
// monotónicamente no decreciente y acotado por Quantity.
type PurchaseOrderItem struct {
	ID          string
	OrderID     string
	ProductID   string
	Quantity    decimal.Decimal
	ReceivedQty decimal.Decimal
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal
}
