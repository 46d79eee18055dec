package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de venta.
const (
	SOStatusDraft      = "draft"
	SOStatusConfirmed  = "confirmed"
	SOStatusProcessing = "processing"
	SOStatusShipped    = "shipped"
	SOStatusDelivered  = "delivered"
	SOStatusCancelled  = "cancelled"
)

// SalesOrder orden de venta a un cliente. El fulfillment es todo-o-nada:
// el stock se descuenta completo al pasar por primera vez a "processing".
type SalesOrder struct {
	ID              string
	CompanyID       string
	OrderNumber     string // SO-00001
	CustomerID      string
	Status          string
	Subtotal        decimal.Decimal
	Tax             decimal.Decimal
	Total           decimal.Decimal
	Notes           string
	ShippingAddress string
	ShippingDate    *time.Time
	DeliveryDate    *time.Time
	CreatedBy       string
	Items           []SalesOrderItem
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SalesOrderItem línea de una orden de venta.
type SalesOrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Discount  decimal.Decimal
	Total     decimal.Decimal
}
