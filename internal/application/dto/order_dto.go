package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderItemRequest línea de una orden de compra o de venta.
type CreateOrderItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreatePurchaseOrderRequest body para POST /api/purchase-orders.
type CreatePurchaseOrderRequest struct {
	SupplierID   string                   `json:"supplier_id"`
	ExpectedDate *time.Time               `json:"expected_date,omitempty"`
	Notes        string                   `json:"notes,omitempty"`
	Items        []CreateOrderItemRequest `json:"items"`
}

// CreateSalesOrderRequest body para POST /api/sales-orders.
type CreateSalesOrderRequest struct {
	CustomerID string                   `json:"customer_id"`
	Notes      string                   `json:"notes,omitempty"`
	Items      []CreateOrderItemRequest `json:"items"`
}

// UpdateStatusRequest transición de estado de un documento.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ReceiveItemRequest cantidad recibida de una línea de compra en esta
// llamada (delta, no acumulado).
type ReceiveItemRequest struct {
	ItemID      string          `json:"item_id"`
	ReceivedQty decimal.Decimal `json:"received_qty"`
}

// ReceiveOrderRequest body para POST /api/purchase-orders/:id/receive.
type ReceiveOrderRequest struct {
	Items []ReceiveItemRequest `json:"items"`
}

// PurchaseOrderItemResponse línea de compra con su avance de recepción.
type PurchaseOrderItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	ReceivedQty decimal.Decimal `json:"received_qty"`
}

// PurchaseOrderResponse orden de compra completa.
type PurchaseOrderResponse struct {
	ID           string                      `json:"id"`
	OrderNumber  string                      `json:"order_number"`
	SupplierID   string                      `json:"supplier_id"`
	Status       string                      `json:"status"`
	Subtotal     decimal.Decimal             `json:"subtotal"`
	Tax          decimal.Decimal             `json:"tax"`
	Total        decimal.Decimal             `json:"total"`
	ExpectedDate *time.Time                  `json:"expected_date,omitempty"`
	ReceivedDate *time.Time                  `json:"received_date,omitempty"`
	ApprovedBy   string                      `json:"approved_by,omitempty"`
	Notes        string                      `json:"notes,omitempty"`
	Items        []PurchaseOrderItemResponse `json:"items"`
	CreatedAt    time.Time                   `json:"created_at"`
	UpdatedAt    time.Time                   `json:"updated_at"`
}

// SalesOrderItemResponse línea de venta.
type SalesOrderItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// SalesOrderResponse orden de venta completa.
type SalesOrderResponse struct {
	ID           string                   `json:"id"`
	OrderNumber  string                   `json:"order_number"`
	CustomerID   string                   `json:"customer_id"`
	Status       string                   `json:"status"`
	Subtotal     decimal.Decimal          `json:"subtotal"`
	Tax          decimal.Decimal          `json:"tax"`
	Total        decimal.Decimal          `json:"total"`
	ShippingDate *time.Time               `json:"shipping_date,omitempty"`
	DeliveryDate *time.Time               `json:"delivery_date,omitempty"`
	Notes        string                   `json:"notes,omitempty"`
	Items        []SalesOrderItemResponse `json:"items"`
	CreatedAt    time.Time                `json:"created_at"`
	UpdatedAt    time.Time                `json:"updated_at"`
}
