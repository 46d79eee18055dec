package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMovementRequest body para POST /api/stock-movements (solo in/out).
type CreateMovementRequest struct {
	ProductID string          `json:"product_id"`
	Type      string          `json:"type"` // in | out
	Quantity  decimal.Decimal `json:"quantity"`
	Reference string          `json:"reference,omitempty"`
	Notes     string          `json:"notes,omitempty"`
}

// MovementResponse entrada del ledger.
type MovementResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Type      string          `json:"type"`
	Quantity  decimal.Decimal `json:"quantity"`
	Reference string          `json:"reference,omitempty"`
	Notes     string          `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	CreatedBy string          `json:"created_by,omitempty"`
}

// CreateAdjustmentRequest body para POST /api/stock-adjustments.
// Quantity es un delta con signo.
type CreateAdjustmentRequest struct {
	ProductID      string          `json:"product_id"`
	AdjustmentType string          `json:"adjustment_type"`
	Quantity       decimal.Decimal `json:"quantity"`
	Reason         string          `json:"reason,omitempty"`
	Reference      string          `json:"reference,omitempty"`
}

// AdjustmentResponse ajuste aplicado.
type AdjustmentResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	AdjustmentType string          `json:"adjustment_type"`
	Quantity       decimal.Decimal `json:"quantity"`
	Reason         string          `json:"reason,omitempty"`
	Reference      string          `json:"reference"`
	CreatedAt      time.Time       `json:"created_at"`
}

// CreateTransferRequest body para POST /api/stock-transfers.
type CreateTransferRequest struct {
	ProductID      string          `json:"product_id"`
	FromLocationID string          `json:"from_location_id"`
	ToLocationID   string          `json:"to_location_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	Notes          string          `json:"notes,omitempty"`
}

// TransferResponse traslado.
type TransferResponse struct {
	ID             string          `json:"id"`
	TransferNumber string          `json:"transfer_number"`
	ProductID      string          `json:"product_id"`
	FromLocationID string          `json:"from_location_id"`
	ToLocationID   string          `json:"to_location_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	Status         string          `json:"status"`
	Notes          string          `json:"notes,omitempty"`
	CompletedAt    *time.Time      `json:"completed_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// UpsertInventoryRequest body para PUT /api/inventory (asignación inicial).
type UpsertInventoryRequest struct {
	ProductID  string          `json:"product_id"`
	LocationID string          `json:"location_id"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// InventoryRowResponse fila de la proyección por ubicación. ProductTotal es
// la suma del producto en todas las ubicaciones: comparada contra el stock
// agregado deja visible cualquier deriva entre las dos fuentes.
type InventoryRowResponse struct {
	ProductID    string          `json:"product_id"`
	LocationID   string          `json:"location_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	ProductTotal decimal.Decimal `json:"product_total"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
