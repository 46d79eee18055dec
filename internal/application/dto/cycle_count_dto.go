package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCycleCountRequest body para POST /api/cycle-counts.
// El snapshot de cantidades de sistema se toma al crear.
type CreateCycleCountRequest struct {
	LocationID string `json:"location_id"`
	Notes      string `json:"notes,omitempty"`
}

// CountItemRequest cantidad contada de una línea.
type CountItemRequest struct {
	ItemID     string          `json:"item_id"`
	CountedQty decimal.Decimal `json:"counted_qty"`
}

// SubmitCountItemsRequest body para PATCH /api/cycle-counts/:id/items.
type SubmitCountItemsRequest struct {
	Items []CountItemRequest `json:"items"`
}

// CycleCountItemResponse línea de conteo con su varianza.
type CycleCountItemResponse struct {
	ID         string           `json:"id"`
	ProductID  string           `json:"product_id"`
	SystemQty  decimal.Decimal  `json:"system_qty"`
	CountedQty *decimal.Decimal `json:"counted_qty,omitempty"`
	Variance   *decimal.Decimal `json:"variance,omitempty"`
	CountedAt  *time.Time       `json:"counted_at,omitempty"`
}

// CycleCountResponse conteo cíclico completo.
type CycleCountResponse struct {
	ID          string                   `json:"id"`
	CountNumber string                   `json:"count_number"`
	LocationID  string                   `json:"location_id"`
	Status      string                   `json:"status"`
	Notes       string                   `json:"notes,omitempty"`
	CompletedAt *time.Time               `json:"completed_at,omitempty"`
	Items       []CycleCountItemResponse `json:"items"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}
