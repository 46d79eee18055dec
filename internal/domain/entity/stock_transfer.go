package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un traslado de stock.
const (
	TransferStatusPending   = "pending"
	TransferStatusCompleted = "completed"
)

// StockTransfer traslado de un producto entre dos ubicaciones. Al completarse
// mueve LocationInventory (origen -qty, destino +qty) y registra exactamente
// un movimiento "transfer"; no altera Product.Stock (solo reubica).
type StockTransfer struct {
	ID             string
	CompanyID      string
	TransferNumber string // TRF-00001
	ProductID      string
	FromLocationID string
	ToLocationID   string
	Quantity       decimal.Decimal
	Status         string
	Notes          string
	RequestedBy    string
	CompletedAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
