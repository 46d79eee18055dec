package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un conteo cíclico.
const (
	CycleCountStatusPlanned    = "planned"
	CycleCountStatusInProgress = "in_progress"
	CycleCountStatusCompleted  = "completed"
)

// CycleCount conteo físico de una ubicación. Al crearse se toma un snapshot
// (no bloqueante) de LocationInventory como SystemQty por producto; al
// completarse, cada varianza no nula genera un ajuste por el camino del ledger
// y corrige la fila de inventario de la ubicación. Es el único mecanismo de
// conciliación entre stock registrado y stock físico.
type CycleCount struct {
	ID          string
	CompanyID   string
	CountNumber string // CC-00001
	LocationID  string
	Status      string
	Notes       string
	CreatedBy   string
	CompletedAt *time.Time
	Items       []CycleCountItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CycleCountItem línea de conteo por producto. CountedQty es nil hasta que se
// registre un conteo; Variance = CountedQty - SystemQty.
type CycleCountItem struct {
	ID         string
	CountID    string
	ProductID  string
	SystemQty  decimal.Decimal
	CountedQty *decimal.Decimal
	Variance   *decimal.Decimal
	CountedAt  *time.Time
}
