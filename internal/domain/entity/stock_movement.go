package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeIn         = "in"         // entrada
	MovementTypeOut        = "out"        // salida
	MovementTypeAdjustment = "adjustment" // ajuste (delta con signo a nivel de caller)
	MovementTypeTransfer   = "transfer"   // traslado entre ubicaciones
)

// ValidMovementType indica si el tipo de movimiento es conocido.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeIn, MovementTypeOut, MovementTypeAdjustment, MovementTypeTransfer:
		return true
	}
	return false
}

// StockMovement es una entrada del ledger de auditoría: append-only, inmutable
// una vez creada. Quantity es la magnitud (no negativa); el efecto con signo
// sobre Product.Stock lo determina Type. Las correcciones son movimientos
// nuevos, nunca ediciones.
type StockMovement struct {
	ID        string
	CompanyID string
	ProductID string
	Type      string          // in, out, adjustment, transfer
	Quantity  decimal.Decimal // magnitud, siempre >= 0 en storage
	Reference string          // número de documento origen (PO-00001, SO-00001, ...)
	Notes     string
	CreatedAt time.Time
	CreatedBy string // UserID del actor
}
