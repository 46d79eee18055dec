package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de ajuste. Son etiquetas de clasificación: el efecto sobre el ledger
// es idéntico para todos (delta con signo).
const (
	AdjustmentTypeCorrection = "correction"
	AdjustmentTypeDamage     = "damage"
	AdjustmentTypeWriteOff   = "write_off"
	AdjustmentTypeFound      = "found"
	AdjustmentTypeReturn     = "return"
	AdjustmentTypeExpiry     = "expiry"
)

// ValidAdjustmentType indica si el tipo de ajuste es conocido.
func ValidAdjustmentType(t string) bool {
	switch t {
	case AdjustmentTypeCorrection, AdjustmentTypeDamage, AdjustmentTypeWriteOff,
		AdjustmentTypeFound, AdjustmentTypeReturn, AdjustmentTypeExpiry:
		return true
	}
	return false
}

// StockAdjustment ajuste puntual de stock, sin máquina de estados: el delta
// con signo se aplica de inmediato a través del ledger.
type StockAdjustment struct {
	ID             string
	CompanyID      string
	ProductID      string
	AdjustmentType string
	Quantity       decimal.Decimal // delta con signo
	Reason         string
	Reference      string // auto-generado (ADJ-<id>) si no viene
	CreatedBy      string
	CreatedAt      time.Time
}
