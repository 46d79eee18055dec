package repository

import (
	"time"

	"github.com/jmcastro/stockpilot-api/internal/domain/entity"
)

// MovementFilter filtros para el historial de movimientos.
type MovementFilter struct {
	ProductID string
	Type      string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// StockMovementRepository persistencia del ledger de movimientos.
// Solo Create y lecturas: las filas son write-once, nunca se actualizan ni borran.
type StockMovementRepository interface {
	Create(m *entity.StockMovement) error
	List(companyID string, f MovementFilter) ([]*entity.StockMovement, error)
}
