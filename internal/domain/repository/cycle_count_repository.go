package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jmcastro/stockpilot-api/internal/domain/entity"
)

// CycleCountRepository persistencia de conteos cíclicos y sus líneas.
type CycleCountRepository interface {
	Create(c *entity.CycleCount) error // incluye items (snapshot de systemQty)
	GetByID(companyID, id string) (*entity.CycleCount, error) // con items; nil si no existe
	List(companyID, status string, limit, offset int) ([]*entity.CycleCount, error)
	UpdateItemCount(itemID string, countedQty, variance decimal.Decimal, countedAt time.Time) error
	UpdateStatus(companyID, id, status string, completedAt *time.Time) error
	Delete(companyID, id string) error
	Count(companyID string) (int, error) // consecutivo para CC-#####
}

// StockAdjustmentRepository persistencia de ajustes puntuales. Solo Create y
// lectura: un ajuste aplicado no se edita ni se elimina.
type StockAdjustmentRepository interface {
	Create(a *entity.StockAdjustment) error
	List(companyID string, limit, offset int) ([]*entity.StockAdjustment, error)
}
