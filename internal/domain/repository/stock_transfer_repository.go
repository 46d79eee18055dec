package repository

import (
	"time"

	"github.com/jmcastro/stockpilot-api/internal/domain/entity"
)

// StockTransferRepository persistencia de traslados entre ubicaciones.
type StockTransferRepository interface {
	Create(t *entity.StockTransfer) error
	GetByID(companyID, id string) (*entity.StockTransfer, error)
	List(companyID, status string, limit, offset int) ([]*entity.StockTransfer, error)
	UpdateStatus(companyID, id, status string, completedAt *time.Time) error
	Count(companyID string) (int, error) // consecutivo para TRF-#####
}
