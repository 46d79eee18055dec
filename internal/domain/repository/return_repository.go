package repository

import (
	"time"

	"github.com/jmcastro/stockpilot-api/internal/domain/entity"
)

// ReturnRepository persistencia de devoluciones y sus líneas.
type ReturnRepository interface {
	Create(r *entity.Return) error // incluye items
	GetByID(companyID, id string) (*entity.Return, error) // con items; nil si no existe
	List(companyID, status string, limit, offset int) ([]*entity.Return, error)
	UpdateStatus(companyID, id, status string, processedAt *time.Time) error
	Delete(companyID, id string) error
	Count(companyID string) (int, error) // consecutivo para RET-#####
}
