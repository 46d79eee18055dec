package repository

import (
	"time"

	"github.com/jmcastro/stockpilot-api/internal/domain/entity"
)

// SalesOrderRepository persistencia de órdenes de venta y sus líneas.
type SalesOrderRepository interface {
	Create(o *entity.SalesOrder) error // incluye items
	GetByID(companyID, id string) (*entity.SalesOrder, error) // con items; nil si no existe
	List(companyID, status string, limit, offset int) ([]*entity.SalesOrder, error)
	UpdateStatus(companyID, id, status string, shippingDate, deliveryDate *time.Time) error
	Delete(companyID, id string) error
	Count(companyID string) (int, error) // consecutivo para SO-#####
}
