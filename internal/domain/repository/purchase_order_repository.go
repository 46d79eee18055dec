package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jmcastro/stockpilot-api/internal/domain/entity"
)

// PurchaseOrderRepository persistencia de órdenes de compra y sus líneas.
type PurchaseOrderRepository interface {
	Create(o *entity.PurchaseOrder) error // incluye items
	GetByID(companyID, id string) (*entity.PurchaseOrder, error) // con items; nil si no existe
	List(companyID, status string, limit, offset int) ([]*entity.PurchaseOrder, error)
	UpdateStatus(companyID, id, status string, approvedBy string, receivedDate *time.Time) error
	UpdateItemReceived(itemID string, receivedQty decimal.Decimal) error
	Delete(companyID, id string) error
	Count(companyID string) (int, error) // consecutivo para PO-#####
}
