package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jmcastro/stockpilot-api/internal/domain/entity"
)

// InventoryRepository proyección de stock por ubicación (clave producto+ubicación).
// AddQuantity aplica un delta con upsert: si la fila no existe se crea con el
// delta como cantidad, lo que puede dejar saldos negativos en el origen de un
// traslado sobre inventario no poblado (riesgo documentado, no se autocorrige).
type InventoryRepository interface {
	Get(companyID, productID, locationID string) (*entity.LocationInventory, error)
	Set(inv *entity.LocationInventory) error // asignación inicial: upsert con cantidad absoluta
	AddQuantity(companyID, productID, locationID string, delta decimal.Decimal) error
	ListByLocation(companyID, locationID string) ([]*entity.LocationInventory, error)
	List(companyID string, limit, offset int) ([]*entity.LocationInventory, error)
	SumByProduct(companyID, productID string) (decimal.Decimal, error)
}
