package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jmcastro/stockpilot-api/internal/domain/entity"
)

// ProductRepository acceso a productos. AdjustStock es la única vía de
// escritura sobre Product.Stock: un incremento atómico a nivel de store
// (stock = stock + delta) para evitar lost updates entre escritores
// concurrentes. Ningún otro método toca el agregado.
type ProductRepository interface {
	Create(p *entity.Product) error
	Update(p *entity.Product) error // no modifica Stock ni Cost
	GetByID(companyID, id string) (*entity.Product, error)
	GetBySKU(companyID, sku string) (*entity.Product, error)
	List(companyID, search string, limit, offset int) ([]*entity.Product, error)
	AdjustStock(companyID, productID string, delta decimal.Decimal) error
	UpdateCost(companyID, productID string, cost decimal.Decimal) error
}
