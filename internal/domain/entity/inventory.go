package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LocationInventory representa el stock de un producto en una ubicación
// (clave compuesta producto+ubicación). Se muta solo por traslados, por el
// cierre de conteos cíclicos y por la asignación inicial. La suma por producto
// debería igualar Product.Stock; la conciliación es vía conteo cíclico, no se
// fuerza en escritura.
type LocationInventory struct {
	CompanyID  string
	ProductID  string
	LocationID string
	Quantity   decimal.Decimal
	UpdatedAt  time.Time
}
