package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo.
// Stock es la cantidad agregada autoritativa; solo se modifica a través del
// ledger de movimientos (nunca escritura directa). Cost es costo promedio
// ponderado, actualizado al recibir órdenes de compra.
type Product struct {
	ID           string
	CompanyID    string
	SKU          string // código único por empresa
	Barcode      string
	Name         string
	Description  string
	CategoryID   string
	SupplierID   string
	Stock        decimal.Decimal // agregado on-hand; mutado solo vía ledger
	Cost         decimal.Decimal
	Price        decimal.Decimal
	ReorderPoint decimal.Decimal
	MinStock     decimal.Decimal
	MaxStock     decimal.Decimal
	Unit         string // unidad de medida (ej. "unidad", "kg", "caja")
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
