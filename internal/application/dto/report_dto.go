package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// UsageRow consumo promedio diario de un producto en la ventana analizada.
type UsageRow struct {
	ProductID     string           `json:"product_id"`
	SKU           string           `json:"sku"`
	Name          string           `json:"name"`
	TotalOut      decimal.Decimal  `json:"total_out"`
	AvgDailyUsage decimal.Decimal  `json:"avg_daily_usage"`
	Stock         decimal.Decimal  `json:"stock"`
	DaysOfStock   *decimal.Decimal `json:"days_of_stock,omitempty"`
}

// DeadStockRow producto con existencias sin salidas en la ventana.
type DeadStockRow struct {
	ProductID string          `json:"product_id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Stock     decimal.Decimal `json:"stock"`
	Value     decimal.Decimal `json:"value"`
}

// LowStockRow producto en o bajo su punto de reorden.
type LowStockRow struct {
	ProductID    string          `json:"product_id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Stock        decimal.Decimal `json:"stock"`
	ReorderPoint decimal.Decimal `json:"reorder_point"`
	SupplierID   string          `json:"supplier_id,omitempty"`
}

// AtRiskRow producto próximo a agotarse al ritmo de consumo actual.
type AtRiskRow struct {
	ProductID     string          `json:"product_id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Stock         decimal.Decimal `json:"stock"`
	AvgDailyUsage decimal.Decimal `json:"avg_daily_usage"`
	DaysOfStock   decimal.Decimal `json:"days_of_stock"`
}

// CashConsumingRow producto con mayor valor inmovilizado a costo.
type CashConsumingRow struct {
	ProductID string          `json:"product_id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Stock     decimal.Decimal `json:"stock"`
	Cost      decimal.Decimal `json:"cost"`
	Value     decimal.Decimal `json:"value"`
}

// SupplierDelayRow proveedor con órdenes recibidas después de la fecha esperada.
type SupplierDelayRow struct {
	SupplierID string `json:"supplier_id"`
	Name       string `json:"name"`
	DelayCount int    `json:"delay_count"`
}

// InventoryValueReport valoración del inventario a costo y a precio.
type InventoryValueReport struct {
	TotalCostValue   decimal.Decimal `json:"total_cost_value"`
	TotalRetailValue decimal.Decimal `json:"total_retail_value"`
	ProductCount     int             `json:"product_count"`
	GeneratedAt      time.Time       `json:"generated_at"`
}
