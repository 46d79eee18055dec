package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jmcastro/stockpilot-api/internal/domain/entity"
)

// ReportRepository consultas de solo lectura para analítica de inventario.
// No participa en transacciones del ledger: un fallo de reporte nunca afecta
// el estado de stock.
type ReportRepository interface {
	// ActiveProducts productos activos de la empresa.
	ActiveProducts(ctx context.Context, companyID string) ([]*entity.Product, error)
	// OutboundTotalsSince suma de magnitudes de movimientos "out" por producto desde la fecha dada.
	OutboundTotalsSince(ctx context.Context, companyID string, since time.Time) (map[string]decimal.Decimal, error)
	// ProductIDsWithOutboundSince productos con al menos un movimiento "out" desde la fecha dada.
	ProductIDsWithOutboundSince(ctx context.Context, companyID string, since time.Time) (map[string]struct{}, error)
	// LowStock productos activos con stock <= punto de reorden.
	LowStock(ctx context.Context, companyID string) ([]*entity.Product, error)
	// Suppliers proveedores de la empresa.
	Suppliers(ctx context.Context, companyID string) ([]*entity.Supplier, error)
	// ReceivedPurchaseOrdersSince órdenes en estado received con fecha esperada
	// y fecha de recepción, creadas desde la fecha dada.
	ReceivedPurchaseOrdersSince(ctx context.Context, companyID string, since time.Time) ([]*entity.PurchaseOrder, error)
}
