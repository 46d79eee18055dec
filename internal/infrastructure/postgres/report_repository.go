package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jmcastro/stockpilot-api/internal/domain/entity"
	"github.com/jmcastro/stockpilot-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de analítica sobre PostgreSQL. Solo lecturas; nunca
// participa en las transacciones del ledger.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador. Pasar el pool (nunca una tx).
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// ActiveProducts productos activos de la empresa.
func (r *ReportRepo) ActiveProducts(ctx context.Context, companyID string) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE company_id = $1 AND is_active = true ORDER BY name`,
		companyID,
	)
	if err != nil {
		return nil, fmt.Errorf("active products: %w", err)
	}
	defer rows.Close()

	var out []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// OutboundTotalsSince suma de magnitudes de movimientos "out" por producto
// desde la fecha dada.
func (r *ReportRepo) OutboundTotalsSince(ctx context.Context, companyID string, since time.Time) (map[string]decimal.Decimal, error) {
	rows, err := r.q.Query(ctx, `
		SELECT product_id, SUM(quantity)
		FROM stock_movements
		WHERE company_id = $1 AND type = 'out' AND created_at >= $2
		GROUP BY product_id`,
		companyID, since,
	)
	if err != nil {
		return nil, fmt.Errorf("outbound totals: %w", err)
	}
	defer rows.Close()

	out := make(map[string]decimal.Decimal)
	for rows.Next() {
		var productID string
		var total decimal.Decimal
		if err := rows.Scan(&productID, &total); err != nil {
			return nil, fmt.Errorf("scan outbound total: %w", err)
		}
		out[productID] = total
	}
	return out, rows.Err()
}

// ProductIDsWithOutboundSince productos con al menos una salida desde la fecha dada.
func (r *ReportRepo) ProductIDsWithOutboundSince(ctx context.Context, companyID string, since time.Time) (map[string]struct{}, error) {
	rows, err := r.q.Query(ctx, `
		SELECT DISTINCT product_id
		FROM stock_movements
		WHERE company_id = $1 AND type = 'out' AND created_at >= $2`,
		companyID, since,
	)
	if err != nil {
		return nil, fmt.Errorf("outbound product ids: %w", err)
	}
	defer rows.Close()

	out := make(map[string]struct{})
	for rows.Next() {
		var productID string
		if err := rows.Scan(&productID); err != nil {
			return nil, fmt.Errorf("scan outbound product id: %w", err)
		}
		out[productID] = struct{}{}
	}
	return out, rows.Err()
}

// Suppliers proveedores de la empresa.
func (r *ReportRepo) Suppliers(ctx context.Context, companyID string) ([]*entity.Supplier, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, company_id, name, contact_name, email, phone, address, lead_time_days, is_active, created_at, updated_at
		FROM suppliers WHERE company_id = $1 ORDER BY name`,
		companyID,
	)
	if err != nil {
		return nil, fmt.Errorf("report suppliers: %w", err)
	}
	defer rows.Close()

	var out []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.Name, &s.ContactName, &s.Email, &s.Phone,
			&s.Address, &s.LeadTimeDays, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan report supplier: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

// ReceivedPurchaseOrdersSince órdenes received con ambas fechas, creadas
// desde la fecha dada. Solo las columnas que usa la analítica de atrasos.
func (r *ReportRepo) ReceivedPurchaseOrdersSince(ctx context.Context, companyID string, since time.Time) ([]*entity.PurchaseOrder, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, company_id, supplier_id, expected_date, received_date
		FROM purchase_orders
		WHERE company_id = $1 AND status = 'received'
			AND expected_date IS NOT NULL AND received_date IS NOT NULL
			AND created_at >= $2`,
		companyID, since,
	)
	if err != nil {
		return nil, fmt.Errorf("received purchase orders: %w", err)
	}
	defer rows.Close()

	var out []*entity.PurchaseOrder
	for rows.Next() {
		var o entity.PurchaseOrder
		if err := rows.Scan(&o.ID, &o.CompanyID, &o.SupplierID, &o.ExpectedDate, &o.ReceivedDate); err != nil {
			return nil, fmt.Errorf("scan received purchase order: %w", err)
		}
		out = append(out, &o)
	}
	return out, rows.Err()
}

// LowStock productos activos con stock en o bajo su punto de reorden.
func (r *ReportRepo) LowStock(ctx context.Context, companyID string) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE company_id = $1 AND is_active = true AND stock <= reorder_point
		ORDER BY stock - reorder_point`,
		companyID,
	)
	if err != nil {
		return nil, fmt.Errorf("low stock products: %w", err)
	}
	defer rows.Close()

	var out []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
