package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jmcastro/stockpilot-api/internal/domain"
	"github.com/jmcastro/stockpilot-api/internal/domain/entity"
	"github.com/jmcastro/stockpilot-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo persistencia de órdenes de compra sobre PostgreSQL.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// Create persiste la orden y sus líneas.
func (r *PurchaseOrderRepo) Create(o *entity.PurchaseOrder) error {
	ctx := context.Background()
	_, err := r.q.Exec(ctx, `
		INSERT INTO purchase_orders (id, company_id, order_number, supplier_id, status, subtotal, tax, total,
			notes, expected_date, received_date, created_by, approved_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NULLIF($13, ''), $14, $15)`,
		o.ID, o.CompanyID, o.OrderNumber, o.SupplierID, o.Status, o.Subtotal, o.Tax, o.Total,
		o.Notes, o.ExpectedDate, o.ReceivedDate, o.CreatedBy, o.ApprovedBy, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}
	for _, it := range o.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO purchase_order_items (id, order_id, product_id, quantity, received_qty, unit_price, total)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			it.ID, o.ID, it.ProductID, it.Quantity, it.ReceivedQty, it.UnitPrice, it.Total,
		)
		if err != nil {
			return fmt.Errorf("insert purchase order item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la orden con sus líneas; nil si no existe.
func (r *PurchaseOrderRepo) GetByID(companyID, id string) (*entity.PurchaseOrder, error) {
	ctx := context.Background()
	var o entity.PurchaseOrder
	var approvedBy *string
	err := r.q.QueryRow(ctx, `
		SELECT id, company_id, order_number, supplier_id, status, subtotal, tax, total,
			notes, expected_date, received_date, created_by, approved_by, created_at, updated_at
		FROM purchase_orders WHERE company_id = $1 AND id = $2`,
		companyID, id,
	).Scan(&o.ID, &o.CompanyID, &o.OrderNumber, &o.SupplierID, &o.Status, &o.Subtotal, &o.Tax, &o.Total,
		&o.Notes, &o.ExpectedDate, &o.ReceivedDate, &o.CreatedBy, &approvedBy, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	if approvedBy != nil {
		o.ApprovedBy = *approvedBy
	}
	items, err := r.loadItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

// List lista órdenes, opcionalmente filtradas por estado, con sus líneas.
func (r *PurchaseOrderRepo) List(companyID, status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	ctx := context.Background()
	query := `
		SELECT id, company_id, order_number, supplier_id, status, subtotal, tax, total,
			notes, expected_date, received_date, created_by, approved_by, created_at, updated_at
		FROM purchase_orders WHERE company_id = $1`
	args := []any{companyID}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()

	var out []*entity.PurchaseOrder
	for rows.Next() {
		var o entity.PurchaseOrder
		var approvedBy *string
		if err := rows.Scan(&o.ID, &o.CompanyID, &o.OrderNumber, &o.SupplierID, &o.Status,
			&o.Subtotal, &o.Tax, &o.Total, &o.Notes, &o.ExpectedDate, &o.ReceivedDate,
			&o.CreatedBy, &approvedBy, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		if approvedBy != nil {
			o.ApprovedBy = *approvedBy
		}
		out = append(out, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range out {
		items, err := r.loadItems(ctx, o.ID)
		if err != nil {
			return nil, err
		}
		o.Items = items
	}
	return out, nil
}

// UpdateStatus fija el estado; approved_by y received_date solo cuando aplican.
func (r *PurchaseOrderRepo) UpdateStatus(companyID, id, status string, approvedBy string, receivedDate *time.Time) error {
	cmd, err := r.q.Exec(context.Background(), `
		UPDATE purchase_orders
		SET status = $3, approved_by = NULLIF($4, ''), received_date = COALESCE($5, received_date), updated_at = now()
		WHERE company_id = $1 AND id = $2`,
		companyID, id, status, approvedBy, receivedDate,
	)
	if err != nil {
		return fmt.Errorf("update purchase order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateItemReceived fija el acumulado recibido de una línea.
func (r *PurchaseOrderRepo) UpdateItemReceived(itemID string, receivedQty decimal.Decimal) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE purchase_order_items SET received_qty = $2 WHERE id = $1`,
		itemID, receivedQty,
	)
	if err != nil {
		return fmt.Errorf("update purchase order item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la orden y sus líneas (FK ON DELETE CASCADE).
func (r *PurchaseOrderRepo) Delete(companyID, id string) error {
	cmd, err := r.q.Exec(context.Background(),
		`DELETE FROM purchase_orders WHERE company_id = $1 AND id = $2`,
		companyID, id,
	)
	if err != nil {
		return fmt.Errorf("delete purchase order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Count total de órdenes de la empresa (consecutivo PO-#####).
func (r *PurchaseOrderRepo) Count(companyID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM purchase_orders WHERE company_id = $1`, companyID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count purchase orders: %w", err)
	}
	return n, nil
}

func (r *PurchaseOrderRepo) loadItems(ctx context.Context, orderID string) ([]entity.PurchaseOrderItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, product_id, quantity, received_qty, unit_price, total
		FROM purchase_order_items WHERE order_id = $1 ORDER BY id`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("list purchase order items: %w", err)
	}
	defer rows.Close()

	var items []entity.PurchaseOrderItem
	for rows.Next() {
		var it entity.PurchaseOrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.ReceivedQty, &it.UnitPrice, &it.Total); err != nil {
			return nil, fmt.Errorf("scan purchase order item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
