package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jmcastro/stockpilot-api/internal/domain"
	"github.com/jmcastro/stockpilot-api/internal/domain/entity"
	"github.com/jmcastro/stockpilot-api/internal/domain/repository"
)

var _ repository.SalesOrderRepository = (*SalesOrderRepo)(nil)

// SalesOrderRepo persistencia de órdenes de venta sobre PostgreSQL.
type SalesOrderRepo struct {
	q Querier
}

// NewSalesOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSalesOrderRepository(q Querier) *SalesOrderRepo {
	return &SalesOrderRepo{q: q}
}

// Create persiste la orden y sus líneas.
func (r *SalesOrderRepo) Create(o *entity.SalesOrder) error {
	ctx := context.Background()
	_, err := r.q.Exec(ctx, `
		INSERT INTO sales_orders (id, company_id, order_number, customer_id, status, subtotal, tax, total,
			notes, shipping_address, shipping_date, delivery_date, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		o.ID, o.CompanyID, o.OrderNumber, o.CustomerID, o.Status, o.Subtotal, o.Tax, o.Total,
		o.Notes, o.ShippingAddress, o.ShippingDate, o.DeliveryDate, o.CreatedBy, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sales order: %w", err)
	}
	for _, it := range o.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO sales_order_items (id, order_id, product_id, quantity, unit_price, discount, total)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			it.ID, o.ID, it.ProductID, it.Quantity, it.UnitPrice, it.Discount, it.Total,
		)
		if err != nil {
			return fmt.Errorf("insert sales order item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la orden con sus líneas; nil si no existe.
func (r *SalesOrderRepo) GetByID(companyID, id string) (*entity.SalesOrder, error) {
	ctx := context.Background()
	var o entity.SalesOrder
	err := r.q.QueryRow(ctx, `
		SELECT id, company_id, order_number, customer_id, status, subtotal, tax, total,
			notes, shipping_address, shipping_date, delivery_date, created_by, created_at, updated_at
		FROM sales_orders WHERE company_id = $1 AND id = $2`,
		companyID, id,
	).Scan(&o.ID, &o.CompanyID, &o.OrderNumber, &o.CustomerID, &o.Status, &o.Subtotal, &o.Tax, &o.Total,
		&o.Notes, &o.ShippingAddress, &o.ShippingDate, &o.DeliveryDate, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sales order: %w", err)
	}
	items, err := r.loadItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

// List lista órdenes, opcionalmente filtradas por estado, con sus líneas.
func (r *SalesOrderRepo) List(companyID, status string, limit, offset int) ([]*entity.SalesOrder, error) {
	ctx := context.Background()
	query := `
		SELECT id, company_id, order_number, customer_id, status, subtotal, tax, total,
			notes, shipping_address, shipping_date, delivery_date, created_by, created_at, updated_at
		FROM sales_orders WHERE company_id = $1`
	args := []any{companyID}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales orders: %w", err)
	}
	defer rows.Close()

	var out []*entity.SalesOrder
	for rows.Next() {
		var o entity.SalesOrder
		if err := rows.Scan(&o.ID, &o.CompanyID, &o.OrderNumber, &o.CustomerID, &o.Status,
			&o.Subtotal, &o.Tax, &o.Total, &o.Notes, &o.ShippingAddress, &o.ShippingDate,
			&o.DeliveryDate, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sales order: %w", err)
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

// UpdateStatus fija el estado y las fechas de despacho/entrega cuando aplican.
func (r *SalesOrderRepo) UpdateStatus(companyID, id, status string, shippingDate, deliveryDate *time.Time) error {
	cmd, err := r.q.Exec(context.Background(), `
		UPDATE sales_orders
		SET status = $3, shipping_date = COALESCE($4, shipping_date),
			delivery_date = COALESCE($5, delivery_date), updated_at = now()
		WHERE company_id = $1 AND id = $2`,
		companyID, id, status, shippingDate, deliveryDate,
	)
	if err != nil {
		return fmt.Errorf("update sales order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la orden y sus líneas (FK ON DELETE CASCADE).
func (r *SalesOrderRepo) Delete(companyID, id string) error {
	cmd, err := r.q.Exec(context.Background(),
		`DELETE FROM sales_orders WHERE company_id = $1 AND id = $2`,
		companyID, id,
	)
	if err != nil {
		return fmt.Errorf("delete sales order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Count total de órdenes de la empresa (consecutivo SO-#####).
func (r *SalesOrderRepo) Count(companyID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM sales_orders WHERE company_id = $1`, companyID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count sales orders: %w", err)
	}
	return n, nil
}

func (r *SalesOrderRepo) loadItems(ctx context.Context, orderID string) ([]entity.SalesOrderItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, product_id, quantity, unit_price, discount, total
		FROM sales_order_items WHERE order_id = $1 ORDER BY id`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("list sales order items: %w", err)
	}
	defer rows.Close()

	var items []entity.SalesOrderItem
	for rows.Next() {
		var it entity.SalesOrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.Discount, &it.Total); err != nil {
			return nil, fmt.Errorf("scan sales order item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
