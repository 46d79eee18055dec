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

var _ repository.ReturnRepository = (*ReturnRepo)(nil)

// ReturnRepo persistencia de devoluciones sobre PostgreSQL.
type ReturnRepo struct {
	q Querier
}

// NewReturnRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReturnRepository(q Querier) *ReturnRepo {
	return &ReturnRepo{q: q}
}

// Create persiste la devolución y sus líneas.
func (r *ReturnRepo) Create(ret *entity.Return) error {
	ctx := context.Background()
	_, err := r.q.Exec(ctx, `
		INSERT INTO returns (id, company_id, return_number, customer_id, sales_order_id, status, reason,
			notes, subtotal, refund_amount, processed_at, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		ret.ID, ret.CompanyID, ret.ReturnNumber, ret.CustomerID, ret.SalesOrderID, ret.Status, ret.Reason,
		ret.Notes, ret.Subtotal, ret.RefundAmount, ret.ProcessedAt, ret.CreatedBy, ret.CreatedAt, ret.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert return: %w", err)
	}
	for _, it := range ret.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO return_items (id, return_id, product_id, quantity, unit_price, condition, reason)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			it.ID, ret.ID, it.ProductID, it.Quantity, it.UnitPrice, it.Condition, it.Reason,
		)
		if err != nil {
			return fmt.Errorf("insert return item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la devolución con sus líneas; nil si no existe.
func (r *ReturnRepo) GetByID(companyID, id string) (*entity.Return, error) {
	ctx := context.Background()
	var ret entity.Return
	var customerID, salesOrderID *string
	err := r.q.QueryRow(ctx, `
		SELECT id, company_id, return_number, customer_id, sales_order_id, status, reason,
			notes, subtotal, refund_amount, processed_at, created_by, created_at, updated_at
		FROM returns WHERE company_id = $1 AND id = $2`,
		companyID, id,
	).Scan(&ret.ID, &ret.CompanyID, &ret.ReturnNumber, &customerID, &salesOrderID, &ret.Status, &ret.Reason,
		&ret.Notes, &ret.Subtotal, &ret.RefundAmount, &ret.ProcessedAt, &ret.CreatedBy, &ret.CreatedAt, &ret.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get return: %w", err)
	}
	if customerID != nil {
		ret.CustomerID = *customerID
	}
	if salesOrderID != nil {
		ret.SalesOrderID = *salesOrderID
	}
	items, err := r.loadItems(ctx, ret.ID)
	if err != nil {
		return nil, err
	}
	ret.Items = items
	return &ret, nil
}

// List lista devoluciones, opcionalmente filtradas por estado, con sus líneas.
func (r *ReturnRepo) List(companyID, status string, limit, offset int) ([]*entity.Return, error) {
	ctx := context.Background()
	query := `
		SELECT id, company_id, return_number, customer_id, sales_order_id, status, reason,
			notes, subtotal, refund_amount, processed_at, created_by, created_at, updated_at
		FROM returns WHERE company_id = $1`
	args := []any{companyID}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list returns: %w", err)
	}
	defer rows.Close()

	var out []*entity.Return
	for rows.Next() {
		var ret entity.Return
		var customerID, salesOrderID *string
		if err := rows.Scan(&ret.ID, &ret.CompanyID, &ret.ReturnNumber, &customerID, &salesOrderID,
			&ret.Status, &ret.Reason, &ret.Notes, &ret.Subtotal, &ret.RefundAmount, &ret.ProcessedAt,
			&ret.CreatedBy, &ret.CreatedAt, &ret.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan return: %w", err)
		}
		if customerID != nil {
			ret.CustomerID = *customerID
		}
		if salesOrderID != nil {
			ret.SalesOrderID = *salesOrderID
		}
		out = append(out, &ret)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, ret := range out {
		items, err := r.loadItems(ctx, ret.ID)
		if err != nil {
			return nil, err
		}
		ret.Items = items
	}
	return out, nil
}

// UpdateStatus fija el estado y processed_at cuando aplica.
func (r *ReturnRepo) UpdateStatus(companyID, id, status string, processedAt *time.Time) error {
	cmd, err := r.q.Exec(context.Background(), `
		UPDATE returns
		SET status = $3, processed_at = COALESCE($4, processed_at), updated_at = now()
		WHERE company_id = $1 AND id = $2`,
		companyID, id, status, processedAt,
	)
	if err != nil {
		return fmt.Errorf("update return status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la devolución y sus líneas (FK ON DELETE CASCADE).
func (r *ReturnRepo) Delete(companyID, id string) error {
	cmd, err := r.q.Exec(context.Background(),
		`DELETE FROM returns WHERE company_id = $1 AND id = $2`,
		companyID, id,
	)
	if err != nil {
		return fmt.Errorf("delete return: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Count total de devoluciones de la empresa (consecutivo RET-#####).
func (r *ReturnRepo) Count(companyID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM returns WHERE company_id = $1`, companyID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count returns: %w", err)
	}
	return n, nil
}

func (r *ReturnRepo) loadItems(ctx context.Context, returnID string) ([]entity.ReturnItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, return_id, product_id, quantity, unit_price, condition, reason
		FROM return_items WHERE return_id = $1 ORDER BY id`,
		returnID,
	)
	if err != nil {
		return nil, fmt.Errorf("list return items: %w", err)
	}
	defer rows.Close()

	var items []entity.ReturnItem
	for rows.Next() {
		var it entity.ReturnItem
		if err := rows.Scan(&it.ID, &it.ReturnID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.Condition, &it.Reason); err != nil {
			return nil, fmt.Errorf("scan return item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
