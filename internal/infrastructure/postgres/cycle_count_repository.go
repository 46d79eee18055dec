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

var _ repository.CycleCountRepository = (*CycleCountRepo)(nil)

// CycleCountRepo persistencia de conteos cíclicos sobre PostgreSQL.
type CycleCountRepo struct {
	q Querier
}

// NewCycleCountRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCycleCountRepository(q Querier) *CycleCountRepo {
	return &CycleCountRepo{q: q}
}

// Create persiste el conteo y el snapshot de sus líneas.
func (r *CycleCountRepo) Create(c *entity.CycleCount) error {
	ctx := context.Background()
	_, err := r.q.Exec(ctx, `
		INSERT INTO cycle_counts (id, company_id, count_number, location_id, status, notes,
			created_by, completed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		c.ID, c.CompanyID, c.CountNumber, c.LocationID, c.Status, c.Notes,
		c.CreatedBy, c.CompletedAt, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cycle count: %w", err)
	}
	for _, it := range c.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO cycle_count_items (id, count_id, product_id, system_qty, counted_qty, variance, counted_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			it.ID, c.ID, it.ProductID, it.SystemQty, it.CountedQty, it.Variance, it.CountedAt,
		)
		if err != nil {
			return fmt.Errorf("insert cycle count item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene el conteo con sus líneas; nil si no existe.
func (r *CycleCountRepo) GetByID(companyID, id string) (*entity.CycleCount, error) {
	ctx := context.Background()
	var c entity.CycleCount
	err := r.q.QueryRow(ctx, `
		SELECT id, company_id, count_number, location_id, status, notes, created_by, completed_at, created_at, updated_at
		FROM cycle_counts WHERE company_id = $1 AND id = $2`,
		companyID, id,
	).Scan(&c.ID, &c.CompanyID, &c.CountNumber, &c.LocationID, &c.Status, &c.Notes,
		&c.CreatedBy, &c.CompletedAt, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cycle count: %w", err)
	}
	items, err := r.loadItems(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	c.Items = items
	return &c, nil
}

// List lista conteos, opcionalmente filtrados por estado, con sus líneas.
func (r *CycleCountRepo) List(companyID, status string, limit, offset int) ([]*entity.CycleCount, error) {
	ctx := context.Background()
	query := `
		SELECT id, company_id, count_number, location_id, status, notes, created_by, completed_at, created_at, updated_at
		FROM cycle_counts WHERE company_id = $1`
	args := []any{companyID}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list cycle counts: %w", err)
	}
	defer rows.Close()

	var out []*entity.CycleCount
	for rows.Next() {
		var c entity.CycleCount
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.CountNumber, &c.LocationID, &c.Status, &c.Notes,
			&c.CreatedBy, &c.CompletedAt, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan cycle count: %w", err)
		}
		out = append(out, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, c := range out {
		items, err := r.loadItems(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		c.Items = items
	}
	return out, nil
}

// UpdateItemCount fija la cantidad contada y su varianza.
func (r *CycleCountRepo) UpdateItemCount(itemID string, countedQty, variance decimal.Decimal, countedAt time.Time) error {
	cmd, err := r.q.Exec(context.Background(), `
		UPDATE cycle_count_items SET counted_qty = $2, variance = $3, counted_at = $4 WHERE id = $1`,
		itemID, countedQty, variance, countedAt,
	)
	if err != nil {
		return fmt.Errorf("update cycle count item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus fija el estado y completed_at cuando aplica.
func (r *CycleCountRepo) UpdateStatus(companyID, id, status string, completedAt *time.Time) error {
	cmd, err := r.q.Exec(context.Background(), `
		UPDATE cycle_counts
		SET status = $3, completed_at = COALESCE($4, completed_at), updated_at = now()
		WHERE company_id = $1 AND id = $2`,
		companyID, id, status, completedAt,
	)
	if err != nil {
		return fmt.Errorf("update cycle count status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el conteo y sus líneas (FK ON DELETE CASCADE).
func (r *CycleCountRepo) Delete(companyID, id string) error {
	cmd, err := r.q.Exec(context.Background(),
		`DELETE FROM cycle_counts WHERE company_id = $1 AND id = $2`,
		companyID, id,
	)
	if err != nil {
		return fmt.Errorf("delete cycle count: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Count total de conteos de la empresa (consecutivo CC-#####).
func (r *CycleCountRepo) Count(companyID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM cycle_counts WHERE company_id = $1`, companyID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count cycle counts: %w", err)
	}
	return n, nil
}

func (r *CycleCountRepo) loadItems(ctx context.Context, countID string) ([]entity.CycleCountItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, count_id, product_id, system_qty, counted_qty, variance, counted_at
		FROM cycle_count_items WHERE count_id = $1 ORDER BY product_id`,
		countID,
	)
	if err != nil {
		return nil, fmt.Errorf("list cycle count items: %w", err)
	}
	defer rows.Close()

	var items []entity.CycleCountItem
	for rows.Next() {
		var it entity.CycleCountItem
		if err := rows.Scan(&it.ID, &it.CountID, &it.ProductID, &it.SystemQty, &it.CountedQty, &it.Variance, &it.CountedAt); err != nil {
			return nil, fmt.Errorf("scan cycle count item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

var _ repository.StockAdjustmentRepository = (*StockAdjustmentRepo)(nil)

// StockAdjustmentRepo persistencia de ajustes sobre PostgreSQL. Solo INSERT y
// SELECT: un ajuste aplicado no se edita ni se elimina.
type StockAdjustmentRepo struct {
	q Querier
}

// NewStockAdjustmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockAdjustmentRepository(q Querier) *StockAdjustmentRepo {
	return &StockAdjustmentRepo{q: q}
}

// Create persiste el ajuste.
func (r *StockAdjustmentRepo) Create(a *entity.StockAdjustment) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO stock_adjustments (id, company_id, product_id, adjustment_type, quantity, reason, reference, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		a.ID, a.CompanyID, a.ProductID, a.AdjustmentType, a.Quantity, a.Reason, a.Reference, a.CreatedBy, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock adjustment: %w", err)
	}
	return nil
}

// List lista ajustes, más recientes primero.
func (r *StockAdjustmentRepo) List(companyID string, limit, offset int) ([]*entity.StockAdjustment, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, company_id, product_id, adjustment_type, quantity, reason, reference, created_by, created_at
		FROM stock_adjustments WHERE company_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		companyID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list stock adjustments: %w", err)
	}
	defer rows.Close()

	var out []*entity.StockAdjustment
	for rows.Next() {
		var a entity.StockAdjustment
		if err := rows.Scan(&a.ID, &a.CompanyID, &a.ProductID, &a.AdjustmentType, &a.Quantity,
			&a.Reason, &a.Reference, &a.CreatedBy, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock adjustment: %w", err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}
