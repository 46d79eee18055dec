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

var _ repository.StockTransferRepository = (*StockTransferRepo)(nil)

// StockTransferRepo persistencia de traslados sobre PostgreSQL.
type StockTransferRepo struct {
	q Querier
}

// NewStockTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockTransferRepository(q Querier) *StockTransferRepo {
	return &StockTransferRepo{q: q}
}

// Create persiste el traslado.
func (r *StockTransferRepo) Create(t *entity.StockTransfer) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO stock_transfers (id, company_id, transfer_number, product_id, from_location_id,
			to_location_id, quantity, status, notes, requested_by, completed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		t.ID, t.CompanyID, t.TransferNumber, t.ProductID, t.FromLocationID,
		t.ToLocationID, t.Quantity, t.Status, t.Notes, t.RequestedBy, t.CompletedAt, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock transfer: %w", err)
	}
	return nil
}

// GetByID obtiene un traslado; nil si no existe.
func (r *StockTransferRepo) GetByID(companyID, id string) (*entity.StockTransfer, error) {
	var t entity.StockTransfer
	err := r.q.QueryRow(context.Background(), `
		SELECT id, company_id, transfer_number, product_id, from_location_id, to_location_id,
			quantity, status, notes, requested_by, completed_at, created_at, updated_at
		FROM stock_transfers WHERE company_id = $1 AND id = $2`,
		companyID, id,
	).Scan(&t.ID, &t.CompanyID, &t.TransferNumber, &t.ProductID, &t.FromLocationID, &t.ToLocationID,
		&t.Quantity, &t.Status, &t.Notes, &t.RequestedBy, &t.CompletedAt, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock transfer: %w", err)
	}
	return &t, nil
}

// List lista traslados, opcionalmente filtrados por estado.
func (r *StockTransferRepo) List(companyID, status string, limit, offset int) ([]*entity.StockTransfer, error) {
	query := `
		SELECT id, company_id, transfer_number, product_id, from_location_id, to_location_id,
			quantity, status, notes, requested_by, completed_at, created_at, updated_at
		FROM stock_transfers WHERE company_id = $1`
	args := []any{companyID}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock transfers: %w", err)
	}
	defer rows.Close()

	var out []*entity.StockTransfer
	for rows.Next() {
		var t entity.StockTransfer
		if err := rows.Scan(&t.ID, &t.CompanyID, &t.TransferNumber, &t.ProductID, &t.FromLocationID,
			&t.ToLocationID, &t.Quantity, &t.Status, &t.Notes, &t.RequestedBy, &t.CompletedAt,
			&t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock transfer: %w", err)
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}

// UpdateStatus fija el estado y completed_at cuando aplica.
func (r *StockTransferRepo) UpdateStatus(companyID, id, status string, completedAt *time.Time) error {
	cmd, err := r.q.Exec(context.Background(), `
		UPDATE stock_transfers
		SET status = $3, completed_at = COALESCE($4, completed_at), updated_at = now()
		WHERE company_id = $1 AND id = $2`,
		companyID, id, status, completedAt,
	)
	if err != nil {
		return fmt.Errorf("update stock transfer status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Count total de traslados de la empresa (consecutivo TRF-#####).
func (r *StockTransferRepo) Count(companyID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM stock_transfers WHERE company_id = $1`, companyID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count stock transfers: %w", err)
	}
	return n, nil
}
