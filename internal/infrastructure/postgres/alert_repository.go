package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jmcastro/stockpilot-api/internal/domain"
	"github.com/jmcastro/stockpilot-api/internal/domain/entity"
	"github.com/jmcastro/stockpilot-api/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)

// AlertRepo persistencia de alertas sobre PostgreSQL.
type AlertRepo struct {
	q Querier
}

// NewAlertRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAlertRepository(q Querier) *AlertRepo {
	return &AlertRepo{q: q}
}

// Create persiste una alerta.
func (r *AlertRepo) Create(a *entity.Alert) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO alerts (id, company_id, type, product_id, message, is_dismissed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.CompanyID, a.Type, a.ProductID, a.Message, a.IsDismissed, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert alert: %w", err)
	}
	return nil
}

// ListOpen alertas no descartadas de la empresa, más recientes primero.
func (r *AlertRepo) ListOpen(companyID string) ([]*entity.Alert, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, company_id, type, product_id, message, is_dismissed, created_at
		FROM alerts WHERE company_id = $1 AND is_dismissed = false
		ORDER BY created_at DESC`,
		companyID,
	)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()

	var out []*entity.Alert
	for rows.Next() {
		var a entity.Alert
		if err := rows.Scan(&a.ID, &a.CompanyID, &a.Type, &a.ProductID, &a.Message, &a.IsDismissed, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}

// FindOpen busca una alerta abierta de un tipo para un producto; nil si no hay.
func (r *AlertRepo) FindOpen(companyID, alertType, productID string) (*entity.Alert, error) {
	var a entity.Alert
	err := r.q.QueryRow(context.Background(), `
		SELECT id, company_id, type, product_id, message, is_dismissed, created_at
		FROM alerts WHERE company_id = $1 AND type = $2 AND product_id = $3 AND is_dismissed = false`,
		companyID, alertType, productID,
	).Scan(&a.ID, &a.CompanyID, &a.Type, &a.ProductID, &a.Message, &a.IsDismissed, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find alert: %w", err)
	}
	return &a, nil
}

// Dismiss descarta una alerta.
func (r *AlertRepo) Dismiss(companyID, id string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE alerts SET is_dismissed = true WHERE company_id = $1 AND id = $2`,
		companyID, id,
	)
	if err != nil {
		return fmt.Errorf("dismiss alert: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
