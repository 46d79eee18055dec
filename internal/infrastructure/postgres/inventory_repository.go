package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jmcastro/stockpilot-api/internal/domain/entity"
	"github.com/jmcastro/stockpilot-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo proyección de stock por ubicación sobre PostgreSQL. Clave
// primaria compuesta (company_id, product_id, location_id).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Get obtiene la fila de un producto en una ubicación; nil si no existe.
func (r *InventoryRepo) Get(companyID, productID, locationID string) (*entity.LocationInventory, error) {
	var inv entity.LocationInventory
	err := r.q.QueryRow(context.Background(), `
		SELECT company_id, product_id, location_id, quantity, updated_at
		FROM location_inventory
		WHERE company_id = $1 AND product_id = $2 AND location_id = $3`,
		companyID, productID, locationID,
	).Scan(&inv.CompanyID, &inv.ProductID, &inv.LocationID, &inv.Quantity, &inv.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location inventory: %w", err)
	}
	return &inv, nil
}

// Set fija la cantidad absoluta con upsert (asignación inicial).
func (r *InventoryRepo) Set(inv *entity.LocationInventory) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO location_inventory (company_id, product_id, location_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (company_id, product_id, location_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = EXCLUDED.updated_at`,
		inv.CompanyID, inv.ProductID, inv.LocationID, inv.Quantity, inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("set location inventory: %w", err)
	}
	return nil
}

// AddQuantity aplica un delta con upsert: si la fila no existe se crea con el
// delta como cantidad, lo que permite saldos negativos en el origen de un
// traslado no poblado.
func (r *InventoryRepo) AddQuantity(companyID, productID, locationID string, delta decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO location_inventory (company_id, product_id, location_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (company_id, product_id, location_id)
		DO UPDATE SET quantity = location_inventory.quantity + EXCLUDED.quantity, updated_at = now()`,
		companyID, productID, locationID, delta,
	)
	if err != nil {
		return fmt.Errorf("add location inventory: %w", err)
	}
	return nil
}

// ListByLocation filas de una ubicación.
func (r *InventoryRepo) ListByLocation(companyID, locationID string) ([]*entity.LocationInventory, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT company_id, product_id, location_id, quantity, updated_at
		FROM location_inventory WHERE company_id = $1 AND location_id = $2
		ORDER BY product_id`,
		companyID, locationID,
	)
	if err != nil {
		return nil, fmt.Errorf("list location inventory: %w", err)
	}
	return scanInventoryRows(rows)
}

// List proyección completa de la empresa, paginada.
func (r *InventoryRepo) List(companyID string, limit, offset int) ([]*entity.LocationInventory, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT company_id, product_id, location_id, quantity, updated_at
		FROM location_inventory WHERE company_id = $1
		ORDER BY location_id, product_id LIMIT $2 OFFSET $3`,
		companyID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	return scanInventoryRows(rows)
}

// SumByProduct suma de la proyección de un producto en todas las ubicaciones.
func (r *InventoryRepo) SumByProduct(companyID, productID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(), `
		SELECT COALESCE(SUM(quantity), 0) FROM location_inventory
		WHERE company_id = $1 AND product_id = $2`,
		companyID, productID,
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum inventory: %w", err)
	}
	return sum, nil
}

func scanInventoryRows(rows pgx.Rows) ([]*entity.LocationInventory, error) {
	defer rows.Close()
	var out []*entity.LocationInventory
	for rows.Next() {
		var inv entity.LocationInventory
		if err := rows.Scan(&inv.CompanyID, &inv.ProductID, &inv.LocationID, &inv.Quantity, &inv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan location inventory: %w", err)
		}
		out = append(out, &inv)
	}
	return out, rows.Err()
}
