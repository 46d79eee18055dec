package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jmcastro/stockpilot-api/internal/domain"
	"github.com/jmcastro/stockpilot-api/internal/domain/entity"
	"github.com/jmcastro/stockpilot-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, company_id, sku, barcode, name, description, category_id, supplier_id,
	stock, cost, price, reorder_point, min_stock, max_stock, unit, is_active, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto. Stock inicia en 0.
func (r *ProductRepo) Create(p *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''), $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.CompanyID, p.SKU, p.Barcode, p.Name, p.Description, p.CategoryID, p.SupplierID,
		p.Stock, p.Cost, p.Price, p.ReorderPoint, p.MinStock, p.MaxStock, p.Unit, p.IsActive,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// Update actualiza los datos maestros. No modifica Stock ni Cost.
func (r *ProductRepo) Update(p *entity.Product) error {
	query := `
		UPDATE products
		SET sku = $3, barcode = $4, name = $5, description = $6, category_id = NULLIF($7, ''),
			supplier_id = NULLIF($8, ''), price = $9, reorder_point = $10, min_stock = $11,
			max_stock = $12, unit = $13, is_active = $14, updated_at = $15
		WHERE company_id = $1 AND id = $2`
	cmd, err := r.q.Exec(context.Background(), query,
		p.CompanyID, p.ID, p.SKU, p.Barcode, p.Name, p.Description, p.CategoryID, p.SupplierID,
		p.Price, p.ReorderPoint, p.MinStock, p.MaxStock, p.Unit, p.IsActive, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene un producto de la empresa; nil si no existe.
func (r *ProductRepo) GetByID(companyID, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE company_id = $1 AND id = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, companyID, id))
}

// GetBySKU obtiene un producto por SKU; nil si no existe.
func (r *ProductRepo) GetBySKU(companyID, sku string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE company_id = $1 AND sku = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, companyID, sku))
}

// List lista productos con búsqueda opcional por nombre o SKU, insensible a
// mayúsculas y acentos (el término se normaliza antes de armar el patrón).
func (r *ProductRepo) List(companyID, search string, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE company_id = $1`
	args := []any{companyID}
	if search != "" {
		query += ` AND (lower(name) LIKE $2 OR lower(sku) LIKE $2)`
		args = append(args, "%"+normalize(search)+"%")
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
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

// AdjustStock aplica un delta atómico sobre el agregado:
// stock = stock + delta en una sola sentencia, sin read-modify-write.
func (r *ProductRepo) AdjustStock(companyID, productID string, delta decimal.Decimal) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock = stock + $3, updated_at = now() WHERE company_id = $1 AND id = $2`,
		companyID, productID, delta,
	)
	if err != nil {
		return fmt.Errorf("adjust stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateCost fija el costo promedio ponderado (lo usa la recepción de compras).
func (r *ProductRepo) UpdateCost(companyID, productID string, cost decimal.Decimal) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET cost = $3, updated_at = now() WHERE company_id = $1 AND id = $2`,
		companyID, productID, cost,
	)
	if err != nil {
		return fmt.Errorf("update product cost: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepo) scanOne(row pgx.Row) (*entity.Product, error) {
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var categoryID, supplierID *string
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.SKU, &p.Barcode, &p.Name, &p.Description, &categoryID, &supplierID,
		&p.Stock, &p.Cost, &p.Price, &p.ReorderPoint, &p.MinStock, &p.MaxStock, &p.Unit, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}
	if categoryID != nil {
		p.CategoryID = *categoryID
	}
	if supplierID != nil {
		p.SupplierID = *supplierID
	}
	return &p, nil
}
