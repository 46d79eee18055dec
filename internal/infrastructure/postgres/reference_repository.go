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

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo persistencia de ubicaciones sobre PostgreSQL.
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

// Create persiste una ubicación.
func (r *LocationRepo) Create(l *entity.Location) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO locations (id, company_id, name, type, address, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		l.ID, l.CompanyID, l.Name, l.Type, l.Address, l.IsActive, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

// Update actualiza una ubicación.
func (r *LocationRepo) Update(l *entity.Location) error {
	cmd, err := r.q.Exec(context.Background(), `
		UPDATE locations SET name = $3, type = $4, address = $5, is_active = $6, updated_at = $7
		WHERE company_id = $1 AND id = $2`,
		l.CompanyID, l.ID, l.Name, l.Type, l.Address, l.IsActive, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update location: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene una ubicación; nil si no existe.
func (r *LocationRepo) GetByID(companyID, id string) (*entity.Location, error) {
	var l entity.Location
	err := r.q.QueryRow(context.Background(), `
		SELECT id, company_id, name, type, address, is_active, created_at, updated_at
		FROM locations WHERE company_id = $1 AND id = $2`,
		companyID, id,
	).Scan(&l.ID, &l.CompanyID, &l.Name, &l.Type, &l.Address, &l.IsActive, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &l, nil
}

// List lista ubicaciones de la empresa.
func (r *LocationRepo) List(companyID string, limit, offset int) ([]*entity.Location, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, company_id, name, type, address, is_active, created_at, updated_at
		FROM locations WHERE company_id = $1 ORDER BY name LIMIT $2 OFFSET $3`,
		companyID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	var out []*entity.Location
	for rows.Next() {
		var l entity.Location
		if err := rows.Scan(&l.ID, &l.CompanyID, &l.Name, &l.Type, &l.Address, &l.IsActive, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo persistencia de categorías sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una categoría.
func (r *CategoryRepo) Create(c *entity.Category) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO categories (id, company_id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.CompanyID, c.Name, c.Description, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría; nil si no existe.
func (r *CategoryRepo) GetByID(companyID, id string) (*entity.Category, error) {
	var c entity.Category
	err := r.q.QueryRow(context.Background(), `
		SELECT id, company_id, name, description, created_at, updated_at
		FROM categories WHERE company_id = $1 AND id = $2`,
		companyID, id,
	).Scan(&c.ID, &c.CompanyID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// List lista categorías de la empresa.
func (r *CategoryRepo) List(companyID string, limit, offset int) ([]*entity.Category, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, company_id, name, description, created_at, updated_at
		FROM categories WHERE company_id = $1 ORDER BY name LIMIT $2 OFFSET $3`,
		companyID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo persistencia de proveedores sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

// Create persiste un proveedor.
func (r *SupplierRepo) Create(s *entity.Supplier) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO suppliers (id, company_id, name, contact_name, email, phone, address, lead_time_days, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		s.ID, s.CompanyID, s.Name, s.ContactName, s.Email, s.Phone, s.Address, s.LeadTimeDays, s.IsActive, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

// Update actualiza un proveedor.
func (r *SupplierRepo) Update(s *entity.Supplier) error {
	cmd, err := r.q.Exec(context.Background(), `
		UPDATE suppliers SET name = $3, contact_name = $4, email = $5, phone = $6, address = $7,
			lead_time_days = $8, is_active = $9, updated_at = $10
		WHERE company_id = $1 AND id = $2`,
		s.CompanyID, s.ID, s.Name, s.ContactName, s.Email, s.Phone, s.Address, s.LeadTimeDays, s.IsActive, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update supplier: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene un proveedor; nil si no existe.
func (r *SupplierRepo) GetByID(companyID, id string) (*entity.Supplier, error) {
	var s entity.Supplier
	err := r.q.QueryRow(context.Background(), `
		SELECT id, company_id, name, contact_name, email, phone, address, lead_time_days, is_active, created_at, updated_at
		FROM suppliers WHERE company_id = $1 AND id = $2`,
		companyID, id,
	).Scan(&s.ID, &s.CompanyID, &s.Name, &s.ContactName, &s.Email, &s.Phone, &s.Address, &s.LeadTimeDays, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

// List lista proveedores de la empresa.
func (r *SupplierRepo) List(companyID string, limit, offset int) ([]*entity.Supplier, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, company_id, name, contact_name, email, phone, address, lead_time_days, is_active, created_at, updated_at
		FROM suppliers WHERE company_id = $1 ORDER BY name LIMIT $2 OFFSET $3`,
		companyID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()

	var out []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.Name, &s.ContactName, &s.Email, &s.Phone,
			&s.Address, &s.LeadTimeDays, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo persistencia de clientes sobre PostgreSQL.
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create persiste un cliente.
func (r *CustomerRepo) Create(c *entity.Customer) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO customers (id, company_id, name, email, phone, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		c.ID, c.CompanyID, c.Name, c.Email, c.Phone, c.Address, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// Update actualiza un cliente.
func (r *CustomerRepo) Update(c *entity.Customer) error {
	cmd, err := r.q.Exec(context.Background(), `
		UPDATE customers SET name = $3, email = $4, phone = $5, address = $6, updated_at = $7
		WHERE company_id = $1 AND id = $2`,
		c.CompanyID, c.ID, c.Name, c.Email, c.Phone, c.Address, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene un cliente; nil si no existe.
func (r *CustomerRepo) GetByID(companyID, id string) (*entity.Customer, error) {
	var c entity.Customer
	err := r.q.QueryRow(context.Background(), `
		SELECT id, company_id, name, email, phone, address, created_at, updated_at
		FROM customers WHERE company_id = $1 AND id = $2`,
		companyID, id,
	).Scan(&c.ID, &c.CompanyID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

// List lista clientes de la empresa.
func (r *CustomerRepo) List(companyID string, limit, offset int) ([]*entity.Customer, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, company_id, name, email, phone, address, created_at, updated_at
		FROM customers WHERE company_id = $1 ORDER BY name LIMIT $2 OFFSET $3`,
		companyID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var out []*entity.Customer
	for rows.Next() {
		var c entity.Customer
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}
