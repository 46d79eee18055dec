package repository

import "github.com/jmcastro/stockpilot-api/internal/domain/entity"

// LocationRepository datos de referencia de ubicaciones (sin efectos de stock).
type LocationRepository interface {
	Create(l *entity.Location) error
	Update(l *entity.Location) error
	GetByID(companyID, id string) (*entity.Location, error)
	List(companyID string, limit, offset int) ([]*entity.Location, error)
}

// CategoryRepository datos de referencia de categorías.
type CategoryRepository interface {
	Create(c *entity.Category) error
	GetByID(companyID, id string) (*entity.Category, error)
	List(companyID string, limit, offset int) ([]*entity.Category, error)
}

// SupplierRepository datos de referencia de proveedores.
type SupplierRepository interface {
	Create(s *entity.Supplier) error
	Update(s *entity.Supplier) error
	GetByID(companyID, id string) (*entity.Supplier, error)
	List(companyID string, limit, offset int) ([]*entity.Supplier, error)
}

// CustomerRepository datos de referencia de clientes.
type CustomerRepository interface {
	Create(c *entity.Customer) error
	Update(c *entity.Customer) error
	GetByID(companyID, id string) (*entity.Customer, error)
	List(companyID string, limit, offset int) ([]*entity.Customer, error)
}

// UserRepository usuarios del sistema.
type UserRepository interface {
	Create(u *entity.User) error
	FindByEmail(email string) (*entity.User, error)
	GetByEmailAndCompany(email, companyID string) (*entity.User, error)
	GetByID(id string) (*entity.User, error)
}

// CompanyRepository tenants.
type CompanyRepository interface {
	Create(c *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	List(limit, offset int) ([]*entity.Company, error)
}

// AlertRepository alertas operacionales.
type AlertRepository interface {
	Create(a *entity.Alert) error
	ListOpen(companyID string) ([]*entity.Alert, error)
	FindOpen(companyID, alertType, productID string) (*entity.Alert, error)
	Dismiss(companyID, id string) error
}
