package entity

import "time"

// Location ubicación física donde se almacena inventario (bodega, tienda, tránsito).
type Location struct {
	ID        string
	CompanyID string
	Name      string
	Type      string // warehouse, store, transit
	Address   string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Category categoría de productos.
type Category struct {
	ID          string
	CompanyID   string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Supplier proveedor. LeadTimeDays alimenta el pronóstico de reposición.
type Supplier struct {
	ID           string
	CompanyID    string
	Name         string
	ContactName  string
	Email        string
	Phone        string
	Address      string
	LeadTimeDays int
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Customer cliente.
type Customer struct {
	ID        string
	CompanyID string
	Name      string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
