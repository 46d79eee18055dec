package entity

import "time"

// Tipos de alerta.
const (
	AlertTypeLowStock = "low_stock"
)

// Alert alerta operacional derivada (ej. stock bajo el punto de reorden).
// Se genera bajo demanda y se descarta manualmente; una sola alerta abierta
// por producto y tipo.
type Alert struct {
	ID          string
	CompanyID   string
	Type        string
	ProductID   string
	Message     string
	IsDismissed bool
	CreatedAt   time.Time
}
