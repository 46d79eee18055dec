// Package reports implementa la analítica de inventario: consumo promedio,
// stock muerto, punto de reorden y valoración. Solo lecturas, fuera de toda
// transacción del ledger.
package reports

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jmcastro/stockpilot-api/internal/application/dto"
	"github.com/jmcastro/stockpilot-api/internal/domain/entity"
	"github.com/jmcastro/stockpilot-api/internal/domain/repository"
)

// Ventanas de análisis en días y tamaño de los rankings.
const (
	usageWindowDays     = 60
	deadStockWindowDays = 90
	delayWindowDays     = 90
	topN                = 5
)

// UseCase casos de uso de reportes y alertas.
type UseCase struct {
	reports repository.ReportRepository
	alerts  repository.AlertRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(reports repository.ReportRepository, alerts repository.AlertRepository) *UseCase {
	return &UseCase{reports: reports, alerts: alerts}
}

// Usage consumo promedio diario por producto sobre la ventana de 60 días,
// con días de stock restantes al ritmo actual.
func (uc *UseCase) Usage(ctx context.Context, companyID string) ([]*dto.UsageRow, error) {
	since := time.Now().AddDate(0, 0, -usageWindowDays)
	totals, err := uc.reports.OutboundTotalsSince(ctx, companyID, since)
	if err != nil {
		return nil, err
	}
	products, err := uc.reports.ActiveProducts(ctx, companyID)
	if err != nil {
		return nil, err
	}
	days := decimal.NewFromInt(usageWindowDays)
	out := make([]*dto.UsageRow, 0, len(products))
	for _, p := range products {
		total := totals[p.ID]
		avg := total.Div(days)
		row := &dto.UsageRow{
			ProductID:     p.ID,
			SKU:           p.SKU,
			Name:          p.Name,
			TotalOut:      total,
			AvgDailyUsage: avg,
			Stock:         p.Stock,
		}
		if avg.GreaterThan(decimal.Zero) {
			dos := p.Stock.Div(avg)
			row.DaysOfStock = &dos
		}
		out = append(out, row)
	}
	return out, nil
}

// AtRisk los 5 productos con menos días de stock restantes al ritmo de
// consumo de la ventana de 60 días. Solo considera productos con consumo.
func (uc *UseCase) AtRisk(ctx context.Context, companyID string) ([]*dto.AtRiskRow, error) {
	since := time.Now().AddDate(0, 0, -usageWindowDays)
	totals, err := uc.reports.OutboundTotalsSince(ctx, companyID, since)
	if err != nil {
		return nil, err
	}
	products, err := uc.reports.ActiveProducts(ctx, companyID)
	if err != nil {
		return nil, err
	}
	days := decimal.NewFromInt(usageWindowDays)
	out := make([]*dto.AtRiskRow, 0)
	for _, p := range products {
		avg := totals[p.ID].Div(days)
		if !avg.GreaterThan(decimal.Zero) {
			continue
		}
		out = append(out, &dto.AtRiskRow{
			ProductID:     p.ID,
			SKU:           p.SKU,
			Name:          p.Name,
			Stock:         p.Stock,
			AvgDailyUsage: avg,
			DaysOfStock:   p.Stock.Div(avg),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DaysOfStock.LessThan(out[j].DaysOfStock) })
	if len(out) > topN {
		out = out[:topN]
	}
	return out, nil
}

// TopCashConsuming los 5 productos con mayor valor inmovilizado a costo.
func (uc *UseCase) TopCashConsuming(ctx context.Context, companyID string) ([]*dto.CashConsumingRow, error) {
	products, err := uc.reports.ActiveProducts(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CashConsumingRow, 0, len(products))
	for _, p := range products {
		out = append(out, &dto.CashConsumingRow{
			ProductID: p.ID,
			SKU:       p.SKU,
			Name:      p.Name,
			Stock:     p.Stock,
			Cost:      p.Cost,
			Value:     p.Stock.Mul(p.Cost),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Value.GreaterThan(out[j].Value) })
	if len(out) > topN {
		out = out[:topN]
	}
	return out, nil
}

// SupplierDelays los 5 proveedores con más órdenes recibidas después de la
// fecha esperada en los últimos 90 días. Solo cuenta órdenes cerradas con
// ambas fechas presentes.
func (uc *UseCase) SupplierDelays(ctx context.Context, companyID string) ([]*dto.SupplierDelayRow, error) {
	since := time.Now().AddDate(0, 0, -delayWindowDays)
	orders, err := uc.reports.ReceivedPurchaseOrdersSince(ctx, companyID, since)
	if err != nil {
		return nil, err
	}
	late := make(map[string]int)
	for _, o := range orders {
		if o.ExpectedDate == nil || o.ReceivedDate == nil {
			continue
		}
		if o.ReceivedDate.After(*o.ExpectedDate) {
			late[o.SupplierID]++
		}
	}
	suppliers, err := uc.reports.Suppliers(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SupplierDelayRow, 0)
	for _, s := range suppliers {
		if late[s.ID] == 0 {
			continue
		}
		out = append(out, &dto.SupplierDelayRow{
			SupplierID: s.ID,
			Name:       s.Name,
			DelayCount: late[s.ID],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DelayCount > out[j].DelayCount })
	if len(out) > topN {
		out = out[:topN]
	}
	return out, nil
}

// DeadStock productos activos con existencias y sin una sola salida en los
// últimos 90 días, valorados a costo.
func (uc *UseCase) DeadStock(ctx context.Context, companyID string) ([]*dto.DeadStockRow, error) {
	since := time.Now().AddDate(0, 0, -deadStockWindowDays)
	moved, err := uc.reports.ProductIDsWithOutboundSince(ctx, companyID, since)
	if err != nil {
		return nil, err
	}
	products, err := uc.reports.ActiveProducts(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.DeadStockRow, 0)
	for _, p := range products {
		if !p.Stock.GreaterThan(decimal.Zero) {
			continue
		}
		if _, ok := moved[p.ID]; ok {
			continue
		}
		out = append(out, &dto.DeadStockRow{
			ProductID: p.ID,
			SKU:       p.SKU,
			Name:      p.Name,
			Stock:     p.Stock,
			Value:     p.Stock.Mul(p.Cost),
		})
	}
	return out, nil
}

// LowStock productos activos en o bajo su punto de reorden.
func (uc *UseCase) LowStock(ctx context.Context, companyID string) ([]*dto.LowStockRow, error) {
	products, err := uc.reports.LowStock(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.LowStockRow, 0, len(products))
	for _, p := range products {
		out = append(out, &dto.LowStockRow{
			ProductID:    p.ID,
			SKU:          p.SKU,
			Name:         p.Name,
			Stock:        p.Stock,
			ReorderPoint: p.ReorderPoint,
			SupplierID:   p.SupplierID,
		})
	}
	return out, nil
}

// InventoryValue valoración total del inventario activo a costo y a precio.
func (uc *UseCase) InventoryValue(ctx context.Context, companyID string) (*dto.InventoryValueReport, error) {
	products, err := uc.reports.ActiveProducts(ctx, companyID)
	if err != nil {
		return nil, err
	}
	cost := decimal.Zero
	retail := decimal.Zero
	for _, p := range products {
		cost = cost.Add(p.Stock.Mul(p.Cost))
		retail = retail.Add(p.Stock.Mul(p.Price))
	}
	return &dto.InventoryValueReport{
		TotalCostValue:   cost,
		TotalRetailValue: retail,
		ProductCount:     len(products),
		GeneratedAt:      time.Now(),
	}, nil
}

// GenerateLowStockAlerts crea una alerta low_stock por cada producto en o
// bajo su punto de reorden que no tenga ya una alerta abierta del mismo tipo.
// Devuelve las alertas creadas.
func (uc *UseCase) GenerateLowStockAlerts(ctx context.Context, companyID string) ([]*dto.AlertResponse, error) {
	products, err := uc.reports.LowStock(ctx, companyID)
	if err != nil {
		return nil, err
	}
	created := make([]*dto.AlertResponse, 0)
	for _, p := range products {
		open, err := uc.alerts.FindOpen(companyID, entity.AlertTypeLowStock, p.ID)
		if err != nil {
			return nil, err
		}
		if open != nil {
			continue
		}
		alert := &entity.Alert{
			ID:        uuid.New().String(),
			CompanyID: companyID,
			Type:      entity.AlertTypeLowStock,
			ProductID: p.ID,
			Message:   fmt.Sprintf("%s (%s) en %s unidades, punto de reorden %s", p.Name, p.SKU, p.Stock.String(), p.ReorderPoint.String()),
			CreatedAt: time.Now(),
		}
		if err := uc.alerts.Create(alert); err != nil {
			return nil, err
		}
		created = append(created, toAlertResponse(alert))
	}
	return created, nil
}

// ListAlerts alertas abiertas de la empresa.
func (uc *UseCase) ListAlerts(companyID string) ([]*dto.AlertResponse, error) {
	list, err := uc.alerts.ListOpen(companyID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.AlertResponse, 0, len(list))
	for _, a := range list {
		out = append(out, toAlertResponse(a))
	}
	return out, nil
}

// DismissAlert descarta una alerta abierta.
func (uc *UseCase) DismissAlert(companyID, id string) error {
	return uc.alerts.Dismiss(companyID, id)
}

func toAlertResponse(a *entity.Alert) *dto.AlertResponse {
	return &dto.AlertResponse{
		ID:        a.ID,
		ProductID: a.ProductID,
		Type:      a.Type,
		Message:   a.Message,
		IsActive:  !a.IsDismissed,
		CreatedAt: a.CreatedAt,
	}
}
