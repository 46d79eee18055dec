package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jmcastro/stockpilot-api/internal/domain"
	"github.com/jmcastro/stockpilot-api/internal/domain/entity"
	"github.com/jmcastro/stockpilot-api/internal/domain/repository"
)

// ReportRepo implementación en memoria de repository.ReportRepository,
// derivada de los mismos datos que mutan los repositorios de escritura.
type ReportRepo struct{ s *Store }

var _ repository.ReportRepository = (*ReportRepo)(nil)

// NewReportRepo construye el repositorio de reportes sobre el store.
func NewReportRepo(s *Store) *ReportRepo {
	return &ReportRepo{s: s}
}

func (r *ReportRepo) ActiveProducts(_ context.Context, companyID string) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Product
	for _, p := range r.s.products {
		if p.CompanyID == companyID && p.IsActive {
			out := p
			list = append(list, &out)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].SKU < list[j].SKU })
	return list, nil
}

func (r *ReportRepo) OutboundTotalsSince(_ context.Context, companyID string, since time.Time) (map[string]decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	totals := map[string]decimal.Decimal{}
	for _, m := range r.s.movements {
		if m.CompanyID != companyID || m.Type != entity.MovementTypeOut || m.CreatedAt.Before(since) {
			continue
		}
		totals[m.ProductID] = totals[m.ProductID].Add(m.Quantity)
	}
	return totals, nil
}

func (r *ReportRepo) ProductIDsWithOutboundSince(_ context.Context, companyID string, since time.Time) (map[string]struct{}, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := map[string]struct{}{}
	for _, m := range r.s.movements {
		if m.CompanyID == companyID && m.Type == entity.MovementTypeOut && !m.CreatedAt.Before(since) {
			ids[m.ProductID] = struct{}{}
		}
	}
	return ids, nil
}

func (r *ReportRepo) LowStock(_ context.Context, companyID string) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Product
	for _, p := range r.s.products {
		if p.CompanyID == companyID && p.IsActive && p.Stock.LessThanOrEqual(p.ReorderPoint) {
			out := p
			list = append(list, &out)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].SKU < list[j].SKU })
	return list, nil
}

func (r *ReportRepo) Suppliers(_ context.Context, companyID string) ([]*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Supplier
	for _, s := range r.s.suppliers {
		if s.CompanyID == companyID {
			out := s
			list = append(list, &out)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *ReportRepo) ReceivedPurchaseOrdersSince(_ context.Context, companyID string, since time.Time) ([]*entity.PurchaseOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.PurchaseOrder
	for _, o := range r.s.purchases {
		if o.CompanyID != companyID || o.Status != entity.POStatusReceived {
			continue
		}
		if o.ExpectedDate == nil || o.ReceivedDate == nil || o.CreatedAt.Before(since) {
			continue
		}
		out := o
		list = append(list, &out)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].OrderNumber < list[j].OrderNumber })
	return list, nil
}

// AlertRepo implementación en memoria de repository.AlertRepository.
type AlertRepo struct{ s *Store }

var _ repository.AlertRepository = (*AlertRepo)(nil)

// NewAlertRepo construye el repositorio de alertas sobre el store.
func NewAlertRepo(s *Store) *AlertRepo {
	return &AlertRepo{s: s}
}

func (r *AlertRepo) Create(a *entity.Alert) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.alerts[a.ID] = *a
	return nil
}

func (r *AlertRepo) ListOpen(companyID string) ([]*entity.Alert, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Alert
	for _, a := range r.s.alerts {
		if a.CompanyID == companyID && !a.IsDismissed {
			out := a
			list = append(list, &out)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *AlertRepo) FindOpen(companyID, alertType, productID string) (*entity.Alert, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.alerts {
		if a.CompanyID == companyID && a.Type == alertType && a.ProductID == productID && !a.IsDismissed {
			out := a
			return &out, nil
		}
	}
	return nil, nil
}

func (r *AlertRepo) Dismiss(companyID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.alerts[id]
	if !ok || a.CompanyID != companyID {
		return domain.ErrNotFound
	}
	if a.IsDismissed {
		return nil
	}
	a.IsDismissed = true
	r.s.alerts[id] = a
	return nil
}
