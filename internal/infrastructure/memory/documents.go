package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jmcastro/stockpilot-api/internal/application/ledger"
	"github.com/jmcastro/stockpilot-api/internal/domain"
	"github.com/jmcastro/stockpilot-api/internal/domain/entity"
	"github.com/jmcastro/stockpilot-api/internal/domain/repository"
)

// TxRunner en memoria: snapshot antes de ejecutar, restore si fn falla.
type TxRunner struct{ s *Store }

var _ ledger.TxRunner = (*TxRunner)(nil)

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run ejecuta fn con repos del store; deshace todo si fn retorna error.
func (t *TxRunner) Run(_ context.Context, fn func(r *ledger.Repos) error) error {
	t.s.mu.Lock()
	snap := t.s.snapshot()
	t.s.mu.Unlock()

	if err := fn(t.s.Repos()); err != nil {
		t.s.mu.Lock()
		t.s.restore(snap)
		t.s.mu.Unlock()
		return err
	}
	return nil
}

// PurchaseOrderRepo implementación en memoria.
type PurchaseOrderRepo struct{ s *Store }

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

func (r *PurchaseOrderRepo) Create(o *entity.PurchaseOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored := *o
	stored.Items = append([]entity.PurchaseOrderItem(nil), o.Items...)
	r.s.purchases[o.ID] = stored
	return nil
}

func (r *PurchaseOrderRepo) GetByID(companyID, id string) (*entity.PurchaseOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.purchases[id]
	if !ok || o.CompanyID != companyID {
		return nil, nil
	}
	out := o
	out.Items = append([]entity.PurchaseOrderItem(nil), o.Items...)
	return &out, nil
}

func (r *PurchaseOrderRepo) List(companyID, status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.PurchaseOrder
	for _, o := range r.s.purchases {
		if o.CompanyID != companyID || (status != "" && o.Status != status) {
			continue
		}
		out := o
		out.Items = append([]entity.PurchaseOrderItem(nil), o.Items...)
		list = append(list, &out)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].OrderNumber < list[j].OrderNumber })
	return page(list, limit, offset), nil
}

func (r *PurchaseOrderRepo) UpdateStatus(companyID, id, status, approvedBy string, receivedDate *time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.purchases[id]
	if !ok || o.CompanyID != companyID {
		return domain.ErrNotFound
	}
	o.Status = status
	if approvedBy != "" {
		o.ApprovedBy = approvedBy
	}
	if receivedDate != nil {
		o.ReceivedDate = receivedDate
	}
	o.UpdatedAt = time.Now()
	r.s.purchases[id] = o
	return nil
}

func (r *PurchaseOrderRepo) UpdateItemReceived(itemID string, receivedQty decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, o := range r.s.purchases {
		for i := range o.Items {
			if o.Items[i].ID == itemID {
				o.Items[i].ReceivedQty = receivedQty
				r.s.purchases[id] = o
				return nil
			}
		}
	}
	return domain.ErrNotFound
}

func (r *PurchaseOrderRepo) Delete(companyID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.purchases[id]
	if !ok || o.CompanyID != companyID {
		return domain.ErrNotFound
	}
	delete(r.s.purchases, id)
	return nil
}

func (r *PurchaseOrderRepo) Count(companyID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, o := range r.s.purchases {
		if o.CompanyID == companyID {
			n++
		}
	}
	return n, nil
}

// SalesOrderRepo implementación en memoria.
type SalesOrderRepo struct{ s *Store }

var _ repository.SalesOrderRepository = (*SalesOrderRepo)(nil)

func (r *SalesOrderRepo) Create(o *entity.SalesOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored := *o
	stored.Items = append([]entity.SalesOrderItem(nil), o.Items...)
	r.s.sales[o.ID] = stored
	return nil
}

func (r *SalesOrderRepo) GetByID(companyID, id string) (*entity.SalesOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.sales[id]
	if !ok || o.CompanyID != companyID {
		return nil, nil
	}
	out := o
	out.Items = append([]entity.SalesOrderItem(nil), o.Items...)
	return &out, nil
}

func (r *SalesOrderRepo) List(companyID, status string, limit, offset int) ([]*entity.SalesOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.SalesOrder
	for _, o := range r.s.sales {
		if o.CompanyID != companyID || (status != "" && o.Status != status) {
			continue
		}
		out := o
		out.Items = append([]entity.SalesOrderItem(nil), o.Items...)
		list = append(list, &out)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].OrderNumber < list[j].OrderNumber })
	return page(list, limit, offset), nil
}

func (r *SalesOrderRepo) UpdateStatus(companyID, id, status string, shippingDate, deliveryDate *time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.sales[id]
	if !ok || o.CompanyID != companyID {
		return domain.ErrNotFound
	}
	o.Status = status
	if shippingDate != nil {
		o.ShippingDate = shippingDate
	}
	if deliveryDate != nil {
		o.DeliveryDate = deliveryDate
	}
	o.UpdatedAt = time.Now()
	r.s.sales[id] = o
	return nil
}

func (r *SalesOrderRepo) Delete(companyID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.sales[id]
	if !ok || o.CompanyID != companyID {
		return domain.ErrNotFound
	}
	delete(r.s.sales, id)
	return nil
}

func (r *SalesOrderRepo) Count(companyID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, o := range r.s.sales {
		if o.CompanyID == companyID {
			n++
		}
	}
	return n, nil
}

// ReturnRepo implementación en memoria.
type ReturnRepo struct{ s *Store }

var _ repository.ReturnRepository = (*ReturnRepo)(nil)

func (r *ReturnRepo) Create(ret *entity.Return) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored := *ret
	stored.Items = append([]entity.ReturnItem(nil), ret.Items...)
	r.s.returns[ret.ID] = stored
	return nil
}

func (r *ReturnRepo) GetByID(companyID, id string) (*entity.Return, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ret, ok := r.s.returns[id]
	if !ok || ret.CompanyID != companyID {
		return nil, nil
	}
	out := ret
	out.Items = append([]entity.ReturnItem(nil), ret.Items...)
	return &out, nil
}

func (r *ReturnRepo) List(companyID, status string, limit, offset int) ([]*entity.Return, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Return
	for _, ret := range r.s.returns {
		if ret.CompanyID != companyID || (status != "" && ret.Status != status) {
			continue
		}
		out := ret
		out.Items = append([]entity.ReturnItem(nil), ret.Items...)
		list = append(list, &out)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ReturnNumber < list[j].ReturnNumber })
	return page(list, limit, offset), nil
}

func (r *ReturnRepo) UpdateStatus(companyID, id, status string, processedAt *time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ret, ok := r.s.returns[id]
	if !ok || ret.CompanyID != companyID {
		return domain.ErrNotFound
	}
	ret.Status = status
	if processedAt != nil {
		ret.ProcessedAt = processedAt
	}
	ret.UpdatedAt = time.Now()
	r.s.returns[id] = ret
	return nil
}

func (r *ReturnRepo) Delete(companyID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ret, ok := r.s.returns[id]
	if !ok || ret.CompanyID != companyID {
		return domain.ErrNotFound
	}
	delete(r.s.returns, id)
	return nil
}

func (r *ReturnRepo) Count(companyID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, ret := range r.s.returns {
		if ret.CompanyID == companyID {
			n++
		}
	}
	return n, nil
}

// TransferRepo implementación en memoria.
type TransferRepo struct{ s *Store }

var _ repository.StockTransferRepository = (*TransferRepo)(nil)

func (r *TransferRepo) Create(t *entity.StockTransfer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.transfers[t.ID] = *t
	return nil
}

func (r *TransferRepo) GetByID(companyID, id string) (*entity.StockTransfer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.transfers[id]
	if !ok || t.CompanyID != companyID {
		return nil, nil
	}
	out := t
	return &out, nil
}

func (r *TransferRepo) List(companyID, status string, limit, offset int) ([]*entity.StockTransfer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.StockTransfer
	for _, t := range r.s.transfers {
		if t.CompanyID != companyID || (status != "" && t.Status != status) {
			continue
		}
		out := t
		list = append(list, &out)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].TransferNumber < list[j].TransferNumber })
	return page(list, limit, offset), nil
}

func (r *TransferRepo) UpdateStatus(companyID, id, status string, completedAt *time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.transfers[id]
	if !ok || t.CompanyID != companyID {
		return domain.ErrNotFound
	}
	t.Status = status
	if completedAt != nil {
		t.CompletedAt = completedAt
	}
	t.UpdatedAt = time.Now()
	r.s.transfers[id] = t
	return nil
}

func (r *TransferRepo) Count(companyID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, t := range r.s.transfers {
		if t.CompanyID == companyID {
			n++
		}
	}
	return n, nil
}

// CycleCountRepo implementación en memoria.
type CycleCountRepo struct{ s *Store }

var _ repository.CycleCountRepository = (*CycleCountRepo)(nil)

func (r *CycleCountRepo) Create(c *entity.CycleCount) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored := *c
	stored.Items = append([]entity.CycleCountItem(nil), c.Items...)
	r.s.cycleCounts[c.ID] = stored
	return nil
}

func (r *CycleCountRepo) GetByID(companyID, id string) (*entity.CycleCount, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.cycleCounts[id]
	if !ok || c.CompanyID != companyID {
		return nil, nil
	}
	out := c
	out.Items = append([]entity.CycleCountItem(nil), c.Items...)
	return &out, nil
}

func (r *CycleCountRepo) List(companyID, status string, limit, offset int) ([]*entity.CycleCount, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.CycleCount
	for _, c := range r.s.cycleCounts {
		if c.CompanyID != companyID || (status != "" && c.Status != status) {
			continue
		}
		out := c
		out.Items = append([]entity.CycleCountItem(nil), c.Items...)
		list = append(list, &out)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CountNumber < list[j].CountNumber })
	return page(list, limit, offset), nil
}

func (r *CycleCountRepo) UpdateItemCount(itemID string, countedQty, variance decimal.Decimal, countedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, c := range r.s.cycleCounts {
		for i := range c.Items {
			if c.Items[i].ID == itemID {
				counted := countedQty
				varc := variance
				at := countedAt
				c.Items[i].CountedQty = &counted
				c.Items[i].Variance = &varc
				c.Items[i].CountedAt = &at
				r.s.cycleCounts[id] = c
				return nil
			}
		}
	}
	return domain.ErrNotFound
}

func (r *CycleCountRepo) UpdateStatus(companyID, id, status string, completedAt *time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.cycleCounts[id]
	if !ok || c.CompanyID != companyID {
		return domain.ErrNotFound
	}
	c.Status = status
	if completedAt != nil {
		c.CompletedAt = completedAt
	}
	c.UpdatedAt = time.Now()
	r.s.cycleCounts[id] = c
	return nil
}

func (r *CycleCountRepo) Delete(companyID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.cycleCounts[id]
	if !ok || c.CompanyID != companyID {
		return domain.ErrNotFound
	}
	delete(r.s.cycleCounts, id)
	return nil
}

func (r *CycleCountRepo) Count(companyID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, c := range r.s.cycleCounts {
		if c.CompanyID == companyID {
			n++
		}
	}
	return n, nil
}

// AdjustmentRepo implementación en memoria.
type AdjustmentRepo struct{ s *Store }

var _ repository.StockAdjustmentRepository = (*AdjustmentRepo)(nil)

func (r *AdjustmentRepo) Create(a *entity.StockAdjustment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.adjustments = append(r.s.adjustments, *a)
	return nil
}

func (r *AdjustmentRepo) List(companyID string, limit, offset int) ([]*entity.StockAdjustment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.StockAdjustment
	for i := len(r.s.adjustments) - 1; i >= 0; i-- {
		if r.s.adjustments[i].CompanyID == companyID {
			out := r.s.adjustments[i]
			list = append(list, &out)
		}
	}
	return page(list, limit, offset), nil
}
