// Package memory implementa los repositorios y el TxRunner sobre estructuras
// en memoria. Lo usan los tests de casos de uso para ejercitar los mismos
// contratos que la implementación PostgreSQL sin una BD. Run toma un snapshot
// del estado y lo restaura si el callback falla, de modo que la semántica
// todo-o-nada también se cumple aquí.
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jmcastro/stockpilot-api/internal/application/ledger"
	"github.com/jmcastro/stockpilot-api/internal/domain"
	"github.com/jmcastro/stockpilot-api/internal/domain/entity"
	"github.com/jmcastro/stockpilot-api/internal/domain/repository"
)

// Store estado compartido de todos los repositorios en memoria.
type Store struct {
	mu sync.Mutex

	products    map[string]entity.Product
	movements   []entity.StockMovement
	inventory   map[string]entity.LocationInventory // key: company|product|location
	purchases   map[string]entity.PurchaseOrder
	sales       map[string]entity.SalesOrder
	returns     map[string]entity.Return
	transfers   map[string]entity.StockTransfer
	cycleCounts map[string]entity.CycleCount
	adjustments []entity.StockAdjustment
	locations   map[string]entity.Location
	categories  map[string]entity.Category
	suppliers   map[string]entity.Supplier
	customers   map[string]entity.Customer
	users       map[string]entity.User
	companies   map[string]entity.Company
	alerts      map[string]entity.Alert
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		products:    map[string]entity.Product{},
		inventory:   map[string]entity.LocationInventory{},
		purchases:   map[string]entity.PurchaseOrder{},
		sales:       map[string]entity.SalesOrder{},
		returns:     map[string]entity.Return{},
		transfers:   map[string]entity.StockTransfer{},
		cycleCounts: map[string]entity.CycleCount{},
		adjustments: nil,
		locations:   map[string]entity.Location{},
		categories:  map[string]entity.Category{},
		suppliers:   map[string]entity.Supplier{},
		customers:   map[string]entity.Customer{},
		users:       map[string]entity.User{},
		companies:   map[string]entity.Company{},
		alerts:      map[string]entity.Alert{},
	}
}

// Repos devuelve el conjunto de repositorios atados al store (fuera de tx).
func (s *Store) Repos() *ledger.Repos {
	return &ledger.Repos{
		Movements:      &MovementRepo{s: s},
		Products:       &ProductRepo{s: s},
		Inventory:      &InventoryRepo{s: s},
		PurchaseOrders: &PurchaseOrderRepo{s: s},
		SalesOrders:    &SalesOrderRepo{s: s},
		Returns:        &ReturnRepo{s: s},
		Transfers:      &TransferRepo{s: s},
		CycleCounts:    &CycleCountRepo{s: s},
		Adjustments:    &AdjustmentRepo{s: s},
	}
}

func invKey(companyID, productID, locationID string) string {
	return companyID + "|" + productID + "|" + locationID
}

func (s *Store) snapshot() *Store {
	clone := NewStore()
	for k, v := range s.products {
		clone.products[k] = v
	}
	clone.movements = append([]entity.StockMovement(nil), s.movements...)
	for k, v := range s.inventory {
		clone.inventory[k] = v
	}
	for k, v := range s.purchases {
		v.Items = append([]entity.PurchaseOrderItem(nil), v.Items...)
		clone.purchases[k] = v
	}
	for k, v := range s.sales {
		v.Items = append([]entity.SalesOrderItem(nil), v.Items...)
		clone.sales[k] = v
	}
	for k, v := range s.returns {
		v.Items = append([]entity.ReturnItem(nil), v.Items...)
		clone.returns[k] = v
	}
	for k, v := range s.transfers {
		clone.transfers[k] = v
	}
	for k, v := range s.cycleCounts {
		v.Items = append([]entity.CycleCountItem(nil), v.Items...)
		clone.cycleCounts[k] = v
	}
	clone.adjustments = append([]entity.StockAdjustment(nil), s.adjustments...)
	for k, v := range s.locations {
		clone.locations[k] = v
	}
	for k, v := range s.alerts {
		clone.alerts[k] = v
	}
	return clone
}

func (s *Store) restore(snap *Store) {
	s.products = snap.products
	s.movements = snap.movements
	s.inventory = snap.inventory
	s.purchases = snap.purchases
	s.sales = snap.sales
	s.returns = snap.returns
	s.transfers = snap.transfers
	s.cycleCounts = snap.cycleCounts
	s.adjustments = snap.adjustments
	s.locations = snap.locations
	s.alerts = snap.alerts
}

// ProductRepo implementación en memoria de repository.ProductRepository.
type ProductRepo struct{ s *Store }

var _ repository.ProductRepository = (*ProductRepo)(nil)

func (r *ProductRepo) Create(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.products {
		if existing.CompanyID == p.CompanyID && existing.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	r.s.products[p.ID] = *p
	return nil
}

func (r *ProductRepo) Update(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.products[p.ID]
	if !ok || stored.CompanyID != p.CompanyID {
		return domain.ErrNotFound
	}
	// Stock y Cost se preservan: solo mutan vía AdjustStock/UpdateCost
	updated := *p
	updated.Stock = stored.Stock
	updated.Cost = stored.Cost
	r.s.products[p.ID] = updated
	return nil
}

func (r *ProductRepo) GetByID(companyID, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok || p.CompanyID != companyID {
		return nil, nil
	}
	out := p
	return &out, nil
}

func (r *ProductRepo) GetBySKU(companyID, sku string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.CompanyID == companyID && p.SKU == sku {
			out := p
			return &out, nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) List(companyID, search string, limit, offset int) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Product
	for _, p := range r.s.products {
		if p.CompanyID != companyID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(search)) &&
			!strings.Contains(strings.ToLower(p.SKU), strings.ToLower(search)) {
			continue
		}
		out := p
		list = append(list, &out)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].SKU < list[j].SKU })
	return page(list, limit, offset), nil
}

func (r *ProductRepo) AdjustStock(companyID, productID string, delta decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[productID]
	if !ok || p.CompanyID != companyID {
		return domain.ErrNotFound
	}
	p.Stock = p.Stock.Add(delta)
	p.UpdatedAt = time.Now()
	r.s.products[productID] = p
	return nil
}

func (r *ProductRepo) UpdateCost(companyID, productID string, cost decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[productID]
	if !ok || p.CompanyID != companyID {
		return domain.ErrNotFound
	}
	p.Cost = cost
	r.s.products[productID] = p
	return nil
}

// MovementRepo implementación en memoria de repository.StockMovementRepository.
type MovementRepo struct{ s *Store }

var _ repository.StockMovementRepository = (*MovementRepo)(nil)

func (r *MovementRepo) Create(m *entity.StockMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.movements = append(r.s.movements, *m)
	return nil
}

func (r *MovementRepo) List(companyID string, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.StockMovement
	for i := len(r.s.movements) - 1; i >= 0; i-- { // más recientes primero
		m := r.s.movements[i]
		if m.CompanyID != companyID {
			continue
		}
		if f.ProductID != "" && m.ProductID != f.ProductID {
			continue
		}
		if f.Type != "" && m.Type != f.Type {
			continue
		}
		if f.From != nil && m.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && m.CreatedAt.After(*f.To) {
			continue
		}
		out := m
		list = append(list, &out)
	}
	return page(list, f.Limit, f.Offset), nil
}

// InventoryRepo implementación en memoria de repository.InventoryRepository.
type InventoryRepo struct{ s *Store }

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

func (r *InventoryRepo) Get(companyID, productID, locationID string) (*entity.LocationInventory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.inventory[invKey(companyID, productID, locationID)]
	if !ok {
		return nil, nil
	}
	out := inv
	return &out, nil
}

func (r *InventoryRepo) Set(inv *entity.LocationInventory) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored := *inv
	stored.UpdatedAt = time.Now()
	r.s.inventory[invKey(inv.CompanyID, inv.ProductID, inv.LocationID)] = stored
	return nil
}

func (r *InventoryRepo) AddQuantity(companyID, productID, locationID string, delta decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := invKey(companyID, productID, locationID)
	inv, ok := r.s.inventory[key]
	if !ok {
		inv = entity.LocationInventory{
			CompanyID:  companyID,
			ProductID:  productID,
			LocationID: locationID,
			Quantity:   decimal.Zero,
		}
	}
	inv.Quantity = inv.Quantity.Add(delta)
	inv.UpdatedAt = time.Now()
	r.s.inventory[key] = inv
	return nil
}

func (r *InventoryRepo) ListByLocation(companyID, locationID string) ([]*entity.LocationInventory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.LocationInventory
	for _, inv := range r.s.inventory {
		if inv.CompanyID == companyID && inv.LocationID == locationID {
			out := inv
			list = append(list, &out)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ProductID < list[j].ProductID })
	return list, nil
}

func (r *InventoryRepo) List(companyID string, limit, offset int) ([]*entity.LocationInventory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.LocationInventory
	for _, inv := range r.s.inventory {
		if inv.CompanyID == companyID {
			out := inv
			list = append(list, &out)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].ProductID != list[j].ProductID {
			return list[i].ProductID < list[j].ProductID
		}
		return list[i].LocationID < list[j].LocationID
	})
	return page(list, limit, offset), nil
}

func (r *InventoryRepo) SumByProduct(companyID, productID string) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sum := decimal.Zero
	for _, inv := range r.s.inventory {
		if inv.CompanyID == companyID && inv.ProductID == productID {
			sum = sum.Add(inv.Quantity)
		}
	}
	return sum, nil
}

func page[T any](list []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(list) {
			return nil
		}
		list = list[offset:]
	}
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
