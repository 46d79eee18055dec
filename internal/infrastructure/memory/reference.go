package memory

import (
	"sort"
	"time"

	"github.com/jmcastro/stockpilot-api/internal/domain"
	"github.com/jmcastro/stockpilot-api/internal/domain/entity"
	"github.com/jmcastro/stockpilot-api/internal/domain/repository"
)

// SupplierRepo implementación en memoria de repository.SupplierRepository.
type SupplierRepo struct{ s *Store }

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// NewSupplierRepo construye el repositorio de proveedores sobre el store.
func NewSupplierRepo(s *Store) *SupplierRepo {
	return &SupplierRepo{s: s}
}

func (r *SupplierRepo) Create(sup *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.suppliers[sup.ID] = *sup
	return nil
}

func (r *SupplierRepo) Update(sup *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.suppliers[sup.ID]
	if !ok || stored.CompanyID != sup.CompanyID {
		return domain.ErrNotFound
	}
	up := *sup
	up.UpdatedAt = time.Now()
	r.s.suppliers[sup.ID] = up
	return nil
}

func (r *SupplierRepo) GetByID(companyID, id string) (*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	s, ok := r.s.suppliers[id]
	if !ok || s.CompanyID != companyID {
		return nil, nil
	}
	out := s
	return &out, nil
}

func (r *SupplierRepo) List(companyID string, limit, offset int) ([]*entity.Supplier, error) {
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
	return page(list, limit, offset), nil
}
