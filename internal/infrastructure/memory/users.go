package memory

import (
	"sort"
	"strings"

	"github.com/jmcastro/stockpilot-api/internal/domain"
	"github.com/jmcastro/stockpilot-api/internal/domain/entity"
	"github.com/jmcastro/stockpilot-api/internal/domain/repository"
)

// UserRepo implementación en memoria de repository.UserRepository.
type UserRepo struct{ s *Store }

var _ repository.UserRepository = (*UserRepo)(nil)

// NewUserRepo construye el repositorio de usuarios sobre el store.
func NewUserRepo(s *Store) *UserRepo {
	return &UserRepo{s: s}
}

func (r *UserRepo) Create(u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r *UserRepo) FindByEmail(email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			out := u
			return &out, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) GetByEmailAndCompany(email, companyID string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.CompanyID == companyID && strings.EqualFold(u.Email, email) {
			out := u
			return &out, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	out := u
	return &out, nil
}

// CompanyRepo implementación en memoria de repository.CompanyRepository.
type CompanyRepo struct{ s *Store }

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// NewCompanyRepo construye el repositorio de compañías sobre el store.
func NewCompanyRepo(s *Store) *CompanyRepo {
	return &CompanyRepo{s: s}
}

func (r *CompanyRepo) Create(c *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.companies[c.ID] = *c
	return nil
}

func (r *CompanyRepo) GetByID(id string) (*entity.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.companies[id]
	if !ok {
		return nil, nil
	}
	out := c
	return &out, nil
}

func (r *CompanyRepo) List(limit, offset int) ([]*entity.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Company
	for _, c := range r.s.companies {
		out := c
		list = append(list, &out)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return page(list, limit, offset), nil
}
